package main

import (
	"fmt"
	"os"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/cobra"

	"github.com/willibrandon/vimline/field"
	"github.com/willibrandon/vimline/validate"
)

// newPasswordCmd creates the password subcommand for masked input.
func newPasswordCmd() *cobra.Command {
	var (
		title   string
		mask    string
		minLen  int
		confirm bool
		pattern string

		suggest    bool
		suggestLen int
		digits     int
		symbols    int
	)

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Prompt for a masked secret",
		Long: `Prompt for a secret through a masked field and print it to stdout.
Typed characters render as the mask character; the submitted value is
the real text.

With --confirm the prompt runs twice and fails unless both entries
match. With --suggest no prompt is shown: a random password is
generated and printed instead.

Examples:
  vimline password --title "API key"
  vimline password --title Passphrase --min-len 12 --confirm
  vimline password --suggest --length 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if suggest {
				generated, err := password.Generate(suggestLen, digits, symbols, false, false)
				if err != nil {
					return fmt.Errorf("generating password: %w", err)
				}
				fmt.Println(generated)
				return nil
			}

			th, err := resolveTheme()
			if err != nil {
				return err
			}

			if mask == "" {
				mask = "•"
			}

			var rules []validate.Validator
			lengthRule, err := validate.Length(validate.Min(minLen), validate.Required())
			if err != nil {
				return err
			}
			rules = append(rules, lengthRule)
			if pattern != "" {
				patternRule, err := validate.Regexp(pattern, validate.Contains(),
					validate.WithMessage("Password does not meet the required pattern"))
				if err != nil {
					return err
				}
				rules = append(rules, patternRule)
			}
			validator, err := validate.All(rules...)
			if err != nil {
				return err
			}

			opts := fieldDefaults()
			opts = append(opts,
				field.WithTheme(th),
				field.WithTitle(title),
				field.WithMask([]rune(mask)[0]),
				field.WithValidator(validator),
			)

			secret, err := runField(opts...)
			if err != nil {
				return err
			}

			if confirm {
				again, err := runField(append(opts, field.WithTitle(title+" (confirm)"))...)
				if err != nil {
					return err
				}
				if again != secret {
					fmt.Fprintln(os.Stderr, "Error: entries do not match")
					os.Exit(exitCancelled)
				}
			}

			fmt.Println(secret)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Password", "title shown in the top border")
	cmd.Flags().StringVar(&mask, "mask", "•", "mask character")
	cmd.Flags().IntVar(&minLen, "min-len", 1, "minimum length")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "prompt twice and require matching entries")
	cmd.Flags().StringVar(&pattern, "pattern", "", "regular expression the secret must contain")

	cmd.Flags().BoolVar(&suggest, "suggest", false, "generate a random password instead of prompting")
	cmd.Flags().IntVar(&suggestLen, "length", 24, "generated password length (with --suggest)")
	cmd.Flags().IntVar(&digits, "digits", 4, "digits in the generated password (with --suggest)")
	cmd.Flags().IntVar(&symbols, "symbols", 4, "symbols in the generated password (with --suggest)")

	return cmd
}
