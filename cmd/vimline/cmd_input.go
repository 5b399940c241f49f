package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/willibrandon/vimline/field"
	"github.com/willibrandon/vimline/validate"
)

// newInputCmd creates the input subcommand, the general-purpose prompt.
func newInputCmd() *cobra.Command {
	var (
		title       string
		placeholder string
		value       string
		mask        string
		width       int
		live        bool
		lineNumbers bool
		relative    bool
		syntaxFile  string
		syntaxTheme string

		required   bool
		email      bool
		date       bool
		dateLayout string
		integer    bool
		float      bool
		minVal     string
		maxVal     string
		minLen     int
		maxLen     int
		pattern    string
		patternMsg string
		contains   bool
	)

	cmd := &cobra.Command{
		Use:   "input",
		Short: "Prompt for a validated line of input",
		Long: `Prompt for input through an interactive field and print the submitted
value to stdout.

Validation flags combine: every given rule must pass before the field
accepts Enter. An invalid submission keeps the field open and shows the
failure message in the bottom border.

Examples:
  vimline input --title Email --email --required
  vimline input --title Age --integer --min 0 --max 150
  vimline input --title "Ticket" --pattern '[A-Z]{2,5}-[0-9]+' --required
  vimline input --title Birthday --date
  vimline input --title Comment --min-len 10 --max-len 500 --live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			validator, err := buildValidator(validatorSpec{
				required:   required,
				email:      email,
				date:       date,
				dateLayout: dateLayout,
				integer:    integer,
				float:      float,
				minVal:     minVal,
				maxVal:     maxVal,
				minLen:     minLen,
				maxLen:     maxLen,
				pattern:    pattern,
				patternMsg: patternMsg,
				contains:   contains,
			})
			if err != nil {
				return err
			}

			th, err := resolveTheme()
			if err != nil {
				return err
			}

			opts := fieldDefaults()
			opts = append(opts, field.WithTheme(th))
			if title != "" {
				opts = append(opts, field.WithTitle(title))
			}
			if placeholder != "" {
				opts = append(opts, field.WithPlaceholder(placeholder))
			}
			if value != "" {
				opts = append(opts, field.WithValue(value))
			}
			if mask != "" {
				opts = append(opts, field.WithMask([]rune(mask)[0]))
			}
			if width > 0 {
				opts = append(opts, field.WithWidth(width))
			}
			if live {
				opts = append(opts, field.WithLiveValidation(true))
			}
			if lineNumbers {
				opts = append(opts, field.WithLineNumbers(true))
			}
			if relative {
				opts = append(opts, field.WithRelativeNumbers(true))
			}
			if syntaxFile != "" {
				opts = append(opts, field.WithSyntax(syntaxFile, syntaxTheme))
			}
			if validator != nil {
				opts = append(opts, field.WithValidator(validator))
			}

			result, err := runField(opts...)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title shown in the top border")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "hint text shown while the field is empty")
	cmd.Flags().StringVar(&value, "value", "", "initial field content")
	cmd.Flags().StringVar(&mask, "mask", "", "mask character for hidden input")
	cmd.Flags().IntVar(&width, "width", 0, "field width in columns")
	cmd.Flags().BoolVar(&live, "live", false, "validate on every keystroke")
	cmd.Flags().BoolVar(&lineNumbers, "line-numbers", false, "show line numbers")
	cmd.Flags().BoolVar(&relative, "relative-numbers", false, "show relative line numbers")
	cmd.Flags().StringVar(&syntaxFile, "syntax", "", "filename used to pick a syntax highlighting lexer (e.g. query.sql)")
	cmd.Flags().StringVar(&syntaxTheme, "syntax-theme", "monokai", "chroma style for syntax highlighting")

	cmd.Flags().BoolVar(&required, "required", false, "reject empty input")
	cmd.Flags().BoolVar(&email, "email", false, "require a valid email address")
	cmd.Flags().BoolVar(&date, "date", false, "require a valid date")
	cmd.Flags().StringVar(&dateLayout, "date-layout", validate.DateLayout, "Go reference-time layout for --date")
	cmd.Flags().BoolVar(&integer, "integer", false, "require an integer")
	cmd.Flags().BoolVar(&float, "float", false, "require a number")
	cmd.Flags().StringVar(&minVal, "min", "", "minimum numeric value (with --integer or --float)")
	cmd.Flags().StringVar(&maxVal, "max", "", "maximum numeric value (with --integer or --float)")
	cmd.Flags().IntVar(&minLen, "min-len", -1, "minimum input length in characters")
	cmd.Flags().IntVar(&maxLen, "max-len", -1, "maximum input length in characters")
	cmd.Flags().StringVar(&pattern, "pattern", "", "regular expression the input must match in full")
	cmd.Flags().StringVar(&patternMsg, "pattern-message", "", "failure message for --pattern")
	cmd.Flags().BoolVar(&contains, "contains", false, "make --pattern match anywhere instead of the full input")

	return cmd
}

// validatorSpec carries the validation flag values for input.
type validatorSpec struct {
	required   bool
	email      bool
	date       bool
	dateLayout string
	integer    bool
	float      bool
	minVal     string
	maxVal     string
	minLen     int
	maxLen     int
	pattern    string
	patternMsg string
	contains   bool
}

// buildValidator translates validation flags into a composed validator.
// Returns nil when no validation was requested.
func buildValidator(spec validatorSpec) (validate.Validator, error) {
	var shared []validate.Option
	if spec.required {
		shared = append(shared, validate.Required())
	}

	var validators []validate.Validator

	if spec.minLen >= 0 || spec.maxLen >= 0 {
		opts := append([]validate.Option{}, shared...)
		if spec.minLen >= 0 {
			opts = append(opts, validate.Min(spec.minLen))
		}
		if spec.maxLen >= 0 {
			opts = append(opts, validate.Max(spec.maxLen))
		}
		v, err := validate.Length(opts...)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}

	if spec.email {
		validators = append(validators, validate.Email(shared...))
	}

	if spec.date {
		v, err := validate.Date(spec.dateLayout, shared...)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}

	if spec.integer {
		opts := append([]validate.Option{}, shared...)
		if spec.minVal != "" {
			n, err := strconv.Atoi(spec.minVal)
			if err != nil {
				return nil, fmt.Errorf("--min: %w", err)
			}
			opts = append(opts, validate.Min(n))
		}
		if spec.maxVal != "" {
			n, err := strconv.Atoi(spec.maxVal)
			if err != nil {
				return nil, fmt.Errorf("--max: %w", err)
			}
			opts = append(opts, validate.Max(n))
		}
		v, err := validate.Integer(opts...)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}

	if spec.float {
		opts := append([]validate.Option{}, shared...)
		if spec.minVal != "" {
			x, err := strconv.ParseFloat(spec.minVal, 64)
			if err != nil {
				return nil, fmt.Errorf("--min: %w", err)
			}
			opts = append(opts, validate.MinFloat(x))
		}
		if spec.maxVal != "" {
			x, err := strconv.ParseFloat(spec.maxVal, 64)
			if err != nil {
				return nil, fmt.Errorf("--max: %w", err)
			}
			opts = append(opts, validate.MaxFloat(x))
		}
		v, err := validate.Float(opts...)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}

	if spec.pattern != "" {
		opts := append([]validate.Option{}, shared...)
		if spec.contains {
			opts = append(opts, validate.Contains())
		}
		if spec.patternMsg != "" {
			opts = append(opts, validate.WithMessage(spec.patternMsg))
		}
		v, err := validate.Regexp(spec.pattern, opts...)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}

	if (spec.minVal != "" || spec.maxVal != "") && !spec.integer && !spec.float {
		return nil, fmt.Errorf("--min/--max require --integer or --float")
	}

	// A bare --required still needs a validator to enforce it.
	if len(validators) == 0 {
		if !spec.required {
			return nil, nil
		}
		v, err := validate.Length(validate.Min(1), validate.Required())
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	if len(validators) == 1 {
		return validators[0], nil
	}
	return validate.All(validators...)
}
