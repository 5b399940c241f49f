package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/vimline/theme"
)

var (
	nameFormat  = color.New(color.Bold).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
)

const themesIntro = `Themes control the field border, the state colors shown while editing ` +
	`(active), after a passing validation (valid) and after a failing one ` +
	`(invalid), plus placeholder and line number colors. Pick one with ` +
	`--theme, set ui.theme in the config file, or point ui.theme_file at a ` +
	`YAML file to define your own.`

// newThemesCmd creates the themes subcommand listing built-in themes.
func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in themes with color swatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			width := 78
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
				width = w - 2
			}
			fmt.Println(wordwrap.WrapString(themesIntro, uint(width)))
			fmt.Println()

			for _, name := range theme.Names() {
				th, err := theme.ByName(name)
				if err != nil {
					return err
				}
				printTheme(th)
			}
			return nil
		},
	}
}

// printTheme prints one theme line: name, border sample, state swatches.
func printTheme(th theme.Theme) {
	border := th.BorderChars()
	sample := fmt.Sprintf("%s%s%s%s%s",
		border.TopLeft, border.Top, border.Top, border.Top, border.TopRight)

	fmt.Printf("  %-14s %s  %s %s %s  %s\n",
		nameFormat(th.Name),
		sample,
		swatch(th.Active, "active"),
		swatch(th.Valid, "valid"),
		swatch(th.Invalid, "invalid"),
		mutedFormat(string(th.Active)+" / "+string(th.Valid)+" / "+string(th.Invalid)),
	)
}

// swatch renders a label in the given theme color.
func swatch(c lipgloss.Color, label string) string {
	return lipgloss.NewStyle().Foreground(c).Render("■ " + label)
}
