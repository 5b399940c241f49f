package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/willibrandon/vimline/field"
	"github.com/willibrandon/vimline/internal/logger"
)

// runField runs an interactive field and returns the submitted value.
// The UI renders on stderr so stdout carries nothing but the value,
// which keeps $(vimline ...) capture clean.
func runField(opts ...field.Option) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		os.Exit(exitNoTTY)
	}

	m := field.New(opts...)
	out, err := tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
	).Run()
	if err != nil {
		return "", fmt.Errorf("running input field: %w", err)
	}

	f := out.(*field.Model)
	if f.Cancelled() {
		logger.Debug("field cancelled")
		os.Exit(exitCancelled)
	}
	logger.Debug("field submitted", "length", len(f.Value()))
	return f.Value(), nil
}

// fieldDefaults translates config file preferences into field options.
// Per-command flags append after these and win.
func fieldDefaults() []field.Option {
	var opts []field.Option
	if cfg.UI.Width > 0 {
		opts = append(opts, field.WithWidth(cfg.UI.Width))
	}
	if cfg.UI.LineNumbers {
		opts = append(opts, field.WithLineNumbers(true))
	}
	if cfg.UI.RelativeNumbers {
		opts = append(opts, field.WithRelativeNumbers(true))
	}
	if cfg.UI.LiveValidation {
		opts = append(opts, field.WithLiveValidation(true))
	}
	return opts
}
