/*
Package vimline reads a line (or several) from the terminal through a
themed, validated input field with vi-style modal editing.

The simplest call blocks until the user submits or cancels:

	name, err := vimline.Read(
		field.WithTitle("Name"),
		field.WithPlaceholder("Ada Lovelace"),
	)

Validation keeps the field open until the input passes:

	email, err := vimline.Read(
		field.WithTitle("Email"),
		field.WithValidator(validate.Email(validate.Required())),
	)

Cancellation with Ctrl+C or Ctrl+D returns ErrCancelled.
*/
package vimline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/vimline/field"
	"github.com/willibrandon/vimline/validate"
)

// ErrCancelled is returned when the user abandons the field with
// Ctrl+C or Ctrl+D.
var ErrCancelled = errors.New("input cancelled")

// Read displays an input field and blocks until it is submitted or
// cancelled. The returned string is the field content on submit.
func Read(opts ...field.Option) (string, error) {
	m := field.New(opts...)
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("running input field: %w", err)
	}
	f := out.(*field.Model)
	if f.Cancelled() {
		return "", ErrCancelled
	}
	return f.Value(), nil
}

// ReadPassword reads a masked, non-empty value.
func ReadPassword(opts ...field.Option) (string, error) {
	opts = append(opts,
		field.WithMask('•'),
		field.WithValidator(validate.Must(validate.Length(validate.Min(1), validate.Required()))),
	)
	return Read(opts...)
}

// ReadInt reads a validated integer.
func ReadInt(opts ...field.Option) (int64, error) {
	opts = append(opts, field.WithValidator(validate.Must(validate.Integer(validate.Required()))))
	s, err := Read(opts...)
	if err != nil {
		return 0, err
	}
	return parseInt(s)
}

// ReadFloat reads a validated floating point number.
func ReadFloat(opts ...field.Option) (float64, error) {
	opts = append(opts, field.WithValidator(validate.Must(validate.Float(validate.Required()))))
	s, err := Read(opts...)
	if err != nil {
		return 0, err
	}
	return parseFloat(s)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing integer input: %w", err)
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing float input: %w", err)
	}
	return x, nil
}
