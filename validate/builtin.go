package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the default layout for Date validators: ISO 8601 calendar
// dates (YYYY-MM-DD) in Go reference-time notation.
const DateLayout = "2006-01-02"

type emailValidator struct {
	settings
}

// Email returns a validator that accepts addresses shaped like
// local-part@domain with at least one dot in the domain. Display-name
// forms ("Alice <a@example.com>") are rejected; the input must be a bare
// address.
func Email(opts ...Option) Validator {
	return &emailValidator{newSettings(opts)}
}

func (v *emailValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Email address is required"); done {
		return res
	}

	trimmed := strings.TrimSpace(text)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return Fail("Invalid email format")
	}

	at := strings.LastIndex(addr.Address, "@")
	domain := addr.Address[at+1:]
	if !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Fail("Invalid email format")
	}
	return OK()
}

type dateValidator struct {
	settings
	layout string
}

// Date returns a validator that accepts dates in the given reference-time
// layout. An empty layout falls back to DateLayout. Construction fails
// when the layout does not round-trip through time.Format and time.Parse.
func Date(layout string, opts ...Option) (Validator, error) {
	if layout == "" {
		layout = DateLayout
	}
	ref := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil {
		return nil, fmt.Errorf("unusable date layout %q: %w", layout, err)
	}
	return &dateValidator{settings: newSettings(opts), layout: layout}, nil
}

func (v *dateValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Date is required"); done {
		return res
	}
	if _, err := time.Parse(v.layout, strings.TrimSpace(text)); err != nil {
		return Fail(fmt.Sprintf("Invalid date format. Expected: %s", v.layout))
	}
	return OK()
}

type intValidator struct {
	settings
}

// Integer returns a validator for base-10 integers, optionally bounded
// with Min and Max (inclusive). Construction fails on inverted bounds.
func Integer(opts ...Option) (Validator, error) {
	s := newSettings(opts)
	if s.minInt != nil && s.maxInt != nil && *s.minInt > *s.maxInt {
		return nil, fmt.Errorf("integer bounds inverted: min %d > max %d", *s.minInt, *s.maxInt)
	}
	return &intValidator{s}, nil
}

func (v *intValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Integer value is required"); done {
		return res
	}
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return Fail("Invalid integer format")
	}
	if v.minInt != nil && n < *v.minInt {
		return Fail(fmt.Sprintf("Value must be at least %d", *v.minInt))
	}
	if v.maxInt != nil && n > *v.maxInt {
		return Fail(fmt.Sprintf("Value must be at most %d", *v.maxInt))
	}
	return OK()
}

type floatValidator struct {
	settings
}

// Float returns a validator for decimal numbers, optionally bounded with
// Min/Max or MinFloat/MaxFloat (inclusive). Construction fails on
// inverted bounds.
func Float(opts ...Option) (Validator, error) {
	s := newSettings(opts)
	if s.minFloat != nil && s.maxFloat != nil && *s.minFloat > *s.maxFloat {
		return nil, fmt.Errorf("float bounds inverted: min %g > max %g", *s.minFloat, *s.maxFloat)
	}
	return &floatValidator{s}, nil
}

func (v *floatValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Number is required"); done {
		return res
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return Fail("Invalid number format")
	}
	if v.minFloat != nil && x < *v.minFloat {
		return Fail(fmt.Sprintf("Value must be at least %g", *v.minFloat))
	}
	if v.maxFloat != nil && x > *v.maxFloat {
		return Fail(fmt.Sprintf("Value must be at most %g", *v.maxFloat))
	}
	return OK()
}

type regexpValidator struct {
	settings
	re *regexp.Regexp
}

// Regexp returns a validator that requires the whole input to match
// pattern; with the Contains option a match anywhere suffices. The
// failure message defaults to "Invalid format" and can be replaced with
// WithMessage. Construction fails when the pattern does not compile.
func Regexp(pattern string, opts ...Option) (Validator, error) {
	s := newSettings(opts)
	expr := pattern
	if !s.contains {
		expr = `\A(?:` + pattern + `)\z`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling validator pattern: %w", err)
	}
	return &regexpValidator{settings: s, re: re}, nil
}

func (v *regexpValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Input is required"); done {
		return res
	}
	if !v.re.MatchString(text) {
		if v.message != "" {
			return Fail(v.message)
		}
		return Fail("Invalid format")
	}
	return OK()
}

type lengthValidator struct {
	settings
}

// Length returns a validator on the rune count of the input, with either
// bound optional (inclusive). Unlike the other validators it never trims:
// whitespace counts. Construction fails on inverted or negative bounds.
func Length(opts ...Option) (Validator, error) {
	s := newSettings(opts)
	if s.minInt != nil && *s.minInt < 0 {
		return nil, fmt.Errorf("negative length bound: min %d", *s.minInt)
	}
	if s.minInt != nil && s.maxInt != nil && *s.minInt > *s.maxInt {
		return nil, fmt.Errorf("length bounds inverted: min %d > max %d", *s.minInt, *s.maxInt)
	}
	return &lengthValidator{s}, nil
}

func (v *lengthValidator) Validate(text string) Result {
	if text == "" {
		if v.required {
			return Fail("Input is required")
		}
		return OK()
	}

	n := int64(utf8.RuneCountInString(text))
	if v.minInt != nil && n < *v.minInt {
		if *v.minInt == 1 {
			return Fail("Input is required")
		}
		return Fail(fmt.Sprintf("Must be at least %d characters", *v.minInt))
	}
	if v.maxInt != nil && n > *v.maxInt {
		return Fail(fmt.Sprintf("Must be at most %d characters", *v.maxInt))
	}
	return OK()
}
