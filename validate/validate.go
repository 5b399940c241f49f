// Package validate provides composable validators for terminal input
// fields. A Validator is an immutable, pure predicate over a candidate
// string: it returns a Result saying whether the text is acceptable and,
// if not, a human-readable reason. Validators carry no mutable state
// after construction and are safe for concurrent use.
//
// Build validators from the factories in this package and combine them
// with All:
//
//	pass := validate.Must(validate.All(
//		validate.Must(validate.Length(validate.Min(8), validate.Max(20))),
//		validate.Must(validate.Regexp(`[A-Z]`, validate.Contains(),
//			validate.WithMessage("Must contain an uppercase letter"))),
//	))
//
// Misconfiguration (inverted bounds, a pattern that does not compile) is
// rejected at construction time; Validate never panics.
package validate

import "strings"

// Result is the outcome of a single validation check.
type Result struct {
	Valid   bool
	Message string // reason for failure, empty when Valid
}

// OK returns a passing Result.
func OK() Result { return Result{Valid: true} }

// Fail returns a failing Result with the given message.
func Fail(message string) Result { return Result{Message: message} }

// Validator decides whether a string satisfies a rule and explains why not.
type Validator interface {
	Validate(text string) Result
}

// settings holds construction-time configuration shared by the built-in
// validators. Not every option applies to every validator; each factory
// reads the fields it understands.
type settings struct {
	required bool
	message  string
	contains bool

	minInt, maxInt     *int64
	minFloat, maxFloat *float64
}

// Option configures a validator at construction time.
type Option func(*settings)

// Required rejects empty input. By default every validator treats empty
// input as valid, so optional fields need no extra configuration.
func Required() Option {
	return func(s *settings) { s.required = true }
}

// WithMessage replaces the default failure message for validators that
// accept a custom one (Regexp, Func).
func WithMessage(message string) Option {
	return func(s *settings) { s.message = message }
}

// Min sets the inclusive lower bound for Integer, Float, and Length.
func Min(n int) Option {
	return func(s *settings) {
		i := int64(n)
		f := float64(n)
		s.minInt = &i
		s.minFloat = &f
	}
}

// Max sets the inclusive upper bound for Integer, Float, and Length.
func Max(n int) Option {
	return func(s *settings) {
		i := int64(n)
		f := float64(n)
		s.maxInt = &i
		s.maxFloat = &f
	}
}

// MinFloat sets the inclusive lower bound for Float.
func MinFloat(x float64) Option {
	return func(s *settings) { s.minFloat = &x }
}

// MaxFloat sets the inclusive upper bound for Float.
func MaxFloat(x float64) Option {
	return func(s *settings) { s.maxFloat = &x }
}

// Contains makes Regexp accept a match anywhere in the input instead of
// requiring the whole input to match.
func Contains() Option {
	return func(s *settings) { s.contains = true }
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// emptyResult applies the cross-cutting empty-input policy: blank input
// either succeeds immediately or, when the validator is required, fails
// with requiredMsg. The second return reports whether evaluation is done.
func (s settings) emptyResult(text, requiredMsg string) (Result, bool) {
	if strings.TrimSpace(text) != "" {
		return Result{}, false
	}
	if s.required {
		return Fail(requiredMsg), true
	}
	return OK(), true
}

// Must panics when err is non-nil and otherwise returns v. It wraps a
// factory call with statically known configuration, in the manner of
// regexp.MustCompile.
func Must(v Validator, err error) Validator {
	if err != nil {
		panic(err)
	}
	return v
}
