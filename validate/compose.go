package validate

import "errors"

type funcValidator struct {
	settings
	fn func(string) Result
}

// Func adapts a caller-supplied predicate into a Validator so custom
// logic participates uniformly in composition. Only the empty-input
// policy is applied around fn; a failing Result with no message gets the
// WithMessage text or a generic fallback.
func Func(fn func(text string) Result, opts ...Option) Validator {
	return &funcValidator{settings: newSettings(opts), fn: fn}
}

func (v *funcValidator) Validate(text string) Result {
	if res, done := v.emptyResult(text, "Input is required"); done {
		return res
	}
	res := v.fn(text)
	if !res.Valid && res.Message == "" {
		if v.message != "" {
			return Fail(v.message)
		}
		return Fail("Invalid input")
	}
	return res
}

type allValidator struct {
	children []Validator
}

// All combines validators with short-circuit AND semantics: children are
// evaluated in the given order and the first failure is returned
// verbatim, so the caller can surface one actionable message next to the
// input field. Empty-input handling is left to the children, each of
// which applies its own Required policy. Construction fails on an empty
// list.
func All(validators ...Validator) (Validator, error) {
	if len(validators) == 0 {
		return nil, errors.New("composite validator needs at least one child")
	}
	children := make([]Validator, len(validators))
	copy(children, validators)
	return &allValidator{children: children}, nil
}

func (v *allValidator) Validate(text string) Result {
	for _, child := range v.children {
		if res := child.Validate(text); !res.Valid {
			return res
		}
	}
	return OK()
}
