package vimline

import (
	"errors"
	"testing"
)

func TestParseHelpers(t *testing.T) {
	if n, err := parseInt("  42 "); err != nil || n != 42 {
		t.Errorf("parseInt = %d, %v", n, err)
	}
	if _, err := parseInt("abc"); err == nil {
		t.Error("parseInt accepted non-number")
	}
	if x, err := parseFloat("3.5"); err != nil || x != 3.5 {
		t.Errorf("parseFloat = %g, %v", x, err)
	}
	if _, err := parseFloat(""); err == nil {
		t.Error("parseFloat accepted empty input")
	}
}

func TestErrCancelledIsSentinel(t *testing.T) {
	wrapped := errors.Join(ErrCancelled)
	if !errors.Is(wrapped, ErrCancelled) {
		t.Error("ErrCancelled does not survive wrapping")
	}
}
