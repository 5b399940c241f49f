package validate

import (
	"strings"
	"testing"
)

func TestEmptyInputPolicy(t *testing.T) {
	optional := []Validator{
		Email(),
		Must(Date("")),
		Must(Integer(Min(1), Max(10))),
		Must(Float()),
		Must(Regexp(`^[a-z]+$`)),
		Must(Length(Min(8))),
		Func(func(string) Result { return Fail("never reached") }),
	}
	for i, v := range optional {
		if res := v.Validate(""); !res.Valid {
			t.Errorf("optional validator %d rejected empty input: %q", i, res.Message)
		}
	}

	required := []Validator{
		Email(Required()),
		Must(Date("", Required())),
		Must(Integer(Required())),
		Must(Float(Required())),
		Must(Regexp(`^[a-z]+$`, Required())),
		Must(Length(Min(8), Required())),
		Func(func(string) Result { return OK() }, Required()),
	}
	for i, v := range required {
		res := v.Validate("")
		if res.Valid {
			t.Errorf("required validator %d accepted empty input", i)
		}
		if res.Message == "" {
			t.Errorf("required validator %d failed without a message", i)
		}
	}
}

func TestEmail(t *testing.T) {
	v := Email()
	tests := []struct {
		input string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"  user@example.com  ", true},
		{"user@localhost", false},
		{"user@.example.com", false},
		{"not-an-email", false},
		{"Alice <alice@example.com>", false},
	}
	for _, tc := range tests {
		if res := v.Validate(tc.input); res.Valid != tc.valid {
			t.Errorf("Email(%q): valid=%v, want %v (%s)", tc.input, res.Valid, tc.valid, res.Message)
		}
	}
}

func TestDate(t *testing.T) {
	v := Must(Date(""))
	if res := v.Validate("2024-02-29"); !res.Valid {
		t.Errorf("leap day rejected: %s", res.Message)
	}
	if res := v.Validate("2024-13-01"); res.Valid {
		t.Error("month 13 accepted")
	}
	res := v.Validate("01/02/2024")
	if res.Valid {
		t.Error("wrong layout accepted")
	}
	if !strings.Contains(res.Message, DateLayout) {
		t.Errorf("failure message should name the expected layout, got %q", res.Message)
	}

	custom := Must(Date("02/01/2006"))
	if res := custom.Validate("31/12/2024"); !res.Valid {
		t.Errorf("custom layout rejected valid date: %s", res.Message)
	}
}

func TestIntegerBounds(t *testing.T) {
	v := Must(Integer(Min(1), Max(150)))
	tests := []struct {
		input string
		valid bool
	}{
		{"150", true},
		{"1", true},
		{"151", false},
		{"0", false},
		{"-3", false},
		{"abc", false},
		{" 42 ", true},
	}
	for _, tc := range tests {
		if res := v.Validate(tc.input); res.Valid != tc.valid {
			t.Errorf("Integer(%q): valid=%v, want %v (%s)", tc.input, res.Valid, tc.valid, res.Message)
		}
	}

	// "not a number" and "out of range" must be distinguishable.
	parseMsg := v.Validate("abc").Message
	rangeMsg := v.Validate("151").Message
	if parseMsg == rangeMsg {
		t.Errorf("parse and range failures share message %q", parseMsg)
	}
}

func TestFloatBounds(t *testing.T) {
	v := Must(Float(MinFloat(0.5), MaxFloat(99.5)))
	if res := v.Validate("0.5"); !res.Valid {
		t.Errorf("inclusive lower bound rejected: %s", res.Message)
	}
	if res := v.Validate("99.51"); res.Valid {
		t.Error("value above max accepted")
	}
	if res := v.Validate("1e1"); !res.Valid {
		t.Errorf("scientific notation rejected: %s", res.Message)
	}
	if res := v.Validate("abc"); res.Valid {
		t.Error("non-number accepted")
	}
}

func TestRegexpFullMatch(t *testing.T) {
	v := Must(Regexp(`[A-Z]{3}-\d{4}`))
	if res := v.Validate("ABC-1234"); !res.Valid {
		t.Errorf("exact match rejected: %s", res.Message)
	}
	for _, input := range []string{"abc-1234", "ABC-1234 trailing", "xABC-1234"} {
		if res := v.Validate(input); res.Valid {
			t.Errorf("Regexp accepted %q under full-match semantics", input)
		}
	}
}

func TestRegexpContains(t *testing.T) {
	v := Must(Regexp(`\d`, Contains(), WithMessage("Must contain a digit")))
	if res := v.Validate("abc1def"); !res.Valid {
		t.Errorf("substring match rejected: %s", res.Message)
	}
	res := v.Validate("abcdef")
	if res.Valid {
		t.Error("input without digit accepted")
	}
	if res.Message != "Must contain a digit" {
		t.Errorf("custom message not used, got %q", res.Message)
	}
}

func TestLengthBounds(t *testing.T) {
	v := Must(Length(Min(8), Max(20)))
	if res := v.Validate("short"); res.Valid {
		t.Error("5 runes accepted with min 8")
	}
	if res := v.Validate(strings.Repeat("x", 21)); res.Valid {
		t.Error("21 runes accepted with max 20")
	}
	if res := v.Validate(strings.Repeat("x", 10)); !res.Valid {
		t.Errorf("10 runes rejected: %s", res.Message)
	}

	below := v.Validate("short").Message
	above := v.Validate(strings.Repeat("x", 21)).Message
	if below == above {
		t.Errorf("bound violations share message %q", below)
	}

	// Rune count, not byte count.
	if res := v.Validate("日本語のテキスト"); !res.Valid {
		t.Errorf("8 multibyte runes rejected: %s", res.Message)
	}
}

func TestCompositeShortCircuit(t *testing.T) {
	length := Must(Length(Min(8)))
	upper := Must(Regexp(`[A-Z]`, Contains(), WithMessage("Must contain an uppercase letter")))
	digit := Must(Regexp(`\d`, Contains(), WithMessage("Must contain a digit")))

	v := Must(All(length, upper, digit))

	// "short" fails all three children; the Length message must win.
	res := v.Validate("short")
	if res.Valid {
		t.Fatal("composite accepted input failing every child")
	}
	want := length.Validate("short").Message
	if res.Message != want {
		t.Errorf("composite message = %q, want first failing child's %q", res.Message, want)
	}

	if res := v.Validate("Passw0rd!"); !res.Valid {
		t.Errorf("composite rejected conforming input: %s", res.Message)
	}
}

func TestCompositeEvaluationOrder(t *testing.T) {
	var order []string
	mk := func(name string, valid bool) Validator {
		return Func(func(string) Result {
			order = append(order, name)
			if valid {
				return OK()
			}
			return Fail(name + " failed")
		})
	}

	v := Must(All(mk("a", true), mk("b", false), mk("c", false)))
	res := v.Validate("input")
	if res.Message != "b failed" {
		t.Errorf("message = %q, want first failure", res.Message)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("evaluation order = %v, want [a b] (short circuit)", order)
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := Integer(Min(10), Max(1)); err == nil {
		t.Error("inverted integer bounds accepted")
	}
	if _, err := Float(MinFloat(2.5), MaxFloat(1.5)); err == nil {
		t.Error("inverted float bounds accepted")
	}
	if _, err := Length(Min(9), Max(3)); err == nil {
		t.Error("inverted length bounds accepted")
	}
	if _, err := Length(Min(-1)); err == nil {
		t.Error("negative length bound accepted")
	}
	if _, err := Regexp(`(`); err == nil {
		t.Error("invalid pattern accepted")
	}
	if _, err := All(); err == nil {
		t.Error("empty composite accepted")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on construction error")
		}
	}()
	Must(Regexp(`(`))
}

func TestValidateIsIdempotent(t *testing.T) {
	validators := []Validator{
		Email(),
		Must(Integer(Min(1), Max(150))),
		Must(All(Must(Length(Min(8))), Must(Regexp(`\d`, Contains())))),
	}
	inputs := []string{"", "user@example.com", "42", "short", strings.Repeat("x", 30)}

	for _, v := range validators {
		for _, input := range inputs {
			first := v.Validate(input)
			for n := 0; n < 5; n++ {
				if got := v.Validate(input); got != first {
					t.Errorf("Validate(%q) not stable: %+v then %+v", input, first, got)
				}
			}
		}
	}
}

func TestFuncAdapter(t *testing.T) {
	v := Func(func(text string) Result {
		if strings.HasPrefix(text, "ok") {
			return OK()
		}
		return Result{}
	}, WithMessage("Must start with ok"))

	if res := v.Validate("ok then"); !res.Valid {
		t.Errorf("predicate success rejected: %s", res.Message)
	}
	res := v.Validate("nope")
	if res.Valid {
		t.Error("predicate failure accepted")
	}
	if res.Message != "Must start with ok" {
		t.Errorf("blank failure message not replaced, got %q", res.Message)
	}
}
