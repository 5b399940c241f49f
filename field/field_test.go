package field

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/willibrandon/vimline/theme"
	"github.com/willibrandon/vimline/validate"
)

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

// press sends keys to the field. Multi-rune names that are not special
// keys are typed one rune at a time.
func press(m *Model, keys ...string) {
	for _, k := range keys {
		if msg := keyMsg(k); msg.Type != tea.KeyRunes || len([]rune(k)) == 1 {
			m.Update(msg)
			continue
		}
		for _, r := range k {
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
}

func TestSubmitWithoutValidator(t *testing.T) {
	m := New(WithTitle("Name"))
	press(m, "i", "gopher", "enter")

	if !m.Submitted() {
		t.Fatal("field not submitted")
	}
	if got := m.Value(); got != "gopher" {
		t.Errorf("value = %q", got)
	}
	if m.State() != StateValid {
		t.Errorf("state = %v, want valid", m.State())
	}
}

func TestSubmitInvalidStaysOpen(t *testing.T) {
	m := New(WithValidator(validate.Must(validate.Integer(validate.Required()))))
	press(m, "i", "abc", "enter")

	if m.Submitted() {
		t.Fatal("invalid input was accepted")
	}
	if m.State() != StateInvalid {
		t.Errorf("state = %v, want invalid", m.State())
	}
	if m.Message() != "Invalid integer format" {
		t.Errorf("message = %q", m.Message())
	}

	// Fixing the input and resubmitting succeeds.
	press(m, "esc", "V", "d", "i", "42", "enter")
	if !m.Submitted() {
		t.Errorf("corrected input rejected, message %q", m.Message())
	}
	if got := m.Value(); got != "42" {
		t.Errorf("value = %q", got)
	}
}

func TestEditingClearsVerdict(t *testing.T) {
	m := New(WithValidator(validate.Email(validate.Required())))
	press(m, "i", "nope", "enter")
	if m.State() != StateInvalid {
		t.Fatalf("state = %v, want invalid", m.State())
	}

	press(m, "x")
	if m.State() != StateActive {
		t.Errorf("state after edit = %v, want active", m.State())
	}
	if m.Message() != "" {
		t.Errorf("stale message %q", m.Message())
	}
}

func TestLiveValidation(t *testing.T) {
	m := New(
		WithValidator(validate.Must(validate.Length(validate.Min(3), validate.Required()))),
		WithLiveValidation(true),
	)

	press(m, "i", "ab")
	if m.State() != StateInvalid {
		t.Errorf("state at 2 chars = %v, want invalid", m.State())
	}
	press(m, "c")
	if m.State() != StateValid {
		t.Errorf("state at 3 chars = %v, want valid (message %q)", m.State(), m.Message())
	}
}

func TestCancel(t *testing.T) {
	for _, k := range []string{"ctrl+c", "ctrl+d"} {
		m := New()
		press(m, "i", "partial", k)
		if !m.Cancelled() {
			t.Errorf("%s did not cancel", k)
		}
		if m.Submitted() {
			t.Errorf("%s also submitted", k)
		}
	}
}

func TestCtrlJInsertsNewline(t *testing.T) {
	m := New()
	press(m, "i", "one", "ctrl+j", "two", "enter")

	if got := m.Value(); got != "one\ntwo" {
		t.Errorf("value = %q", got)
	}
	if !m.Submitted() {
		t.Error("multiline value not submitted")
	}
}

func TestCtrlJIgnoredInNormalMode(t *testing.T) {
	m := New(WithValue("text"))
	press(m, "ctrl+j")
	if got := m.Value(); got != "text" {
		t.Errorf("value = %q", got)
	}
}

func TestPanelChrome(t *testing.T) {
	m := New(
		WithTitle("Email"),
		WithTheme(theme.Dark),
		WithWidth(40),
		WithValidator(validate.Email(validate.Required())),
	)
	view := ansi.Strip(m.View())

	for _, want := range []string{"Email", "NORMAL", "╭", "╰", "│"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	press(m, "i", "bad", "enter")
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "Invalid email format") {
		t.Errorf("validation message not shown:\n%s", view)
	}
	if !strings.Contains(view, "INSERT") {
		t.Errorf("mode tag not updated:\n%s", view)
	}
}

func TestPanelLineWidths(t *testing.T) {
	m := New(WithTitle("Width"), WithWidth(30))
	press(m, "i", "content")

	for i, line := range strings.Split(m.View(), "\n") {
		if got := ansi.StringWidth(line); got != 30 {
			t.Errorf("line %d width = %d, want 30: %q", i, got, ansi.Strip(line))
		}
	}
}

func TestMaskedField(t *testing.T) {
	m := New(WithMask('*'))
	press(m, "i", "hunter2")

	view := ansi.Strip(m.View())
	if strings.Contains(view, "hunter2") {
		t.Error("masked field leaks value")
	}
	if !strings.Contains(view, "*******") {
		t.Errorf("mask characters not rendered:\n%s", view)
	}
	if got := m.Value(); got != "hunter2" {
		t.Errorf("value = %q", got)
	}
}

func TestThemedBorders(t *testing.T) {
	tests := []struct {
		th     theme.Theme
		corner string
	}{
		{theme.Dark, "╭"},
		{theme.Minimal, "┌"},
		{theme.Neon, "╔"},
		{theme.HighContrast, "┏"},
	}
	for _, tc := range tests {
		m := New(WithTheme(tc.th), WithWidth(20))
		if view := ansi.Strip(m.View()); !strings.Contains(view, tc.corner) {
			t.Errorf("theme %s: corner %q missing:\n%s", tc.th.Name, tc.corner, view)
		}
	}
}

func TestWindowResizeKeepsPanelCompact(t *testing.T) {
	m := New(WithTitle("Name"), WithWidth(40))
	if got := len(strings.Split(m.View(), "\n")); got != 3 {
		t.Fatalf("panel lines before resize = %d, want 3", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("panel lines after resize = %d, want 3", len(lines))
	}
	if got := ansi.StringWidth(lines[0]); got != 40 {
		t.Errorf("panel width after resize = %d, want 40", got)
	}

	// The panel grows a row per line of content, not with the terminal.
	press(m, "i", "one", "ctrl+j", "two")
	if got := len(strings.Split(m.View(), "\n")); got != 4 {
		t.Errorf("panel lines with two content rows = %d, want 4", got)
	}
}

func TestWindowResizeTracksWidthWhenUnset(t *testing.T) {
	m := New(WithTitle("Name"))
	m.Update(tea.WindowSizeMsg{Width: 44, Height: 24})

	line := strings.Split(m.View(), "\n")[0]
	if got := ansi.StringWidth(line); got != 44 {
		t.Errorf("panel width = %d, want terminal width 44", got)
	}
}

func TestEditorHeightCappedByTerminal(t *testing.T) {
	m := New(WithWidth(40), WithValue("one\ntwo\nthree\nfour\nfive"))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})

	// Two border rows plus at most two content rows.
	if got := len(strings.Split(m.View(), "\n")); got != 4 {
		t.Errorf("panel lines = %d, want 4", got)
	}
}
