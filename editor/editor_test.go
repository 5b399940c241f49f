package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// namedKeys maps key names used in tests to their key messages.
var namedKeys = map[string]tea.KeyMsg{
	"esc":       {Type: tea.KeyEsc},
	"enter":     {Type: tea.KeyEnter},
	"backspace": {Type: tea.KeyBackspace},
	"tab":       {Type: tea.KeyTab},
	"ctrl+r":    {Type: tea.KeyCtrlR},
	"up":        {Type: tea.KeyUp},
	"down":      {Type: tea.KeyDown},
	"left":      {Type: tea.KeyLeft},
	"right":     {Type: tea.KeyRight},
}

// press feeds keys to the editor, running any resulting commands so
// messages like UndoRedoMsg make it back into the model. Single-rune
// keys are sent as rune input; longer names must be in namedKeys.
func press(t *testing.T, ed Editor, keys ...string) {
	t.Helper()
	for _, k := range keys {
		msg, ok := namedKeys[k]
		if !ok {
			if len([]rune(k)) != 1 {
				t.Fatalf("unknown key %q", k)
			}
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		deliver(ed, msg)
	}
}

// typeText sends each rune of s as an individual keypress.
func typeText(t *testing.T, ed Editor, s string) {
	t.Helper()
	for _, r := range s {
		deliver(ed, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func deliver(ed Editor, msg tea.Msg) {
	model, cmd := ed.Update(msg)
	if cmd == nil {
		return
	}
	switch out := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range out {
			if c != nil {
				deliver(model.(Editor), c())
			}
		}
	case nil:
	default:
		model.Update(out)
	}
}

func text(ed Editor) string {
	return ed.Buffer().Text()
}

func TestInsertModeTyping(t *testing.T) {
	ed := New()
	press(t, ed, "i")
	if ed.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want insert", ed.Mode())
	}
	typeText(t, ed, "hello")
	press(t, ed, "esc")

	if got := text(ed); got != "hello" {
		t.Errorf("text = %q", got)
	}
	if ed.Mode() != ModeNormal {
		t.Errorf("mode after esc = %v", ed.Mode())
	}
}

func TestModeTags(t *testing.T) {
	ed := New(WithContent("one\ntwo"))

	if got := ed.ModeTag(); got != "NORMAL" {
		t.Errorf("initial tag = %q", got)
	}
	press(t, ed, "v")
	if got := ed.ModeTag(); got != "VISUAL" {
		t.Errorf("after v: %q", got)
	}
	press(t, ed, "esc", "V")
	if got := ed.ModeTag(); got != "V-LINE" {
		t.Errorf("after V: %q", got)
	}
	press(t, ed, "esc", "R")
	if got := ed.ModeTag(); got != "REPLACE" {
		t.Errorf("after R: %q", got)
	}
}

func TestMotions(t *testing.T) {
	ed := New(WithContent("alpha beta gamma\nsecond line\nthird")).(*model)

	press(t, ed, "w")
	if ed.cursor != (Cursor{0, 6}) {
		t.Errorf("after w: %+v", ed.cursor)
	}
	press(t, ed, "w", "b")
	if ed.cursor != (Cursor{0, 6}) {
		t.Errorf("after w b: %+v", ed.cursor)
	}
	press(t, ed, "$")
	if ed.cursor != (Cursor{0, 15}) {
		t.Errorf("after $: %+v", ed.cursor)
	}
	press(t, ed, "0")
	if ed.cursor != (Cursor{0, 0}) {
		t.Errorf("after 0: %+v", ed.cursor)
	}
	press(t, ed, "G")
	if ed.cursor.Row != 2 {
		t.Errorf("after G: %+v", ed.cursor)
	}
	press(t, ed, "g", "g")
	if ed.cursor.Row != 0 {
		t.Errorf("after gg: %+v", ed.cursor)
	}
}

func TestCountPrefix(t *testing.T) {
	ed := New(WithContent("1\n2\n3\n4\n5\n6")).(*model)

	press(t, ed, "3", "j")
	if ed.cursor.Row != 3 {
		t.Errorf("after 3j: row = %d", ed.cursor.Row)
	}
	press(t, ed, "2", "k")
	if ed.cursor.Row != 1 {
		t.Errorf("after 2k: row = %d", ed.cursor.Row)
	}
}

func TestDeleteLine(t *testing.T) {
	ed := New(WithContent("one\ntwo\nthree"))
	press(t, ed, "j", "d", "d")
	if got := text(ed); got != "one\nthree" {
		t.Errorf("after dd: %q", got)
	}
}

func TestDeleteCharAndToEnd(t *testing.T) {
	ed := New(WithContent("hello"))
	press(t, ed, "x")
	if got := text(ed); got != "ello" {
		t.Errorf("after x: %q", got)
	}
	press(t, ed, "l", "D")
	if got := text(ed); got != "e" {
		t.Errorf("after D: %q", got)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	ed := New(WithContent("keep me"))
	press(t, ed, "d", "d")
	if got := text(ed); got != "" {
		t.Fatalf("after dd: %q", got)
	}
	press(t, ed, "u")
	if got := text(ed); got != "keep me" {
		t.Errorf("after u: %q", got)
	}
	press(t, ed, "ctrl+r")
	if got := text(ed); got != "" {
		t.Errorf("after ctrl+r: %q", got)
	}
}

func TestInnerWordOperations(t *testing.T) {
	ed := New(WithContent("foo bar baz"))
	press(t, ed, "w", "d", "i", "w")
	if got := text(ed); got != "foo  baz" {
		t.Errorf("after diw: %q", got)
	}

	ed = New(WithContent("foo bar baz"))
	press(t, ed, "w", "c", "i", "w")
	if ed.Mode() != ModeInsert {
		t.Errorf("ciw should land in insert mode, got %v", ed.Mode())
	}
	typeText(t, ed, "qux")
	press(t, ed, "esc")
	if got := text(ed); got != "foo qux baz" {
		t.Errorf("after ciw qux: %q", got)
	}
}

func TestYankPasteLine(t *testing.T) {
	ed := New(WithContent("alpha\nbeta"))
	press(t, ed, "y", "y", "p")
	if got := text(ed); got != "alpha\nalpha\nbeta" {
		t.Errorf("after yy p: %q", got)
	}
}

func TestVisualDelete(t *testing.T) {
	ed := New(WithContent("hello"))
	press(t, ed, "v", "l", "l", "d")
	if got := text(ed); got != "lo" {
		t.Errorf("after vlld: %q", got)
	}
	if ed.Mode() != ModeNormal {
		t.Errorf("mode after visual delete = %v", ed.Mode())
	}
}

func TestVisualLineDelete(t *testing.T) {
	ed := New(WithContent("one\ntwo\nthree"))
	press(t, ed, "V", "j", "d")
	if got := text(ed); got != "three" {
		t.Errorf("after Vjd: %q", got)
	}
}

func TestReplaceMode(t *testing.T) {
	ed := New(WithContent("hello"))
	press(t, ed, "R")
	typeText(t, ed, "ja")
	press(t, ed, "esc")
	if got := text(ed); got != "jallo" {
		t.Errorf("after replace: %q", got)
	}
}

func TestInsertNewlineAndBackspace(t *testing.T) {
	ed := New()
	press(t, ed, "i")
	typeText(t, ed, "ab")
	press(t, ed, "enter")
	typeText(t, ed, "cd")
	if got := text(ed); got != "ab\ncd" {
		t.Fatalf("after enter: %q", got)
	}
	press(t, ed, "backspace", "backspace", "backspace")
	if got := text(ed); got != "ab" {
		t.Errorf("after backspaces: %q", got)
	}
}

func TestMaskedView(t *testing.T) {
	ed := New(WithMask('•'), WithContent("secret"))
	view := ansi.Strip(ed.View())

	if strings.Contains(view, "secret") {
		t.Error("masked view leaks content")
	}
	if got := strings.Count(view, "•"); got != 6 {
		t.Errorf("mask count = %d, want 6", got)
	}
}

func TestPlaceholderView(t *testing.T) {
	ed := New(WithPlaceholder("Type here..."))
	if got := ansi.Strip(ed.View()); got != "Type here..." {
		t.Errorf("placeholder view = %q", got)
	}

	press(t, ed, "i")
	typeText(t, ed, "x")
	if got := ansi.Strip(ed.View()); strings.Contains(got, "Type here") {
		t.Errorf("placeholder still shown with content: %q", got)
	}
}

func TestViewExpandsTabs(t *testing.T) {
	ed := New(WithContent("\tx\nplain")).(*model)
	ed.cursor.Row = 1

	view := ansi.Strip(ed.View())
	lines := strings.Split(view, "\n")
	if lines[0] != "    x" {
		t.Errorf("tab line = %q", lines[0])
	}
}

func TestCustomBinding(t *testing.T) {
	ed := New(WithContent("wipe"))
	ed.AddBinding(KeyBinding{
		Key:  "Z",
		Mode: ModeNormal,
		Help: "Clear buffer",
		Handler: func(buf Buffer) tea.Cmd {
			return buf.Clear()
		},
	})
	press(t, ed, "Z")
	if got := text(ed); got != "" {
		t.Errorf("after custom binding: %q", got)
	}
}

func TestReset(t *testing.T) {
	ed := New(WithContent("start"))
	press(t, ed, "d", "d")
	deliver(ed, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	ed.Reset()
	if got := text(ed); got != "start" {
		t.Errorf("after reset: %q", got)
	}
	if ed.Mode() != ModeNormal {
		t.Errorf("mode after reset = %v", ed.Mode())
	}
}

func TestScrollingFollowsCursor(t *testing.T) {
	ed := New(WithContent("one\ntwo\nthree\nfour\nfive"))
	ed.SetSize(40, 3)
	m := ed.(*model)

	press(t, ed, "G")
	if m.offset != 2 {
		t.Fatalf("offset after G = %d, want 2", m.offset)
	}
	rows := strings.Split(ansi.Strip(ed.View()), "\n")
	if want := []string{"three", "four", "five"}; !equalRows(rows, want) {
		t.Errorf("view after G = %q, want %q", rows, want)
	}

	press(t, ed, "g", "g")
	if m.offset != 0 {
		t.Fatalf("offset after gg = %d, want 0", m.offset)
	}
	rows = strings.Split(ansi.Strip(ed.View()), "\n")
	if want := []string{"one", "two", "three"}; !equalRows(rows, want) {
		t.Errorf("view after gg = %q, want %q", rows, want)
	}
}

func TestViewPadsToHeight(t *testing.T) {
	ed := New(WithContent("solo"))
	ed.SetSize(40, 3)

	rows := strings.Split(ansi.Strip(ed.View()), "\n")
	if len(rows) != 3 {
		t.Fatalf("view rows = %d, want 3", len(rows))
	}
	if rows[1] != "" || rows[2] != "" {
		t.Errorf("padding rows = %q, %q, want empty", rows[1], rows[2])
	}
}

func equalRows(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestVisualPasteLinewiseRegister(t *testing.T) {
	ed := New(WithContent("alpha\nbeta\ngamma"))
	press(t, ed, "y", "y", "j", "V", "p")
	if got := text(ed); got != "alpha\nalpha\ngamma" {
		t.Fatalf("after yy j V p: %q", got)
	}

	// The replaced line went into the register linewise.
	press(t, ed, "p")
	if got := text(ed); got != "alpha\nalpha\nbeta\ngamma" {
		t.Errorf("after pasting the old selection: %q", got)
	}
}

func TestVisualPasteLinewiseSplitsLine(t *testing.T) {
	ed := New(WithContent("world\nhello"))
	press(t, ed, "y", "y", "j", "l", "v", "l", "p")
	if got := text(ed); got != "world\nh\nworld\nlo" {
		t.Errorf("after pasting a line over a mid-line selection: %q", got)
	}
}

func TestBindingsForMode(t *testing.T) {
	ed := New()

	bindings := ed.Bindings(ModeNormal)
	if len(bindings) == 0 {
		t.Fatal("no normal mode bindings")
	}
	byKey := make(map[string]KeyBinding, len(bindings))
	for _, b := range bindings {
		if b.Mode != ModeNormal {
			t.Errorf("binding %q has mode %v", b.Key, b.Mode)
		}
		byKey[b.Key] = b
	}
	for _, want := range []string{"dd", "ciw", "p"} {
		b, ok := byKey[want]
		if !ok {
			t.Errorf("missing binding %q", want)
			continue
		}
		if b.Help == "" {
			t.Errorf("binding %q has no help text", want)
		}
	}

	ed.AddBinding(KeyBinding{Key: "Z", Mode: ModeNormal, Help: "Clear buffer"})
	bindings = ed.Bindings(ModeNormal)
	last := bindings[len(bindings)-1]
	if last.Key != "Z" || last.Help != "Clear buffer" {
		t.Errorf("last binding = %+v, want the added Z binding", last)
	}
}
