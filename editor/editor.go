/*
Package editor provides a modal text editing component for terminal
applications built with Bubble Tea (github.com/charmbracelet/bubbletea).

The component implements the core of vi's editing model: normal, insert,
visual, visual-line, and replace modes; counts ("3j"); operators on lines
and inner words (dd, yy, diw, ciw); undo and redo; and an extensible key
binding table. It is designed to back input fields as well as multi-line
editors, so it also supports render-time masking for secrets, placeholder
text, and optional line numbers.

Create an editor and drive it like any other Bubble Tea model:

	ed := editor.New(
		editor.WithContent("hello"),
		editor.WithPlaceholder("Type here..."),
	)

Custom bindings operate on the Buffer interface:

	ed.AddBinding(editor.KeyBinding{
		Key:  "ctrl+l",
		Mode: editor.ModeNormal,
		Help: "Clear buffer",
		Handler: func(buf editor.Buffer) tea.Cmd {
			return buf.Clear()
		},
	})
*/
package editor

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Mode is the editing mode the component is currently in.
type Mode int

const (
	// ModeNormal is for navigation and operators.
	ModeNormal Mode = iota
	// ModeInsert inserts typed characters at the cursor.
	ModeInsert
	// ModeVisual selects a character-wise range.
	ModeVisual
	// ModeReplace overwrites characters at the cursor.
	ModeReplace
)

// String returns the mode tag used in status displays. Line-wise visual
// mode is a presentation of ModeVisual, see Editor.ModeTag.
func (m Mode) String() string {
	return [...]string{"NORMAL", "INSERT", "VISUAL", "REPLACE"}[m]
}

// ModeMsg is emitted whenever the editor changes mode.
type ModeMsg struct {
	Mode Mode
}

// blinkMsg drives the cursor blink timer.
type blinkMsg time.Time

// seqTimeout is how long a partial key sequence waits for its next key.
const seqTimeout = 750 * time.Millisecond

// Editor is a modal text editor usable as a Bubble Tea model.
type Editor interface {
	tea.Model

	// AddBinding registers an additional key binding.
	AddBinding(kb KeyBinding)

	// Bindings returns the bindings registered for a mode, in
	// registration order, for building help displays. The returned
	// bindings carry no Handler.
	Bindings(mode Mode) []KeyBinding

	// Buffer returns the editor's text buffer.
	Buffer() Buffer

	// Mode returns the current editing mode.
	Mode() Mode

	// ModeTag returns the display tag for the current mode, which
	// distinguishes line-wise visual mode as "V-LINE".
	ModeTag() string

	// SetMode switches the editing mode.
	SetMode(mode Mode) tea.Cmd

	// SetSize updates the component dimensions.
	SetSize(width, height int) tea.Cmd

	// Tick returns the command that keeps the cursor blinking.
	Tick() tea.Cmd

	// Reset restores the editor to its initial content and state.
	Reset() tea.Cmd
}

type model struct {
	buffer  *textBuffer
	cursor  Cursor
	reg     *register
	keymap  *keymap
	initial string

	mode       Mode
	visualLine bool
	visualFrom Cursor
	desiredCol int

	seq     []string
	seqTime time.Time
	count   int

	width  int
	height int
	offset int

	blinkOn       bool
	lastBlink     time.Time
	blinkInterval time.Duration

	mask        rune
	placeholder string
	lineNumbers bool
	relative    bool

	highlighter *highlighter
	flash       flashRegion

	styles Styles
}

// Styles collects every lipgloss style the editor renders with.
type Styles struct {
	Text              lipgloss.Style
	LineNumber        lipgloss.Style
	CurrentLineNumber lipgloss.Style
	Cursor            lipgloss.Style
	Selection         lipgloss.Style
	Placeholder       lipgloss.Style
}

// DefaultStyles returns the editor's default appearance.
func DefaultStyles() Styles {
	return Styles{
		Text: lipgloss.NewStyle(),
		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "242"}).
			PaddingRight(1),
		CurrentLineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}).
			Bold(true).
			PaddingRight(1),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "248"}).
			Foreground(lipgloss.Color("0")),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "7", Dark: "8"}),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"}),
	}
}

type config struct {
	content       string
	placeholder   string
	mask          rune
	lineNumbers   bool
	relative      bool
	syntaxFile    string
	syntaxTheme   string
	blinkInterval time.Duration
	styles        Styles
}

// Option configures a new editor.
type Option func(*config)

// WithContent sets the initial buffer content.
func WithContent(content string) Option {
	return func(c *config) { c.content = content }
}

// WithPlaceholder sets hint text shown while the buffer is empty.
func WithPlaceholder(text string) Option {
	return func(c *config) { c.placeholder = text }
}

// WithMask renders every buffer character as the given rune. Masking
// also disables syntax highlighting so no content leaks through token
// colors.
func WithMask(r rune) Option {
	return func(c *config) { c.mask = r }
}

// WithLineNumbers enables the line number gutter.
func WithLineNumbers(enabled bool) Option {
	return func(c *config) { c.lineNumbers = enabled }
}

// WithRelativeNumbers shows line numbers as distances from the cursor.
// Implies WithLineNumbers(true).
func WithRelativeNumbers(enabled bool) Option {
	return func(c *config) {
		c.relative = enabled
		if enabled {
			c.lineNumbers = true
		}
	}
}

// WithSyntax enables syntax highlighting. The filename determines the
// language; theme is a Chroma style name such as "catppuccin-macchiato".
func WithSyntax(filename, theme string) Option {
	return func(c *config) {
		c.syntaxFile = filename
		c.syntaxTheme = theme
	}
}

// WithBlinkInterval sets the cursor blink period.
func WithBlinkInterval(d time.Duration) Option {
	return func(c *config) { c.blinkInterval = d }
}

// WithStyles replaces the editor's default styles.
func WithStyles(s Styles) Option {
	return func(c *config) { c.styles = s }
}

// New creates an editor with the given options applied.
func New(opts ...Option) Editor {
	cfg := &config{
		blinkInterval: time.Second,
		syntaxTheme:   "catppuccin-macchiato",
		styles:        DefaultStyles(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &model{
		buffer:        newTextBuffer(cfg.content),
		reg:           newRegister(),
		keymap:        newKeymap(),
		initial:       cfg.content,
		count:         1,
		blinkOn:       true,
		lastBlink:     time.Now(),
		blinkInterval: cfg.blinkInterval,
		mask:          cfg.mask,
		placeholder:   cfg.placeholder,
		lineNumbers:   cfg.lineNumbers,
		relative:      cfg.relative,
		styles:        cfg.styles,
	}
	if cfg.syntaxFile != "" && cfg.mask == 0 {
		m.highlighter = newHighlighter(cfg.syntaxFile, cfg.syntaxTheme)
	}

	bindDefaults(m)
	return m
}

func blinkCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return blinkMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return blinkCmd(m.blinkInterval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.blinkOn = true
		m.lastBlink = time.Now()
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)

	case blinkMsg:
		now := time.Time(msg)
		if now.Sub(m.lastBlink) >= m.blinkInterval {
			m.blinkOn = !m.blinkOn
			m.lastBlink = now
		}
		if m.flash.active && now.Sub(m.flash.since) >= m.flash.duration {
			m.flash.active = false
		}
		return m, blinkCmd(m.blinkInterval)

	case UndoRedoMsg:
		if msg.Applied {
			m.cursor = msg.Cursor
			m.scrollIntoView()
		}
	}
	return m, nil
}

// handleKey dispatches a keypress according to the current mode.
// Normal and visual modes run the sequence machinery; insert and
// replace modes check bindings first and otherwise take the key as text.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch m.mode {
	case ModeNormal, ModeVisual:
		return m.handleSequenceKey(key)

	case ModeInsert:
		if b := m.keymap.lookup(key, ModeInsert); b != nil {
			cmd := b.action(m)
			m.scrollIntoView()
			return cmd
		}
		if text := typedText(msg); text != "" {
			return insertTyped(m, text)
		}

	case ModeReplace:
		if b := m.keymap.lookup(key, ModeReplace); b != nil {
			return b.action(m)
		}
		if text := typedText(msg); text != "" {
			return overtype(m, text)
		}
	}
	return nil
}

// typedText extracts printable input from a key message, including
// bracketed paste content.
func typedText(msg tea.KeyMsg) string {
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		return string(msg.Runes)
	}
	return ""
}

// handleSequenceKey implements vi-style multi-key commands with counts.
// Digits accumulate into a count prefix; other keys extend the pending
// sequence until it matches a binding, could still become one, or is
// abandoned.
func (m *model) handleSequenceKey(key string) tea.Cmd {
	now := time.Now()

	// A stale partial sequence either fires as-is or is dropped.
	if len(m.seq) > 0 && now.Sub(m.seqTime) > seqTimeout {
		pending := strings.Join(m.seq, "")
		m.seq = nil
		if b := m.keymap.lookup(pending, m.mode); b != nil {
			cmd := b.action(m)
			m.count = 1
			return cmd
		}
		m.count = 1
	}
	m.seqTime = now

	// Count prefix. A leading zero is the motion "0", not a count.
	if isDigit(key) && (key != "0" || seqIsCount(m.seq)) {
		if len(m.seq) == 0 || seqIsCount(m.seq) {
			m.seq = append(m.seq, key)
			m.count, _ = strconv.Atoi(strings.Join(m.seq, ""))
			return cmdNone
		}
	}

	m.seq = append(m.seq, key)
	seq := strings.Join(m.seq, "")

	if b := m.keymap.lookup(seq, m.mode); b != nil {
		m.seq = nil
		defer func() { m.count = 1 }()
		return b.action(m)
	}
	if m.keymap.isPrefix(seq[countLen(seq):], m.mode) {
		return nil
	}

	// Dead end: retry with just the last key before giving up.
	m.seq = nil
	m.count = 1
	if b := m.keymap.lookup(key, m.mode); b != nil {
		return b.action(m)
	}
	return nil
}

// cmdNone marks a consumed keypress that produced no command. It lets
// tests distinguish "digit absorbed into count" from "key ignored".
var cmdNone tea.Cmd = func() tea.Msg { return nil }

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// seqIsCount reports whether the pending sequence is a pure count prefix.
func seqIsCount(seq []string) bool {
	if len(seq) == 0 {
		return false
	}
	for _, k := range seq {
		if !isDigit(k) {
			return false
		}
	}
	return true
}

// selection returns the current visual selection with start before end.
// In line-wise mode the range covers whole lines.
func (m *model) selection() (Cursor, Cursor) {
	start, end := orderRange(m.visualFrom, m.cursor)
	if m.visualLine {
		start.Col = 0
		end.Col = max(0, m.buffer.lineLength(end.Row)-1)
	}
	return start, end
}

func (m *model) Buffer() Buffer {
	return &boundBuffer{m}
}

func (m *model) Mode() Mode {
	return m.mode
}

func (m *model) ModeTag() string {
	if m.mode == ModeVisual && m.visualLine {
		return "V-LINE"
	}
	return m.mode.String()
}

func (m *model) SetMode(mode Mode) tea.Cmd {
	if mode == ModeVisual {
		return startVisual(m)
	}
	return switchMode(m, mode)
}

func (m *model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	m.scrollIntoView()
	return nil
}

func (m *model) Tick() tea.Cmd {
	return blinkCmd(m.blinkInterval)
}

func (m *model) Bindings(mode Mode) []KeyBinding {
	var out []KeyBinding
	for _, b := range m.keymap.forMode(mode) {
		out = append(out, KeyBinding{Key: b.key, Mode: b.mode, Help: b.help})
	}
	return out
}

func (m *model) AddBinding(kb KeyBinding) {
	m.keymap.bind(kb.Key, func(em *model) tea.Cmd {
		return kb.Handler(em.Buffer())
	}, kb.Mode, kb.Help)
}

func (m *model) Reset() tea.Cmd {
	m.buffer = newTextBuffer(m.initial)
	m.cursor = Cursor{}
	m.mode = ModeNormal
	m.visualLine = false
	m.visualFrom = Cursor{}
	m.desiredCol = 0
	m.seq = nil
	m.count = 1
	m.offset = 0
	m.flash.active = false
	m.scrollIntoView()
	return func() tea.Msg {
		return ModeMsg{Mode: ModeNormal}
	}
}
