// Package field provides a validated, themed input field with modal
// editing for terminal applications.
//
// A field wraps an editor inside a bordered panel. The panel title sits
// in the top border; the current editing mode and the latest validation
// message sit in the bottom border. The border color tracks the field
// state: neutral while typing, green once input validates, red when it
// does not.
//
// Enter submits the field after running its validator; invalid input
// keeps the field open with the failure message shown. Ctrl+J inserts a
// newline for multi-line input. Ctrl+C and Ctrl+D cancel.
package field

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/vimline/editor"
	"github.com/willibrandon/vimline/theme"
	"github.com/willibrandon/vimline/validate"
)

// State describes where the field is in its validation lifecycle.
type State int

const (
	// StateActive means the input has not been validated yet.
	StateActive State = iota
	// StateValid means the last validation passed.
	StateValid
	// StateInvalid means the last validation failed.
	StateInvalid
)

// SubmitMsg is emitted when the field accepts its input.
type SubmitMsg struct {
	Value string
}

// CancelMsg is emitted when the user cancels the field.
type CancelMsg struct{}

// keyBindings are the field-level keys handled before the editor sees
// the input.
type keyBindings struct {
	Submit  key.Binding
	Newline key.Binding
	Cancel  key.Binding
}

func defaultKeyBindings() keyBindings {
	return keyBindings{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "newline"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// Model is a Bubble Tea model for a single input field.
type Model struct {
	ed    editor.Editor
	keys  keyBindings
	theme theme.Theme

	title      string
	validator  validate.Validator
	live       bool
	width      int
	fixedWidth bool
	termHeight int

	state     State
	message   string
	lastText  string
	submitted bool
	cancelled bool
}

type config struct {
	title       string
	theme       theme.Theme
	validator   validate.Validator
	value       string
	placeholder string
	mask        rune
	live        bool
	width       int
	widthSet    bool
	lineNumbers bool
	relative    bool
	syntaxFile  string
	syntaxTheme string
}

// Option configures a field.
type Option func(*config)

// WithTitle sets the panel title shown in the top border.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithTheme sets the field's color theme.
func WithTheme(t theme.Theme) Option {
	return func(c *config) { c.theme = t }
}

// WithValidator sets the validator run when the field is submitted.
func WithValidator(v validate.Validator) Option {
	return func(c *config) { c.validator = v }
}

// WithValue sets the initial field content.
func WithValue(value string) Option {
	return func(c *config) { c.value = value }
}

// WithPlaceholder sets hint text shown while the field is empty.
func WithPlaceholder(text string) Option {
	return func(c *config) { c.placeholder = text }
}

// WithMask displays every typed character as the given rune, for
// password input.
func WithMask(r rune) Option {
	return func(c *config) { c.mask = r }
}

// WithLiveValidation validates on every edit instead of only on submit.
func WithLiveValidation(enabled bool) Option {
	return func(c *config) { c.live = enabled }
}

// WithWidth fixes the panel width. Without it the field follows the
// terminal width.
func WithWidth(width int) Option {
	return func(c *config) {
		c.width = width
		c.widthSet = true
	}
}

// WithLineNumbers enables the line number gutter inside the field.
func WithLineNumbers(enabled bool) Option {
	return func(c *config) { c.lineNumbers = enabled }
}

// WithRelativeNumbers shows relative line numbers inside the field.
func WithRelativeNumbers(enabled bool) Option {
	return func(c *config) { c.relative = enabled }
}

// WithSyntax enables syntax highlighting for the field content. The
// filename picks the language, the theme is a Chroma style name.
func WithSyntax(filename, chromaTheme string) Option {
	return func(c *config) {
		c.syntaxFile = filename
		c.syntaxTheme = chromaTheme
	}
}

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 60

// New builds a field model.
func New(opts ...Option) *Model {
	cfg := &config{
		theme: theme.Default(),
		width: defaultWidth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	edOpts := []editor.Option{
		editor.WithContent(cfg.value),
		editor.WithPlaceholder(cfg.placeholder),
		editor.WithLineNumbers(cfg.lineNumbers),
		editor.WithRelativeNumbers(cfg.relative),
		editor.WithStyles(editorStyles(cfg.theme)),
	}
	if cfg.mask != 0 {
		edOpts = append(edOpts, editor.WithMask(cfg.mask))
	}
	if cfg.syntaxFile != "" {
		edOpts = append(edOpts, editor.WithSyntax(cfg.syntaxFile, cfg.syntaxTheme))
	}

	return &Model{
		ed:         editor.New(edOpts...),
		keys:       defaultKeyBindings(),
		theme:      cfg.theme,
		title:      cfg.title,
		validator:  cfg.validator,
		live:       cfg.live,
		width:      cfg.width,
		fixedWidth: cfg.widthSet,
		lastText:   cfg.value,
	}
}

// editorStyles derives editor styles from the field theme so the gutter
// and placeholder match the panel.
func editorStyles(t theme.Theme) editor.Styles {
	s := editor.DefaultStyles()
	s.Placeholder = t.PlaceholderStyle()
	s.LineNumber = t.LineNumberStyle()
	return s
}

func (m *Model) Init() tea.Cmd {
	return m.ed.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Sequence(emit(CancelMsg{}), tea.Quit)

		case key.Matches(msg, m.keys.Submit):
			return m.submit()

		case key.Matches(msg, m.keys.Newline):
			// Ctrl+J is the line break; Enter is reserved for submit.
			if m.ed.Mode() == editor.ModeInsert || m.ed.Mode() == editor.ModeReplace {
				return m.forward(tea.KeyMsg{Type: tea.KeyEnter})
			}
			return m, nil
		}
		return m.forward(msg)

	case tea.WindowSizeMsg:
		// The panel keeps its own footprint: the editor viewport
		// tracks the buffer, not the terminal.
		m.termHeight = msg.Height
		if !m.fixedWidth && msg.Width > 0 {
			m.width = msg.Width
		}
		m.syncEditorSize()
		return m, nil
	}

	return m.forward(msg)
}

// syncEditorSize sizes the editor viewport to the buffer, capped by the
// terminal height minus the two border rows.
func (m *Model) syncEditorSize() {
	rows := m.ed.Buffer().LineCount()
	if m.termHeight > 2 {
		rows = min(rows, m.termHeight-2)
	}
	m.ed.SetSize(max(m.width, minWidth)-4, max(rows, 1))
}

// forward passes a message to the editor and reconciles validation
// state with any content change.
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.ed.Update(msg)

	if text := m.Value(); text != m.lastText {
		m.lastText = text
		if m.live {
			res := m.runValidator(text)
			if res.Valid {
				m.state = StateValid
				m.message = ""
			} else {
				m.state = StateInvalid
				m.message = res.Message
			}
		} else {
			// Editing clears a stale verdict until the next submit.
			m.state = StateActive
			m.message = ""
		}
		m.syncEditorSize()
	}
	return m, cmd
}

// submit validates the current value and finishes the field when it
// passes.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := m.Value()
	res := m.runValidator(value)
	if !res.Valid {
		m.state = StateInvalid
		m.message = res.Message
		return m, nil
	}

	m.state = StateValid
	m.message = ""
	m.submitted = true
	return m, tea.Sequence(emit(SubmitMsg{Value: value}), tea.Quit)
}

func (m *Model) runValidator(text string) validate.Result {
	if m.validator == nil {
		return validate.OK()
	}
	return m.validator.Validate(text)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Value returns the current field content.
func (m *Model) Value() string {
	return m.ed.Buffer().Text()
}

// State returns the field's validation state.
func (m *Model) State() State {
	return m.state
}

// Message returns the current validation message, if any.
func (m *Model) Message() string {
	return m.message
}

// Submitted reports whether the field was accepted.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user cancelled the field.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Editor exposes the underlying editor, for custom key bindings.
func (m *Model) Editor() editor.Editor {
	return m.ed
}
