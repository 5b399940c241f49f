// Package theme defines the color themes used by vimline input fields.
//
// A theme supplies the panel border shape plus the colors for each field
// state: the border while typing, once input validates, and when it does
// not. Built-in themes cover common terminal setups; custom themes load
// from YAML files.
package theme

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Border names accepted in theme files.
const (
	BorderNormal  = "normal"
	BorderRounded = "rounded"
	BorderDouble  = "double"
	BorderThick   = "thick"
)

// borderShapes maps border names to their lipgloss character sets.
var borderShapes = map[string]lipgloss.Border{
	BorderNormal:  lipgloss.NormalBorder(),
	BorderRounded: lipgloss.RoundedBorder(),
	BorderDouble:  lipgloss.DoubleBorder(),
	BorderThick:   lipgloss.ThickBorder(),
}

// Theme is a complete color scheme for an input field.
type Theme struct {
	Name   string `yaml:"name"`
	Border string `yaml:"border"`

	// Panel border colors per field state.
	Active  lipgloss.Color `yaml:"active"`
	Valid   lipgloss.Color `yaml:"valid"`
	Invalid lipgloss.Color `yaml:"invalid"`

	// Chrome colors.
	Placeholder lipgloss.Color `yaml:"placeholder"`
	LineNumber  lipgloss.Color `yaml:"line_number"`
}

// BorderChars returns the border character set for the theme. Unknown
// border names fall back to a rounded border.
func (t Theme) BorderChars() lipgloss.Border {
	if b, ok := borderShapes[t.Border]; ok {
		return b
	}
	return lipgloss.RoundedBorder()
}

// StateColor returns the border color for a field state expressed as
// (validated, valid). An unvalidated field shows the active color.
func (t Theme) StateColor(validated, valid bool) lipgloss.Color {
	switch {
	case !validated:
		return t.Active
	case valid:
		return t.Valid
	default:
		return t.Invalid
	}
}

// PlaceholderStyle returns the style for placeholder text.
func (t Theme) PlaceholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Placeholder)
}

// LineNumberStyle returns the style for the line number gutter.
func (t Theme) LineNumberStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.LineNumber).PaddingRight(1)
}

// MessageStyle returns the style for the validation message shown in the
// panel border.
func (t Theme) MessageStyle(valid bool) lipgloss.Style {
	if valid {
		return lipgloss.NewStyle().Foreground(t.Valid)
	}
	return lipgloss.NewStyle().Foreground(t.Invalid)
}

// validate checks a loaded theme for the fields a usable theme needs.
func (t Theme) validate() error {
	if t.Name == "" {
		return fmt.Errorf("theme has no name")
	}
	if t.Border != "" {
		if _, ok := borderShapes[t.Border]; !ok {
			return fmt.Errorf("theme %q: unknown border %q", t.Name, t.Border)
		}
	}
	if t.Active == "" || t.Valid == "" || t.Invalid == "" {
		return fmt.Errorf("theme %q: active, valid, and invalid colors are required", t.Name)
	}
	return nil
}

// ByName returns a built-in theme. The lookup is case-sensitive and
// matches the names reported by Names.
func ByName(name string) (Theme, error) {
	t, ok := builtins[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	return t, nil
}

// Names returns the built-in theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a theme from YAML. Colors the file omits are filled in
// from the default theme so partial overrides stay usable.
func Load(r io.Reader) (Theme, error) {
	t := Default()
	t.Name = ""
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Theme{}, fmt.Errorf("parsing theme: %w", err)
	}
	if err := t.validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads a theme from a YAML file.
func LoadFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("opening theme file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
