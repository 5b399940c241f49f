package editor

import tea "github.com/charmbracelet/bubbletea"

// action mutates the editor model and may return a follow-up command.
type action func(m *model) tea.Cmd

// KeyBinding registers a handler for a key sequence in a given mode.
// Key may be a multi-key sequence such as "dd" or "ciw".
type KeyBinding struct {
	Key     string
	Mode    Mode
	Help    string
	Handler func(Buffer) tea.Cmd
}

type binding struct {
	key    string
	mode   Mode
	help   string
	action action
}

// keymap resolves key sequences to bindings per mode. It tracks every
// proper prefix of registered sequences so the key handler knows when to
// wait for more input.
type keymap struct {
	exact    map[Mode]map[string]binding
	prefixes map[Mode]map[string]bool
	order    []binding
}

func newKeymap() *keymap {
	return &keymap{
		exact:    make(map[Mode]map[string]binding),
		prefixes: make(map[Mode]map[string]bool),
	}
}

func (k *keymap) bind(key string, fn action, mode Mode, help string) {
	b := binding{key: key, mode: mode, help: help, action: fn}

	if k.exact[mode] == nil {
		k.exact[mode] = make(map[string]binding)
	}
	k.exact[mode][key] = b

	if k.prefixes[mode] == nil {
		k.prefixes[mode] = make(map[string]bool)
	}
	for i := 1; i < len(key); i++ {
		k.prefixes[mode][key[:i]] = true
	}

	k.order = append(k.order, b)
}

// lookup finds a binding for the sequence, trying first with any leading
// count digits stripped and then the sequence as typed. The second try is
// what lets "0" act as a motion rather than a count.
func (k *keymap) lookup(seq string, mode Mode) *binding {
	if cmd := seq[countLen(seq):]; cmd != "" {
		if b, ok := k.exact[mode][cmd]; ok {
			return &b
		}
	}
	if b, ok := k.exact[mode][seq]; ok {
		return &b
	}
	return nil
}

// isPrefix reports whether seq could still grow into a longer binding.
func (k *keymap) isPrefix(seq string, mode Mode) bool {
	return k.prefixes[mode][seq]
}

// forMode returns all bindings registered for a mode, in registration order.
func (k *keymap) forMode(mode Mode) []binding {
	var out []binding
	for _, b := range k.order {
		if b.mode == mode {
			out = append(out, b)
		}
	}
	return out
}

// countLen returns the length of the leading digit run in seq.
func countLen(seq string) int {
	for i := 0; i < len(seq); i++ {
		if seq[i] < '0' || seq[i] > '9' {
			return i
		}
	}
	return len(seq)
}
