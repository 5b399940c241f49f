package editor

import "golang.design/x/clipboard"

// register holds yanked text. When the system clipboard is available it is
// kept in sync; on headless systems the register degrades to in-process
// storage so yank and paste keep working.
type register struct {
	text     string
	linewise bool
	system   bool
}

func newRegister() *register {
	return &register{system: clipboard.Init() == nil}
}

// set stores yanked or deleted text. Linewise text is pasted on its own
// line rather than spliced into the current one.
func (r *register) set(text string, linewise bool) {
	r.text = text
	r.linewise = linewise
	if r.system {
		clipboard.Write(clipboard.FmtText, []byte(text))
	}
}

// get returns the register content, preferring the system clipboard when
// it holds something newer. Text entering via the clipboard is never
// linewise.
func (r *register) get() (string, bool) {
	if r.system {
		if data := clipboard.Read(clipboard.FmtText); len(data) > 0 && string(data) != r.text {
			r.text = string(data)
			r.linewise = false
		}
	}
	return r.text, r.linewise
}
