package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// bindDefaults installs the standard vi key table.
func bindDefaults(m *model) {
	km := m.keymap

	km.bind("i", enterInsert, ModeNormal, "Insert before cursor")
	km.bind("a", appendAfter, ModeNormal, "Insert after cursor")
	km.bind("A", appendEndOfLine, ModeNormal, "Insert at end of line")
	km.bind("I", insertStartOfLine, ModeNormal, "Insert at start of line")
	km.bind("o", openBelow, ModeNormal, "Open line below")
	km.bind("O", openAbove, ModeNormal, "Open line above")
	km.bind("R", enterReplace, ModeNormal, "Replace mode")
	km.bind("v", startVisual, ModeNormal, "Visual mode")
	km.bind("V", startVisualLine, ModeNormal, "Visual line mode")

	km.bind("x", deleteChar, ModeNormal, "Delete character")
	km.bind("D", deleteToEnd, ModeNormal, "Delete to end of line")
	km.bind("dd", deleteCurrentLine, ModeNormal, "Delete line")
	km.bind("yy", yankLine, ModeNormal, "Yank line")
	km.bind("p", pasteAfter, ModeNormal, "Paste after")
	km.bind("P", pasteBefore, ModeNormal, "Paste before")
	km.bind("diw", innerWordOp(opDelete), ModeNormal, "Delete inner word")
	km.bind("ciw", innerWordOp(opChange), ModeNormal, "Change inner word")
	km.bind("yiw", innerWordOp(opYank), ModeNormal, "Yank inner word")
	km.bind("u", doUndo, ModeNormal, "Undo")
	km.bind("ctrl+r", doRedo, ModeNormal, "Redo")

	for _, mode := range []Mode{ModeNormal, ModeVisual} {
		km.bind("h", cursorLeft, mode, "Left")
		km.bind("j", cursorDown, mode, "Down")
		km.bind("k", cursorUp, mode, "Up")
		km.bind("l", cursorRight, mode, "Right")
		km.bind("left", cursorLeft, mode, "Left")
		km.bind("down", cursorDown, mode, "Down")
		km.bind("up", cursorUp, mode, "Up")
		km.bind("right", cursorRight, mode, "Right")
		km.bind("w", wordForward, mode, "Next word")
		km.bind("b", wordBackward, mode, "Previous word")
		km.bind("0", lineStart, mode, "Start of line")
		km.bind("^", firstNonBlank, mode, "First non-blank")
		km.bind("$", lineEnd, mode, "End of line")
		km.bind("gg", documentStart, mode, "Start of buffer")
		km.bind("G", documentEnd, mode, "End of buffer")
	}

	km.bind("esc", backToNormal, ModeVisual, "Back to normal mode")
	km.bind("v", backToNormal, ModeVisual, "Back to normal mode")
	km.bind("V", backToNormal, ModeVisual, "Back to normal mode")
	km.bind("y", yankSelection, ModeVisual, "Yank selection")
	km.bind("d", deleteSelection, ModeVisual, "Delete selection")
	km.bind("x", deleteSelection, ModeVisual, "Delete selection")
	km.bind("p", pasteOverSelection, ModeVisual, "Paste over selection")

	km.bind("esc", backToNormal, ModeInsert, "Back to normal mode")
	km.bind("backspace", insertBackspace, ModeInsert, "Delete before cursor")
	km.bind("tab", insertTab, ModeInsert, "Insert tab")
	km.bind("enter", insertNewline, ModeInsert, "Break line")
	for _, mode := range []Mode{ModeInsert, ModeReplace} {
		km.bind("left", cursorLeft, mode, "Left")
		km.bind("down", cursorDown, mode, "Down")
		km.bind("up", cursorUp, mode, "Up")
		km.bind("right", cursorRight, mode, "Right")
	}

	km.bind("esc", backToNormal, ModeReplace, "Back to normal mode")
	km.bind("backspace", replaceBackspace, ModeReplace, "Step back")
	km.bind("enter", replaceNextLine, ModeReplace, "Next line")
}

// repeat runs fn count-prefix times, then resets the count.
func repeat(m *model, fn func()) {
	for n := 0; n < m.count; n++ {
		fn()
	}
	m.count = 1
}

func switchMode(m *model, mode Mode) tea.Cmd {
	m.mode = mode
	if mode == ModeNormal {
		m.visualLine = false
		m.clampCursor()
	}
	return func() tea.Msg {
		return ModeMsg{Mode: mode}
	}
}

func backToNormal(m *model) tea.Cmd { return switchMode(m, ModeNormal) }
func enterInsert(m *model) tea.Cmd  { return switchMode(m, ModeInsert) }
func enterReplace(m *model) tea.Cmd { return switchMode(m, ModeReplace) }

func startVisual(m *model) tea.Cmd {
	m.visualFrom = m.cursor
	m.visualLine = false
	return switchMode(m, ModeVisual)
}

func startVisualLine(m *model) tea.Cmd {
	m.visualFrom = Cursor{Row: m.cursor.Row}
	cmd := switchMode(m, ModeVisual)
	m.visualLine = true
	return cmd
}

func appendAfter(m *model) tea.Cmd {
	if m.cursor.Col < m.buffer.lineLength(m.cursor.Row) {
		m.cursor.Col++
	}
	return switchMode(m, ModeInsert)
}

func appendEndOfLine(m *model) tea.Cmd {
	m.cursor.Col = m.buffer.lineLength(m.cursor.Row)
	return switchMode(m, ModeInsert)
}

func insertStartOfLine(m *model) tea.Cmd {
	m.cursor.Col = 0
	return switchMode(m, ModeInsert)
}

func openBelow(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	m.buffer.insertLine(m.cursor.Row+1, "")
	m.cursor.Row++
	m.cursor.Col = 0
	m.scrollIntoView()
	return switchMode(m, ModeInsert)
}

func openAbove(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	m.buffer.insertLine(m.cursor.Row, "")
	m.cursor.Col = 0
	m.scrollIntoView()
	return switchMode(m, ModeInsert)
}

// insertTyped inserts typed or pasted text at the cursor. Pasted text may
// contain newlines; line endings are normalized first.
func insertTyped(m *model, text string) tea.Cmd {
	m.buffer.pushUndo(m.cursor)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if m.cursor.Col > m.buffer.lineLength(m.cursor.Row) {
		m.cursor.Col = m.buffer.lineLength(m.cursor.Row)
	}

	if !strings.Contains(text, "\n") {
		line := m.buffer.line(m.cursor.Row)
		m.buffer.setLine(m.cursor.Row, line[:m.cursor.Col]+text+line[m.cursor.Col:])
		m.cursor.Col += len(text)
		m.scrollIntoView()
		return nil
	}

	m.buffer.insertAt(m.cursor.Row, m.cursor.Col, text)
	parts := strings.Split(text, "\n")
	m.cursor.Row += len(parts) - 1
	m.cursor.Col = len(parts[len(parts)-1])
	m.scrollIntoView()
	return nil
}

// overtype implements replace-mode input: each character overwrites the
// one under the cursor, extending the line at its end.
func overtype(m *model, text string) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	line := m.buffer.line(m.cursor.Row)
	for _, r := range text {
		if m.cursor.Col >= len(line) {
			line += string(r)
		} else {
			line = line[:m.cursor.Col] + string(r) + line[m.cursor.Col+1:]
		}
		m.cursor.Col++
	}
	m.buffer.setLine(m.cursor.Row, line)
	return nil
}

func insertBackspace(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	if m.cursor.Col > 0 {
		m.buffer.deleteRange(
			Cursor{m.cursor.Row, m.cursor.Col - 1},
			Cursor{m.cursor.Row, m.cursor.Col - 1},
		)
		m.cursor.Col--
	} else if m.cursor.Row > 0 {
		prevLen := m.buffer.lineLength(m.cursor.Row - 1)
		m.buffer.setLine(m.cursor.Row-1, m.buffer.line(m.cursor.Row-1)+m.buffer.line(m.cursor.Row))
		m.buffer.deleteLine(m.cursor.Row)
		m.cursor.Row--
		m.cursor.Col = prevLen
	}
	return nil
}

func insertTab(m *model) tea.Cmd {
	return insertTyped(m, "\t")
}

func insertNewline(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	line := m.buffer.line(m.cursor.Row)
	rest := ""
	if m.cursor.Col < len(line) {
		rest = line[m.cursor.Col:]
		m.buffer.setLine(m.cursor.Row, line[:m.cursor.Col])
	}
	m.buffer.insertLine(m.cursor.Row+1, rest)
	m.cursor.Row++
	m.cursor.Col = 0
	m.scrollIntoView()
	return nil
}

// replaceBackspace steps the cursor back without restoring text, as vi's
// replace mode does.
func replaceBackspace(m *model) tea.Cmd {
	if m.cursor.Col > 0 {
		m.cursor.Col--
	} else if m.cursor.Row > 0 {
		m.cursor.Row--
		m.cursor.Col = max(0, m.buffer.lineLength(m.cursor.Row)-1)
	}
	return nil
}

func replaceNextLine(m *model) tea.Cmd {
	if m.cursor.Row < m.buffer.lineCount()-1 {
		m.cursor.Row++
		m.cursor.Col = 0
		m.scrollIntoView()
	}
	return nil
}

func cursorLeft(m *model) tea.Cmd {
	repeat(m, func() {
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	})
	m.desiredCol = m.cursor.Col
	return nil
}

func cursorRight(m *model) tea.Cmd {
	repeat(m, func() {
		lineLen := m.buffer.lineLength(m.cursor.Row)
		maxCol := lineLen - 1
		if m.mode == ModeInsert || m.mode == ModeReplace {
			maxCol = lineLen
		}
		if lineLen > 0 && m.cursor.Col < maxCol {
			m.cursor.Col++
		}
	})
	m.desiredCol = m.cursor.Col
	return nil
}

func cursorDown(m *model) tea.Cmd {
	repeat(m, func() {
		if m.cursor.Row < m.buffer.lineCount()-1 {
			m.cursor.Row++
			m.cursor.Col = min(m.desiredCol, max(0, m.buffer.lineLength(m.cursor.Row)-1))
		}
	})
	m.scrollIntoView()
	return nil
}

func cursorUp(m *model) tea.Cmd {
	repeat(m, func() {
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.cursor.Col = min(m.desiredCol, max(0, m.buffer.lineLength(m.cursor.Row)-1))
		}
	})
	m.scrollIntoView()
	return nil
}

func lineStart(m *model) tea.Cmd {
	m.cursor.Col = 0
	m.desiredCol = 0
	return nil
}

func firstNonBlank(m *model) tea.Cmd {
	line := m.buffer.line(m.cursor.Row)
	for i, r := range line {
		if r != ' ' && r != '\t' {
			m.cursor.Col = i
			m.desiredCol = i
			break
		}
	}
	return nil
}

func lineEnd(m *model) tea.Cmd {
	m.cursor.Col = max(0, m.buffer.lineLength(m.cursor.Row)-1)
	m.desiredCol = m.cursor.Col
	return nil
}

func documentStart(m *model) tea.Cmd {
	m.cursor.Row = 0
	m.clampCursor()
	m.scrollIntoView()
	return nil
}

func documentEnd(m *model) tea.Cmd {
	m.cursor.Row = m.buffer.lineCount() - 1
	m.clampCursor()
	m.scrollIntoView()
	return nil
}

// wordForward moves to the start of the next word, crossing line
// boundaries at end of line.
func wordForward(m *model) tea.Cmd {
	repeat(m, func() {
		line := m.buffer.line(m.cursor.Row)
		from := m.cursor.Col + 1

		if from >= len(line) {
			if m.cursor.Row < m.buffer.lineCount()-1 {
				m.cursor.Row++
				m.cursor.Col = 0
			}
			return
		}
		for i := from; i < len(line); i++ {
			if (i == 0 || isWordBoundary(line[i-1])) && !isWordBoundary(line[i]) {
				m.cursor.Col = i
				return
			}
		}
		m.cursor.Col = max(0, len(line)-1)
	})
	m.desiredCol = m.cursor.Col
	m.scrollIntoView()
	return nil
}

// wordBackward moves to the start of the previous word.
func wordBackward(m *model) tea.Cmd {
	repeat(m, func() {
		line := m.buffer.line(m.cursor.Row)
		if m.cursor.Col <= 0 {
			if m.cursor.Row > 0 {
				m.cursor.Row--
				m.cursor.Col = max(0, m.buffer.lineLength(m.cursor.Row)-1)
			}
			return
		}
		for i := m.cursor.Col - 1; i >= 0; i-- {
			if (i == 0 || isWordBoundary(line[i-1])) && !isWordBoundary(line[i]) {
				m.cursor.Col = i
				return
			}
		}
		m.cursor.Col = 0
	})
	m.desiredCol = m.cursor.Col
	m.scrollIntoView()
	return nil
}

func isWordBoundary(ch byte) bool {
	return strings.IndexByte(" \t.,;:!?()[]{}<>/\\+-*&^%$#@=|`~\"'", ch) >= 0
}

func deleteChar(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	repeat(m, func() {
		lineLen := m.buffer.lineLength(m.cursor.Row)
		if lineLen == 0 || m.cursor.Col >= lineLen {
			return
		}
		m.buffer.deleteRange(m.cursor, m.cursor)
	})
	m.clampCursor()
	return nil
}

func deleteToEnd(m *model) tea.Cmd {
	line := m.buffer.line(m.cursor.Row)
	if m.cursor.Col >= len(line) || len(line) == 0 {
		return nil
	}
	m.buffer.pushUndo(m.cursor)
	deleted := m.buffer.deleteRange(
		Cursor{m.cursor.Row, m.cursor.Col},
		Cursor{m.cursor.Row, len(line) - 1},
	)
	m.reg.set(deleted, false)
	m.clampCursor()
	return nil
}

func deleteCurrentLine(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	var deleted []string
	repeat(m, func() {
		deleted = append(deleted, m.buffer.deleteLine(min(m.cursor.Row, m.buffer.lineCount()-1)))
	})
	m.reg.set(strings.Join(deleted, "\n"), true)
	m.clampCursor()
	m.scrollIntoView()
	return nil
}

func yankLine(m *model) tea.Cmd {
	row := m.cursor.Row
	last := min(row+m.count-1, m.buffer.lineCount()-1)
	m.count = 1

	var lines []string
	for i := row; i <= last; i++ {
		lines = append(lines, m.buffer.line(i))
	}
	m.reg.set(strings.Join(lines, "\n"), true)
	m.flashYank(
		Cursor{Row: row},
		Cursor{Row: last, Col: max(0, m.buffer.lineLength(last)-1)},
		true,
	)
	return nil
}

func pasteAfter(m *model) tea.Cmd {
	text, linewise := m.reg.get()
	if text == "" {
		return nil
	}
	m.buffer.pushUndo(m.cursor)

	if linewise {
		row := m.cursor.Row
		for i, line := range strings.Split(text, "\n") {
			m.buffer.insertLine(row+1+i, line)
		}
		m.cursor.Row = row + 1
		m.cursor.Col = 0
		m.scrollIntoView()
		return nil
	}

	col := m.cursor.Col
	if m.buffer.lineLength(m.cursor.Row) > 0 {
		col++
	}
	m.buffer.insertAt(m.cursor.Row, col, text)
	m.moveToPasteEnd(col, text)
	return nil
}

func pasteBefore(m *model) tea.Cmd {
	text, linewise := m.reg.get()
	if text == "" {
		return nil
	}
	m.buffer.pushUndo(m.cursor)

	if linewise {
		row := m.cursor.Row
		for i, line := range strings.Split(text, "\n") {
			m.buffer.insertLine(row+i, line)
		}
		m.cursor.Col = 0
		m.scrollIntoView()
		return nil
	}

	m.buffer.insertAt(m.cursor.Row, m.cursor.Col, text)
	m.moveToPasteEnd(m.cursor.Col, text)
	return nil
}

// moveToPasteEnd places the cursor on the last pasted character.
func (m *model) moveToPasteEnd(fromCol int, text string) {
	parts := strings.Split(text, "\n")
	if len(parts) > 1 {
		m.cursor.Row += len(parts) - 1
		m.cursor.Col = max(0, len(parts[len(parts)-1])-1)
	} else {
		m.cursor.Col = max(0, fromCol+len(text)-1)
	}
	m.scrollIntoView()
}

func yankSelection(m *model) tea.Cmd {
	start, end := m.selection()
	m.reg.set(m.buffer.textRange(start, end), m.visualLine)
	m.flashYank(start, end, m.visualLine)
	m.cursor = start
	return switchMode(m, ModeNormal)
}

func deleteSelection(m *model) tea.Cmd {
	m.buffer.pushUndo(m.cursor)
	start, end := m.selection()
	linewise := m.visualLine

	deleted := m.buffer.deleteRange(start, end)
	if linewise {
		m.buffer.deleteLine(start.Row)
	}
	m.reg.set(deleted, linewise)
	m.cursor = start
	m.scrollIntoView()
	return switchMode(m, ModeNormal)
}

// pasteOverSelection replaces the visual selection with the register,
// leaving the old selection in the register. Linewise text goes back in
// as whole lines, splitting the current line when the selection sat
// mid-line.
func pasteOverSelection(m *model) tea.Cmd {
	text, linewise := m.reg.get()
	m.buffer.pushUndo(m.cursor)
	start, end := m.selection()
	selLinewise := m.visualLine

	old := m.buffer.deleteRange(start, end)
	if selLinewise {
		m.buffer.deleteLine(start.Row)
	}

	switch {
	case text == "":
		m.cursor = start
	case selLinewise || (linewise && start.Col == 0):
		row := start.Row
		lines := strings.Split(text, "\n")
		if m.buffer.lineCount() == 1 && m.buffer.line(0) == "" {
			// The selection covered the whole buffer; reuse the
			// cleared line instead of leaving it trailing.
			m.buffer.setLine(0, lines[0])
			lines, row = lines[1:], 1
		}
		for i, line := range lines {
			m.buffer.insertLine(row+i, line)
		}
		m.cursor = Cursor{Row: start.Row}
	case linewise:
		m.buffer.insertAt(start.Row, start.Col, "\n"+text+"\n")
		m.cursor = Cursor{Row: start.Row + 1}
	default:
		m.cursor = start
		m.buffer.insertAt(start.Row, start.Col, text)
		m.moveToPasteEnd(start.Col, text)
	}

	m.reg.set(old, selLinewise)
	m.scrollIntoView()
	return switchMode(m, ModeNormal)
}

type wordOp int

const (
	opDelete wordOp = iota
	opChange
	opYank
)

// innerWordOp builds the diw/ciw/yiw family. The target is the word (or
// the run of separators) under the cursor.
func innerWordOp(op wordOp) action {
	return func(m *model) tea.Cmd {
		start, end := wordBoundsAt(m.buffer.line(m.cursor.Row), m.cursor.Col)
		if start == end {
			return nil
		}
		line := m.buffer.line(m.cursor.Row)
		word := line[start:end]

		switch op {
		case opYank:
			m.reg.set(word, false)
			m.flashYank(
				Cursor{m.cursor.Row, start},
				Cursor{m.cursor.Row, end - 1},
				false,
			)
		case opDelete, opChange:
			m.buffer.pushUndo(m.cursor)
			m.reg.set(word, false)
			m.buffer.setLine(m.cursor.Row, line[:start]+line[end:])
			m.cursor.Col = start
			if op == opChange {
				return switchMode(m, ModeInsert)
			}
			m.clampCursor()
		}
		return nil
	}
}

// wordBoundsAt returns the half-open byte range of the word under col.
// On a separator it returns the surrounding separator run instead.
func wordBoundsAt(line string, col int) (int, int) {
	if len(line) == 0 {
		return 0, 0
	}
	if col >= len(line) {
		col = len(line) - 1
	}

	sep := isWordBoundary(line[col])
	start := col
	for start > 0 && isWordBoundary(line[start-1]) == sep {
		start--
	}
	end := col
	for end < len(line)-1 && isWordBoundary(line[end+1]) == sep {
		end++
	}
	return start, end + 1
}

func doUndo(m *model) tea.Cmd {
	return m.buffer.undo(m.cursor)
}

func doRedo(m *model) tea.Cmd {
	return m.buffer.redo(m.cursor)
}
