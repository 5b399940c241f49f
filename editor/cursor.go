package editor

// Cursor is a position in the buffer. Row and Col are zero-based.
type Cursor struct {
	Row int
	Col int
}

// scrollIntoView adjusts the viewport offset so the cursor row is visible,
// then clamps the cursor to the buffer.
func (m *model) scrollIntoView() {
	if m.cursor.Row < m.offset {
		m.offset = m.cursor.Row
	} else if m.height > 0 && m.cursor.Row >= m.offset+m.height {
		m.offset = m.cursor.Row - m.height + 1
	}
	m.clampCursor()
}

// clampCursor keeps the cursor inside the buffer. In insert and replace
// modes the cursor may sit one past the last character; elsewhere it must
// rest on a character (or column 0 of an empty line).
func (m *model) clampCursor() {
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	if m.cursor.Row >= m.buffer.lineCount() {
		m.cursor.Row = m.buffer.lineCount() - 1
	}

	lineLen := m.buffer.lineLength(m.cursor.Row)
	switch m.mode {
	case ModeInsert, ModeReplace:
		if m.cursor.Col > lineLen {
			m.cursor.Col = lineLen
		}
	default:
		if lineLen == 0 {
			m.cursor.Col = 0
		} else if m.cursor.Col >= lineLen {
			m.cursor.Col = lineLen - 1
		}
	}
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
}
