package editor

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Buffer is the public interface to the editor's text content.
// All positions are zero-based (row, col).
type Buffer interface {
	// Text returns the entire buffer content as a string.
	Text() string

	// Lines returns all lines in the buffer.
	Lines() []string

	// LineCount returns the number of lines in the buffer.
	LineCount() int

	// LineLength returns the length in bytes of the line at row.
	LineLength(row int) int

	// InsertAt inserts text at the given position. Text may span lines.
	InsertAt(row, col int, text string)

	// DeleteAt deletes the inclusive range between the two positions.
	DeleteAt(startRow, startCol, endRow, endCol int)

	// SetText replaces the entire buffer content.
	SetText(text string) tea.Cmd

	// Clear empties the buffer, leaving a single empty line.
	Clear() tea.Cmd

	// Undo reverts the last change.
	Undo() tea.Cmd

	// Redo reapplies the last undone change.
	Redo() tea.Cmd

	// CanUndo reports whether an undo is possible.
	CanUndo() bool

	// CanRedo reports whether a redo is possible.
	CanRedo() bool
}

// maxHistory bounds the undo stack.
const maxHistory = 100

// snapshot is one undo/redo history entry.
type snapshot struct {
	lines  []string
	cursor Cursor
}

// textBuffer holds the editable lines plus undo/redo history.
// It always contains at least one line.
type textBuffer struct {
	lines []string
	undos []snapshot
	redos []snapshot
}

func newTextBuffer(content string) *textBuffer {
	return &textBuffer{lines: strings.Split(content, "\n")}
}

func (b *textBuffer) text() string {
	return strings.Join(b.lines, "\n")
}

func (b *textBuffer) lineCount() int {
	return len(b.lines)
}

func (b *textBuffer) line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

func (b *textBuffer) lineLength(row int) int {
	return len(b.line(row))
}

func (b *textBuffer) setLine(row int, content string) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	b.lines[row] = content
}

func (b *textBuffer) insertLine(row int, content string) {
	if row < 0 || row > len(b.lines) {
		return
	}
	if row == len(b.lines) {
		b.lines = append(b.lines, content)
		return
	}
	b.lines = slices.Insert(b.lines, row, content)
}

// deleteLine removes the line at row and returns its content.
// The last remaining line is cleared rather than removed.
func (b *textBuffer) deleteLine(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	line := b.lines[row]
	if len(b.lines) > 1 {
		b.lines = slices.Delete(b.lines, row, row+1)
	} else {
		b.lines[0] = ""
	}
	return line
}

func (b *textBuffer) clear() {
	b.lines = []string{""}
}

func (b *textBuffer) setText(content string) {
	b.lines = strings.Split(content, "\n")
}

// insertAt splices text into the buffer at (row, col).
// Multi-line text splits the target line at the insertion point.
func (b *textBuffer) insertAt(row, col int, text string) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	line := b.lines[row]
	if col < 0 || col > len(line) {
		return
	}

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[row] = line[:col] + text + line[col:]
		return
	}

	head := line[:col] + parts[0]
	tail := parts[len(parts)-1] + line[col:]

	b.lines[row] = head
	at := row + 1
	for _, mid := range parts[1 : len(parts)-1] {
		b.insertLine(at, mid)
		at++
	}
	b.insertLine(at, tail)
}

// orderRange returns the two cursors with the earlier one first.
func orderRange(start, end Cursor) (Cursor, Cursor) {
	if start.Row > end.Row || (start.Row == end.Row && start.Col > end.Col) {
		return end, start
	}
	return start, end
}

// textRange returns the text in the inclusive range between start and end.
func (b *textBuffer) textRange(start, end Cursor) string {
	start, end = orderRange(start, end)

	if start.Row == end.Row {
		line := b.line(start.Row)
		return line[start.Col:min(end.Col+1, len(line))]
	}

	var sb strings.Builder
	sb.WriteString(b.line(start.Row)[start.Col:])
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteString("\n")
		sb.WriteString(b.line(row))
	}
	last := b.line(end.Row)
	sb.WriteString("\n")
	sb.WriteString(last[:min(end.Col+1, len(last))])
	return sb.String()
}

// deleteRange removes the inclusive range and returns the deleted text.
func (b *textBuffer) deleteRange(start, end Cursor) string {
	start, end = orderRange(start, end)
	deleted := b.textRange(start, end)

	if start.Row == end.Row {
		line := b.line(start.Row)
		b.setLine(start.Row, line[:start.Col]+line[min(end.Col+1, len(line)):])
		return deleted
	}

	// A range ending at column 0 of the next line is a line join.
	if end.Row == start.Row+1 && end.Col == 0 && start.Col == b.lineLength(start.Row) {
		b.setLine(start.Row, b.line(start.Row)+b.line(end.Row))
		b.deleteLine(end.Row)
		return deleted
	}

	last := b.line(end.Row)
	b.setLine(start.Row, b.line(start.Row)[:start.Col]+last[min(end.Col+1, len(last)):])
	for n := 0; n < end.Row-start.Row; n++ {
		b.deleteLine(start.Row + 1)
	}
	return deleted
}

// pushUndo snapshots the current content before a mutation.
// Consecutive identical snapshots are collapsed.
func (b *textBuffer) pushUndo(cursor Cursor) {
	if n := len(b.undos); n > 0 && slices.Equal(b.undos[n-1].lines, b.lines) {
		return
	}
	b.undos = append(b.undos, snapshot{lines: slices.Clone(b.lines), cursor: cursor})
	b.redos = nil
	if len(b.undos) > maxHistory {
		b.undos = b.undos[len(b.undos)-maxHistory:]
	}
}

// UndoRedoMsg reports the result of an undo or redo operation.
type UndoRedoMsg struct {
	Cursor  Cursor
	Applied bool
	IsUndo  bool
}

func (b *textBuffer) undo(cursor Cursor) tea.Cmd {
	return func() tea.Msg {
		n := len(b.undos)
		if n == 0 {
			return UndoRedoMsg{IsUndo: true}
		}
		prev := b.undos[n-1]
		b.undos = b.undos[:n-1]
		b.redos = append(b.redos, snapshot{lines: slices.Clone(b.lines), cursor: cursor})
		b.lines = prev.lines
		return UndoRedoMsg{Cursor: prev.cursor, Applied: true, IsUndo: true}
	}
}

func (b *textBuffer) redo(cursor Cursor) tea.Cmd {
	return func() tea.Msg {
		n := len(b.redos)
		if n == 0 {
			return UndoRedoMsg{}
		}
		next := b.redos[n-1]
		b.redos = b.redos[:n-1]
		b.undos = append(b.undos, snapshot{lines: slices.Clone(b.lines), cursor: cursor})
		b.lines = next.lines
		return UndoRedoMsg{Cursor: next.cursor, Applied: true}
	}
}

func (b *textBuffer) canUndo() bool { return len(b.undos) > 0 }
func (b *textBuffer) canRedo() bool { return len(b.redos) > 0 }

// boundBuffer adapts the internal buffer to the Buffer interface,
// keeping cursor adjustment and undo snapshots in sync with the model.
type boundBuffer struct {
	m *model
}

func (w *boundBuffer) Text() string           { return w.m.buffer.text() }
func (w *boundBuffer) Lines() []string        { return w.m.buffer.lines }
func (w *boundBuffer) LineCount() int         { return w.m.buffer.lineCount() }
func (w *boundBuffer) LineLength(row int) int { return w.m.buffer.lineLength(row) }
func (w *boundBuffer) CanUndo() bool          { return w.m.buffer.canUndo() }
func (w *boundBuffer) CanRedo() bool          { return w.m.buffer.canRedo() }

func (w *boundBuffer) InsertAt(row, col int, text string) {
	w.m.buffer.pushUndo(w.m.cursor)
	w.m.buffer.insertAt(row, col, text)
}

func (w *boundBuffer) DeleteAt(startRow, startCol, endRow, endCol int) {
	w.m.buffer.pushUndo(w.m.cursor)
	w.m.buffer.deleteRange(Cursor{startRow, startCol}, Cursor{endRow, endCol})
}

func (w *boundBuffer) SetText(text string) tea.Cmd {
	w.m.buffer.pushUndo(w.m.cursor)
	w.m.buffer.setText(text)
	w.m.cursor = Cursor{}
	w.m.clampCursor()
	return nil
}

func (w *boundBuffer) Clear() tea.Cmd {
	w.m.buffer.pushUndo(w.m.cursor)
	w.m.buffer.clear()
	w.m.cursor = Cursor{}
	return nil
}

func (w *boundBuffer) Undo() tea.Cmd { return w.m.buffer.undo(w.m.cursor) }
func (w *boundBuffer) Redo() tea.Cmd { return w.m.buffer.redo(w.m.cursor) }
