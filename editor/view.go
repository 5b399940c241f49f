package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the display width of a tab stop.
const tabWidth = 4

// cell is one display column of a rendered line. src is the byte offset
// of the originating character in the buffer line, so selection and
// cursor ranges (which are byte columns) map directly onto cells. A tab
// spans several cells; only the head cell carries the cursor.
type cell struct {
	ch   rune
	src  int
	head bool
}

// displayCells expands a buffer line into display cells. Tabs expand to
// the next tab stop; when masking is on every rune becomes the mask rune
// and tabs get no special treatment.
func (m *model) displayCells(line string) []cell {
	cells := make([]cell, 0, len(line))
	for i, r := range line {
		switch {
		case m.mask != 0:
			cells = append(cells, cell{ch: m.mask, src: i, head: true})
		case r == '\t':
			for n, pad := 0, tabWidth-(len(cells)%tabWidth); n < pad; n++ {
				cells = append(cells, cell{ch: ' ', src: i, head: n == 0})
			}
		default:
			cells = append(cells, cell{ch: r, src: i, head: true})
		}
	}
	return cells
}

// View renders the editor content.
func (m *model) View() string {
	if m.placeholder != "" && m.buffer.text() == "" {
		return m.renderPlaceholder()
	}

	var sb strings.Builder
	rows := m.visibleRows()

	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		if m.lineNumbers {
			sb.WriteString(m.renderGutter(row))
		}
		sb.WriteString(m.renderRow(row))
	}
	return sb.String()
}

// visibleRows returns the buffer rows inside the viewport, padded with
// sentinel -1 rows to fill the component height.
func (m *model) visibleRows() []int {
	count := m.buffer.lineCount()
	height := m.height
	if height <= 0 {
		height = count
	}

	rows := make([]int, 0, height)
	for row := m.offset; row < min(m.offset+height, count); row++ {
		rows = append(rows, row)
	}
	for len(rows) < height {
		rows = append(rows, -1)
	}
	return rows
}

func (m *model) renderGutter(row int) string {
	if row < 0 {
		return m.styles.LineNumber.Render("    ")
	}
	if row == m.cursor.Row {
		return m.styles.CurrentLineNumber.Render(fmt.Sprintf("%4d", row+1))
	}
	n := row + 1
	if m.relative {
		n = row - m.cursor.Row
		if n < 0 {
			n = -n
		}
	}
	return m.styles.LineNumber.Render(fmt.Sprintf("%4d", n))
}

// renderRow renders one buffer row with cursor, selection, and yank
// flash applied. Rows without any of those go through the syntax
// highlighter; decorated rows render plain so the overlay styles never
// fight escape sequences from the highlighter.
func (m *model) renderRow(row int) string {
	if row < 0 {
		return ""
	}
	line := m.buffer.line(row)

	selStart, selEnd := Cursor{Row: -1}, Cursor{Row: -1}
	inSelection := false
	if m.mode == ModeVisual {
		selStart, selEnd = m.selection()
		inSelection = row >= selStart.Row && row <= selEnd.Row
	}

	flashStart, flashEnd, inFlash := 0, 0, false
	if m.mode != ModeVisual {
		flashStart, flashEnd, inFlash = m.flashBounds(row)
	}

	hasCursor := row == m.cursor.Row

	if !hasCursor && !inSelection && !inFlash {
		plain := cellString(m.displayCells(line))
		if m.mask == 0 {
			return m.highlighter.line(plain)
		}
		return plain
	}

	cells := m.displayCells(line)

	// The cursor may rest one past the last character.
	if hasCursor && m.cursor.Col >= len(line) {
		cells = append(cells, cell{ch: ' ', src: len(line), head: true})
	}

	var sb strings.Builder
	for _, c := range cells {
		styled := false

		if hasCursor && m.blinkOn && c.head && c.src == m.cursor.Col {
			sb.WriteString(m.renderCursorCell(c))
			styled = true
		} else if inSelection && inSelRange(row, c.src, selStart, selEnd, len(line)) {
			sb.WriteString(m.styles.Selection.Render(string(c.ch)))
			styled = true
		} else if inFlash && c.src >= flashStart && c.src < flashEnd {
			sb.WriteString(m.styles.Selection.Render(string(c.ch)))
			styled = true
		}

		if !styled {
			sb.WriteRune(c.ch)
		}
	}
	return sb.String()
}

func (m *model) renderCursorCell(c cell) string {
	if m.mode == ModeInsert {
		return lipgloss.NewStyle().Underline(true).Render(string(c.ch))
	}
	return m.styles.Cursor.Render(string(c.ch))
}

// inSelRange reports whether byte offset src on row falls inside the
// inclusive visual selection.
func inSelRange(row, src int, start, end Cursor, lineLen int) bool {
	from := 0
	if row == start.Row {
		from = start.Col
	}
	to := lineLen
	if row == end.Row {
		to = end.Col + 1
	}
	return src >= from && src < to
}

func cellString(cells []cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(c.ch)
	}
	return sb.String()
}

// renderPlaceholder shows hint text with the cursor parked on its first
// character.
func (m *model) renderPlaceholder() string {
	first, size := utf8.DecodeRuneInString(m.placeholder)
	rest := m.placeholder[size:]

	var sb strings.Builder
	if m.blinkOn {
		sb.WriteString(m.styles.Cursor.Render(string(first)))
	} else {
		sb.WriteString(m.styles.Placeholder.Render(string(first)))
	}
	sb.WriteString(m.styles.Placeholder.Render(rest))

	if m.lineNumbers {
		return m.renderGutter(0) + sb.String()
	}
	return sb.String()
}
