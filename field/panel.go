package field

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// minWidth keeps the panel renderable when the terminal is tiny.
const minWidth = 12

// View renders the field as a bordered panel. The title is embedded in
// the top border, the editing mode bottom-left, and the validation
// message bottom-right.
func (m *Model) View() string {
	width := max(m.width, minWidth)
	inner := width - 2

	border := m.theme.BorderChars()
	color := m.theme.StateColor(m.state != StateActive, m.state == StateValid)
	frame := lipgloss.NewStyle().Foreground(color)

	rows := []string{m.renderTop(border, frame, inner)}
	for _, line := range strings.Split(m.ed.View(), "\n") {
		rows = append(rows, m.renderContentRow(line, border, frame, inner))
	}
	rows = append(rows, m.renderBottom(border, frame, inner))

	return strings.Join(rows, "\n")
}

// renderTop draws the top border with the title embedded:
//
//	╭─ Title ──────────╮
func (m *Model) renderTop(border lipgloss.Border, frame lipgloss.Style, inner int) string {
	if m.title == "" {
		return frame.Render(border.TopLeft + strings.Repeat(border.Top, inner) + border.TopRight)
	}

	title := runewidth.Truncate(m.title, max(0, inner-4), "…")
	seg := " " + title + " "
	fill := inner - 1 - runewidth.StringWidth(seg)

	return frame.Render(border.TopLeft+border.Top) +
		frame.Bold(true).Render(seg) +
		frame.Render(strings.Repeat(border.Top, max(0, fill))+border.TopRight)
}

// renderBottom draws the bottom border with the mode tag on the left
// and the validation message on the right:
//
//	╰─ NORMAL ──── Invalid email format ─╯
func (m *Model) renderBottom(border lipgloss.Border, frame lipgloss.Style, inner int) string {
	modeSeg := " " + m.ed.ModeTag() + " "
	modeWidth := runewidth.StringWidth(modeSeg)

	msgSeg := ""
	msgWidth := 0
	if m.message != "" {
		msg := runewidth.Truncate(m.message, max(0, inner-modeWidth-4), "…")
		msgSeg = " " + msg + " "
		msgWidth = runewidth.StringWidth(msgSeg)
	}

	fill := inner - 1 - modeWidth - msgWidth - 1

	var sb strings.Builder
	sb.WriteString(frame.Render(border.BottomLeft + border.Bottom))
	sb.WriteString(frame.Bold(true).Render(modeSeg))
	sb.WriteString(frame.Render(strings.Repeat(border.Bottom, max(0, fill))))
	if msgSeg != "" {
		sb.WriteString(m.theme.MessageStyle(m.state == StateValid).Render(msgSeg))
	}
	sb.WriteString(frame.Render(border.Bottom + border.BottomRight))
	return sb.String()
}

// renderContentRow wraps one editor line in the side borders, padded to
// the panel width. Editor lines may carry escape sequences, so widths
// are measured after stripping them.
func (m *Model) renderContentRow(line string, border lipgloss.Border, frame lipgloss.Style, inner int) string {
	avail := inner - 2
	if ansi.StringWidth(line) > avail {
		line = ansi.Truncate(line, avail, "…")
	}
	pad := max(0, avail-ansi.StringWidth(line))

	return frame.Render(border.Left) + " " + line + strings.Repeat(" ", pad) + " " + frame.Render(border.Right)
}
