package editor

import (
	"bytes"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// highlighter colors lines with Chroma, keyed by filename. Lines are
// cached since the same content is re-rendered on every frame.
type highlighter struct {
	filename string
	theme    string
	cache    map[string]string
}

func newHighlighter(filename, theme string) *highlighter {
	return &highlighter{
		filename: filename,
		theme:    theme,
		cache:    make(map[string]string),
	}
}

// line returns the highlighted form of a display line, or the line
// unchanged when no lexer matches or highlighting fails.
func (h *highlighter) line(text string) string {
	if h == nil || text == "" {
		return text
	}
	if cached, ok := h.cache[text]; ok {
		return cached
	}

	lexer := lexers.Match(h.filename)
	if lexer == nil {
		return text
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, lexer.Config().Name, "terminal16m", h.theme); err != nil {
		return text
	}
	out := strings.ReplaceAll(buf.String(), "\n", "")
	h.cache[text] = out
	return out
}

// flashDuration is how long yanked text stays highlighted.
const flashDuration = 100 * time.Millisecond

// flashRegion is the transient highlight shown over freshly yanked text.
type flashRegion struct {
	active   bool
	start    Cursor
	end      Cursor
	linewise bool
	since    time.Time
	duration time.Duration
}

func (m *model) flashYank(start, end Cursor, linewise bool) {
	m.flash = flashRegion{
		active:   true,
		start:    start,
		end:      end,
		linewise: linewise,
		since:    time.Now(),
		duration: flashDuration,
	}
}

// flashBounds returns the highlighted byte range on a row, or ok=false
// when the row is outside the flash region.
func (m *model) flashBounds(row int) (start, end int, ok bool) {
	f := m.flash
	if !f.active || row < f.start.Row || row > f.end.Row {
		return 0, 0, false
	}
	start, end = 0, m.buffer.lineLength(row)
	if !f.linewise {
		if row == f.start.Row {
			start = f.start.Col
		}
		if row == f.end.Row {
			end = f.end.Col + 1
		}
	}
	return start, end, true
}
