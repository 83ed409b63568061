package textrenderer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineBuffer accumulates whitespace-normalized text into lines, the way an
// HTML flow collapses every whitespace run into a single space.
type LineBuffer struct {
	lines       []string
	current     strings.Builder
	insideTable bool
	endSpace    bool // the last appended chunk ended with whitespace
}

// NewLineBuffer returns an empty buffer.
func NewLineBuffer() *LineBuffer { return &LineBuffer{} }

// AppendText appends chunk to the current line. Whitespace runs inside the
// chunk become one space; a boundary space is never emitted twice in a row.
func (b *LineBuffer) AppendText(chunk string) {
	if chunk == "" {
		return
	}
	first, _ := utf8.DecodeRuneInString(chunk)
	last, _ := utf8.DecodeLastRuneInString(chunk)
	lead, trail := unicode.IsSpace(first), unicode.IsSpace(last)

	body := strings.Join(strings.Fields(chunk), " ")
	if body == "" {
		if !b.endSpace {
			b.current.WriteByte(' ')
		}
		b.endSpace = true
		return
	}
	if lead && !b.endSpace {
		b.current.WriteByte(' ')
	}
	b.current.WriteString(body)
	if trail {
		b.current.WriteByte(' ')
	}
	b.endSpace = trail
}

// Newline closes the current line, even when it is empty.
func (b *LineBuffer) Newline() {
	b.lines = append(b.lines, b.current.String())
	b.current.Reset()
}

// FlushLine closes the current line only when it holds text.
func (b *LineBuffer) FlushLine() {
	if b.current.Len() > 0 {
		b.Newline()
	}
}

// Current returns the line under construction.
func (b *LineBuffer) Current() string { return b.current.String() }

// Lines returns the completed lines.
func (b *LineBuffer) Lines() []string { return b.lines }

// InsideTable reports whether a table is being flattened.
func (b *LineBuffer) InsideTable() bool { return b.insideTable }

// Render joins the completed lines; an unflushed current line is left out.
func (b *LineBuffer) Render() string { return strings.Join(b.lines, "\n") }
