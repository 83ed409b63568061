package textrenderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func appendAll(chunks ...string) *LineBuffer {
	b := NewLineBuffer()
	for _, c := range chunks {
		b.AppendText(c)
	}
	return b
}

func TestAppendTextBoundarySpaces(t *testing.T) {
	cases := []struct {
		name   string
		chunks []string
		want   string
	}{
		{"trailing then leading", []string{"a ", " b"}, "a b"},
		{"no whitespace", []string{"a", "b"}, "ab"},
		{"leading only", []string{"a", " b"}, "a b"},
		{"trailing only", []string{"a ", "b"}, "a b"},
		{"internal runs collapse", []string{"x \n\t  y"}, "x y"},
		{"newlines and tabs", []string{"\n\tx\n"}, " x "},
		{"whitespace-only chunks", []string{"a", "  ", "\n", "b"}, "a b"},
		{"whitespace after trailing space", []string{"a ", "   ", " b"}, "a b"},
		{"empty chunk", []string{"a", "", "b"}, "ab"},
		{"unicode space", []string{"a\u00a0", "\u00a0b"}, "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, appendAll(tc.chunks...).Current())
		})
	}
}

func TestNewlineAlwaysAddsLine(t *testing.T) {
	b := NewLineBuffer()
	b.Newline()
	b.Newline()
	assert.Equal(t, []string{"", ""}, b.Lines())

	b.AppendText("x")
	b.Newline()
	assert.Equal(t, []string{"", "", "x"}, b.Lines())
	assert.Equal(t, "", b.Current())
}

func TestFlushLineSkipsEmpty(t *testing.T) {
	b := NewLineBuffer()
	b.FlushLine()
	assert.Empty(t, b.Lines())

	b.AppendText("x")
	b.FlushLine()
	assert.Equal(t, []string{"x"}, b.Lines())
	b.FlushLine()
	assert.Equal(t, []string{"x"}, b.Lines())
}

func TestRenderLeavesCurrentOut(t *testing.T) {
	b := NewLineBuffer()
	b.AppendText("one")
	b.Newline()
	b.AppendText("two")
	b.Newline()
	b.AppendText("pending")
	assert.Equal(t, "one\ntwo", b.Render())
	assert.False(t, b.InsideTable())
}
