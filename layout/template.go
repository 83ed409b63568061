package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownTemplate reports a template id that was never declared.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrNoCurrentFrame reports a frame query before the first advance.
	ErrNoCurrentFrame = errors.New("no current frame")
)

// Templates is the page-template model of one document: the ordered
// directives of every declared template and a cursor over the selected one.
// It is owned by a single render and is not safe for concurrent use.
type Templates struct {
	byID    map[string][]FrameDirective
	order   []string
	current string

	cursor     int // -1 before the first advance
	overflowed bool
	wraps      int
}

// IDs returns the template ids in declaration order.
func (t *Templates) IDs() []string { return slices.Clone(t.order) }

// Current returns the selected template id.
func (t *Templates) Current() string { return t.current }

// Frames returns the ordered directives of template id.
func (t *Templates) Frames(id string) ([]FrameDirective, error) {
	frames, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return frames, nil
}

// Cursor returns the index of the current directive, -1 before the first advance.
func (t *Templates) Cursor() int { return t.cursor }

// Overflowed reports whether the cursor wrapped since the last selection.
func (t *Templates) Overflowed() bool { return t.overflowed }

// Wraps counts wraparounds since the last selection.
func (t *Templates) Wraps() int { return t.wraps }

// SelectTemplate makes id the current template and rewinds the cursor.
func (t *Templates) SelectTemplate(id string) error {
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	t.current = id
	t.cursor = -1
	t.overflowed = false
	t.wraps = 0
	return nil
}

// NextTemplate selects the template declared after the current one,
// wrapping to the first.
func (t *Templates) NextTemplate() error {
	i := slices.Index(t.order, t.current)
	return t.SelectTemplate(t.order[(i+1)%len(t.order)])
}

// AdvanceFrame moves the cursor to the next frame region, collecting the
// signals of the draw directives passed on the way. Running past the last
// directive wraps the cursor to 0 and marks the model as overflowed.
func (t *Templates) AdvanceFrame() string {
	frames := t.byID[t.current]
	var sb strings.Builder
	for {
		t.cursor++
		if t.cursor >= len(frames) {
			t.cursor = 0
			t.overflowed = true
			t.wraps++
			break
		}
		f := frames[t.cursor]
		sb.WriteString(f.Start())
		if f.End() {
			break
		}
	}
	return sb.String()
}

// CurrentFrame returns the directive under the cursor.
func (t *Templates) CurrentFrame() (FrameDirective, error) {
	frames := t.byID[t.current]
	if t.cursor < 0 || t.cursor >= len(frames) {
		return nil, ErrNoCurrentFrame
	}
	return frames[t.cursor], nil
}
