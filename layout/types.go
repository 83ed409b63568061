package layout

import (
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
)

// 该文件定义页面模板中的布局指令：静态 frame 区域、定位文字与水平线。

// DirectiveKind discriminates the FrameDirective variants.
type DirectiveKind int

const (
	KindFrame DirectiveKind = iota
	KindDrawString
	KindDrawLines
)

func (k DirectiveKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindDrawString:
		return "drawString"
	case KindDrawLines:
		return "lines"
	default:
		return "unknown"
	}
}

// FrameDirective is a single layout primitive of a page template.
// The set of variants is closed: *FrameRegion, *DrawString and *DrawLines.
type FrameDirective interface {
	Kind() DirectiveKind
	// Position is the directive's anchor; its (Y, X) is the ordering key.
	Position() canvas.Point
	// Start returns the textual signal produced when the cursor reaches it.
	Start() string
	// End reports whether the directive stops an advance step.
	End() bool
	// Mergeable reports whether two directives of this kind on the same
	// vertical position fold into one.
	Mergeable() bool

	directive()
}

// FrameRegion is a static rectangular slot where flowing content lands.
type FrameRegion struct {
	ID     string       `json:"id"`
	Origin canvas.Point `json:"origin"`
	Width  float64      `json:"width"`
}

func (f *FrameRegion) Kind() DirectiveKind    { return KindFrame }
func (f *FrameRegion) Position() canvas.Point { return f.Origin }
func (f *FrameRegion) Start() string          { return "" }
func (f *FrameRegion) End() bool              { return true }
func (f *FrameRegion) Mergeable() bool        { return false }
func (f *FrameRegion) directive()             {}

// StringPosition is one placement of a positioned string.
type StringPosition struct {
	At       canvas.Point     `json:"at"`
	Align    canvas.TextAlign `json:"align"`
	Text     string           `json:"text"`
	Style    string           `json:"style,omitempty"`
	FontSize float64          `json:"fontSize"`

	seq int
}

// DrawString places text at fixed coordinates. Merged draw-strings sharing
// the same y keep every placement in Positions, in document order.
type DrawString struct {
	Positions []StringPosition `json:"positions"`
}

func (d *DrawString) Kind() DirectiveKind { return KindDrawString }

func (d *DrawString) Position() canvas.Point {
	if len(d.Positions) == 0 {
		return canvas.Point{}
	}
	return d.Positions[0].At
}

func (d *DrawString) Start() string {
	var sb strings.Builder
	for _, p := range d.Positions {
		fmt.Fprintf(&sb, "draw string %q @(%d,%d)..\n", p.Text, int(p.At.X), int(p.At.Y))
	}
	return sb.String()
}

func (d *DrawString) End() bool       { return false }
func (d *DrawString) Mergeable() bool { return true }
func (d *DrawString) directive()      {}

// merge folds other's placements into d, keeping document order.
func (d *DrawString) merge(other *DrawString) {
	for _, p := range other.Positions {
		i := len(d.Positions)
		for i > 0 && d.Positions[i-1].seq > p.seq {
			i--
		}
		d.Positions = append(d.Positions, StringPosition{})
		copy(d.Positions[i+1:], d.Positions[i:])
		d.Positions[i] = p
	}
}

// DrawLines is a horizontal rule. Valid is false when its endpoints do not
// share the same y.
type DrawLines struct {
	At    canvas.Point `json:"at"`
	Width float64      `json:"width"`
	Valid bool         `json:"valid"`
	Style string       `json:"style,omitempty"`
}

func (l *DrawLines) Kind() DirectiveKind    { return KindDrawLines }
func (l *DrawLines) Position() canvas.Point { return l.At }
func (l *DrawLines) Start() string          { return "draw lines..\n" }
func (l *DrawLines) End() bool              { return false }
func (l *DrawLines) Mergeable() bool        { return false }
func (l *DrawLines) directive()             {}

var (
	_ FrameDirective = (*FrameRegion)(nil)
	_ FrameDirective = (*DrawString)(nil)
	_ FrameDirective = (*DrawLines)(nil)
)

// mergeInto folds next into prev when both are the same mergeable variant.
func mergeInto(prev, next FrameDirective) bool {
	if prev.Kind() != next.Kind() || !prev.Mergeable() {
		return false
	}
	switch p := prev.(type) {
	case *DrawString:
		p.merge(next.(*DrawString))
		return true
	case *FrameRegion, *DrawLines:
		return false
	default:
		panic(fmt.Sprintf("layout: unhandled directive %T", prev))
	}
}

// alignOf maps the draw-string tag onto its horizontal alignment.
func alignOf(tag string) (canvas.TextAlign, bool) {
	switch tag {
	case "drawString":
		return canvas.Left, true
	case "drawRightString":
		return canvas.Right, true
	case "drawCentredString", "drawCenteredString":
		return canvas.Center, true
	default:
		return canvas.Left, false
	}
}
