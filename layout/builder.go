package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/rml2csv/dsl"
)

// directiveKey orders directives top-to-bottom, then right-to-left.
type directiveKey struct {
	y, x float64
	disc string
}

type keyedDirective struct {
	key directiveKey
	d   FrameDirective
}

// FindTemplate returns the first template definition under the document root.
func FindTemplate(doc *dsl.Node) *dsl.Node {
	return doc.First("template")
}

// BuildTemplates 根据 template 子树构建页面模板模型。
func BuildTemplates(node *dsl.Node, opts BuildOptions) (*Templates, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: template definition is nil", dsl.ErrMalformedMarkup)
	}
	style := opts.style()
	shared := node.ChildrenByTag("pageGraphics")

	t := &Templates{
		byID:   map[string][]FrameDirective{},
		cursor: -1,
	}
	for _, pt := range node.ChildrenByTag("pageTemplate") {
		id := pt.Get("id")
		b := &directiveSet{entries: map[directiveKey]keyedDirective{}}

		for _, fr := range pt.ChildrenByTag("frame") {
			if err := b.addFrame(fr); err != nil {
				return nil, fmt.Errorf("pageTemplate %q: %w", id, err)
			}
		}
		graphics := append(slices.Clone(shared), pt.ChildrenByTag("pageGraphics")...)
		for _, g := range graphics {
			for _, n := range g.Children {
				if err := b.addGraphic(n, style); err != nil {
					return nil, fmt.Errorf("pageTemplate %q: %w", id, err)
				}
			}
		}

		if _, dup := t.byID[id]; !dup {
			t.order = append(t.order, id)
		}
		t.byID[id] = b.ordered()
	}
	if len(t.order) == 0 {
		return nil, fmt.Errorf("%w: template declares no pageTemplate", dsl.ErrMalformedMarkup)
	}
	t.current = t.order[0]
	return t, nil
}

// directiveSet collects the directives of one page template keyed by
// (y, x, discriminant); a later directive with the same key replaces the
// earlier one.
type directiveSet struct {
	entries map[directiveKey]keyedDirective
	seq     int
}

func (b *directiveSet) put(key directiveKey, d FrameDirective) {
	b.entries[key] = keyedDirective{key: key, d: d}
}

func (b *directiveSet) addFrame(n *dsl.Node) error {
	x, err := resolveAttr(n, "x1")
	if err != nil {
		return err
	}
	y, err := resolveAttr(n, "y1")
	if err != nil {
		return err
	}
	width, err := resolveAttr(n, "width")
	if err != nil {
		return err
	}
	// frame 的排序键取整，与绘制指令的浮点坐标区分开。
	origin := canvas.Point{X: float64(int(x)), Y: float64(int(y))}
	b.put(directiveKey{y: origin.Y, x: origin.X, disc: n.Get("id")}, &FrameRegion{
		ID:     n.Get("id"),
		Origin: origin,
		Width:  width,
	})
	return nil
}

func (b *directiveSet) addGraphic(n *dsl.Node, style StyleSheet) error {
	if align, ok := alignOf(n.Tag); ok {
		x, err := resolveAttr(n, "x")
		if err != nil {
			return err
		}
		y, err := resolveAttr(n, "y")
		if err != nil {
			return err
		}
		b.seq++
		d := &DrawString{Positions: []StringPosition{{
			At:       canvas.Point{X: x, Y: y},
			Align:    align,
			Text:     n.TextContent(),
			Style:    style.Get("td"),
			FontSize: style.FontSizeGet("td"),
			seq:      b.seq,
		}}}
		b.put(directiveKey{y: y, x: x, disc: n.Tag}, d)
		return nil
	}
	if n.Tag == "lines" {
		coords, err := ParseLengths(n.TextContent())
		if err != nil {
			return fmt.Errorf("lines: %w", err)
		}
		if len(coords) < 4 {
			return fmt.Errorf("%w: lines needs 4 coordinates, got %d", dsl.ErrMalformedMarkup, len(coords))
		}
		x1, y1, x2, y2 := coords[0].ToPT(), coords[1].ToPT(), coords[2].ToPT(), coords[3].ToPT()
		b.put(directiveKey{y: y1, x: x1, disc: n.Tag}, &DrawLines{
			At:    canvas.Point{X: x1, Y: y1},
			Width: x2 - x1,
			Valid: y1 == y2,
			Style: style.Get("hr"),
		})
		return nil
	}
	style.Update(n)
	return nil
}

// ordered sorts the collected directives descending by (y, x) and folds
// mergeable neighbours that share the same y.
func (b *directiveSet) ordered() []FrameDirective {
	keyed := make([]keyedDirective, 0, len(b.entries))
	for _, e := range b.entries {
		keyed = append(keyed, e)
	}
	slices.SortFunc(keyed, func(a, c keyedDirective) int {
		return cmp.Or(
			cmp.Compare(c.key.y, a.key.y),
			cmp.Compare(c.key.x, a.key.x),
			cmp.Compare(c.key.disc, a.key.disc),
		)
	})

	out := make([]FrameDirective, 0, len(keyed))
	for i, e := range keyed {
		if i > 0 && keyed[i-1].key.y == e.key.y && mergeInto(out[len(out)-1], e.d) {
			continue
		}
		out = append(out, e.d)
	}
	return out
}

func resolveAttr(n *dsl.Node, name string) (float64, error) {
	raw, ok := n.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%s: missing attribute %q: %w", n.Tag, name, ErrUnresolvableUnit)
	}
	v, err := ResolveUnit(raw)
	if err != nil {
		return 0, fmt.Errorf("%s@%s: %w", n.Tag, name, err)
	}
	return v, nil
}
