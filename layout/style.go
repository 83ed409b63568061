package layout

import "github.com/ByLCY/rml2csv/dsl"

// defaultFontSize is reported for every tag until styles are resolved.
const defaultFontSize = 12

// StyleSheet resolves drawing styles declared in page graphics.
type StyleSheet interface {
	// Update records a style-setting element (setFont, fill, stroke...).
	Update(node *dsl.Node)
	Get(tag string) string
	FontSizeGet(tag string) float64
}

// DrawStyle is the style collaborator used by the text backend. Styling has
// no effect on flattened text, so every lookup returns a default.
type DrawStyle struct{}

// NewDrawStyle returns an empty style sheet.
func NewDrawStyle() *DrawStyle { return &DrawStyle{} }

// Update ignores the element; attributes are not interpreted.
func (s *DrawStyle) Update(*dsl.Node) {}

func (s *DrawStyle) Get(string) string { return "" }

func (s *DrawStyle) FontSizeGet(string) float64 { return defaultFontSize }

var _ StyleSheet = (*DrawStyle)(nil)
