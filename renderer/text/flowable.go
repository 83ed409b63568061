package textrenderer

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/rml2csv/binding"
	"github.com/ByLCY/rml2csv/dsl"
	"github.com/ByLCY/rml2csv/layout"
)

const (
	// spacerLineHeight is the length, in points, that one blank line stands for.
	spacerLineHeight = 35
	// maxSpacerLines caps the blank lines of a single spacer (about 12 m).
	maxSpacerLines = 1000
)

// flowable flattens one story into a LineBuffer.
type flowable struct {
	templates *layout.Templates
	diag      *diagnostics
	logger    *log.Logger
	data      any

	tb   *LineBuffer
	tags map[string]func(*dsl.Node) error
}

func newFlowable(templates *layout.Templates, diag *diagnostics, logger *log.Logger, data any) *flowable {
	f := &flowable{
		templates: templates,
		diag:      diag,
		logger:    logger,
		data:      data,
	}
	f.tags = map[string]func(*dsl.Node) error{
		"title":           f.tagTitle,
		"spacer":          f.tagSpacer,
		"para":            f.tagPara,
		"section":         f.tagPara,
		"font":            f.tagFont,
		"blockTable":      f.tagTable,
		"pageBreak":       f.tagLayoutBreak,
		"nextFrame":       f.tagLayoutBreak,
		"setNextTemplate": f.tagNextTemplate,
	}
	return f
}

// render flattens node's content into a fresh buffer and returns its text.
func (f *flowable) render(node *dsl.Node) (string, error) {
	f.tb = NewLineBuffer()
	defer func() { f.tb = nil }()

	f.appendText(node.Text)
	if err := f.renderChildren(node); err != nil {
		return "", err
	}
	return f.tb.Render(), nil
}

// renderNode emits the node's leading text, runs its tag handler, then emits
// its tail. Unknown tags are reported once and skipped with their tail.
func (f *flowable) renderNode(n *dsl.Node) error {
	h, ok := f.tags[n.Tag]
	if !ok {
		f.diag.unknownTag(n.Tag)
		return nil
	}
	f.appendText(n.Text)
	if err := h(n); err != nil {
		return err
	}
	f.appendText(n.Tail)
	return nil
}

func (f *flowable) renderChildren(n *dsl.Node) error {
	for _, c := range n.Children {
		if err := f.renderNode(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *flowable) appendText(s string) {
	if s == "" {
		return
	}
	if f.data == nil {
		if binding.HasPlaceholder(s) {
			f.diag.unboundPlaceholder()
		}
		f.tb.AppendText(s)
		return
	}
	out, missing := binding.Interpolate(s, f.data)
	for _, path := range missing {
		f.diag.unresolvedPath(path)
	}
	f.tb.AppendText(out)
}

func (f *flowable) tagTitle(n *dsl.Node) error {
	return f.renderChildren(n)
}

// tagFont ignores the font selection.
func (f *flowable) tagFont(n *dsl.Node) error {
	return f.renderChildren(n)
}

// tagPara also serves section; styles are ignored.
func (f *flowable) tagPara(n *dsl.Node) error {
	if err := f.renderChildren(n); err != nil {
		return err
	}
	if !f.tb.insideTable {
		f.tb.Newline()
	}
	return nil
}

func (f *flowable) tagSpacer(n *dsl.Node) error {
	raw, ok := n.Attr("length")
	if !ok {
		return fmt.Errorf("spacer: missing length: %w", layout.ErrUnresolvableUnit)
	}
	length, err := layout.ParseLength(raw)
	if err != nil {
		return fmt.Errorf("spacer: %w", err)
	}
	blank := math.Floor(length.ToPT() / spacerLineHeight)
	if math.IsNaN(blank) || blank >= maxSpacerLines {
		return fmt.Errorf("spacer: %s exceeds %d lines: %w", length, maxSpacerLines, layout.ErrUnresolvableUnit)
	}
	count := 1 + int(max(blank, -1))
	f.logger.Debug("spacer", "length", length.String(), "mm", length.ToMM(), "lines", count)
	for i := 0; i < count; i++ {
		f.tb.Newline()
	}
	return nil
}

// tagTable writes one line per row: every cell quoted and followed by a comma.
func (f *flowable) tagTable(n *dsl.Node) error {
	f.tb.Newline()
	prev := f.tb.insideTable
	f.tb.insideTable = true
	defer func() { f.tb.insideTable = prev }()

	for _, tr := range n.ChildrenByTag("tr") {
		for _, td := range tr.ChildrenByTag("td") {
			f.tb.AppendText(`"`)
			f.appendText(td.Text)
			if err := f.renderChildren(td); err != nil {
				return err
			}
			f.tb.AppendText(`",`)
		}
		f.tb.Newline()
	}
	return nil
}

// tagLayoutBreak stands for pageBreak and nextFrame.
func (f *flowable) tagLayoutBreak(n *dsl.Node) error {
	f.logger.Debug("layout break", "tag", n.Tag, "template", f.templates.Current())
	f.tb.Newline()
	return nil
}

// tagNextTemplate has no textual effect.
func (f *flowable) tagNextTemplate(n *dsl.Node) error {
	f.logger.Debug("template switch ignored", "name", n.Get("name"), "template", f.templates.Current())
	return nil
}
