// Package textrenderer flattens report markup into plain text: paragraphs
// become lines and table rows become quoted, comma-terminated cell lists.
package textrenderer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/rml2csv/dsl"
	"github.com/ByLCY/rml2csv/layout"
	"github.com/ByLCY/rml2csv/renderer"
)

// NoTemplateMarker is the whole output of a document without a template.
const NoTemplateMarker = "<cannot render w/o template>"

// Options configures the text renderer.
type Options struct {
	// Logger receives diagnostics; nil discards them.
	Logger *log.Logger
	// Data is bound to [[ ... ]] placeholders; nil leaves them untouched.
	Data any
	// Style resolves page-graphics styles; nil selects layout's stub.
	Style layout.StyleSheet
}

// Renderer turns a markup tree into flattened text.
type Renderer struct {
	logger *log.Logger
	data   any
	style  layout.StyleSheet
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a text renderer.
func NewRenderer(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{logger: logger, data: opts.Data, style: opts.Style}
}

// Render implements renderer.Renderer.
func (r *Renderer) Render(doc *dsl.Node) ([]byte, error) {
	text, err := r.RenderString(doc)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// RenderString renders every story of doc, separating non-empty stories
// with one blank line, and terminates the result with a line break.
func (r *Renderer) RenderString(doc *dsl.Node) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: document is nil", dsl.ErrMalformedMarkup)
	}
	tmpl := layout.FindTemplate(doc)
	if tmpl == nil {
		r.logger.Warn("document has no template")
		return NoTemplateMarker + "\n", nil
	}
	templates, err := layout.BuildTemplates(tmpl, layout.BuildOptions{Style: r.style})
	if err != nil {
		return "", fmt.Errorf("build page templates: %w", err)
	}
	r.logger.Debug("page templates built", "templates", templates.IDs(), "current", templates.Current())

	diag := newDiagnostics(r.logger)
	var blocks []string
	for i, story := range doc.ChildrenByTag("story") {
		f := newFlowable(templates, diag, r.logger, r.data)
		text, err := f.render(story)
		if err != nil {
			return "", fmt.Errorf("story %d: %w", i, err)
		}
		r.logger.Debug("story rendered", "index", i, "bytes", len(text))
		if text != "" {
			blocks = append(blocks, text)
		}
	}
	if tags := diag.unknownTags(); len(tags) > 0 {
		r.logger.Debug("skipped unknown tags", "tags", strings.Join(tags, ","))
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

// diagnostics reports recoverable oddities once per document render.
type diagnostics struct {
	logger      *log.Logger
	tags        map[string]struct{}
	placeholder bool
	paths       map[string]struct{}
}

func newDiagnostics(logger *log.Logger) *diagnostics {
	return &diagnostics{logger: logger, tags: map[string]struct{}{}, paths: map[string]struct{}{}}
}

func (d *diagnostics) unknownTag(tag string) {
	if _, ok := d.tags[tag]; ok {
		return
	}
	d.tags[tag] = struct{}{}
	d.logger.Warn("unknown tag, please implement it", "tag", tag)
}

func (d *diagnostics) unboundPlaceholder() {
	if d.placeholder {
		return
	}
	d.placeholder = true
	d.logger.Warn("placeholders left as-is, no data bound")
}

func (d *diagnostics) unresolvedPath(path string) {
	if _, ok := d.paths[path]; ok {
		return
	}
	d.paths[path] = struct{}{}
	d.logger.Warn("placeholder path not found in data", "path", path)
}

// unknownTags lists the reported tags, sorted.
func (d *diagnostics) unknownTags() []string {
	out := make([]string, 0, len(d.tags))
	for t := range d.tags {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
