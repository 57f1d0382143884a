package document

import (
	"fmt"
	"html"
	"log/slog"
	"maps"
	"strings"

	"github.com/gorewood/readmegen/internal/markup"
	"github.com/gorewood/readmegen/internal/section"
)

// DefaultPageTitle is the <title> of the HTML page shell.
const DefaultPageTitle = "README | Generated by README Generator"

// Fragment is one section rendered to both formats.
type Fragment struct {
	Section  string
	Markdown string
	HTML     string
	// Missing is set when the section's template could not be resolved and
	// the section rendered empty.
	Missing bool
}

// Document is an assembled README.
type Document struct {
	// Header is the static banner written first to both outputs.
	Header Fragment
	// Sections are the rendered sections in selection order.
	Sections []Fragment
	// Markdown is the complete Markdown document.
	Markdown string
	// HTML is the complete HTML document, including the page shell when enabled.
	HTML string
}

// Missing returns the ids of sections that rendered empty.
func (d *Document) Missing() []string {
	var ids []string
	for _, f := range d.Sections {
		if f.Missing {
			ids = append(ids, f.Section)
		}
	}
	return ids
}

// Options configures an Assembler.
type Options struct {
	// Labels maps section ids to outline labels.
	Labels map[string]string
	// OutlineExclude lists ids left out of the outline.
	OutlineExclude []string
	// PlainOutline renders the outline as bare headings instead of links.
	PlainOutline bool
	// PageTitle is the HTML <title>; DefaultPageTitle when empty.
	PageTitle string
	// WrapHTML wraps the HTML output in a complete page.
	WrapHTML bool
}

// Assembler combines the header, the outline and the selected sections into
// a Document.
type Assembler struct {
	renderer  *Renderer
	outline   *OutlineBuilder
	converter *markup.Converter
	opts      Options
	logger    *slog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(templates Resolver, converter *markup.Converter, opts Options) *Assembler {
	renderer := NewRenderer(templates)
	return &Assembler{
		renderer:  renderer,
		outline:   NewOutlineBuilder(renderer, opts.OutlineExclude, opts.PlainOutline),
		converter: converter,
		opts:      opts,
		logger:    slog.Default(),
	}
}

// WithLogger sets the logger for degraded sections.
// Returns the assembler for chaining.
func (a *Assembler) WithLogger(logger *slog.Logger) *Assembler {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Assemble renders the header and every id in order into both outputs.
//
// The header template is mandatory: failing to resolve it aborts. Any other
// section whose template cannot be resolved is logged and rendered as an
// empty fragment in both outputs, so the rest of the operator's content
// survives.
func (a *Assembler) Assemble(ids []string, answers Answers) (*Document, error) {
	header, err := a.renderer.Render(section.Header, "")
	if err != nil {
		return nil, fmt.Errorf("rendering header: %w", err)
	}

	// One converter per document keeps heading anchors unique across
	// fragments, in the same sequence the outline links follow.
	conv := a.converter.Document()
	headerHTML, err := conv.ToHTML(header)
	if err != nil {
		return nil, fmt.Errorf("converting header: %w", err)
	}

	doc := &Document{
		Header:   Fragment{Section: section.Header, Markdown: header, HTML: headerHTML},
		Sections: make([]Fragment, 0, len(ids)),
	}

	labels := a.labels(answers)
	for _, id := range ids {
		fragment, err := a.renderSection(conv, id, ids, answers, labels)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, fragment)
	}

	doc.Markdown = a.joinMarkdown(doc)
	doc.HTML = a.joinHTML(doc)
	return doc, nil
}

// renderSection renders one section to both formats. Template failures
// degrade to an empty fragment; conversion failures abort.
func (a *Assembler) renderSection(conv *markup.DocumentConverter, id string, ids []string, answers Answers, labels map[string]string) (Fragment, error) {
	var (
		markdown string
		err      error
	)
	if id == section.TOC {
		markdown, err = a.outline.Markdown(ids, labels)
	} else {
		markdown, err = a.renderer.Render(id, answers[id])
	}
	if err != nil {
		a.logger.Warn("section rendered empty",
			slog.String("section", id),
			slog.String("error", err.Error()),
		)
		return Fragment{Section: id, Missing: true}, nil
	}
	rendered, err := conv.ToHTML(markdown)
	if err != nil {
		return Fragment{}, fmt.Errorf("converting section %s: %w", id, err)
	}
	return Fragment{Section: id, Markdown: markdown, HTML: rendered}, nil
}

// labels returns the outline labels, titling the title heading with the
// operator's project title when one was given.
func (a *Assembler) labels(answers Answers) map[string]string {
	labels := make(map[string]string, len(a.opts.Labels)+1)
	maps.Copy(labels, a.opts.Labels)
	if title := strings.TrimSpace(answers[section.Title]); title != "" {
		labels[section.Title] = title
	}
	return labels
}

func (a *Assembler) joinMarkdown(doc *Document) string {
	var b strings.Builder
	b.WriteString(doc.Header.Markdown)
	for _, f := range doc.Sections {
		b.WriteString(f.Markdown)
	}
	return b.String()
}

func (a *Assembler) joinHTML(doc *Document) string {
	var b strings.Builder
	if a.opts.WrapHTML {
		b.WriteString(pageHead(a.opts.PageTitle))
	}
	b.WriteString(doc.Header.HTML)
	for _, f := range doc.Sections {
		b.WriteString(f.HTML)
	}
	if a.opts.WrapHTML {
		b.WriteString(pageFoot)
	}
	return b.String()
}

const pageFoot = "  </body>\n</html>\n"

func pageHead(title string) string {
	if title == "" {
		title = DefaultPageTitle
	}
	return `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta http-equiv="X-UA-Compatible" content="IE=edge" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>` + html.EscapeString(title) + `</title>
  </head>
  <body>
`
}
