package document

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gorewood/readmegen/internal/markup"
	"github.com/gorewood/readmegen/internal/section"
)

// Heading is one outline entry.
type Heading struct {
	Level   int
	Label   string
	Section string
}

// Outline is the heading list derived from a section selection.
type Outline []Heading

// BuildOutline derives the outline from the selected ids in selection order.
// Excluded ids are skipped, labels fall back to the raw id, the first
// heading is level 1 and every other heading level 2.
func BuildOutline(ids []string, labels map[string]string, exclude []string) Outline {
	outline := make(Outline, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(exclude, id) {
			continue
		}
		label := labels[id]
		if label == "" {
			label = id
		}
		level := 2
		if len(outline) == 0 {
			level = 1
		}
		outline = append(outline, Heading{Level: level, Label: label, Section: id})
	}
	return outline
}

// Headings renders one Markdown heading per line.
func (o Outline) Headings() string {
	lines := make([]string, len(o))
	for i, h := range o {
		lines[i] = strings.Repeat("#", h.Level) + " " + h.Label
	}
	return strings.Join(lines, "\n")
}

// Links renders a nested list linking each heading's anchor. Repeated labels
// link to suffixed anchors ("usage", "usage-1"), as the converter assigns them.
func (o Outline) Links() string {
	ids := markup.NewHeadingIDs()
	lines := make([]string, len(o))
	for i, h := range o {
		bullet := "-"
		if h.Level > 1 {
			bullet = strings.Repeat("  ", h.Level-1) + "*"
		}
		lines[i] = fmt.Sprintf("%s [%s](#%s)", bullet, linkTextEscaper.Replace(h.Label), ids.Next(h.Label))
	}
	return strings.Join(lines, "\n")
}

// linkTextEscaper keeps labels from closing the link text early.
var linkTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// OutlineBuilder renders the outline section through the toc template.
type OutlineBuilder struct {
	renderer *Renderer
	exclude  []string
	plain    bool
}

// NewOutlineBuilder creates an OutlineBuilder. Ids in exclude never appear in
// the outline, and neither does the toc section itself. A plain outline is
// one heading per line; otherwise it is a linked list.
func NewOutlineBuilder(renderer *Renderer, exclude []string, plain bool) *OutlineBuilder {
	excluded := slices.Clone(exclude)
	if !slices.Contains(excluded, section.TOC) {
		excluded = append(excluded, section.TOC)
	}
	return &OutlineBuilder{
		renderer: renderer,
		exclude:  excluded,
		plain:    plain,
	}
}

// Markdown renders the outline for the selected ids through the toc template.
func (b *OutlineBuilder) Markdown(ids []string, labels map[string]string) (string, error) {
	outline := BuildOutline(ids, labels, b.exclude)
	if b.plain {
		return b.renderer.Render(section.TOC, outline.Headings())
	}
	return b.renderer.Render(section.TOC, outline.Links())
}
