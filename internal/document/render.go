package document

import (
	"strings"

	"github.com/gorewood/readmegen/internal/template"
)

// Resolver looks up section templates.
type Resolver interface {
	Resolve(id string) (*template.Template, error)
}

// Answers maps section ids to operator content. A missing or empty entry
// means the section carries no content.
type Answers map[string]string

// Renderer renders single sections from their templates.
type Renderer struct {
	templates Resolver
}

// NewRenderer creates a Renderer over a template resolver.
func NewRenderer(templates Resolver) *Renderer {
	return &Renderer{templates: templates}
}

// Render returns the Markdown fragment for a section. Content replaces the
// section's token; empty content leaves the template unchanged.
func (r *Renderer) Render(id, content string) (string, error) {
	tmpl, err := r.templates.Resolve(id)
	if err != nil {
		return "", err
	}
	return Fill(tmpl.Body, id, content), nil
}

// Fill substitutes content for the first <!-- id --> token in body.
func Fill(body, id, content string) string {
	if content == "" {
		return body
	}
	return strings.Replace(body, template.Token(id), content, 1)
}
