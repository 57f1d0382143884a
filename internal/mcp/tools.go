package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/output"
	"github.com/gorewood/readmegen/internal/section"
	"github.com/gorewood/readmegen/internal/session"
	"github.com/gorewood/readmegen/internal/template"
)

// --- Sections tool ---

// SectionsInput is the input for the sections tool (no parameters needed).
type SectionsInput struct{}

// SectionInfo describes one selectable section.
type SectionInfo struct {
	ID        string   `json:"id"                 jsonschema:"section id used in render"`
	Label     string   `json:"label"              jsonschema:"heading label used in the outline"`
	Generated bool     `json:"generated"          jsonschema:"true when the section is generated and takes no answer"`
	Question  string   `json:"question,omitempty" jsonschema:"question asked to fill the section"`
	Choices   []string `json:"choices,omitempty"  jsonschema:"allowed answers for list questions"`
}

// SectionsOutput is the output for the sections tool.
type SectionsOutput struct {
	Sections []SectionInfo `json:"sections" jsonschema:"sections in catalog order"`
}

func handleSections(cfg *config.Config) mcp.ToolHandlerFor[SectionsInput, SectionsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ SectionsInput) (*mcp.CallToolResult, SectionsOutput, error) {
		return nil, SectionsOutput{Sections: describeSections(cfg)}, nil
	}
}

func describeSections(cfg *config.Config) []SectionInfo {
	catalog := cfg.Catalog()
	infos := make([]SectionInfo, 0, len(catalog))
	for _, id := range catalog {
		info := SectionInfo{ID: id, Label: cfg.Label(id)}
		questions := section.QuestionsFor(id, cfg.Licenses)
		if len(questions) == 0 {
			info.Generated = true
		} else {
			info.Question = questions[0].Message
			info.Choices = questions[0].Values()
		}
		infos = append(infos, info)
	}
	return infos
}

// --- Templates tool ---

// TemplatesInput is the input for the templates tool (no parameters needed).
type TemplatesInput struct{}

// TemplateInfo describes one resolvable template.
type TemplateInfo struct {
	ID          string `json:"id"                    jsonschema:"section id"`
	Description string `json:"description,omitempty" jsonschema:"template description from frontmatter"`
	Source      string `json:"source"                jsonschema:"where the template is read from: project, global or built-in"`
	Overrides   string `json:"overrides,omitempty"   jsonschema:"source shadowed by this template"`
}

// TemplatesOutput is the output for the templates tool.
type TemplatesOutput struct {
	Templates []TemplateInfo `json:"templates" jsonschema:"templates, first source first"`
}

func handleTemplates(templates *template.Store) mcp.ToolHandlerFor[TemplatesInput, TemplatesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ TemplatesInput) (*mcp.CallToolResult, TemplatesOutput, error) {
		list := templates.List()
		out := TemplatesOutput{Templates: make([]TemplateInfo, 0, len(list))}
		for _, info := range list {
			out.Templates = append(out.Templates, TemplateInfo{
				ID:          info.ID,
				Description: info.Description,
				Source:      info.Source,
				Overrides:   info.Overrides,
			})
		}
		return nil, out, nil
	}
}

// --- Render tool ---

// RenderInput is the input for the render tool.
type RenderInput struct {
	Sections []string          `json:"sections"        jsonschema:"section ids in document order"`
	Answers  map[string]string `json:"answers"         jsonschema:"answer per section id; toc takes none"`
	Write    bool              `json:"write,omitempty" jsonschema:"also write the files to the output folder"`
}

// RenderOutput is the output for the render tool.
type RenderOutput struct {
	Markdown string   `json:"markdown"           jsonschema:"rendered Markdown document"`
	HTML     string   `json:"html"               jsonschema:"rendered HTML document"`
	Missing  []string `json:"missing,omitempty"  jsonschema:"sections left empty because their template is missing"`
	Files    []string `json:"files,omitempty"    jsonschema:"files written when write=true"`
}

func handleRender(cfg *config.Config, templates *template.Store) mcp.ToolHandlerFor[RenderInput, RenderOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
		if len(input.Sections) == 0 {
			return nil, RenderOutput{}, errors.New("sections must list at least one section")
		}

		answers := session.NewAnswerFile(input.Sections, input.Answers)
		printer := output.NewPrinter(io.Discard, true, false)
		sess, err := session.New(cfg, answers.Script(), printer, session.Options{
			Templates: templates,
		})
		if err != nil {
			return nil, RenderOutput{}, err
		}

		doc, err := sess.Compose(ctx)
		if err != nil {
			return nil, RenderOutput{}, fmt.Errorf("rendering README: %w", err)
		}
		out := RenderOutput{Markdown: doc.Markdown, HTML: doc.HTML, Missing: doc.Missing()}

		if input.Write {
			res, err := sess.Write(doc)
			if err != nil {
				return nil, RenderOutput{}, fmt.Errorf("writing README: %w", err)
			}
			out.Files = []string{res.Markdown, res.HTML}
			if res.Archive != "" {
				out.Files = append(out.Files, res.Archive)
			}
		}
		return nil, out, nil
	}
}
