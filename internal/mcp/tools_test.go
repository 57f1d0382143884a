package mcp

import (
	"context"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/template"
)

// --- Test helpers ---

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputFolder = t.TempDir()
	return cfg
}

func testStore() *template.Store {
	project := fstest.MapFS{
		"TITLE.md": {Data: []byte("---\ndescription: Project title\n---\n# <!-- title --> (project)\n\n")},
	}
	return template.NewStore(
		template.Source{Name: "project", FS: project},
		template.BuiltinSource(),
	)
}

// --- Sections handler tests ---

func TestHandleSections(t *testing.T) {
	handler := handleSections(testConfig(t))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, SectionsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]string, len(out.Sections))
	for i, s := range out.Sections {
		ids[i] = s.ID
	}
	want := []string{"title", "description", "toc", "installation", "usage", "license", "contributing", "tests", "questions"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("section ids mismatch (-want +got):\n%s", diff)
	}

	toc := out.Sections[2]
	if !toc.Generated || toc.Question != "" {
		t.Errorf("toc = %+v, want generated without question", toc)
	}
	if toc.Label != "Table of Contents" {
		t.Errorf("toc label = %q", toc.Label)
	}

	license := out.Sections[5]
	if diff := cmp.Diff(config.DefaultLicenses, license.Choices); diff != "" {
		t.Errorf("license choices mismatch (-want +got):\n%s", diff)
	}
}

// --- Templates handler tests ---

func TestHandleTemplates_ReportsOverrides(t *testing.T) {
	handler := handleTemplates(testStore())

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, TemplatesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := make(map[string]TemplateInfo, len(out.Templates))
	for _, info := range out.Templates {
		byID[info.ID] = info
	}

	title := byID["title"]
	if title.Source != "project" || title.Overrides != "built-in" {
		t.Errorf("title = %+v, want project overriding built-in", title)
	}
	if usage, ok := byID["usage"]; !ok || usage.Source != "built-in" {
		t.Errorf("usage = %+v, want built-in", usage)
	}
}

// --- Render handler tests ---

func TestHandleRender(t *testing.T) {
	handler := handleRender(testConfig(t), testStore())

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderInput{
		Sections: []string{"title", "license"},
		Answers:  map[string]string{"title": "Foo", "license": "MIT License"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.Markdown, "# Foo (project)") || !strings.Contains(out.Markdown, "MIT License") {
		t.Errorf("Markdown = %q", out.Markdown)
	}
	if !strings.Contains(out.HTML, "MIT License") {
		t.Errorf("HTML missing license:\n%s", out.HTML)
	}
	if len(out.Files) != 0 {
		t.Errorf("Files = %v, want none without write", out.Files)
	}
}

func TestHandleRender_Write(t *testing.T) {
	cfg := testConfig(t)
	handler := handleRender(cfg, testStore())

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderInput{
		Sections: []string{"Title"},
		Answers:  map[string]string{"TITLE": "Foo"},
		Write:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Files) != 3 {
		t.Fatalf("Files = %v, want markdown, html and archive", out.Files)
	}
	for _, path := range out.Files {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file %s not written: %v", path, err)
		}
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   RenderInput
		wantErr string
	}{
		{
			name:    "no sections",
			input:   RenderInput{},
			wantErr: "at least one section",
		},
		{
			name:    "unknown section",
			input:   RenderInput{Sections: []string{"changelog"}},
			wantErr: "not one of",
		},
		{
			name:    "missing answer",
			input:   RenderInput{Sections: []string{"title"}},
			wantErr: "no scripted answer",
		},
		{
			name: "answer fails validation",
			input: RenderInput{
				Sections: []string{"title"},
				Answers:  map[string]string{"title": "Fo"},
			},
			wantErr: "at least 3 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handleRender(testConfig(t), testStore())
			_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// --- Server registration test ---

func TestNewServer_RegistersTools(t *testing.T) {
	server := NewServer("test-version", testConfig(t), testStore())
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
