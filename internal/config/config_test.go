package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/readmegen/internal/section"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "readmegen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("READMEGEN_TEMPLATES", "")
	t.Setenv("READMEGEN_OUTPUT", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("READMEGEN_TEMPLATES", "")
	t.Setenv("READMEGEN_OUTPUT", "")

	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("readmeFilename: DOCS\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReadmeFilename != "DOCS" {
		t.Errorf("ReadmeFilename = %q, want %q", cfg.ReadmeFilename, "DOCS")
	}
	if cfg.Source != DefaultFile {
		t.Errorf("Source = %q, want %q", cfg.Source, DefaultFile)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing explicit file")
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	t.Setenv("READMEGEN_TEMPLATES", "")
	t.Setenv("READMEGEN_OUTPUT", "")
	path := writeConfig(t, t.TempDir(), `
readmeFilename: MANUAL
templatesFolder: ./partials
parser:
  breaks: false
  quotes: "«»‹›"
headings:
  questions: FAQ
outline:
  exclude: [toc]
  style: headings
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ReadmeFilename != "MANUAL" {
		t.Errorf("ReadmeFilename = %q, want MANUAL", cfg.ReadmeFilename)
	}
	if cfg.TemplatesFolder != "./partials" {
		t.Errorf("TemplatesFolder = %q, want ./partials", cfg.TemplatesFolder)
	}
	if cfg.Parser.Breaks {
		t.Error("Parser.Breaks = true, want false from file")
	}
	if !cfg.Parser.HTML {
		t.Error("Parser.HTML = false, want default true kept")
	}
	if cfg.Parser.Quotes != "«»‹›" {
		t.Errorf("Parser.Quotes = %q", cfg.Parser.Quotes)
	}
	if got := cfg.Label("questions"); got != "FAQ" {
		t.Errorf("Label(questions) = %q, want FAQ", got)
	}
	if got := cfg.Label("usage"); got != "Usage" {
		t.Errorf("Label(usage) = %q, want default Usage kept", got)
	}
	if diff := cmp.Diff([]string{"toc"}, cfg.Outline.Exclude); diff != "" {
		t.Errorf("Outline.Exclude mismatch (-want +got):\n%s", diff)
	}
	if cfg.Outline.Style != OutlineHeadings {
		t.Errorf("Outline.Style = %q, want %q", cfg.Outline.Style, OutlineHeadings)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("READMEGEN_TEMPLATES", "/env/templates")
	t.Setenv("READMEGEN_OUTPUT", "/env/out")
	path := writeConfig(t, t.TempDir(), "templatesFolder: ./file\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TemplatesFolder != "/env/templates" {
		t.Errorf("TemplatesFolder = %q, want env value", cfg.TemplatesFolder)
	}
	if cfg.OutputFolder != "/env/out" {
		t.Errorf("OutputFolder = %q, want env value", cfg.OutputFolder)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "readmeFilename: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty filename", func(c *Config) { c.ReadmeFilename = " " }, "readmeFilename"},
		{"filename with separator", func(c *Config) { c.ReadmeFilename = "a/b" }, "path separators"},
		{"empty output", func(c *Config) { c.OutputFolder = "" }, "outputFolder"},
		{"no template source", func(c *Config) {
			c.TemplatesFolder = ""
			c.BuiltinTemplates = false
		}, "templatesFolder"},
		{"bad outline style", func(c *Config) { c.Outline.Style = "tree" }, "outline.style"},
		{"no licenses", func(c *Config) { c.Licenses = nil }, "licenses"},
		{"no sections", func(c *Config) { c.Sections = nil }, "sections"},
		{"duplicate section", func(c *Config) { c.Sections = []string{"usage", "Usage"} }, "duplicate section"},
		{"reserved section", func(c *Config) { c.Sections = []string{"title", "next"} }, "reserved"},
		{"bad quotes", func(c *Config) { c.Parser.Quotes = "ab" }, "parser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLabel_FallsBackToID(t *testing.T) {
	cfg := Default()
	if got := cfg.Label("custom"); got != "custom" {
		t.Errorf("Label(custom) = %q, want id", got)
	}
}

func TestLoad_Sections(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("READMEGEN_TEMPLATES", "")
	t.Setenv("READMEGEN_OUTPUT", "")
	path := writeConfig(t, t.TempDir(), "sections: [Title, usage, changelog]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(section.Catalog{"title", "usage", "changelog"}, cfg.Catalog()); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(section.DefaultCatalog, Default().Catalog()); diff != "" {
		t.Errorf("default Catalog() mismatch (-want +got):\n%s", diff)
	}
}
