package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/readmegen/internal/markup"
	"github.com/gorewood/readmegen/internal/section"
)

// DefaultFile is the project-local configuration file picked up when no
// explicit path is given.
const DefaultFile = ".readmegen.yaml"

// Outline styles.
const (
	OutlineLinks    = "links"
	OutlineHeadings = "headings"
)

// Config holds the settings for one readmegen session. It is built once and
// passed to every component that needs it.
type Config struct {
	ReadmeFilename   string            `yaml:"readmeFilename"`
	TemplatesFolder  string            `yaml:"templatesFolder"`
	BuiltinTemplates bool              `yaml:"builtinTemplates"`
	OutputFolder     string            `yaml:"outputFolder"`
	Sections         []string          `yaml:"sections"`
	Bundle           bool              `yaml:"bundle"`
	HTML             HTMLConfig        `yaml:"html"`
	Parser           markup.Options    `yaml:"parser"`
	Headings         map[string]string `yaml:"headings"`
	Outline          OutlineConfig     `yaml:"outline"`
	Licenses         []string          `yaml:"licenses"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// HTMLConfig controls the page shell around the hypertext document.
type HTMLConfig struct {
	Title string `yaml:"title"`
	Wrap  bool   `yaml:"wrap"`
}

// OutlineConfig controls table of contents generation.
type OutlineConfig struct {
	// Exclude lists section ids that never appear in the outline.
	Exclude []string `yaml:"exclude"`
	// Style is "links" (linked list) or "headings" (one heading per line).
	Style string `yaml:"style"`
}

// DefaultLicenses are offered when the license section is chosen.
var DefaultLicenses = []string{
	"Apache License 2.0",
	"Boost Software License 1.0",
	"GNU AGPLv3",
	"GNU GPLv3",
	"GNU LGPLv3",
	"Mozilla Public License 2.0",
	"MIT License",
	"The Unlicense",
}

// Default returns the built-in session settings.
func Default() *Config {
	return &Config{
		ReadmeFilename:   "README",
		TemplatesFolder:  "templates",
		BuiltinTemplates: true,
		OutputFolder:     ".downloads",
		Sections:         slices.Clone(section.DefaultCatalog),
		Bundle:           true,
		HTML: HTMLConfig{
			Title: "README | Generated by README Generator",
			Wrap:  true,
		},
		Parser: markup.Options{
			HTML:        true,
			Breaks:      true,
			LangPrefix:  markup.DefaultLangPrefix,
			Typographer: true,
			Quotes:      markup.DefaultQuotes,
		},
		Headings: map[string]string{
			"description":  "Description",
			"toc":          "Table of Contents",
			"installation": "Installation",
			"usage":        "Usage",
			"license":      "License",
			"contributing": "Contributing",
			"tests":        "Tests",
			"questions":    "Questions",
		},
		Outline: OutlineConfig{
			Exclude: []string{"toc", "description"},
			Style:   OutlineLinks,
		},
		Licenses: slices.Clone(DefaultLicenses),
	}
}

// Load builds the session config.
//
// Resolution:
//  1. Built-in defaults
//  2. The file at path, or ./.readmegen.yaml when path is empty and the file exists
//  3. $READMEGEN_TEMPLATES and $READMEGEN_OUTPUT overrides
//
// An explicit path that does not exist is an error; a missing default file is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.Source = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides folders from the environment.
func (c *Config) applyEnv() {
	if dir := os.Getenv("READMEGEN_TEMPLATES"); dir != "" {
		c.TemplatesFolder = dir
	}
	if dir := os.Getenv("READMEGEN_OUTPUT"); dir != "" {
		c.OutputFolder = dir
	}
}

// Validate checks that the settings can drive a session.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ReadmeFilename) == "" {
		return errors.New("readmeFilename must not be empty")
	}
	if strings.ContainsAny(c.ReadmeFilename, `/\`) {
		return fmt.Errorf("readmeFilename %q must not contain path separators", c.ReadmeFilename)
	}
	if c.OutputFolder == "" {
		return errors.New("outputFolder must not be empty")
	}
	if c.TemplatesFolder == "" && !c.BuiltinTemplates {
		return errors.New("templatesFolder is required when builtinTemplates is false")
	}
	if c.Outline.Style != OutlineLinks && c.Outline.Style != OutlineHeadings {
		return fmt.Errorf("outline.style must be %q or %q, got %q", OutlineLinks, OutlineHeadings, c.Outline.Style)
	}
	if len(c.Sections) == 0 {
		return errors.New("sections must list at least one section")
	}
	if _, err := section.NewCatalog(c.Sections...); err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	if len(c.Licenses) == 0 {
		return errors.New("licenses must list at least one license")
	}
	if err := c.Parser.Validate(); err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	return nil
}

// Catalog returns the sections offered for selection, in display order.
// It falls back to the default catalog when Sections does not validate.
func (c *Config) Catalog() section.Catalog {
	catalog, err := section.NewCatalog(c.Sections...)
	if err != nil || len(catalog) == 0 {
		return section.DefaultCatalog
	}
	return catalog
}

// Label returns the display label for a section id, or the id itself.
func (c *Config) Label(id string) string {
	if label, ok := c.Headings[id]; ok && label != "" {
		return label
	}
	return id
}
