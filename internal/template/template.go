package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/readmegen/internal/config"
)

// ErrTemplateNotFound is returned when no source holds a readable template
// for a section.
var ErrTemplateNotFound = errors.New("template not found")

// Extension is the file extension of section templates.
const Extension = ".md"

// Template is a resolved section template.
type Template struct {
	// Metadata from frontmatter
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// ID is the lowercase section id the template was resolved for.
	ID string `yaml:"-"`
	// Body is the template text after frontmatter.
	Body string `yaml:"-"`
	// Source names where the template was found ("project", "global", "built-in").
	Source string `yaml:"-"`
}

// Token returns the substitution token for a section id.
func Token(id string) string {
	return "<!-- " + strings.ToLower(id) + " -->"
}

// HasToken reports whether the body carries the section's token.
func (t *Template) HasToken() bool {
	return strings.Contains(t.Body, Token(t.ID))
}

// Info provides template metadata for listing.
type Info struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"` // source this one shadows
}

// Source is one place templates are read from.
type Source struct {
	Name string
	FS   fs.FS
}

// DirSource reads templates from a directory on disk.
func DirSource(name, dir string) Source {
	return Source{Name: name, FS: os.DirFS(dir)}
}

// Store resolves templates from an ordered list of sources. The first source
// holding a readable template wins.
type Store struct {
	sources []Source
}

// NewStore creates a store over the given sources, skipping nil filesystems.
func NewStore(sources ...Source) *Store {
	kept := make([]Source, 0, len(sources))
	for _, src := range sources {
		if src.FS != nil {
			kept = append(kept, src)
		}
	}
	return &Store{sources: kept}
}

// NewDefaultStore creates the store used by sessions: the project folder,
// the user's global templates directory, then the built-ins when enabled.
func NewDefaultStore(projectDir string, builtin bool) *Store {
	var sources []Source
	if projectDir != "" {
		sources = append(sources, DirSource("project", projectDir))
	}
	if globalDir := config.TemplatesDir(); globalDir != "" {
		sources = append(sources, DirSource("global", globalDir))
	}
	if builtin {
		sources = append(sources, BuiltinSource())
	}
	return NewStore(sources...)
}

// Resolve finds the template for a section id.
func (s *Store) Resolve(id string) (*Template, error) {
	name := FileName(id)

	var lastErr error
	for _, src := range s.sources {
		data, err := fs.ReadFile(src.FS, name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				lastErr = err
			}
			continue
		}

		tmpl, err := parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s template %s: %w", src.Name, name, err)
		}
		tmpl.ID = strings.ToLower(id)
		tmpl.Source = src.Name
		return tmpl, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, lastErr)
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// List returns every template visible through the store, first source first.
// Templates shadowed by an earlier source are reported on the shadowing entry.
func (s *Store) List() []Info {
	seen := make(map[string]int) // id -> index in infos
	var infos []Info

	for _, src := range s.sources {
		for _, info := range listSource(src) {
			if idx, exists := seen[info.ID]; exists {
				if infos[idx].Overrides == "" {
					infos[idx].Overrides = src.Name
				}
				continue
			}
			seen[info.ID] = len(infos)
			infos = append(infos, info)
		}
	}
	return infos
}

// FileName returns the template file name for a section id.
func FileName(id string) string {
	return strings.ToUpper(id) + Extension
}

// listSource lists templates in one source. Unreadable sources list nothing.
func listSource(src Source) []Info {
	entries, err := fs.ReadDir(src.FS, ".")
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}

		data, err := fs.ReadFile(src.FS, entry.Name())
		if err != nil {
			continue
		}
		tmpl, err := parse(string(data))
		if err != nil {
			continue
		}

		infos = append(infos, Info{
			ID:          strings.ToLower(strings.TrimSuffix(entry.Name(), Extension)),
			Description: tmpl.Description,
			Source:      src.Name,
		})
	}
	return infos
}

// parse parses a template with optional YAML frontmatter.
func parse(raw string) (*Template, error) {
	frontmatter, body := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	tmpl.Body = body
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter from the body.
// Frontmatter is delimited by --- lines at the very start of the file. The
// body is returned byte for byte after the closing delimiter line.
func splitFrontmatter(raw string) (frontmatter, body string) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") {
		return "", raw
	}

	_, rest, _ := strings.Cut(raw, "\n")
	if strings.HasPrefix(rest, "---\n") || strings.HasPrefix(rest, "---\r\n") {
		_, after, _ := strings.Cut(rest, "\n")
		return "", after
	}

	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	// Drop the remainder of the closing delimiter line.
	switch {
	case strings.HasPrefix(after, "\r\n"):
		after = after[2:]
	case strings.HasPrefix(after, "\n"):
		after = after[1:]
	case after == "":
	default:
		// "---" followed by text is not a delimiter
		return "", raw
	}
	return before, after
}
