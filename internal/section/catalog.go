// Package section defines the section catalog, the questions asked for each
// section, and the selection protocol that turns the catalog into an
// operator-chosen, duplicate-free ordering.
package section

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Section identifiers of the default catalog.
const (
	Title        = "title"
	Description  = "description"
	TOC          = "toc"
	Installation = "installation"
	Usage        = "usage"
	License      = "license"
	Contributing = "contributing"
	Tests        = "tests"
	Questions    = "questions"

	// Header is the static banner template rendered before any section.
	// It is never offered for selection.
	Header = "header"
)

// Stop is the terminal choice appended to every selection round.
const Stop = "next"

// Catalog is an ordered set of section identifiers.
type Catalog []string

// DefaultCatalog lists the sections offered by default, in display order.
var DefaultCatalog = Catalog{
	Title,
	Description,
	TOC,
	Installation,
	Usage,
	License,
	Contributing,
	Tests,
	Questions,
}

// NewCatalog builds a catalog, rejecting empty, reserved and duplicate ids.
func NewCatalog(ids ...string) (Catalog, error) {
	seen := make(map[string]bool, len(ids))
	catalog := make(Catalog, 0, len(ids))
	for _, raw := range ids {
		id := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case id == "":
			return nil, errors.New("section id must not be empty")
		case id == Stop || id == Header:
			return nil, fmt.Errorf("section id %q is reserved", id)
		case seen[id]:
			return nil, fmt.Errorf("duplicate section id %q", id)
		}
		seen[id] = true
		catalog = append(catalog, id)
	}
	return catalog, nil
}

// Contains reports whether id is in the catalog.
func (c Catalog) Contains(id string) bool {
	return slices.Contains(c, id)
}

// Without returns a new catalog with id removed. The receiver is not modified.
func (c Catalog) Without(id string) Catalog {
	rest := make(Catalog, 0, len(c))
	for _, existing := range c {
		if existing != id {
			rest = append(rest, existing)
		}
	}
	return rest
}

// displayLabels are the selection-list labels that differ from the id.
var displayLabels = map[string]string{
	TOC:       "Table of Contents",
	Questions: "FAQs",
	Stop:      "next ->",
}

// DisplayLabel returns the label shown for id in the selection list.
func DisplayLabel(id string) string {
	if label, ok := displayLabels[id]; ok {
		return label
	}
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
