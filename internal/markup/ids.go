package markup

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// HeadingIDs hands out heading anchors for one document. The first use of a
// slug is returned as is; later uses get "-1", "-2", ... appended.
//
// It implements goldmark's parser.IDs, so the anchors the converter writes
// and the anchors an outline links to come from the same sequence.
type HeadingIDs struct {
	used map[string]bool
}

// NewHeadingIDs returns an empty anchor set.
func NewHeadingIDs() *HeadingIDs {
	return &HeadingIDs{used: make(map[string]bool)}
}

// Next returns the anchor for the next heading labeled label.
func (h *HeadingIDs) Next(label string) string {
	return h.claim(Slug(label))
}

// Generate implements parser.IDs.
func (h *HeadingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	s := slug(string(value))
	if s == "" {
		s = "id"
		if kind == ast.KindHeading {
			s = "heading"
		}
	}
	return []byte(h.claim(s))
}

// Put implements parser.IDs. Explicit ids are reserved as given.
func (h *HeadingIDs) Put(value []byte) {
	h.used[string(value)] = true
}

func (h *HeadingIDs) claim(slug string) string {
	if !h.used[slug] {
		h.used[slug] = true
		return slug
	}
	for i := 1; ; i++ {
		candidate := slug + "-" + strconv.Itoa(i)
		if !h.used[candidate] {
			h.used[candidate] = true
			return candidate
		}
	}
}

// Slug returns the anchor the converter assigns to a heading label on first
// use: ASCII letters and digits lowercased, spaces, hyphens and underscores
// as hyphens, everything else dropped.
func Slug(label string) string {
	if s := slug(label); s != "" {
		return s
	}
	return "heading"
}

func slug(label string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ', r == '\t', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}
