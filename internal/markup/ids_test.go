package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Usage", "usage"},
		{"Table of Contents", "table-of-contents"},
		{"FAQs?", "faqs"},
		{"snake_case name", "snake-case-name"},
		{"Tool ] broken", "tool--broken"},
		{"  padded  ", "padded"},
		{"!!!", "heading"},
	}
	for _, tt := range tests {
		if got := Slug(tt.label); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestHeadingIDs_Next(t *testing.T) {
	ids := NewHeadingIDs()
	var got []string
	for _, label := range []string{"Usage", "Usage", "usage", "Usage 1", "License"} {
		got = append(got, ids.Next(label))
	}
	// "Usage 1" slugs to the already-claimed "usage-1".
	want := []string{"usage", "usage-1", "usage-2", "usage-1-1", "license"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Next() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_UniqueAnchorsAcrossFragments(t *testing.T) {
	conv := mustConverter(t, DefaultOptions())
	doc := conv.Document()

	first, err := doc.ToHTML("# Usage\n")
	if err != nil {
		t.Fatal(err)
	}
	second, err := doc.ToHTML("## Usage\n")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(first, `<h1 id="usage">`) {
		t.Errorf("first fragment = %q", first)
	}
	if !strings.Contains(second, `<h2 id="usage-1">`) {
		t.Errorf("second fragment = %q, want a suffixed anchor", second)
	}

	// Standalone conversions do not share anchors.
	alone, err := conv.ToHTML("## Usage\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(alone, `<h2 id="usage">`) {
		t.Errorf("ToHTML() = %q", alone)
	}
}
