package bundle

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"

	"github.com/gorewood/readmegen/internal/document"
	"github.com/gorewood/readmegen/internal/output"
)

var testDoc = &document.Document{
	Markdown: "# Foo\n",
	HTML:     "<h1 id=\"foo\">Foo</h1>\n",
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".downloads")
	now := time.UnixMilli(1700000000123)
	w := NewWriter(dir, "README", true).WithClock(fixedClock(now))

	res, err := w.Write(testDoc)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := &Result{
		Stamp:    1700000000123,
		Markdown: filepath.Join(dir, "1700000000123-README.md"),
		HTML:     filepath.Join(dir, "1700000000123-README.html"),
		Archive:  filepath.Join(dir, "1700000000123-README.zip"),
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, res.Markdown); got != testDoc.Markdown {
		t.Errorf("markdown file = %q", got)
	}
	if got := readFile(t, res.HTML); got != testDoc.HTML {
		t.Errorf("html file = %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("output folder has %d entries, want 3 (no temp files left)", len(entries))
	}
}

func TestWrite_StampsStrictlyIncrease(t *testing.T) {
	w := NewWriter(t.TempDir(), "README", false).WithClock(fixedClock(time.UnixMilli(5000)))

	first, err := w.Write(testDoc)
	if err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	second, err := w.Write(testDoc)
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if second.Stamp <= first.Stamp {
		t.Errorf("stamps %d then %d, want strictly increasing", first.Stamp, second.Stamp)
	}
	if first.Markdown == second.Markdown {
		t.Error("second write reused the first file name")
	}
	if second.Archive != "" {
		t.Errorf("Archive = %q, want none when archiving is off", second.Archive)
	}
}

func TestWrite_ExistingFileConflicts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "42-README.md"), []byte("keep"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(dir, "README", false).WithClock(fixedClock(time.UnixMilli(42)))
	_, err := w.Write(testDoc)

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitConflict {
		t.Fatalf("Write() error = %v, want conflict", err)
	}
	if got := readFile(t, filepath.Join(dir, "42-README.md")); got != "keep" {
		t.Errorf("existing file overwritten: %q", got)
	}
}

func TestWrite_ConflictLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "42-README.html"), []byte("keep"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(dir, "README", true).WithClock(fixedClock(time.UnixMilli(42)))
	_, err := w.Write(testDoc)

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitConflict {
		t.Fatalf("Write() error = %v, want conflict", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"42-README.html"}, names); diff != "" {
		t.Errorf("output folder after conflict (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(dir, "42-README.html")); got != "keep" {
		t.Errorf("existing file overwritten: %q", got)
	}
}

func TestArchive(t *testing.T) {
	data, err := Archive(testDoc, time.UnixMilli(1700000000000))
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	got := make(map[string]string)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Method != zip.Deflate {
			t.Errorf("%s method = %d, want deflate", f.Name, f.Method)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%s) error = %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("ReadAll(%s) error = %v", f.Name, err)
		}
		got[f.Name] = string(body)
	}

	if diff := cmp.Diff([]string{MarkdownEntry, HTMLEntry}, names); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{MarkdownEntry: testDoc.Markdown, HTMLEntry: testDoc.HTML}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry contents mismatch (-want +got):\n%s", diff)
	}
}
