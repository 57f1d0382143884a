// Package bundle writes assembled documents to the output folder: one
// Markdown file, one HTML file and an optional zip archive holding both,
// all sharing a millisecond timestamp prefix.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/gorewood/readmegen/internal/document"
	"github.com/gorewood/readmegen/internal/output"
)

// Archive entry names.
const (
	MarkdownEntry = "README.md"
	HTMLEntry     = "README.html"
)

// Result lists the files written for one document.
type Result struct {
	Stamp    int64  `json:"stamp"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Archive  string `json:"archive,omitempty"`
}

// Writer writes documents under a directory.
type Writer struct {
	dir     string
	name    string
	archive bool
	now     func() time.Time
	last    int64
}

// NewWriter creates a Writer that names files <stamp>-<name>.<ext> in dir.
// When archive is set each write also produces a zip of both documents.
func NewWriter(dir, name string, archive bool) *Writer {
	return &Writer{dir: dir, name: name, archive: archive, now: time.Now}
}

// WithClock replaces the clock used for file stamps.
// Returns the writer for chaining.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	if now != nil {
		w.now = now
	}
	return w
}

// Write stores both renditions of doc. Stamps increase strictly across
// writes from the same Writer, so a second write within the same
// millisecond never collides with the first.
func (w *Writer) Write(doc *document.Document) (*Result, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create output folder", err)
	}

	stamp := w.stamp()
	base := filepath.Join(w.dir, strconv.FormatInt(stamp, 10)+"-"+w.name)
	res := &Result{
		Stamp:    stamp,
		Markdown: base + ".md",
		HTML:     base + ".html",
	}

	files := []outputFile{
		{res.Markdown, []byte(doc.Markdown)},
		{res.HTML, []byte(doc.HTML)},
	}
	if w.archive {
		data, err := Archive(doc, time.UnixMilli(stamp))
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to build archive", err)
		}
		res.Archive = base + ".zip"
		files = append(files, outputFile{res.Archive, data})
	}

	if err := writeAll(files); err != nil {
		return nil, err
	}
	return res, nil
}

type outputFile struct {
	path string
	data []byte
}

// writeAll writes every file or none. Each name is claimed exclusively
// before any content is written, so an existing file aborts the write
// without touching it and leaves no partial output behind.
func writeAll(files []outputFile) error {
	claimed := make([]string, 0, len(files))
	release := func() {
		for _, path := range claimed {
			_ = os.Remove(path)
		}
	}

	for _, f := range files {
		if err := claim(f.path); err != nil {
			release()
			if errors.Is(err, fs.ErrExist) {
				return output.NewConflictError("output file already exists: " + f.path)
			}
			return output.NewSystemErrorWithCause("failed to create "+filepath.Base(f.path), err)
		}
		claimed = append(claimed, f.path)
	}

	for _, f := range files {
		if err := atomicWrite(f.path, f.data); err != nil {
			release()
			return output.NewSystemErrorWithCause("failed to write "+filepath.Base(f.path), err)
		}
	}
	return nil
}

// claim creates an empty file at path, failing if it already exists.
func claim(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // output path built from config
	if err != nil {
		return err
	}
	return f.Close()
}

func (w *Writer) stamp() int64 {
	stamp := w.now().UnixMilli()
	if stamp <= w.last {
		stamp = w.last + 1
	}
	w.last = stamp
	return stamp
}

// Archive returns a zip holding the Markdown and HTML documents, compressed
// at the highest deflate level.
func Archive(doc *document.Document, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	entries := []struct {
		name string
		body string
	}{
		{MarkdownEntry, doc.Markdown},
		{HTMLEntry, doc.HTML},
	}
	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", e.name, err)
		}
		if _, err := io.WriteString(fw, e.body); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
