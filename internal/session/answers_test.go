package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/readmegen/internal/section"
)

func TestParseAnswers(t *testing.T) {
	file, err := ParseAnswers([]byte(`
sections: [Title, " usage ", license]
answers:
  TITLE: Foo
  usage: |
    Run it.
  license: MIT License
`))
	if err != nil {
		t.Fatalf("ParseAnswers() error = %v", err)
	}

	want := &AnswerFile{
		Sections: []string{"title", "usage", "license"},
		Answers:  map[string]string{"title": "Foo", "usage": "Run it.\n", "license": "MIT License"},
	}
	if diff := cmp.Diff(want, file); diff != "" {
		t.Errorf("ParseAnswers() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAnswers_Invalid(t *testing.T) {
	if _, err := ParseAnswers([]byte("sections: {")); err == nil {
		t.Fatal("ParseAnswers() expected error for bad YAML")
	}
}

func TestLoadAnswers_Missing(t *testing.T) {
	if _, err := LoadAnswers(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadAnswers() expected error for missing file")
	}
}

func TestAnswerFile_WithSections(t *testing.T) {
	file := &AnswerFile{Sections: []string{"title"}, Answers: map[string]string{"title": "Foo"}}

	if got := file.WithSections(nil); got != file {
		t.Error("WithSections(nil) should keep the file")
	}
	got := file.WithSections([]string{"License", "title"})
	if diff := cmp.Diff([]string{"license", "title"}, got.Sections); diff != "" {
		t.Errorf("Sections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"title"}, file.Sections); diff != "" {
		t.Errorf("original modified (-want +got):\n%s", diff)
	}
}

func TestAnswerFile_ScriptDrivesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	data := "sections: [title, license]\nanswers:\n  title: Foo\n  license: MIT License\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	file, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers() error = %v", err)
	}

	s, _ := newTestSession(t, testConfig(t), file.Script(), Options{})
	ids, answers, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if diff := cmp.Diff([]string{section.Title, section.License}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if answers["license"] != "MIT License" {
		t.Errorf("license answer = %q", answers["license"])
	}
}
