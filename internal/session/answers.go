package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/readmegen/internal/prompt"
	"github.com/gorewood/readmegen/internal/section"
)

// AnswerFile is a recorded session: the ordered sections and the content
// for each of them.
//
//	sections: [title, toc, usage, license]
//	answers:
//	  title: My Tool
//	  usage: |
//	    Run it.
//	  license: MIT License
type AnswerFile struct {
	Sections []string          `yaml:"sections" json:"sections"`
	Answers  map[string]string `yaml:"answers" json:"answers"`
}

// LoadAnswers reads an AnswerFile from YAML.
func LoadAnswers(path string) (*AnswerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("answers file %s does not exist", path)
		}
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes an AnswerFile. Section ids are normalized to lower
// case and answer keys follow them.
func ParseAnswers(data []byte) (*AnswerFile, error) {
	var file AnswerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing answers file: %w", err)
	}
	return NewAnswerFile(file.Sections, file.Answers), nil
}

// NewAnswerFile builds an AnswerFile with normalized section ids and answer
// keys.
func NewAnswerFile(sections []string, answers map[string]string) *AnswerFile {
	file := &AnswerFile{
		Sections: make([]string, 0, len(sections)),
		Answers:  make(map[string]string, len(answers)),
	}
	for _, id := range sections {
		file.Sections = append(file.Sections, normalizeID(id))
	}
	for key, value := range answers {
		file.Answers[normalizeID(key)] = value
	}
	return file
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// WithSections returns a copy of the file choosing ids instead of its own
// sections. Empty ids keep the recorded sections.
func (f *AnswerFile) WithSections(ids []string) *AnswerFile {
	if len(ids) == 0 {
		return f
	}
	return NewAnswerFile(ids, f.Answers)
}

// Script replays the file as operator input: each recorded section is
// picked in order, then Stop, and every question receives its answer.
func (f *AnswerFile) Script() *prompt.Script {
	queues := map[string][]string{
		section.QuestionName: append(slices.Clone(f.Sections), section.Stop),
	}
	for key, value := range f.Answers {
		queues[key] = []string{value}
	}
	return prompt.NewScript(queues)
}
