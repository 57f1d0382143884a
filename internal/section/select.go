package section

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorewood/readmegen/internal/prompt"
)

// ErrSelectionAbandoned is returned by callers when the operator stops
// before choosing any section.
var ErrSelectionAbandoned = errors.New("no sections for the README")

// QuestionName keys the selection answer.
const QuestionName = "sections"

// Select asks the operator to build an ordered list of sections from catalog.
//
// Each round offers the sections not yet chosen plus Stop. A chosen section
// is never offered again, so the result holds no duplicates. Selection ends
// when Stop is chosen or nothing remains to offer. An empty result is not an
// error here; callers decide whether it aborts.
func Select(ctx context.Context, asker prompt.Asker, catalog Catalog) ([]string, error) {
	remaining := catalog.Without(Stop)
	selected := make([]string, 0, len(remaining))

	for len(remaining) > 0 {
		answers, err := asker.Ask(ctx, []prompt.Question{selectionQuestion(remaining)})
		if err != nil {
			return nil, fmt.Errorf("selecting sections: %w", err)
		}

		choice := answers[QuestionName]
		if choice == Stop {
			break
		}
		if !remaining.Contains(choice) {
			return nil, fmt.Errorf("selecting sections: %q is not an offered section", choice)
		}

		selected = append(selected, choice)
		remaining = remaining.Without(choice)
	}

	return selected, nil
}

// selectionQuestion builds one selection round over the remaining sections.
func selectionQuestion(remaining Catalog) prompt.Question {
	choices := make([]prompt.Choice, 0, len(remaining)+1)
	for _, id := range remaining {
		choices = append(choices, prompt.Choice{Value: id, Label: DisplayLabel(id)})
	}
	choices = append(choices, prompt.Choice{Value: Stop, Label: DisplayLabel(Stop)})

	return prompt.Question{
		Name:    QuestionName,
		Type:    prompt.List,
		Message: "Choose a section or select [next] to continue:",
		Choices: choices,
	}
}
