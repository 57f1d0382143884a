package prompt

import (
	"context"
	"fmt"
	"slices"
)

// Script is an Asker that replays canned answers. Each question name has a
// queue of answers consumed in order, so the same question can be asked
// repeatedly. Answers are validated like operator input, but a rejected
// answer is returned as an ErrValidationFailed error instead of re-asked.
type Script struct {
	queues map[string][]string
	asked  []string
}

// NewScript creates a Script from per-question answer queues.
func NewScript(answers map[string][]string) *Script {
	queues := make(map[string][]string, len(answers))
	for name, values := range answers {
		queues[name] = slices.Clone(values)
	}
	return &Script{queues: queues}
}

// Asked returns the question names asked so far, in order.
func (s *Script) Asked() []string {
	return slices.Clone(s.asked)
}

// Ask implements Asker.
func (s *Script) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.asked = append(s.asked, q.Name)

		answer, err := s.next(q)
		if err != nil {
			return nil, err
		}
		if err := validate(q, answer); err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Name, err)
		}
		answers[q.Name] = answer
	}
	return answers, nil
}

func (s *Script) next(q Question) (string, error) {
	queue := s.queues[q.Name]
	if len(queue) == 0 {
		if q.Default != "" {
			return q.Default, nil
		}
		return "", fmt.Errorf("%w: no scripted answer for %q", ErrEnvironmentUnsupported, q.Name)
	}
	answer := queue[0]
	s.queues[q.Name] = queue[1:]

	if q.Type == List && !slices.Contains(q.Values(), answer) {
		return "", fmt.Errorf("%w: question %q: %q is not one of %v", ErrValidationFailed, q.Name, answer, q.Values())
	}
	return answer, nil
}
