// Package prompt defines the answer-collection boundary: question specs, the
// Asker capability, and validators. Terminal asks an operator on a console;
// Script replays canned answers.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEnvironmentUnsupported is returned when the interactive medium cannot
// render a question or has stopped supplying input. Callers treat it as
// recoverable at the session boundary.
var ErrEnvironmentUnsupported = errors.New("prompt couldn't be rendered in the current environment")

// ErrValidationFailed marks input rejected by a question's validator.
// Terminal handles it by asking again; it only escapes from Script.
var ErrValidationFailed = errors.New("validation failed")

// Type selects the input widget for a question.
type Type string

// Question types.
const (
	Input   Type = "input"   // single free line
	Editor  Type = "editor"  // multi-line text
	List    Type = "list"    // single choice from Choices
	Confirm Type = "confirm" // yes/no, answered as "true" or "false"
)

// Choice is one entry of a list question.
type Choice struct {
	Value string
	Label string // shown instead of Value when set
}

// Display returns the label shown to the operator.
func (c Choice) Display() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Value
}

// Question describes one answer to collect.
type Question struct {
	// Name keys the answer in the returned Answers.
	Name    string
	Type    Type
	Message string
	Choices []Choice
	// Default is used when the operator enters nothing.
	Default string
	// Validate returns nil to accept the input or an error whose message is
	// shown before asking again.
	Validate func(input string) error
}

// Values returns the choice values in order.
func (q Question) Values() []string {
	values := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		values[i] = c.Value
	}
	return values
}

// Answers maps question names to the collected input.
type Answers map[string]string

// Bool reads a confirm answer.
func (a Answers) Bool(name string) bool {
	return a[name] == "true"
}

// Asker collects answers for a batch of questions. It returns exactly one
// answer per question name, or ErrEnvironmentUnsupported when it cannot ask.
type Asker interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}

// Strings converts plain values into choices.
func Strings(values ...string) []Choice {
	choices := make([]Choice, len(values))
	for i, v := range values {
		choices[i] = Choice{Value: v}
	}
	return choices
}

// MinLength rejects input shorter than n characters after trimming.
func MinLength(n int, message string) func(string) error {
	return func(input string) error {
		if utf8.RuneCountInString(strings.TrimSpace(input)) < n {
			return errors.New(message)
		}
		return nil
	}
}

// MinText rejects text with fewer than minLines non-blank lines or fewer than
// minChars characters overall.
func MinText(minLines, minChars int) func(string) error {
	return func(input string) error {
		trimmed := strings.TrimSpace(input)
		lines := 0
		for line := range strings.SplitSeq(trimmed, "\n") {
			if strings.TrimSpace(line) != "" {
				lines++
			}
		}
		if lines < minLines || utf8.RuneCountInString(trimmed) < minChars {
			return fmt.Errorf("must be at least %d line(s) and %d characters long", minLines, minChars)
		}
		return nil
	}
}

// validate runs a question's validator, wrapping failures in ErrValidationFailed.
func validate(q Question, input string) error {
	if q.Validate == nil {
		return nil
	}
	if err := q.Validate(input); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}
	return nil
}
