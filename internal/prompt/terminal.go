package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// inlineTerminator ends multi-line input when no editor is configured.
const inlineTerminator = "."

// EditorFunc opens path in an external editor and returns once it exits.
type EditorFunc func(ctx context.Context, path string) error

// Terminal asks questions on a line-oriented console.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	editor EditorFunc
	styles termStyles
}

type termStyles struct {
	mark    lipgloss.Style
	message lipgloss.Style
	hint    lipgloss.Style
	invalid lipgloss.Style
}

// NewTerminal creates a Terminal reading from in and writing to out.
// Colors are enabled only when isTTY is true.
func NewTerminal(in io.Reader, out io.Writer, isTTY bool) *Terminal {
	styles := termStyles{
		mark:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		message: lipgloss.NewStyle().Bold(true),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	if !isTTY {
		styles = termStyles{
			mark:    lipgloss.NewStyle(),
			message: lipgloss.NewStyle(),
			hint:    lipgloss.NewStyle(),
			invalid: lipgloss.NewStyle(),
		}
	}
	return &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
	}
}

// WithEditor sets the external editor used for multi-line questions.
// Returns the terminal for chaining.
func (t *Terminal) WithEditor(editor EditorFunc) *Terminal {
	t.editor = editor
	return t
}

// CommandEditor returns an EditorFunc that runs command with the file path
// appended, attached to the process's standard streams. An empty command
// yields nil (inline entry).
func CommandEditor(command string) EditorFunc {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return func(ctx context.Context, path string) error {
		args := append(slices.Clone(fields[1:]), path)
		cmd := exec.CommandContext(ctx, fields[0], args...) //nolint:gosec // editor command comes from the operator's environment
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("running editor %s: %w", fields[0], err)
		}
		return nil
	}
}

// EditorFromEnv resolves $VISUAL, then $EDITOR.
func EditorFromEnv() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// Ask implements Asker. Each question is asked until its validator accepts
// the input.
func (t *Terminal) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		answer, err := t.askUntilValid(ctx, q)
		if err != nil {
			return nil, err
		}
		answers[q.Name] = answer
	}
	return answers, nil
}

func (t *Terminal) askUntilValid(ctx context.Context, q Question) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		answer, err := t.askOne(ctx, q)
		if err != nil {
			return "", err
		}

		if err := validate(q, answer); err != nil {
			t.printf("%s %s\n", t.styles.invalid.Render(">>"), strings.TrimPrefix(err.Error(), ErrValidationFailed.Error()+": "))
			continue
		}
		return answer, nil
	}
}

func (t *Terminal) askOne(ctx context.Context, q Question) (string, error) {
	switch q.Type {
	case Input:
		return t.askInput(q)
	case Editor:
		return t.askEditor(ctx, q)
	case List:
		return t.askList(q)
	case Confirm:
		return t.askConfirm(q)
	default:
		return "", fmt.Errorf("%w: unknown question type %q", ErrEnvironmentUnsupported, q.Type)
	}
}

func (t *Terminal) askInput(q Question) (string, error) {
	t.header(q.Message, q.Default)
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return q.Default, nil
	}
	return line, nil
}

func (t *Terminal) askList(q Question) (string, error) {
	if len(q.Choices) == 0 {
		return "", fmt.Errorf("%w: list question %q has no choices", ErrEnvironmentUnsupported, q.Name)
	}

	t.header(q.Message, "")
	t.printf("\n")
	for i, choice := range q.Choices {
		t.printf("  %d) %s\n", i+1, choice.Display())
	}

	for {
		t.printf("  %s ", t.styles.hint.Render("Answer:"))
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if line == "" && q.Default != "" {
			return q.Default, nil
		}
		if value, ok := pickChoice(q.Choices, line); ok {
			return value, nil
		}
		t.printf("%s Please enter a valid index\n", t.styles.invalid.Render(">>"))
	}
}

// pickChoice accepts a 1-based index or an exact choice value.
func pickChoice(choices []Choice, input string) (string, bool) {
	if idx, err := strconv.Atoi(input); err == nil {
		if idx >= 1 && idx <= len(choices) {
			return choices[idx-1].Value, true
		}
		return "", false
	}
	for _, c := range choices {
		if c.Value == input {
			return c.Value, true
		}
	}
	return "", false
}

func (t *Terminal) askConfirm(q Question) (string, error) {
	hint := "y/N"
	if q.Default == "true" {
		hint = "Y/n"
	}
	t.printf("%s %s %s ", t.styles.mark.Render("?"), t.styles.message.Render(q.Message), t.styles.hint.Render("("+hint+")"))

	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return "true", nil
	case "n", "no":
		return "false", nil
	case "":
		if q.Default == "true" {
			return "true", nil
		}
		return "false", nil
	default:
		return "false", nil
	}
}

func (t *Terminal) askEditor(ctx context.Context, q Question) (string, error) {
	if t.editor == nil {
		return t.askInline(q)
	}

	t.header(q.Message, "")
	t.printf("\n  %s\n", t.styles.hint.Render("Opening editor..."))

	file, err := os.CreateTemp("", "readmegen-*.md")
	if err != nil {
		return "", fmt.Errorf("creating editor file: %w", err)
	}
	path := file.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := file.WriteString(q.Default); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("writing editor file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing editor file: %w", err)
	}

	if err := t.editor(ctx, path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnvironmentUnsupported, err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // temp file created above
	if err != nil {
		return "", fmt.Errorf("reading editor file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// askInline reads lines until a lone terminator line or end of input.
func (t *Terminal) askInline(q Question) (string, error) {
	t.header(q.Message, "")
	t.printf("\n  %s\n", t.styles.hint.Render("(finish with a line containing only '"+inlineTerminator+"')"))

	var lines []string
	for {
		line, err := t.in.ReadString('\n')
		text := strings.TrimRight(line, "\r\n")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("reading input: %w", err)
			}
			if text != "" && text != inlineTerminator {
				lines = append(lines, text)
			}
			if len(lines) == 0 {
				return "", fmt.Errorf("%w: input closed", ErrEnvironmentUnsupported)
			}
			return strings.Join(lines, "\n"), nil
		}
		if text == inlineTerminator {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, text)
	}
}

// readLine reads one trimmed line. End of input before any text means the
// console can no longer answer.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: input closed", ErrEnvironmentUnsupported)
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) header(message, def string) {
	t.printf("%s %s", t.styles.mark.Render("?"), t.styles.message.Render(message))
	if def != "" {
		t.printf(" %s", t.styles.hint.Render("("+def+")"))
	}
	t.printf(" ")
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}
