// Package session runs one README generation: section selection, content
// questions, assembly of both documents and writing of the bundle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorewood/readmegen/internal/bundle"
	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/document"
	"github.com/gorewood/readmegen/internal/markup"
	"github.com/gorewood/readmegen/internal/output"
	"github.com/gorewood/readmegen/internal/prompt"
	"github.com/gorewood/readmegen/internal/section"
	"github.com/gorewood/readmegen/internal/template"
)

// RetryQuestion names the confirmation asked after a failed attempt.
const RetryQuestion = "tryAgain"

// Options customizes a Session. Zero values select the defaults.
type Options struct {
	// Templates overrides the template store built from the config.
	Templates document.Resolver
	// Retry asks whether to start over after a failed attempt.
	Retry bool
	// Clock stamps output files; time.Now when nil.
	Clock func() time.Time
	// Logger receives diagnostics; slog.Default() when nil.
	Logger *slog.Logger
}

// Session drives the generation of one README.
type Session struct {
	cfg       *config.Config
	asker     prompt.Asker
	printer   *output.Printer
	catalog   section.Catalog
	assembler *document.Assembler
	writer    *bundle.Writer
	retry     bool
	logger    *slog.Logger
}

// New creates a Session from a validated config.
func New(cfg *config.Config, asker prompt.Asker, printer *output.Printer, opts Options) (*Session, error) {
	converter, err := markup.New(cfg.Parser)
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid parser settings", err)
	}

	templates := opts.Templates
	if templates == nil {
		templates = template.NewDefaultStore(cfg.TemplatesFolder, cfg.BuiltinTemplates)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	assembler := document.NewAssembler(templates, converter, document.Options{
		Labels:         cfg.Headings,
		OutlineExclude: cfg.Outline.Exclude,
		PlainOutline:   cfg.Outline.Style == config.OutlineHeadings,
		PageTitle:      cfg.HTML.Title,
		WrapHTML:       cfg.HTML.Wrap,
	}).WithLogger(logger)

	return &Session{
		cfg:       cfg,
		asker:     asker,
		printer:   printer,
		catalog:   cfg.Catalog(),
		assembler: assembler,
		writer:    bundle.NewWriter(cfg.OutputFolder, cfg.ReadmeFilename, cfg.Bundle).WithClock(opts.Clock),
		retry:     opts.Retry,
		logger:    logger,
	}, nil
}

// Collect asks for the sections and then for each section's content.
// The outline is generated, so it only marks its position in the order.
func (s *Session) Collect(ctx context.Context) ([]string, document.Answers, error) {
	ids, err := section.Select(ctx, s.asker, s.catalog)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return nil, nil, section.ErrSelectionAbandoned
	}
	s.logger.Debug("sections selected", slog.Any("sections", ids))

	answers := make(document.Answers, len(ids))
	for _, id := range ids {
		questions := section.QuestionsFor(id, s.cfg.Licenses)
		if len(questions) == 0 {
			continue
		}
		got, err := s.asker.Ask(ctx, questions)
		if err != nil {
			return nil, nil, fmt.Errorf("asking for %s: %w", id, err)
		}
		for _, q := range questions {
			answers[q.Name] = got[q.Name]
		}
	}
	return ids, answers, nil
}

// Compose collects the operator's input and assembles the document.
func (s *Session) Compose(ctx context.Context) (*document.Document, error) {
	ids, answers, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Assemble(ids, answers)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to assemble README", err)
	}
	for _, id := range doc.Missing() {
		s.printer.Warn("section %q has no template and was left empty", id)
	}
	return doc, nil
}

// Run composes and writes one README. When the session allows retries, a
// failed attempt is reported and the operator may start over; otherwise the
// first failure is returned. Cancellation always ends the session and
// discards the document in progress.
func (s *Session) Run(ctx context.Context) (*bundle.Result, error) {
	for {
		res, err := s.attempt(ctx)
		if err == nil {
			if !s.printer.IsJSON() {
				s.printer.Println(completionMessage(res))
			}
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !s.retry {
			return nil, Classify(err)
		}

		s.printer.Error(Classify(err))
		if !s.askRetry(ctx) {
			return nil, Classify(err)
		}
		s.logger.Info("starting over")
	}
}

func (s *Session) attempt(ctx context.Context) (*bundle.Result, error) {
	doc, err := s.Compose(ctx)
	if err != nil {
		return nil, err
	}
	return s.Write(doc)
}

// Write stores doc in the output folder.
func (s *Session) Write(doc *document.Document) (*bundle.Result, error) {
	return s.writer.Write(doc)
}

func (s *Session) askRetry(ctx context.Context) bool {
	answers, err := s.asker.Ask(ctx, []prompt.Question{{
		Name:    RetryQuestion,
		Type:    prompt.Confirm,
		Message: "Do you want to give another try?",
		Default: "false",
	}})
	if err != nil {
		s.logger.Debug("retry question failed", slog.String("error", err.Error()))
		return false
	}
	return answers.Bool(RetryQuestion)
}

func completionMessage(res *bundle.Result) string {
	path := res.Archive
	if path == "" {
		path = res.Markdown
	}
	return fmt.Sprintf("Thanks for using our tool! Your README is ready at %q", path)
}

// Classify maps session errors onto CLI exit errors, keeping the original
// error as the cause.
func Classify(err error) error {
	var exitErr *output.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, section.ErrSelectionAbandoned):
		return output.NewUserErrorWithCause("no sections for the README", err)
	case errors.Is(err, prompt.ErrEnvironmentUnsupported):
		return output.NewNoTerminalError(err)
	case errors.Is(err, prompt.ErrValidationFailed):
		return output.NewUserErrorWithCause("invalid answer", err)
	case errors.Is(err, template.ErrTemplateNotFound):
		return output.NewSystemErrorWithCause("template missing", err)
	default:
		return err
	}
}
