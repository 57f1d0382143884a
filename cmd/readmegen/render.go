package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/output"
	"github.com/gorewood/readmegen/internal/session"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var (
		answersFlag  string
		sectionsFlag []string
		stdoutFlag   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a README from an answers file",
		Long: `Render a README without asking anything.

The answers file lists the sections in order and the content of each:

  sections: [title, toc, usage, license]
  answers:
    title: My Tool
    usage: |
      Run it.
    license: MIT License

Answers are checked like typed ones: a title needs 3 characters, prose
sections 80, and the license must be one of the configured choices.

Examples:
  readmegen render --answers answers.yaml
  readmegen render --answers answers.yaml --sections title,license
  readmegen render --answers answers.yaml --stdout md > README.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, answersFlag, sectionsFlag, stdoutFlag)
		},
	}

	cmd.Flags().StringVar(&answersFlag, "answers", "", "YAML answers file (required)")
	cmd.Flags().StringSliceVar(&sectionsFlag, "sections", nil, "Sections in order, overriding the answers file")
	cmd.Flags().StringVar(&stdoutFlag, "stdout", "", "Print one format (md or html) instead of writing files")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

// runRender executes the render command.
func runRender(cmd *cobra.Command, answersPath string, sections []string, stdout string) error {
	printer := newPrinter(cmd)

	if stdout != "" && stdout != "md" && stdout != "html" {
		err := output.NewUserError("--stdout must be md or html")
		printer.Error(err)
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	file, err := session.LoadAnswers(answersPath)
	if err != nil {
		err = output.NewUserErrorWithCause("cannot read answers", err)
		printer.Error(err)
		return err
	}

	sess, err := session.New(cfg, file.WithSections(sections).Script(), printer, session.Options{Logger: slog.Default()})
	if err != nil {
		printer.Error(err)
		return err
	}

	doc, err := sess.Compose(cmd.Context())
	if err != nil {
		err = session.Classify(err)
		printer.Error(err)
		return err
	}

	switch stdout {
	case "md":
		printer.Print("%s", doc.Markdown)
		return nil
	case "html":
		printer.Print("%s", doc.HTML)
		return nil
	}

	res, err := sess.Write(doc)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}
	data := map[string]any{
		"message":  "README written",
		"markdown": res.Markdown,
		"html":     res.HTML,
	}
	if res.Archive != "" {
		data["archive"] = res.Archive
	}
	return printer.Success(data)
}
