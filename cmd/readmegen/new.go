package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/output"
	"github.com/gorewood/readmegen/internal/prompt"
	"github.com/gorewood/readmegen/internal/session"
)

// newOptions holds the flags of an interactive session.
type newOptions struct {
	answers string
	inline  bool
}

// addNewFlags registers the session flags on cmd.
func addNewFlags(cmd *cobra.Command, opts *newOptions) {
	cmd.Flags().StringVar(&opts.answers, "answers", "", "Replay answers from a YAML file instead of asking")
	cmd.Flags().BoolVar(&opts.inline, "inline", false, "Type multi-line answers inline even when $EDITOR is set")
}

// newNewCmd creates the new command.
func newNewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a README interactively",
		Long: `Generate a README by answering questions.

You first pick sections one at a time, in the order they should appear,
and choose [next] when done. Then each section asks for its content.
Multi-line answers open $VISUAL or $EDITOR when set; otherwise type them
inline and end with a line holding a single dot.

The Markdown and HTML files are written to the output folder (.downloads by
default) together with a zip holding both.

Examples:
  readmegen new                        # Ask everything
  readmegen new --answers answers.yaml # Replay a recorded session
  readmegen new --inline               # Never open an editor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd, opts)
		},
	}
	addNewFlags(cmd, &opts)

	return cmd
}

// runNew executes an interactive or replayed session.
func runNew(cmd *cobra.Command, opts newOptions) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	asker, interactive, err := newAsker(cmd, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	sess, err := session.New(cfg, asker, printer, session.Options{
		Retry:  interactive,
		Logger: slog.Default(),
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	res, err := sess.Run(cmd.Context())
	if err != nil {
		err = session.Classify(err)
		// Interactive sessions have already reported each failed attempt.
		if !interactive {
			printer.Error(err)
		}
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}
	return nil
}

// newAsker returns the replay script when --answers is given, otherwise a
// terminal on the command's streams. Prompts go to stderr in JSON mode so
// stdout stays machine-readable.
func newAsker(cmd *cobra.Command, opts newOptions) (prompt.Asker, bool, error) {
	if opts.answers != "" {
		file, err := session.LoadAnswers(opts.answers)
		if err != nil {
			return nil, false, output.NewUserErrorWithCause("cannot replay answers", err)
		}
		return file.Script(), false, nil
	}

	out := cmd.OutOrStdout()
	if isJSONMode(cmd) {
		out = cmd.ErrOrStderr()
	}
	color := output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(out))
	terminal := prompt.NewTerminal(cmd.InOrStdin(), out, color)
	if !opts.inline {
		terminal.WithEditor(prompt.CommandEditor(prompt.EditorFromEnv()))
	}
	return terminal, true, nil
}
