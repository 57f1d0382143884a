// Package main provides the entry point for the readmegen CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/envfile"
	"github.com/gorewood/readmegen/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Without a subcommand it starts an
// interactive session, like `readmegen new`.
func newRootCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "readmegen",
		Short: "Interactive README generator",
		Long: `readmegen asks which sections your README needs, in which order, and
what goes in each of them, then writes the result as Markdown and HTML.

Sections come from templates: a project folder (templatesFolder in
.readmegen.yaml), ~/.config/readmegen/templates, then the built-in set.
Every template carries one <!-- id --> token that your answer replaces.

Run without a subcommand to start a session.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd, opts)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		setupLogger(cmd)
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+")")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	cmd.PersistentFlags().Bool("debug", false, "Log debug detail to stderr")
	addNewFlags(cmd, &opts)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. The first file setting a
// variable wins and the process environment always wins over files.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/readmegen/env
func loadEnvFiles() {
	_ = envfile.LoadAll(".env.local", ".env", config.EnvFile())
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "info", Title: "Inspection Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newNewCmd(), "core")
	addGroupedCommand(cmd, newRenderCmd(), "core")

	addGroupedCommand(cmd, newSectionsCmd(), "info")
	addGroupedCommand(cmd, newTemplatesCmd(), "info")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
