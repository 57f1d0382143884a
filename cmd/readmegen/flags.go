package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/output"
)

// persistentFlag looks a persistent flag up from any command in the tree.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// newPrinter builds the command's printer: results on stdout, errors and
// warnings on stderr, colors per --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	color := output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr())
}

// loadConfig reads the config selected by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(persistentFlag(cmd, "config"))
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid configuration", err)
	}
	slog.Debug("config loaded", slog.String("source", cfg.Source))
	return cfg, nil
}

// setupLogger installs the default slog logger on stderr. Warnings only,
// unless --verbose (info) or --debug (debug) is set.
func setupLogger(cmd *cobra.Command) {
	level := slog.LevelWarn
	switch {
	case persistentFlag(cmd, "debug") == "true":
		level = slog.LevelDebug
	case persistentFlag(cmd, "verbose") == "true":
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}
