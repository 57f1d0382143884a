package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/output"
	"github.com/gorewood/readmegen/internal/template"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [<id>]",
		Short: "List section templates or show one",
		Long: `List the section templates readmegen can see, where each one is read
from, and which source it overrides. With an id, print the template that
would be used for that section.

Sources, first match wins:
  project   templatesFolder from the config (default ./templates)
  global    ~/.config/readmegen/templates
  built-in  shipped with readmegen (disable with builtinTemplates: false)

Examples:
  readmegen templates
  readmegen templates license`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	store := newTemplateStore(cfg)

	if len(args) == 1 {
		return showTemplate(printer, store, args[0])
	}

	infos := store.List()
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"templates": infos})
	}
	if len(infos) == 0 {
		printer.Warn("no templates found; check templatesFolder in your config")
		return nil
	}

	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.ID, info.Source, info.Overrides, info.Description}
	}
	printer.Section("Templates")
	printer.Table([]string{"ID", "SOURCE", "OVERRIDES", "DESCRIPTION"}, rows)
	return nil
}

func showTemplate(printer *output.Printer, store *template.Store, id string) error {
	tmpl, err := store.Resolve(id)
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			err = output.NewUserErrorWithCause("no template for section "+id, err)
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"id":          tmpl.ID,
			"source":      tmpl.Source,
			"description": tmpl.Description,
			"has_token":   tmpl.HasToken(),
			"body":        tmpl.Body,
		})
	}
	if !tmpl.HasToken() {
		printer.Warn("template has no %s token; answers for it are ignored", template.Token(id))
	}
	printer.Box(template.FileName(id)+" ("+tmpl.Source+")", tmpl.Body)
	return nil
}

func newTemplateStore(cfg *config.Config) *template.Store {
	return template.NewDefaultStore(cfg.TemplatesFolder, cfg.BuiltinTemplates)
}
