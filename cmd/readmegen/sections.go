package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/section"
)

// sectionRow describes one catalog entry for listing.
type sectionRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Input string `json:"input"`
}

// newSectionsCmd creates the sections command.
func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections a README can hold",
		Long: `List the selectable sections in catalog order with their heading label
and how their content is collected (generated, input, list or editor).`,
		Args: cobra.NoArgs,
		RunE: runSections,
	}
}

func runSections(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	rows := sectionRows(cfg)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"sections": rows})
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.ID, r.Label, r.Input}
	}
	printer.Table([]string{"ID", "LABEL", "INPUT"}, table)
	return nil
}

func sectionRows(cfg *config.Config) []sectionRow {
	catalog := cfg.Catalog()
	rows := make([]sectionRow, 0, len(catalog))
	for _, id := range catalog {
		input := "generated"
		if questions := section.QuestionsFor(id, cfg.Licenses); len(questions) > 0 {
			input = string(questions[0].Type)
		}
		rows = append(rows, sectionRow{ID: id, Label: cfg.Label(id), Input: input})
	}
	return rows
}
