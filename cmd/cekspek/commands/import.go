package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
	"github.com/quochao170402/cekspek/internal/importer"
)

var dryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import phones from a JSON array",
	Long: `Import phones from a JSON array of flat phone objects.

Every item needs "name" and "brand"; the brand must already exist (matched
case-insensitively). Rows are inserted one by one and failures are reported
per row.

Examples:
  cekspek import phones.json
  cekspek import phones.json --dry-run   # validate and preview only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if dryRun {
			return previewImport(cmd, data)
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			res, err := a.catalog.Import(ctx, data)
			if err != nil {
				return err
			}
			output.ImportSummary(cmd.OutOrStdout(), *res)
			return nil
		})
	},
}

func init() {
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and preview without writing")
	rootCmd.AddCommand(importCmd)
}

func previewImport(cmd *cobra.Command, data []byte) error {
	rows, err := importer.Parse(data)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	output.Success(w, "%d HP siap diimport", len(rows))
	for _, r := range rows {
		output.Muted(w, "  %d. %s", r.Index, r.Preview())
	}
	return nil
}
