package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	Long: `Create or update the schema of the configured store.

postgres runs gorm AutoMigrate; dynamodb creates the missing tables and the
id counters table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.store.Migrate(ctx); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Schema %s siap", a.store.Driver)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
