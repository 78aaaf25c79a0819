package commands

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
	"github.com/quochao170402/cekspek/cmd/cekspek/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search phones by name or chipset",
	Long: `Search phones by name or chipset.

With a query the results are printed once. Without one an interactive
search opens and updates as you type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if len(args) > 0 {
				results, err := a.catalog.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), output.SearchResults(results))
				return nil
			}

			p := tea.NewProgram(tui.NewSearchModel(ctx, a.catalog.Search), tea.WithContext(ctx))
			_, err := p.Run()
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
