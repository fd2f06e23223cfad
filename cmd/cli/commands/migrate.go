package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations (postgres store only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrator == nil {
				return fmt.Errorf("the %s store has no migrations", app.Cfg.Store.Backend)
			}

			applied, err := app.Migrator.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(app.Out, "\nDatabase is up to date")
				return nil
			}
			fmt.Fprintf(app.Out, "\n✓ Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Fprintf(app.Out, "  %s\n", name)
			}
			fmt.Fprintln(app.Out)
			return nil
		},
	}
}
