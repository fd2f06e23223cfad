package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// PublishRosterCmd creates the publishRoster command
func PublishRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishRoster",
		Short: "Publish the roster for the planning window to the roster sheet",
		Args:  cobra.NoArgs,
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if app.SheetsClient == nil {
			return fmt.Errorf("sheets client is not configured; set rosterSheetID in the config")
		}

		result, err := services.PublishRoster(app.Ctx, app.Database, app.SheetsClient, app.Cfg, app.Clock, app.Logger, scenarioID())
		if err != nil {
			return err
		}

		fmt.Fprintf(app.Out, "\n✓ Roster published to tab %q (%d people)\n\n", result.TabTitle, len(result.Roster.Rows))
		return nil
	}

	return cmd
}
