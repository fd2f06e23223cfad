package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show the roster grouped by pod lead for one week",
		Args:  cobra.NoArgs,
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)
	cmd.Flags().IntVarP(&week, "week", "w", 0, "Week of the planning window (0 is the current week)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app.Logger.Debug("roster command", zap.String("scenario_id", scenarioID()), zap.Int("week", week))

		result, err := services.ViewRoster(app.Ctx, app.Database, app.Cfg, app.Clock, app.Logger, scenarioID(), week)
		if err != nil {
			return err
		}

		renderRoster(app, result)
		return nil
	}

	return cmd
}

func renderRoster(app *AppContext, result *services.ViewRosterResult) {
	fmt.Fprintf(app.Out, "\nScenario: %s | %s (%s)\n", result.Scenario.Name, result.Week.WeekLabel, result.Week.WeekStartStr)

	for _, g := range result.Groups {
		tw := newTable(app)
		tw.SetTitle(fmt.Sprintf("%s | %s / %s days | %d red, %d yellow",
			g.Group.Label,
			formatDays(g.Summary.AssignedDays),
			formatDays(g.Summary.TotalCapDays),
			g.Summary.RedCount,
			g.Summary.YellowCount))
		tw.AppendHeader(table.Row{"Pod", "Person", "Role", "Assigned", "Capacity", "Level", "Pods"})

		for _, p := range g.People {
			tw.AppendRow(table.Row{
				p.SubgroupName,
				p.Person.Name,
				string(p.Person.Role),
				formatDays(p.AssignedDays),
				formatDays(p.Person.WeeklyCapacityDays),
				levelText(p.Level),
				breakdownText(result.Labeler, p.Breakdown),
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})

		fmt.Fprintln(app.Out)
		tw.Render()
	}
	fmt.Fprintln(app.Out, "\n* cross-pod work")
}
