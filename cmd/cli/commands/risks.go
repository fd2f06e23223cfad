package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// RisksCmd creates the risks command
func RisksCmd(app *AppContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "risks",
		Short: "Show work item and people risks over the planning window",
		Args:  cobra.NoArgs,
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)
	cmd.Flags().BoolVar(&showAll, "all", false, "Include green work items")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app.Logger.Debug("risks command", zap.String("scenario_id", scenarioID()), zap.Bool("all", showAll))

		result, err := services.ViewRisks(app.Ctx, app.Database, app.Cfg, app.Clock, app.Logger, scenarioID())
		if err != nil {
			return err
		}

		renderRisks(app, result, showAll)
		return nil
	}

	return cmd
}

func renderRisks(app *AppContext, result *services.ViewRisksResult, showAll bool) {
	names := make(map[string]string, len(result.People))
	for _, p := range result.People {
		names[p.ID] = p.Name
	}
	weekLabels := make(map[string]string, len(result.Weeks))
	for _, w := range result.Weeks {
		weekLabels[w.WeekStartStr] = w.WeekLabel
	}

	fmt.Fprintf(app.Out, "\nScenario: %s\n\n", result.Scenario.Name)

	rows := result.WorkItems
	if !showAll {
		rows = risk.AtRisk(rows)
	}

	header := table.Row{"Work item", "Dates", "Req/wk"}
	for i := 0; i < app.Cfg.DashboardWeeks && i < len(result.Weeks); i++ {
		header = append(header, result.Weeks[i].WeekLabel)
	}
	header = append(header, "Feasibility", "Status")

	tw := newTable(app)
	tw.SetTitle("Work items")
	tw.AppendHeader(header)
	for _, row := range rows {
		r := table.Row{
			result.Labeler.WorkItemLabel(row.WorkItem),
			row.WorkItem.StartDate + " - " + row.WorkItem.EndDate,
			formatDays(row.WorkItem.RequiredMinDaysPerWeek),
		}
		coverageCols := len(header) - 5
		for i := 0; i < coverageCols; i++ {
			if i < len(row.CoverageLevels) {
				r = append(r, levelText(row.CoverageLevels[i]))
			} else {
				r = append(r, "-")
			}
		}
		r = append(r, levelText(row.Feasibility), levelText(row.Worst))
		tw.AppendRow(r)
	}
	if len(rows) == 0 {
		fmt.Fprintln(app.Out, "No work items at risk.")
	} else {
		tw.Render()
	}

	if len(result.Report.Capacity) > 0 {
		tw := newTable(app)
		tw.SetTitle("Capacity")
		tw.AppendHeader(table.Row{"Person", "Week", "Assigned", "Capacity", "Level"})
		for _, c := range result.Report.Capacity {
			tw.AppendRow(table.Row{names[c.PersonID], weekLabels[c.WeekStart], formatDays(c.AssignedDays), formatDays(c.Cap), levelText(c.Level)})
		}
		fmt.Fprintln(app.Out)
		tw.Render()
	}

	if len(result.Report.ContextSwitching) > 0 {
		tw := newTable(app)
		tw.SetTitle("Context switching")
		tw.AppendHeader(table.Row{"Person", "Week", "Work items", "Level"})
		for _, cs := range result.Report.ContextSwitching {
			tw.AppendRow(table.Row{names[cs.PersonID], weekLabels[cs.WeekStart], cs.DistinctWorkItems, levelText(cs.Level)})
		}
		fmt.Fprintln(app.Out)
		tw.Render()
	}

	fmt.Fprintf(app.Out, "\n%d of %d work items at risk over %s\n",
		len(risk.AtRisk(result.WorkItems)), len(result.WorkItems), weekRange(result))
}

func weekRange(result *services.ViewRisksResult) string {
	if len(result.Weeks) == 0 {
		return "no weeks"
	}
	return fmt.Sprintf("%d weeks from %s", len(result.Weeks), result.Weeks[0].WeekStartStr)
}
