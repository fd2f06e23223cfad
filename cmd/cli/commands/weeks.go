package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
)

// WeeksCmd creates the weeks command
func WeeksCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List the weeks of the planning window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks := calendar.PlanningWeeks(calendar.Today(app.Clock), app.Cfg.PlanningWeeks)

			tw := newTable(app)
			tw.AppendHeader(table.Row{"#", "Week", "Start", "Weekdays"})
			for i, w := range weeks {
				tw.AppendRow(table.Row{i, w.WeekLabel, w.WeekStartStr, strings.Join(w.WeekdayStrs(), " ")})
			}
			tw.Render()
			return nil
		},
	}
}
