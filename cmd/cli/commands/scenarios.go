package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// ScenariosCmd creates the scenarios command
func ScenariosCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := services.ListScenarios(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			tw := newTable(app)
			tw.AppendHeader(table.Row{"ID", "Name", "Base", "Work items", "Allocations"})
			for _, s := range summaries {
				base := ""
				if s.Scenario.IsBase {
					base = "✓"
				}
				tw.AppendRow(table.Row{s.Scenario.ID, s.Scenario.Name, base, s.WorkItems, s.Allocations})
			}
			tw.Render()
			return nil
		},
	}
}

// DuplicateScenarioCmd creates the duplicateScenario command
func DuplicateScenarioCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicateScenario <source_id> <name>",
		Short: "Copy a scenario into a new what-if scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dup, err := services.DuplicateScenario(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "\n✓ Scenario duplicated\n\n")
			fmt.Fprintf(app.Out, "ID:          %s\n", dup.Scenario.ID)
			fmt.Fprintf(app.Out, "Name:        %s\n", dup.Scenario.Name)
			fmt.Fprintf(app.Out, "Work items:  %d\n", len(dup.WorkItems))
			fmt.Fprintf(app.Out, "Allocations: %d\n", len(dup.Allocations))
			fmt.Fprintf(app.Out, "Time off:    %d\n\n", len(dup.TimeOffs))
			return nil
		},
	}
}
