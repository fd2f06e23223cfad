package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <work_item_id> <start> <end> <person_id>...",
		Short: "Allocate people full days to a work item on every weekday in a date range",
		Args:  cobra.MinimumNArgs(4),
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		workItemID, start, end, personIDs := args[0], args[1], args[2], args[3:]
		app.Logger.Debug("plan command",
			zap.String("work_item_id", workItemID),
			zap.String("start", start),
			zap.String("end", end),
			zap.Strings("person_ids", personIDs))

		result, err := services.PlanAllocations(app.Ctx, app.Database, app.Logger, scenarioID(), workItemID, personIDs, start, end)
		if err != nil {
			return err
		}

		fmt.Fprintf(app.Out, "\n✓ Planned %d allocations", len(result.Created))
		if result.Skipped > 0 {
			fmt.Fprintf(app.Out, " (%d days skipped for time off)", result.Skipped)
		}
		fmt.Fprintf(app.Out, "\n\n")
		return nil
	}

	return cmd
}

// ClearAllocationsCmd creates the clearAllocations command
func ClearAllocationsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clearAllocations <person_id> <start> <end>",
		Short: "Remove a person's allocations in a date range",
		Args:  cobra.ExactArgs(3),
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		removed, err := services.ClearAllocations(app.Ctx, app.Database, app.Logger, scenarioID(), args[0], args[1], args[2])
		if err != nil {
			return err
		}

		fmt.Fprintf(app.Out, "\n✓ Removed %d allocations\n\n", len(removed))
		return nil
	}

	return cmd
}

// AddTimeOffCmd creates the addTimeOff command
func AddTimeOffCmd(app *AppContext) *cobra.Command {
	var reason string
	var includeWeekends bool

	cmd := &cobra.Command{
		Use:   "addTimeOff <person_id> <start> <end>",
		Short: "Mark a person off for a date range and drop their allocations on those days",
		Args:  cobra.ExactArgs(3),
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason shown with the time off")
	cmd.Flags().BoolVar(&includeWeekends, "include-weekends", false, "Also mark Saturdays and Sundays")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		result, err := services.AddTimeOff(app.Ctx, app.Database, app.Logger, scenarioID(), args[0], args[1], args[2], !includeWeekends, reason)
		if err != nil {
			return err
		}

		fmt.Fprintf(app.Out, "\n✓ Added %d days off", len(result.Added))
		if n := len(result.RemovedAllocations); n > 0 {
			fmt.Fprintf(app.Out, ", removed %d conflicting allocations", n)
		}
		fmt.Fprintf(app.Out, "\n\n")
		return nil
	}

	return cmd
}

// DeleteWorkItemCmd creates the deleteWorkItem command
func DeleteWorkItemCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deleteWorkItem <work_item_id>",
		Short: "Delete a work item and its allocations",
		Args:  cobra.ExactArgs(1),
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		removed, err := services.DeleteWorkItem(app.Ctx, app.Database, app.Logger, scenarioID(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(app.Out, "\n✓ Deleted %s and %d allocations\n\n", args[0], removed)
		return nil
	}

	return cmd
}
