package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export all pods, people and scenarios as JSON (use - for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := services.ExportData(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if args[0] == "-" {
				return writeAppData(app.Out, data)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()

			if err := writeAppData(f, data); err != nil {
				return err
			}

			app.Logger.Info("Export written", zap.String("file", args[0]))
			fmt.Fprintf(app.Out, "\n✓ Exported %d pods, %d people and %d scenarios to %s\n\n",
				len(data.Pods), len(data.People), len(data.Scenarios), args[0])
			return f.Close()
		},
	}
}

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with the contents of an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			data, err := readAppData(f)
			if err != nil {
				return err
			}

			if !confirm {
				return fmt.Errorf("import replaces every pod, person and scenario in the store; rerun with --yes to continue")
			}

			result, err := services.ImportData(app.Ctx, app.Database, app.Logger, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "\n✓ Import complete\n\n")
			fmt.Fprintf(app.Out, "Pods:        %d\n", result.Pods)
			fmt.Fprintf(app.Out, "People:      %d\n", result.People)
			fmt.Fprintf(app.Out, "Scenarios:   %d\n", result.Scenarios)
			fmt.Fprintf(app.Out, "Work items:  %d\n", result.WorkItems)
			fmt.Fprintf(app.Out, "Allocations: %d\n", result.Allocations)
			fmt.Fprintf(app.Out, "Time off:    %d\n\n", result.TimeOffs)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm replacing existing data")

	return cmd
}

func writeAppData(w io.Writer, data *model.AppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func readAppData(r io.Reader) (*model.AppData, error) {
	var data model.AppData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return &data, nil
}
