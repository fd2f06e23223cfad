package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/services"
)

// SendRiskDigestCmd creates the sendRiskDigest command
func SendRiskDigestCmd(app *AppContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sendRiskDigest",
		Short: "Email the risk digest if it is scheduled for today",
		Args:  cobra.NoArgs,
	}
	scenarioID := scenarioFlag(cmd.Flags(), app)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Send even if the schedule does not match today")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if app.GmailClient == nil {
			return fmt.Errorf("gmail client is not configured; set digest.recipients in the config")
		}

		result, err := services.SendRiskDigest(app.Ctx, app.Database, app.GmailClient, app.Cfg, app.Clock, app.Logger, scenarioID(), force)
		if err != nil {
			return err
		}

		if !result.Sent {
			fmt.Fprintf(app.Out, "\nDigest not sent: %s (use --force to send anyway)\n\n", result.SkipReason)
			return nil
		}

		fmt.Fprintf(app.Out, "\n✓ Digest sent to %d recipients\n", len(app.Cfg.Digest.Recipients))
		fmt.Fprintf(app.Out, "Subject: %s\n\n", result.Subject)
		return nil
	}

	return cmd
}
