package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/gmailclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/sheetsclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// Migrator applies pending schema migrations. Only the postgres store has one.
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Migrator Migrator
	Clock    calendar.Clock
	Logger   *zap.Logger
	Ctx      context.Context
	Out      io.Writer

	// Nil unless the config enables a feature that needs them
	SheetsClient *sheetsclient.Client
	GmailClient  *gmailclient.Client
}

// scenarioFlag registers --scenario and returns a getter that falls back to
// the configured default scenario
func scenarioFlag(flags *pflag.FlagSet, app *AppContext) func() string {
	var scenarioID string
	flags.StringVarP(&scenarioID, "scenario", "s", "", "Scenario ID (defaults to defaultScenarioID from config)")
	return func() string {
		if scenarioID != "" {
			return scenarioID
		}
		return app.Cfg.DefaultScenarioID
	}
}
