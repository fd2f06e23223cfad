package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/cmd/cli/commands"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/gmailclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/sheetsclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/postgres"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/sheetssql"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/utils"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
	closers []func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qa-planner",
		Short: "QA Planner - staffing and risk for the QA roster",
		Long:  `A CLI tool for planning QA allocations across pods and spotting coverage, feasibility, context switching and capacity risk.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.WeeksCmd(app))
	rootCmd.AddCommand(commands.RisksCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.ScenariosCmd(app))
	rootCmd.AddCommand(commands.DuplicateScenarioCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.ClearAllocationsCmd(app))
	rootCmd.AddCommand(commands.AddTimeOffCmd(app))
	rootCmd.AddCommand(commands.DeleteWorkItemCmd(app))
	rootCmd.AddCommand(commands.PublishRosterCmd(app))
	rootCmd.AddCommand(commands.SendRiskDigestCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app, os.Stdin))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, Google clients and the store
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Clock = calendar.SystemClock{}
	app.Out = os.Stdout

	var logFile string
	app.Logger, logFile, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("log_file", logFile))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded",
		zap.String("store", app.Cfg.Store.Backend),
		zap.Int("planning_weeks", app.Cfg.PlanningWeeks))

	if app.Cfg.NeedsGoogle() {
		if err := initGoogleClients(); err != nil {
			return err
		}
	}

	switch app.Cfg.Store.Backend {
	case config.BackendPostgres:
		app.Logger.Debug("Connecting to postgres")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.Store.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		closers = append(closers, pg.Close)
		app.Database = pg
		app.Migrator = pg

	case config.BackendSheets:
		schema, err := db.Schema()
		if err != nil {
			return fmt.Errorf("failed to create database schema: %w", err)
		}
		app.Logger.Debug("Connecting to sheets database",
			zap.String("spreadsheet_id", app.Cfg.Store.DatabaseSheetID),
			zap.Int("tables", len(schema.Tables)))

		ssqlDB, err := sheetssql.NewDB(app.Ctx, app.SheetsClient, app.Cfg.Store.DatabaseSheetID, schema)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = db.NewDB(ssqlDB)
	}

	app.Logger.Info("Store initialized", zap.String("backend", app.Cfg.Store.Backend))
	return nil
}

// initGoogleClients signs in once with every scope the config needs and
// builds the clients that share that token
func initGoogleClients() error {
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	tokenStore, err := utils.NewTokenStore()
	if err != nil {
		return err
	}

	scopes := utils.RequiredScopes(app.Cfg)
	httpClient, err := utils.NewGoogleHTTPClient(app.Ctx, oauthCfg, scopes, env, tokenStore, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to authorize google access: %w", err)
	}

	if slices.Contains(scopes, utils.ScopeSheets) {
		app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, httpClient)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Logger.Debug("Sheets client initialized")
	}

	if slices.Contains(scopes, utils.ScopeGmailSend) {
		app.GmailClient, err = gmailclient.NewClient(app.Ctx, httpClient, app.Cfg.Digest.GmailUserID, app.Cfg.Digest.GmailSender)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.Logger.Debug("Gmail client initialized")
	}

	return nil
}
