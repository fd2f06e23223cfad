package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/sheetsclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// RosterPublisher writes a roster to a spreadsheet
type RosterPublisher interface {
	PublishRoster(ctx context.Context, spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error)
}

// PublishRosterResult reports where the roster was written
type PublishRosterResult struct {
	TabTitle string
	Roster   *sheetsclient.PublishedRoster
}

// BuildPublishedRoster lays out one row per grouped person with their assigned
// days and capacity level for each week of the window
func BuildPublishedRoster(
	ctx context.Context,
	store db.ScenarioStore,
	cfg *config.Config,
	clock calendar.Clock,
	logger *zap.Logger,
	scenarioID string,
) (*sheetsclient.PublishedRoster, error) {
	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}

	now := calendar.Today(clock)
	weeks := calendar.PlanningWeeks(now, cfg.PlanningWeeks)
	if len(weeks) == 0 {
		return nil, fmt.Errorf("planning window is empty")
	}

	groups, err := buildGroups(cfg, snapshot)
	if err != nil {
		return nil, err
	}

	capacity := risk.ComputeCapacityRisks(activePeople(snapshot.People), snapshot.Scenario.Allocations, weeks)
	levels := make(map[string]risk.Level, len(capacity))
	for _, c := range capacity {
		levels[c.PersonID+"|"+c.WeekStart] = c.Level
	}

	roster := &sheetsclient.PublishedRoster{
		FirstWeek:  weeks[0].WeekStartStr,
		LastWeek:   weeks[len(weeks)-1].WeekStartStr,
		WeekLabels: make([]string, 0, len(weeks)),
		Rows:       []sheetsclient.PublishedRosterRow{},
	}
	for _, w := range weeks {
		roster.WeekLabels = append(roster.WeekLabels, w.WeekLabel)
	}

	for _, group := range groups {
		for _, sub := range group.Pods {
			for _, p := range sub.People {
				row := sheetsclient.PublishedRosterRow{
					Group:  group.Label,
					Pod:    sub.Pod.Name,
					Person: p.Name,
					Days:   make([]float64, len(weeks)),
					Levels: make([]string, len(weeks)),
				}
				for i, w := range weeks {
					for _, a := range snapshot.Scenario.Allocations {
						if a.PersonID == p.ID && w.Contains(a.Date) {
							row.Days[i] += a.Days
						}
					}
					level, ok := levels[p.ID+"|"+w.WeekStartStr]
					if !ok {
						level = risk.Green
					}
					row.Levels[i] = string(level)
				}
				roster.Rows = append(roster.Rows, row)
			}
		}
	}

	return roster, nil
}

// PublishRoster writes the scenario's roster for the planning window to the
// configured roster spreadsheet
func PublishRoster(
	ctx context.Context,
	store db.ScenarioStore,
	publisher RosterPublisher,
	cfg *config.Config,
	clock calendar.Clock,
	logger *zap.Logger,
	scenarioID string,
) (*PublishRosterResult, error) {
	if cfg.RosterSheetID == "" {
		return nil, fmt.Errorf("rosterSheetID is not configured")
	}

	roster, err := BuildPublishedRoster(ctx, store, cfg, clock, logger, scenarioID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Roster built",
		zap.String("first_week", roster.FirstWeek),
		zap.String("last_week", roster.LastWeek),
		zap.Int("rows", len(roster.Rows)))

	tabTitle, err := publisher.PublishRoster(ctx, cfg.RosterSheetID, roster)
	if err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published",
		zap.String("spreadsheet_id", cfg.RosterSheetID),
		zap.String("tab", tabTitle),
		zap.Int("rows", len(roster.Rows)))

	return &PublishRosterResult{TabTitle: tabTitle, Roster: roster}, nil
}
