package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/labels"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// ViewRisksResult holds every risk computed over the planning window
type ViewRisksResult struct {
	Scenario  model.Scenario
	Weeks     []calendar.WeekInfo
	Report    risk.Report
	WorkItems []risk.WorkItemRisk
	People    []model.Person
	Labeler   *labels.Labeler
}

// ViewRisks computes coverage, feasibility, context switching and capacity risk
// for a scenario over the configured planning window
func ViewRisks(
	ctx context.Context,
	store db.ScenarioStore,
	cfg *config.Config,
	clock calendar.Clock,
	logger *zap.Logger,
	scenarioID string,
) (*ViewRisksResult, error) {
	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}

	now := calendar.Today(clock)
	weeks := calendar.PlanningWeeks(now, cfg.PlanningWeeks)
	people := activePeople(snapshot.People)

	report := risk.Compute(risk.Input{
		WorkItems:   snapshot.Scenario.WorkItems,
		People:      people,
		Allocations: snapshot.Scenario.Allocations,
		Weeks:       weeks,
		Now:         now,
	})

	workItems := risk.SummarizeWorkItems(snapshot.Scenario.WorkItems, snapshot.Scenario.Allocations, weeks, cfg.DashboardWeeks, now)

	logger.Info("Risks computed",
		zap.String("scenario_id", scenarioID),
		zap.Int("weeks", len(weeks)),
		zap.Int("coverage", len(report.Coverage)),
		zap.Int("feasibility", len(report.Feasibility)),
		zap.Int("context_switching", len(report.ContextSwitching)),
		zap.Int("capacity", len(report.Capacity)),
		zap.Int("work_items_at_risk", len(risk.AtRisk(workItems))))

	return &ViewRisksResult{
		Scenario:  snapshot.Scenario.Scenario,
		Weeks:     weeks,
		Report:    report,
		WorkItems: workItems,
		People:    people,
		Labeler:   newLabeler(cfg, snapshot.Pods),
	}, nil
}
