package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// LoadSnapshot reads the shared pods and people plus one scenario's data
func LoadSnapshot(ctx context.Context, store db.ScenarioStore, logger *zap.Logger, scenarioID string) (*model.Snapshot, error) {
	logger.Debug("Loading snapshot", zap.String("scenario_id", scenarioID))

	scenario, err := findScenario(ctx, store, scenarioID)
	if err != nil {
		return nil, err
	}

	pods, err := store.GetPods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pods: %w", err)
	}

	people, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	workItems, err := store.GetWorkItems(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work items: %w", err)
	}

	allocations, err := store.GetAllocations(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}

	timeOffs, err := store.GetTimeOffs(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time off: %w", err)
	}

	snapshot := &model.Snapshot{
		Pods:   db.PodsToModel(pods),
		People: db.PeopleToModel(people),
		Scenario: model.ScenarioData{
			Scenario:    db.ScenarioToModel(*scenario),
			WorkItems:   db.WorkItemsToModel(workItems),
			Allocations: db.AllocationsToModel(allocations),
			TimeOffs:    db.TimeOffsToModel(timeOffs),
		},
	}

	logger.Debug("Snapshot loaded",
		zap.Int("pods", len(snapshot.Pods)),
		zap.Int("people", len(snapshot.People)),
		zap.Int("work_items", len(snapshot.Scenario.WorkItems)),
		zap.Int("allocations", len(snapshot.Scenario.Allocations)),
		zap.Int("time_offs", len(snapshot.Scenario.TimeOffs)))

	return snapshot, nil
}

// ScenarioSummary is one line of the scenario list
type ScenarioSummary struct {
	Scenario    model.Scenario
	WorkItems   int
	Allocations int
}

// ListScenarios returns every scenario with its record counts
func ListScenarios(ctx context.Context, store db.ScenarioStore, logger *zap.Logger) ([]ScenarioSummary, error) {
	scenarios, err := store.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}
	logger.Debug("Found scenarios", zap.Int("count", len(scenarios)))

	summaries := make([]ScenarioSummary, 0, len(scenarios))
	for _, s := range scenarios {
		workItems, err := store.GetWorkItems(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch work items for %s: %w", s.ID, err)
		}
		allocations, err := store.GetAllocations(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch allocations for %s: %w", s.ID, err)
		}
		summaries = append(summaries, ScenarioSummary{
			Scenario:    db.ScenarioToModel(s),
			WorkItems:   len(workItems),
			Allocations: len(allocations),
		})
	}

	return summaries, nil
}
