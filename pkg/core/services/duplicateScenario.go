package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/scenario"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// DuplicateScenarioStore defines the database operations needed to copy a scenario
type DuplicateScenarioStore interface {
	db.ScenarioStore
	InsertScenario(ctx context.Context, scenario *db.Scenario) error
	InsertWorkItems(ctx context.Context, workItems []db.WorkItem) error
	InsertAllocations(ctx context.Context, allocations []db.Allocation) error
	InsertTimeOffs(ctx context.Context, timeOffs []db.TimeOff) error
}

// DuplicateScenario copies a scenario's work items, allocations and time off
// into a new non-base scenario with fresh IDs
func DuplicateScenario(ctx context.Context, store DuplicateScenarioStore, logger *zap.Logger, sourceID, name string) (*model.ScenarioData, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario name is required")
	}

	snapshot, err := LoadSnapshot(ctx, store, logger, sourceID)
	if err != nil {
		return nil, err
	}

	dup := scenario.Duplicate(snapshot.Scenario, name, uuid.NewString)
	logger.Debug("Duplicated scenario in memory",
		zap.String("source_id", sourceID),
		zap.String("new_id", dup.Scenario.ID))

	row := db.ScenarioFromModel(dup.Scenario)
	if err := store.InsertScenario(ctx, &row); err != nil {
		return nil, fmt.Errorf("failed to insert scenario: %w", err)
	}
	if err := store.InsertWorkItems(ctx, db.WorkItemsFromModel(dup.Scenario.ID, dup.WorkItems)); err != nil {
		return nil, fmt.Errorf("failed to insert work items: %w", err)
	}
	if err := store.InsertAllocations(ctx, db.AllocationsFromModel(dup.Scenario.ID, dup.Allocations)); err != nil {
		return nil, fmt.Errorf("failed to insert allocations: %w", err)
	}
	if err := store.InsertTimeOffs(ctx, db.TimeOffsFromModel(dup.Scenario.ID, dup.TimeOffs)); err != nil {
		return nil, fmt.Errorf("failed to insert time off: %w", err)
	}

	logger.Info("Scenario duplicated",
		zap.String("source_id", sourceID),
		zap.String("new_id", dup.Scenario.ID),
		zap.String("name", name),
		zap.Int("work_items", len(dup.WorkItems)),
		zap.Int("allocations", len(dup.Allocations)))

	return &dup, nil
}
