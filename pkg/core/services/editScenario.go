package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/scenario"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// AllocationStore defines the database operations needed to edit allocations
type AllocationStore interface {
	db.ScenarioStore
	InsertAllocations(ctx context.Context, allocations []db.Allocation) error
	DeleteAllocations(ctx context.Context, scenarioID string, ids []string) error
}

// TimeOffStore defines the database operations needed to record time off
type TimeOffStore interface {
	AllocationStore
	InsertTimeOffs(ctx context.Context, timeOffs []db.TimeOff) error
}

// WorkItemStore defines the database operations needed to delete a work item
type WorkItemStore interface {
	db.ScenarioStore
	DeleteWorkItem(ctx context.Context, scenarioID, workItemID string) error
}

// PlanAllocationsResult reports the allocations created and the person-days
// skipped because the person was off
type PlanAllocationsResult struct {
	Created []model.Allocation
	Skipped int
}

func parseRange(start, end string) error {
	s, err := calendar.ParseDate(start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return nil
}

// PlanAllocations assigns each person full days to the work item on every
// weekday in [start, end], skipping days they are already off
func PlanAllocations(
	ctx context.Context,
	store AllocationStore,
	logger *zap.Logger,
	scenarioID, workItemID string,
	personIDs []string,
	start, end string,
) (*PlanAllocationsResult, error) {
	if len(personIDs) == 0 {
		return nil, fmt.Errorf("at least one person is required")
	}
	if err := parseRange(start, end); err != nil {
		return nil, err
	}

	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}

	if _, err := findWorkItem(snapshot.Scenario.WorkItems, workItemID); err != nil {
		return nil, err
	}
	for _, id := range personIDs {
		if _, err := findPerson(snapshot.People, id); err != nil {
			return nil, err
		}
	}

	off := make(map[string]bool)
	for _, to := range snapshot.Scenario.TimeOffs {
		off[to.PersonID+"|"+to.Date] = true
	}

	planned := scenario.PlanAllocations(personIDs, workItemID, start, end, uuid.NewString)
	result := &PlanAllocationsResult{Created: make([]model.Allocation, 0, len(planned))}
	for _, a := range planned {
		if off[a.PersonID+"|"+a.Date] {
			result.Skipped++
			continue
		}
		result.Created = append(result.Created, a)
	}

	if err := store.InsertAllocations(ctx, db.AllocationsFromModel(scenarioID, result.Created)); err != nil {
		return nil, fmt.Errorf("failed to insert allocations: %w", err)
	}

	logger.Info("Allocations planned",
		zap.String("scenario_id", scenarioID),
		zap.String("work_item_id", workItemID),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped_time_off", result.Skipped))

	return result, nil
}

// ClearAllocations removes every allocation of the person within [start, end]
func ClearAllocations(
	ctx context.Context,
	store AllocationStore,
	logger *zap.Logger,
	scenarioID, personID string,
	start, end string,
) ([]model.Allocation, error) {
	if err := parseRange(start, end); err != nil {
		return nil, err
	}

	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}
	if _, err := findPerson(snapshot.People, personID); err != nil {
		return nil, err
	}

	_, removed := scenario.ClearAllocations(snapshot.Scenario.Allocations, personID, start, end)
	if err := store.DeleteAllocations(ctx, scenarioID, allocationIDs(removed)); err != nil {
		return nil, fmt.Errorf("failed to delete allocations: %w", err)
	}

	logger.Info("Allocations cleared",
		zap.String("scenario_id", scenarioID),
		zap.String("person_id", personID),
		zap.Int("removed", len(removed)))

	return removed, nil
}

// AddTimeOff marks the person off for [start, end] and drops their
// allocations on those days
func AddTimeOff(
	ctx context.Context,
	store TimeOffStore,
	logger *zap.Logger,
	scenarioID, personID string,
	start, end string,
	weekdaysOnly bool,
	reason string,
) (*scenario.TimeOffResult, error) {
	if err := parseRange(start, end); err != nil {
		return nil, err
	}

	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}
	if _, err := findPerson(snapshot.People, personID); err != nil {
		return nil, err
	}

	result := scenario.AddTimeOffRange(snapshot.Scenario, personID, start, end, weekdaysOnly, reason, uuid.NewString)

	if err := store.DeleteAllocations(ctx, scenarioID, allocationIDs(result.RemovedAllocations)); err != nil {
		return nil, fmt.Errorf("failed to delete conflicting allocations: %w", err)
	}
	if err := store.InsertTimeOffs(ctx, db.TimeOffsFromModel(scenarioID, result.Added)); err != nil {
		return nil, fmt.Errorf("failed to insert time off: %w", err)
	}

	logger.Info("Time off added",
		zap.String("scenario_id", scenarioID),
		zap.String("person_id", personID),
		zap.Int("days_added", len(result.Added)),
		zap.Int("allocations_removed", len(result.RemovedAllocations)))

	return &result, nil
}

// DeleteWorkItem removes a work item and its allocations, returning how many
// allocations went with it
func DeleteWorkItem(ctx context.Context, store WorkItemStore, logger *zap.Logger, scenarioID, workItemID string) (int, error) {
	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return 0, err
	}

	updated, ok := scenario.DeleteWorkItem(snapshot.Scenario, workItemID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrWorkItemNotFound, workItemID)
	}
	removed := len(snapshot.Scenario.Allocations) - len(updated.Allocations)

	if err := store.DeleteWorkItem(ctx, scenarioID, workItemID); err != nil {
		return 0, fmt.Errorf("failed to delete work item: %w", err)
	}

	logger.Info("Work item deleted",
		zap.String("scenario_id", scenarioID),
		zap.String("work_item_id", workItemID),
		zap.Int("allocations_removed", removed))

	return removed, nil
}

func allocationIDs(allocations []model.Allocation) []string {
	ids := make([]string, 0, len(allocations))
	for _, a := range allocations {
		ids = append(ids, a.ID)
	}
	return ids
}
