package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/sheetssql"
)

// DB provides database operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{
		ssql: ssql,
	}
}

// Schema returns the SheetsSQL schema of every table
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(Models()...)
}

func getAll[T any](ctx context.Context, db *DB) ([]T, error) {
	return sheetssql.GetTableAs[T](ctx, db.ssql, sheetssql.TableName[T]())
}

// inScenario keeps the rows belonging to scenarioID
func inScenario[T any](rows []T, scenarioID string, scenarioOf func(T) string) []T {
	filtered := make([]T, 0, len(rows))
	for _, r := range rows {
		if scenarioOf(r) == scenarioID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GetPods retrieves all pod records
func (db *DB) GetPods(ctx context.Context) ([]Pod, error) {
	pods, err := getAll[Pod](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get pods: %w", err)
	}
	return pods, nil
}

// InsertPods inserts pod records
func (db *DB) InsertPods(ctx context.Context, pods []Pod) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, pods); err != nil {
		return fmt.Errorf("failed to insert pods: %w", err)
	}
	return nil
}

// GetPeople retrieves all person records
func (db *DB) GetPeople(ctx context.Context) ([]Person, error) {
	people, err := getAll[Person](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	return people, nil
}

// InsertPeople inserts person records
func (db *DB) InsertPeople(ctx context.Context, people []Person) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, people); err != nil {
		return fmt.Errorf("failed to insert people: %w", err)
	}
	return nil
}

// GetScenarios retrieves all scenario records
func (db *DB) GetScenarios(ctx context.Context) ([]Scenario, error) {
	scenarios, err := getAll[Scenario](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenarios: %w", err)
	}
	return scenarios, nil
}

// InsertScenario inserts a new scenario record
func (db *DB) InsertScenario(ctx context.Context, scenario *Scenario) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, []Scenario{*scenario}); err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetWorkItems retrieves the work items of a scenario
func (db *DB) GetWorkItems(ctx context.Context, scenarioID string) ([]WorkItem, error) {
	workItems, err := getAll[WorkItem](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get work items: %w", err)
	}
	return inScenario(workItems, scenarioID, func(wi WorkItem) string { return wi.ScenarioID }), nil
}

// InsertWorkItems inserts work item records
func (db *DB) InsertWorkItems(ctx context.Context, workItems []WorkItem) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, workItems); err != nil {
		return fmt.Errorf("failed to insert work items: %w", err)
	}
	return nil
}

// DeleteWorkItem removes a work item and the allocations that reference it
func (db *DB) DeleteWorkItem(ctx context.Context, scenarioID, workItemID string) error {
	workItems, err := getAll[WorkItem](ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get work items: %w", err)
	}
	workItems = slices.DeleteFunc(workItems, func(wi WorkItem) bool {
		return wi.ScenarioID == scenarioID && wi.ID == workItemID
	})

	allocations, err := getAll[Allocation](ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get allocations: %w", err)
	}
	allocations = slices.DeleteFunc(allocations, func(a Allocation) bool {
		return a.ScenarioID == scenarioID && a.WorkItemID == workItemID
	})

	// Allocations go first: if the second write fails the work item is still
	// there and a retry finishes the delete.
	if err := sheetssql.ReplaceModels(ctx, db.ssql, allocations); err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	if err := sheetssql.ReplaceModels(ctx, db.ssql, workItems); err != nil {
		return fmt.Errorf("failed to delete work item: %w", err)
	}
	return nil
}

// GetAllocations retrieves the allocations of a scenario
func (db *DB) GetAllocations(ctx context.Context, scenarioID string) ([]Allocation, error) {
	allocations, err := getAll[Allocation](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	return inScenario(allocations, scenarioID, func(a Allocation) string { return a.ScenarioID }), nil
}

// InsertAllocations inserts allocation records
func (db *DB) InsertAllocations(ctx context.Context, allocations []Allocation) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, allocations); err != nil {
		return fmt.Errorf("failed to insert allocations: %w", err)
	}
	return nil
}

// DeleteAllocations removes allocations of a scenario by ID
func (db *DB) DeleteAllocations(ctx context.Context, scenarioID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	allocations, err := getAll[Allocation](ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get allocations: %w", err)
	}

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	allocations = slices.DeleteFunc(allocations, func(a Allocation) bool {
		return a.ScenarioID == scenarioID && remove[a.ID]
	})

	if err := sheetssql.ReplaceModels(ctx, db.ssql, allocations); err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	return nil
}

// GetTimeOffs retrieves the time off records of a scenario
func (db *DB) GetTimeOffs(ctx context.Context, scenarioID string) ([]TimeOff, error) {
	timeOffs, err := getAll[TimeOff](ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get time off: %w", err)
	}
	return inScenario(timeOffs, scenarioID, func(to TimeOff) string { return to.ScenarioID }), nil
}

// InsertTimeOffs inserts time off records
func (db *DB) InsertTimeOffs(ctx context.Context, timeOffs []TimeOff) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, timeOffs); err != nil {
		return fmt.Errorf("failed to insert time off: %w", err)
	}
	return nil
}

// Reset deletes every data row of every table
func (db *DB) Reset(ctx context.Context) error {
	schema, err := Schema()
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}
	for _, table := range schema.Tables {
		if err := db.ssql.ClearTable(ctx, table.Name); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table.Name, err)
		}
	}
	return nil
}
