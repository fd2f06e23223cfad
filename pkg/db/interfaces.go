package db

import "context"

// ScenarioStore defines the read operations needed to assemble a scenario snapshot
type ScenarioStore interface {
	GetPods(ctx context.Context) ([]Pod, error)
	GetPeople(ctx context.Context) ([]Person, error)
	GetScenarios(ctx context.Context) ([]Scenario, error)
	GetWorkItems(ctx context.Context, scenarioID string) ([]WorkItem, error)
	GetAllocations(ctx context.Context, scenarioID string) ([]Allocation, error)
	GetTimeOffs(ctx context.Context, scenarioID string) ([]TimeOff, error)
}

// Database defines the interface for all database operations.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
type Database interface {
	ScenarioStore
	InsertPods(ctx context.Context, pods []Pod) error
	InsertPeople(ctx context.Context, people []Person) error
	InsertScenario(ctx context.Context, scenario *Scenario) error
	InsertWorkItems(ctx context.Context, workItems []WorkItem) error
	DeleteWorkItem(ctx context.Context, scenarioID, workItemID string) error
	InsertAllocations(ctx context.Context, allocations []Allocation) error
	DeleteAllocations(ctx context.Context, scenarioID string, ids []string) error
	InsertTimeOffs(ctx context.Context, timeOffs []TimeOff) error
	Reset(ctx context.Context) error
}

// Transactor runs fn against a store whose writes commit or roll back together.
// The postgres store implements it; the Sheets store has no transactions.
type Transactor interface {
	InTx(ctx context.Context, fn func(store Database) error) error
}
