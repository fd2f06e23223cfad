package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

const (
	selectScenarios = `SELECT id, name, is_base FROM scenario ORDER BY seq`

	selectWorkItems = `
		SELECT id, scenario_id, type, name, pod_id, start_date, end_date,
		       required_min_days_per_week, release_date, notes
		FROM work_item
		WHERE scenario_id = $1
		ORDER BY seq
	`
)

// GetScenarios retrieves all scenario records in insertion order
func (d *DB) GetScenarios(ctx context.Context) ([]db.Scenario, error) {
	rows, err := d.conn.Query(ctx, selectScenarios)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := []db.Scenario{}
	for rows.Next() {
		var s db.Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.IsBase); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	return scenarios, nil
}

// InsertScenario inserts a new scenario record
func (d *DB) InsertScenario(ctx context.Context, scenario *db.Scenario) error {
	_, err := d.conn.Exec(ctx, `
		INSERT INTO scenario (id, name, is_base)
		VALUES ($1, $2, $3)
	`, scenario.ID, scenario.Name, scenario.IsBase)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetWorkItems retrieves the work items of a scenario
func (d *DB) GetWorkItems(ctx context.Context, scenarioID string) ([]db.WorkItem, error) {
	rows, err := d.conn.Query(ctx, selectWorkItems, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work items: %w", err)
	}
	defer rows.Close()

	workItems := []db.WorkItem{}
	for rows.Next() {
		var wi db.WorkItem
		var start, end time.Time
		var releaseDate *time.Time
		var notes *string
		if err := rows.Scan(&wi.ID, &wi.ScenarioID, &wi.Type, &wi.Name, &wi.PodID, &start, &end,
			&wi.RequiredMinDaysPerWeek, &releaseDate, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		wi.StartDate = formatDate(start)
		wi.EndDate = formatDate(end)
		wi.ReleaseDate = formatNullableDate(releaseDate)
		wi.Notes = deref(notes)
		workItems = append(workItems, wi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work items: %w", err)
	}

	return workItems, nil
}

// InsertWorkItems inserts work item records
func (d *DB) InsertWorkItems(ctx context.Context, workItems []db.WorkItem) error {
	if len(workItems) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, wi := range workItems {
		batch.Queue(`
			INSERT INTO work_item (id, scenario_id, type, name, pod_id, start_date, end_date,
			                       required_min_days_per_week, release_date, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, wi.ID, wi.ScenarioID, wi.Type, wi.Name, wi.PodID, wi.StartDate, wi.EndDate,
			wi.RequiredMinDaysPerWeek, nullable(wi.ReleaseDate), nullable(wi.Notes))
	}

	if err := d.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to insert work items: %w", err)
	}
	return nil
}

// DeleteWorkItem removes a work item and the allocations that reference it
func (d *DB) DeleteWorkItem(ctx context.Context, scenarioID, workItemID string) error {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM allocation WHERE scenario_id = $1 AND work_item_id = $2`, scenarioID, workItemID); err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM work_item WHERE scenario_id = $1 AND id = $2`, scenarioID, workItemID); err != nil {
		return fmt.Errorf("failed to delete work item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// sendBatch runs every queued statement in one transaction
func (d *DB) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
