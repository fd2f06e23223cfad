package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

const (
	selectAllocations = `
		SELECT id, scenario_id, person_id, work_item_id, date, days
		FROM allocation
		WHERE scenario_id = $1
		ORDER BY seq
	`

	selectTimeOffs = `
		SELECT id, scenario_id, person_id, date, reason
		FROM time_off
		WHERE scenario_id = $1
		ORDER BY seq
	`
)

// GetAllocations retrieves the allocations of a scenario
func (d *DB) GetAllocations(ctx context.Context, scenarioID string) ([]db.Allocation, error) {
	rows, err := d.conn.Query(ctx, selectAllocations, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	allocations := []db.Allocation{}
	for rows.Next() {
		var a db.Allocation
		var date time.Time
		if err := rows.Scan(&a.ID, &a.ScenarioID, &a.PersonID, &a.WorkItemID, &date, &a.Days); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.Date = formatDate(date)
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// InsertAllocations inserts allocation records into the database
func (d *DB) InsertAllocations(ctx context.Context, allocations []db.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(`
			INSERT INTO allocation (id, scenario_id, person_id, work_item_id, date, days)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.ScenarioID, a.PersonID, a.WorkItemID, a.Date, a.Days)
	}

	if err := d.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to insert allocations: %w", err)
	}
	return nil
}

// DeleteAllocations removes allocations of a scenario by ID
func (d *DB) DeleteAllocations(ctx context.Context, scenarioID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := d.conn.Exec(ctx, `
		DELETE FROM allocation WHERE scenario_id = $1 AND id = ANY($2)
	`, scenarioID, ids)
	if err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	return nil
}

// GetTimeOffs retrieves the time off records of a scenario
func (d *DB) GetTimeOffs(ctx context.Context, scenarioID string) ([]db.TimeOff, error) {
	rows, err := d.conn.Query(ctx, selectTimeOffs, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off: %w", err)
	}
	defer rows.Close()

	timeOffs := []db.TimeOff{}
	for rows.Next() {
		var to db.TimeOff
		var date time.Time
		var reason *string
		if err := rows.Scan(&to.ID, &to.ScenarioID, &to.PersonID, &date, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan time off: %w", err)
		}
		to.Date = formatDate(date)
		to.Reason = deref(reason)
		timeOffs = append(timeOffs, to)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time off: %w", err)
	}

	return timeOffs, nil
}

// InsertTimeOffs inserts time off records
func (d *DB) InsertTimeOffs(ctx context.Context, timeOffs []db.TimeOff) error {
	if len(timeOffs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, to := range timeOffs {
		batch.Queue(`
			INSERT INTO time_off (id, scenario_id, person_id, date, reason)
			VALUES ($1, $2, $3, $4, $5)
		`, to.ID, to.ScenarioID, to.PersonID, to.Date, nullable(to.Reason))
	}

	if err := d.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to insert time off: %w", err)
	}
	return nil
}
