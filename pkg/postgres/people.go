package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

const (
	selectPods = `SELECT id, name FROM pod ORDER BY seq`

	selectPeople = `
		SELECT id, name, role, type, home_pod_id, lead_id, weekly_capacity_days,
		       status, archived_at, default_pod_filter_ids
		FROM person
		ORDER BY seq
	`
)

// GetPods retrieves all pod records in insertion order
func (d *DB) GetPods(ctx context.Context) ([]db.Pod, error) {
	rows, err := d.conn.Query(ctx, selectPods)
	if err != nil {
		return nil, fmt.Errorf("failed to query pods: %w", err)
	}
	defer rows.Close()

	pods := []db.Pod{}
	for rows.Next() {
		var p db.Pod
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan pod: %w", err)
		}
		pods = append(pods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pods: %w", err)
	}

	return pods, nil
}

// InsertPods inserts pod records
func (d *DB) InsertPods(ctx context.Context, pods []db.Pod) error {
	if len(pods) == 0 {
		return nil
	}

	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range pods {
		_, err := tx.Exec(ctx, `INSERT INTO pod (id, name) VALUES ($1, $2)`, p.ID, p.Name)
		if err != nil {
			return fmt.Errorf("failed to insert pod %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPeople retrieves all person records in insertion order
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	rows, err := d.conn.Query(ctx, selectPeople)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	people := []db.Person{}
	for rows.Next() {
		var p db.Person
		var homePodID, leadID *string
		var archivedAt *time.Time
		var filters []string
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Type, &homePodID, &leadID,
			&p.WeeklyCapacityDays, &p.Status, &archivedAt, &filters); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.HomePodID = deref(homePodID)
		p.LeadID = deref(leadID)
		p.ArchivedAt = formatNullableDate(archivedAt)
		p.DefaultPodFilterIDs = strings.Join(filters, ",")
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// InsertPeople inserts person records
func (d *DB) InsertPeople(ctx context.Context, people []db.Person) error {
	if len(people) == 0 {
		return nil
	}

	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range people {
		filters := []string{}
		if p.DefaultPodFilterIDs != "" {
			filters = strings.Split(p.DefaultPodFilterIDs, ",")
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO person (id, name, role, type, home_pod_id, lead_id, weekly_capacity_days,
			                    status, archived_at, default_pod_filter_ids)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, p.ID, p.Name, p.Role, p.Type, nullable(p.HomePodID), nullable(p.LeadID),
			p.WeeklyCapacityDays, p.Status, nullable(p.ArchivedAt), filters)
		if err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
