package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/grouping"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/labels"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrWorkItemNotFound = errors.New("work item not found")
	ErrPersonNotFound   = errors.New("person not found")
)

// findScenario looks up a scenario by ID
func findScenario(ctx context.Context, store db.ScenarioStore, scenarioID string) (*db.Scenario, error) {
	scenarios, err := store.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	for i := range scenarios {
		if scenarios[i].ID == scenarioID {
			return &scenarios[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
}

// findWorkItem looks up a work item by ID
func findWorkItem(workItems []model.WorkItem, workItemID string) (*model.WorkItem, error) {
	for i := range workItems {
		if workItems[i].ID == workItemID {
			return &workItems[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkItemNotFound, workItemID)
}

// findPerson looks up a person by ID
func findPerson(people []model.Person, personID string) (*model.Person, error) {
	for i := range people {
		if people[i].ID == personID {
			return &people[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
}

// activePeople drops archived people
func activePeople(people []model.Person) []model.Person {
	active := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// newLabeler builds a Labeler from the configured pod overrides
func newLabeler(cfg *config.Config, pods []model.Pod) *labels.Labeler {
	return labels.NewLabeler(pods, cfg.Pods.Prefixes, cfg.Pods.Colors)
}

// buildGroups groups the active roster using the configured affinity and lead mapping
func buildGroups(cfg *config.Config, snapshot *model.Snapshot) ([]grouping.PodGroup, error) {
	affinity, err := grouping.NewAffinity(cfg.Grouping.Affinity, snapshot.Scenario.Allocations, snapshot.Scenario.WorkItems)
	if err != nil {
		return nil, fmt.Errorf("failed to build grouping affinity: %w", err)
	}

	var leadPods grouping.LeadPods
	if len(cfg.Grouping.LeadPods) > 0 {
		leadPods = grouping.LeadPods(cfg.Grouping.LeadPods)
	}

	return grouping.BuildPodGroups(activePeople(snapshot.People), snapshot.Pods, leadPods, affinity), nil
}
