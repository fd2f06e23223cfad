package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/grouping"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/labels"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// RosterPerson is one person's line for the selected week
type RosterPerson struct {
	Person       model.Person
	SubgroupID   string
	SubgroupName string
	AssignedDays float64
	Level        risk.Level // worst of capacity and context switching
	Breakdown    []labels.PodDays
}

// RosterGroup is a pod group with its weekly rollup
type RosterGroup struct {
	Group   grouping.PodGroup
	Summary grouping.WeeklySummary
	People  []RosterPerson
}

// ViewRosterResult is the grouped roster for one week of the window
type ViewRosterResult struct {
	Scenario model.Scenario
	Week     calendar.WeekInfo
	Groups   []RosterGroup
	Labeler  *labels.Labeler
}

// ViewRoster groups the active roster and summarises the week at weekIndex
// (0 is the current week)
func ViewRoster(
	ctx context.Context,
	store db.ScenarioStore,
	cfg *config.Config,
	clock calendar.Clock,
	logger *zap.Logger,
	scenarioID string,
	weekIndex int,
) (*ViewRosterResult, error) {
	if weekIndex < 0 || weekIndex >= cfg.PlanningWeeks {
		return nil, fmt.Errorf("week must be between 0 and %d, got %d", cfg.PlanningWeeks-1, weekIndex)
	}

	snapshot, err := LoadSnapshot(ctx, store, logger, scenarioID)
	if err != nil {
		return nil, err
	}

	now := calendar.Today(clock)
	weeks := calendar.PlanningWeeks(now, cfg.PlanningWeeks)
	week := weeks[weekIndex]

	groups, err := buildGroups(cfg, snapshot)
	if err != nil {
		return nil, err
	}
	logger.Debug("Built pod groups", zap.Int("groups", len(groups)), zap.String("affinity", cfg.Grouping.Affinity))

	report := risk.Compute(risk.Input{
		People:      activePeople(snapshot.People),
		Allocations: snapshot.Scenario.Allocations,
		Weeks:       []calendar.WeekInfo{week},
		Now:         now,
	})

	labeler := newLabeler(cfg, snapshot.Pods)
	allocations := snapshot.Scenario.Allocations
	workItems := snapshot.Scenario.WorkItems

	result := &ViewRosterResult{
		Scenario: snapshot.Scenario.Scenario,
		Week:     week,
		Groups:   make([]RosterGroup, 0, len(groups)),
		Labeler:  labeler,
	}

	for _, group := range groups {
		rg := RosterGroup{
			Group:   group,
			Summary: grouping.ComputeGroupWeeklySummary(group, allocations, workItems, week),
			People:  []RosterPerson{},
		}

		for _, sub := range group.Pods {
			for _, p := range sub.People {
				breakdown := labels.WeeklyPodBreakdown(p, allocations, workItems, week)
				assigned := 0.0
				for _, a := range allocations {
					if a.PersonID == p.ID && week.Contains(a.Date) {
						assigned += a.Days
					}
				}

				rg.People = append(rg.People, RosterPerson{
					Person:       p,
					SubgroupID:   sub.Pod.ID,
					SubgroupName: sub.Pod.Name,
					AssignedDays: assigned,
					Level:        risk.PersonWeekLevel(report, p.ID, week.WeekStartStr),
					Breakdown:    breakdown,
				})
			}
		}

		result.Groups = append(result.Groups, rg)
	}

	logger.Info("Roster built",
		zap.String("scenario_id", scenarioID),
		zap.String("week", week.WeekStartStr),
		zap.Int("groups", len(result.Groups)))

	return result, nil
}
