package risk

import (
	"sort"
	"time"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// Input is the snapshot the risk functions run over
type Input struct {
	WorkItems   []model.WorkItem
	People      []model.Person
	Allocations []model.Allocation
	Weeks       []calendar.WeekInfo
	Now         time.Time
}

// Report bundles the output of all four risk functions over the same input
type Report struct {
	Coverage         []CoverageRisk
	Feasibility      []FeasibilityRisk
	ContextSwitching []ContextSwitchingRisk
	Capacity         []CapacityRisk
}

// Compute runs every risk function over the input
func Compute(in Input) Report {
	return Report{
		Coverage:         ComputeCoverageRisks(in.WorkItems, in.Allocations, in.Weeks),
		Feasibility:      ComputeFeasibilityRisks(in.WorkItems, in.Allocations, in.Weeks, in.Now),
		ContextSwitching: ComputeContextSwitchingRisks(in.People, in.Allocations, in.Weeks),
		Capacity:         ComputeCapacityRisks(in.People, in.Allocations, in.Weeks),
	}
}

// WorkItemStatus is the worst of a work item's coverage and feasibility levels.
// Work items with no records are green.
func WorkItemStatus(report Report, workItemID string) Level {
	levels := []Level{}
	for _, c := range report.Coverage {
		if c.WorkItemID == workItemID {
			levels = append(levels, c.Level)
		}
	}
	for _, f := range report.Feasibility {
		if f.WorkItemID == workItemID {
			levels = append(levels, f.Level)
		}
	}
	return Worst(levels...)
}

// PersonWeekLevel is the worst of a person's capacity and context switching
// levels in the given week
func PersonWeekLevel(report Report, personID, weekStart string) Level {
	levels := []Level{}
	for _, c := range report.Capacity {
		if c.PersonID == personID && c.WeekStart == weekStart {
			levels = append(levels, c.Level)
		}
	}
	for _, cs := range report.ContextSwitching {
		if cs.PersonID == personID && cs.WeekStart == weekStart {
			levels = append(levels, cs.Level)
		}
	}
	return Worst(levels...)
}

// WorkItemRisk is the dashboard row for one work item
type WorkItemRisk struct {
	WorkItem       model.WorkItem
	CoverageLevels []Level // one per week in the near-term window, in week order
	Feasibility    Level
	Worst          Level
}

// SummarizeWorkItems builds one row per work item from coverage over the first
// nearTermWeeks weeks and feasibility over the whole window. Rows are sorted
// red, then yellow, then green, keeping input order within a level.
func SummarizeWorkItems(workItems []model.WorkItem, allocations []model.Allocation, weeks []calendar.WeekInfo, nearTermWeeks int, now time.Time) []WorkItemRisk {
	nearTerm := weeks
	if nearTermWeeks < 0 {
		nearTermWeeks = 0
	}
	if nearTermWeeks < len(weeks) {
		nearTerm = weeks[:nearTermWeeks]
	}

	coverage := ComputeCoverageRisks(workItems, allocations, nearTerm)
	feasibility := ComputeFeasibilityRisks(workItems, allocations, weeks, now)

	coverageByItem := make(map[string][]Level)
	for _, c := range coverage {
		coverageByItem[c.WorkItemID] = append(coverageByItem[c.WorkItemID], c.Level)
	}
	feasibilityByItem := make(map[string]Level)
	for _, f := range feasibility {
		feasibilityByItem[f.WorkItemID] = f.Level
	}

	rows := make([]WorkItemRisk, 0, len(workItems))
	for _, wi := range workItems {
		levels := coverageByItem[wi.ID]
		if levels == nil {
			levels = []Level{}
		}

		// Missing feasibility means nothing remains, which counts as green
		feas, ok := feasibilityByItem[wi.ID]
		if !ok {
			feas = Green
		}

		rows = append(rows, WorkItemRisk{
			WorkItem:       wi,
			CoverageLevels: levels,
			Feasibility:    feas,
			Worst:          Worst(append(append([]Level{}, levels...), feas)...),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Worst.Severity() > rows[j].Worst.Severity()
	})

	return rows
}

// AtRisk drops green rows
func AtRisk(rows []WorkItemRisk) []WorkItemRisk {
	filtered := []WorkItemRisk{}
	for _, r := range rows {
		if r.Worst != Green {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
