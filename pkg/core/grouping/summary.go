package grouping

import (
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
)

// WeeklySummary is the header rollup for one group in one week
type WeeklySummary struct {
	AssignedDays float64
	TotalCapDays float64
	RedCount     int
	YellowCount  int
}

// ComputeGroupWeeklySummary totals the group's assigned days and active
// capacity for the week, and counts red and yellow coverage among work items
// in the group's real pods that overlap the week
func ComputeGroupWeeklySummary(group PodGroup, allocations []model.Allocation, workItems []model.WorkItem, week calendar.WeekInfo) WeeklySummary {
	summary := WeeklySummary{}

	weekDays := make(map[string]bool, len(week.Weekdays))
	for _, d := range week.WeekdayStrs() {
		weekDays[d] = true
	}

	personIDs := make(map[string]bool)
	for _, p := range group.People() {
		personIDs[p.ID] = true
		if p.IsActive() {
			summary.TotalCapDays += p.WeeklyCapacityDays
		}
	}

	for _, a := range allocations {
		if personIDs[a.PersonID] && weekDays[a.Date] {
			summary.AssignedDays += a.Days
		}
	}

	podIDs := make(map[string]bool)
	for _, id := range group.RealPodIDs() {
		podIDs[id] = true
	}

	var groupItems []model.WorkItem
	for _, wi := range workItems {
		if podIDs[wi.PodID] {
			groupItems = append(groupItems, wi)
		}
	}

	for _, c := range risk.ComputeCoverageRisks(groupItems, allocations, []calendar.WeekInfo{week}) {
		switch c.Level {
		case risk.Red:
			summary.RedCount++
		case risk.Yellow:
			summary.YellowCount++
		}
	}

	return summary
}
