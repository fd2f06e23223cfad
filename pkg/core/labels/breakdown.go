package labels

import (
	"sort"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// PodDays is one chip in a person's weekly breakdown
type PodDays struct {
	PodID    string
	Days     float64
	CrossPod bool
}

// IsCrossPodAllocation returns true if the work item belongs to a pod other
// than the person's home pod. People without a home pod are never cross-pod.
func IsCrossPodAllocation(person model.Person, workItem model.WorkItem) bool {
	if person.HomePodID == "" {
		return false
	}
	return workItem.PodID != person.HomePodID
}

// WeeklyPodBreakdown sums the person's allocated days in the week by the pod
// of each work item, sorted by days descending. Ties keep first-seen order.
// Allocations to unknown work items are skipped.
func WeeklyPodBreakdown(person model.Person, allocations []model.Allocation, workItems []model.WorkItem, week calendar.WeekInfo) []PodDays {
	workItemsByID := make(map[string]model.WorkItem, len(workItems))
	for _, wi := range workItems {
		workItemsByID[wi.ID] = wi
	}

	breakdown := []PodDays{}
	indexByPod := make(map[string]int)

	for _, a := range allocations {
		if a.PersonID != person.ID || !week.Contains(a.Date) {
			continue
		}
		wi, ok := workItemsByID[a.WorkItemID]
		if !ok {
			continue
		}

		idx, seen := indexByPod[wi.PodID]
		if !seen {
			idx = len(breakdown)
			indexByPod[wi.PodID] = idx
			breakdown = append(breakdown, PodDays{
				PodID:    wi.PodID,
				CrossPod: IsCrossPodAllocation(person, wi),
			})
		}
		breakdown[idx].Days += a.Days
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Days > breakdown[j].Days
	})

	return breakdown
}
