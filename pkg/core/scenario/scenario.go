package scenario

import (
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// IDFunc generates a new unique ID
type IDFunc func() string

// Duplicate copies a scenario's work items, allocations and time off under a
// new non-base scenario. Every record gets a fresh ID and allocations follow
// their work item to its new ID. Allocations whose work item is not in the
// source keep the old reference.
func Duplicate(src model.ScenarioData, name string, newID IDFunc) model.ScenarioData {
	dup := model.ScenarioData{
		Scenario: model.Scenario{
			ID:     newID(),
			Name:   name,
			IsBase: false,
		},
		WorkItems:   make([]model.WorkItem, 0, len(src.WorkItems)),
		Allocations: make([]model.Allocation, 0, len(src.Allocations)),
		TimeOffs:    make([]model.TimeOff, 0, len(src.TimeOffs)),
	}

	workItemIDs := make(map[string]string, len(src.WorkItems))
	for _, wi := range src.WorkItems {
		copied := wi
		copied.ID = newID()
		workItemIDs[wi.ID] = copied.ID
		dup.WorkItems = append(dup.WorkItems, copied)
	}

	for _, a := range src.Allocations {
		copied := a
		copied.ID = newID()
		if mapped, ok := workItemIDs[a.WorkItemID]; ok {
			copied.WorkItemID = mapped
		}
		dup.Allocations = append(dup.Allocations, copied)
	}

	for _, to := range src.TimeOffs {
		copied := to
		copied.ID = newID()
		dup.TimeOffs = append(dup.TimeOffs, copied)
	}

	return dup
}

// PlanAllocations creates one full-day allocation per person per weekday in [start, end]
func PlanAllocations(personIDs []string, workItemID, start, end string, newID IDFunc) []model.Allocation {
	dates := calendar.WeekdaysInRangeStr(start, end)
	allocations := make([]model.Allocation, 0, len(personIDs)*len(dates))

	for _, personID := range personIDs {
		for _, date := range dates {
			allocations = append(allocations, model.Allocation{
				ID:         newID(),
				PersonID:   personID,
				WorkItemID: workItemID,
				Date:       date,
				Days:       1,
			})
		}
	}

	return allocations
}

// ClearAllocations splits allocations into those kept and those removed for
// the person within [start, end]
func ClearAllocations(allocations []model.Allocation, personID, start, end string) (kept, removed []model.Allocation) {
	kept = []model.Allocation{}
	removed = []model.Allocation{}

	for _, a := range allocations {
		if a.PersonID == personID && a.Date >= start && a.Date <= end {
			removed = append(removed, a)
		} else {
			kept = append(kept, a)
		}
	}

	return kept, removed
}

// TimeOffResult is the outcome of marking a date range off
type TimeOffResult struct {
	Data               model.ScenarioData
	Added              []model.TimeOff
	RemovedAllocations []model.Allocation
}

// AddTimeOffRange marks the person off on each date in [start, end] that is not
// already off, and drops their allocations on those dates
func AddTimeOffRange(data model.ScenarioData, personID, start, end string, weekdaysOnly bool, reason string, newID IDFunc) TimeOffResult {
	var dates []string
	if weekdaysOnly {
		dates = calendar.WeekdaysInRangeStr(start, end)
	} else {
		dates = calendar.DaysInRangeStr(start, end)
	}

	alreadyOff := make(map[string]bool)
	for _, to := range data.TimeOffs {
		if to.PersonID == personID {
			alreadyOff[to.Date] = true
		}
	}

	result := TimeOffResult{
		Added:              []model.TimeOff{},
		RemovedAllocations: []model.Allocation{},
	}

	offDates := make(map[string]bool, len(dates))
	for _, date := range dates {
		offDates[date] = true
		if alreadyOff[date] {
			continue
		}
		result.Added = append(result.Added, model.TimeOff{
			ID:       newID(),
			PersonID: personID,
			Date:     date,
			Reason:   reason,
		})
	}

	allocations := []model.Allocation{}
	for _, a := range data.Allocations {
		if a.PersonID == personID && offDates[a.Date] {
			result.RemovedAllocations = append(result.RemovedAllocations, a)
			continue
		}
		allocations = append(allocations, a)
	}

	result.Data = data
	result.Data.Allocations = allocations
	result.Data.TimeOffs = append(append([]model.TimeOff{}, data.TimeOffs...), result.Added...)

	return result
}

// DeleteWorkItem removes the work item and every allocation that references it.
// Returns false if the work item does not exist.
func DeleteWorkItem(data model.ScenarioData, workItemID string) (model.ScenarioData, bool) {
	found := false
	workItems := make([]model.WorkItem, 0, len(data.WorkItems))
	for _, wi := range data.WorkItems {
		if wi.ID == workItemID {
			found = true
			continue
		}
		workItems = append(workItems, wi)
	}
	if !found {
		return data, false
	}

	allocations := make([]model.Allocation, 0, len(data.Allocations))
	for _, a := range data.Allocations {
		if a.WorkItemID != workItemID {
			allocations = append(allocations, a)
		}
	}

	data.WorkItems = workItems
	data.Allocations = allocations
	return data, true
}
