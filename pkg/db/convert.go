package db

import (
	"strings"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

func PodsToModel(rows []Pod) []model.Pod {
	pods := make([]model.Pod, 0, len(rows))
	for _, r := range rows {
		pods = append(pods, model.Pod{ID: r.ID, Name: r.Name})
	}
	return pods
}

func PodsFromModel(pods []model.Pod) []Pod {
	rows := make([]Pod, 0, len(pods))
	for _, p := range pods {
		rows = append(rows, Pod{ID: p.ID, Name: p.Name})
	}
	return rows
}

func PeopleToModel(rows []Person) []model.Person {
	people := make([]model.Person, 0, len(rows))
	for _, r := range rows {
		var filters []string
		if r.DefaultPodFilterIDs != "" {
			filters = strings.Split(r.DefaultPodFilterIDs, ",")
		}
		people = append(people, model.Person{
			ID:                  r.ID,
			Name:                r.Name,
			Role:                model.PersonRole(r.Role),
			Type:                model.PersonType(r.Type),
			HomePodID:           r.HomePodID,
			LeadID:              r.LeadID,
			WeeklyCapacityDays:  r.WeeklyCapacityDays,
			Status:              model.PersonStatus(r.Status),
			ArchivedAt:          r.ArchivedAt,
			DefaultPodFilterIDs: filters,
		})
	}
	return people
}

func PeopleFromModel(people []model.Person) []Person {
	rows := make([]Person, 0, len(people))
	for _, p := range people {
		rows = append(rows, Person{
			ID:                  p.ID,
			Name:                p.Name,
			Role:                string(p.Role),
			Type:                string(p.Type),
			HomePodID:           p.HomePodID,
			LeadID:              p.LeadID,
			WeeklyCapacityDays:  p.WeeklyCapacityDays,
			Status:              string(p.Status),
			ArchivedAt:          p.ArchivedAt,
			DefaultPodFilterIDs: strings.Join(p.DefaultPodFilterIDs, ","),
		})
	}
	return rows
}

func ScenarioToModel(r Scenario) model.Scenario {
	return model.Scenario{ID: r.ID, Name: r.Name, IsBase: r.IsBase}
}

func ScenarioFromModel(s model.Scenario) Scenario {
	return Scenario{ID: s.ID, Name: s.Name, IsBase: s.IsBase}
}

func WorkItemsToModel(rows []WorkItem) []model.WorkItem {
	workItems := make([]model.WorkItem, 0, len(rows))
	for _, r := range rows {
		workItems = append(workItems, model.WorkItem{
			ID:                     r.ID,
			Type:                   model.WorkItemType(r.Type),
			Name:                   r.Name,
			PodID:                  r.PodID,
			StartDate:              r.StartDate,
			EndDate:                r.EndDate,
			RequiredMinDaysPerWeek: r.RequiredMinDaysPerWeek,
			ReleaseDate:            r.ReleaseDate,
			Notes:                  r.Notes,
		})
	}
	return workItems
}

func WorkItemsFromModel(scenarioID string, workItems []model.WorkItem) []WorkItem {
	rows := make([]WorkItem, 0, len(workItems))
	for _, wi := range workItems {
		rows = append(rows, WorkItem{
			ID:                     wi.ID,
			ScenarioID:             scenarioID,
			Type:                   string(wi.Type),
			Name:                   wi.Name,
			PodID:                  wi.PodID,
			StartDate:              wi.StartDate,
			EndDate:                wi.EndDate,
			RequiredMinDaysPerWeek: wi.RequiredMinDaysPerWeek,
			ReleaseDate:            wi.ReleaseDate,
			Notes:                  wi.Notes,
		})
	}
	return rows
}

func AllocationsToModel(rows []Allocation) []model.Allocation {
	allocations := make([]model.Allocation, 0, len(rows))
	for _, r := range rows {
		allocations = append(allocations, model.Allocation{
			ID:         r.ID,
			PersonID:   r.PersonID,
			WorkItemID: r.WorkItemID,
			Date:       r.Date,
			Days:       r.Days,
		})
	}
	return allocations
}

func AllocationsFromModel(scenarioID string, allocations []model.Allocation) []Allocation {
	rows := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, Allocation{
			ID:         a.ID,
			ScenarioID: scenarioID,
			PersonID:   a.PersonID,
			WorkItemID: a.WorkItemID,
			Date:       a.Date,
			Days:       a.Days,
		})
	}
	return rows
}

func TimeOffsToModel(rows []TimeOff) []model.TimeOff {
	timeOffs := make([]model.TimeOff, 0, len(rows))
	for _, r := range rows {
		timeOffs = append(timeOffs, model.TimeOff{
			ID:       r.ID,
			PersonID: r.PersonID,
			Date:     r.Date,
			Reason:   r.Reason,
		})
	}
	return timeOffs
}

func TimeOffsFromModel(scenarioID string, timeOffs []model.TimeOff) []TimeOff {
	rows := make([]TimeOff, 0, len(timeOffs))
	for _, to := range timeOffs {
		rows = append(rows, TimeOff{
			ID:         to.ID,
			ScenarioID: scenarioID,
			PersonID:   to.PersonID,
			Date:       to.Date,
			Reason:     to.Reason,
		})
	}
	return rows
}
