package risk

import (
	"time"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// Level is a traffic-light risk classification, ordered red > yellow > green
type Level string

const (
	Green  Level = "green"
	Yellow Level = "yellow"
	Red    Level = "red"
)

// Severity returns 0 for green, 1 for yellow and 2 for red
func (l Level) Severity() int {
	switch l {
	case Red:
		return 2
	case Yellow:
		return 1
	default:
		return 0
	}
}

// Worst returns red if any level is red, else yellow if any is yellow, else green
func Worst(levels ...Level) Level {
	worst := Green
	for _, l := range levels {
		if l.Severity() > worst.Severity() {
			worst = l
		}
	}
	return worst
}

// CoverageRisk is the staffing status of one work item in one week
type CoverageRisk struct {
	WorkItemID string
	WeekStart  string
	Planned    float64
	Required   float64
	Level      Level
}

// FeasibilityRisk is the staffing status of a work item's remaining window
type FeasibilityRisk struct {
	WorkItemID        string
	RemainingRequired float64
	RemainingPlanned  float64
	Level             Level
}

// ContextSwitchingRisk flags a person spread over too many work items in a week
type ContextSwitchingRisk struct {
	PersonID          string
	WeekStart         string
	DistinctWorkItems int
	Level             Level
}

// CapacityRisk flags a person assigned too many days in a week
type CapacityRisk struct {
	PersonID     string
	WeekStart    string
	AssignedDays float64
	Cap          float64 // carried for display only
	Level        Level
}

// ClassifyCoverage compares planned days against the required days
func ClassifyCoverage(planned, required float64) Level {
	if planned < CoverageRedRatio*required {
		return Red
	}
	if planned < required {
		return Yellow
	}
	return Green
}

// ClassifyContextSwitching classifies a weekly count of distinct work items
func ClassifyContextSwitching(distinctWorkItems int) Level {
	if distinctWorkItems >= ContextSwitchingRed {
		return Red
	}
	if distinctWorkItems >= ContextSwitchingYellow {
		return Yellow
	}
	return Green
}

// ClassifyCapacity classifies a weekly total of assigned days
func ClassifyCapacity(assignedDays float64) Level {
	if assignedDays >= CapacityRed {
		return Red
	}
	if assignedDays > CapacityYellowAbove {
		return Yellow
	}
	return Green
}

// ComputeCoverageRisks emits one record per work item and week whose weekdays
// overlap the work item's date range. Weeks without overlap are skipped.
func ComputeCoverageRisks(workItems []model.WorkItem, allocations []model.Allocation, weeks []calendar.WeekInfo) []CoverageRisk {
	risks := []CoverageRisk{}
	byWorkItem := allocationsByWorkItem(allocations)

	for _, wi := range workItems {
		for _, week := range weeks {
			overlapDays := calendar.OverlapDays(week, wi.StartDate, wi.EndDate)
			if len(overlapDays) == 0 {
				continue
			}

			planned := sumDaysOnDates(byWorkItem[wi.ID], toSet(overlapDays))
			required := wi.RequiredMinDaysPerWeek

			risks = append(risks, CoverageRisk{
				WorkItemID: wi.ID,
				WeekStart:  week.WeekStartStr,
				Planned:    planned,
				Required:   required,
				Level:      ClassifyCoverage(planned, required),
			})
		}
	}

	return risks
}

// ComputeFeasibilityRisks checks each work item's remaining window: weekdays
// on or after now that fall in both the planning window and the item's range.
// Items with nothing remaining are skipped.
func ComputeFeasibilityRisks(workItems []model.WorkItem, allocations []model.Allocation, weeks []calendar.WeekInfo, now time.Time) []FeasibilityRisk {
	risks := []FeasibilityRisk{}
	byWorkItem := allocationsByWorkItem(allocations)
	nowStr := calendar.FormatDate(calendar.Normalize(now))

	for _, wi := range workItems {
		remainingWeeks := 0
		remainingDates := make(map[string]bool)

		for _, week := range weeks {
			futureDays := 0
			for _, d := range calendar.OverlapDays(week, wi.StartDate, wi.EndDate) {
				if d >= nowStr {
					remainingDates[d] = true
					futureDays++
				}
			}
			if futureDays > 0 {
				remainingWeeks++
			}
		}

		if remainingWeeks == 0 {
			continue
		}

		remainingRequired := wi.RequiredMinDaysPerWeek * float64(remainingWeeks)
		remainingPlanned := sumDaysOnDates(byWorkItem[wi.ID], remainingDates)

		risks = append(risks, FeasibilityRisk{
			WorkItemID:        wi.ID,
			RemainingRequired: remainingRequired,
			RemainingPlanned:  remainingPlanned,
			Level:             ClassifyCoverage(remainingPlanned, remainingRequired),
		})
	}

	return risks
}

// ComputeContextSwitchingRisks emits non-green person/week records based on
// the number of distinct work items the person is allocated to that week
func ComputeContextSwitchingRisks(people []model.Person, allocations []model.Allocation, weeks []calendar.WeekInfo) []ContextSwitchingRisk {
	risks := []ContextSwitchingRisk{}
	byPerson := allocationsByPerson(allocations)

	for _, person := range people {
		for _, week := range weeks {
			weekDays := toSet(week.WeekdayStrs())

			distinct := make(map[string]bool)
			for _, a := range byPerson[person.ID] {
				if weekDays[a.Date] {
					distinct[a.WorkItemID] = true
				}
			}

			level := ClassifyContextSwitching(len(distinct))
			if level == Green {
				continue
			}

			risks = append(risks, ContextSwitchingRisk{
				PersonID:          person.ID,
				WeekStart:         week.WeekStartStr,
				DistinctWorkItems: len(distinct),
				Level:             level,
			})
		}
	}

	return risks
}

// ComputeCapacityRisks emits non-green person/week records based on the total
// allocated days that week
func ComputeCapacityRisks(people []model.Person, allocations []model.Allocation, weeks []calendar.WeekInfo) []CapacityRisk {
	risks := []CapacityRisk{}
	byPerson := allocationsByPerson(allocations)

	for _, person := range people {
		for _, week := range weeks {
			assignedDays := sumDaysOnDates(byPerson[person.ID], toSet(week.WeekdayStrs()))

			level := ClassifyCapacity(assignedDays)
			if level == Green {
				continue
			}

			risks = append(risks, CapacityRisk{
				PersonID:     person.ID,
				WeekStart:    week.WeekStartStr,
				AssignedDays: assignedDays,
				Cap:          person.WeeklyCapacityDays,
				Level:        level,
			})
		}
	}

	return risks
}

// allocationsByWorkItem indexes allocations by work item, preserving input order
func allocationsByWorkItem(allocations []model.Allocation) map[string][]model.Allocation {
	index := make(map[string][]model.Allocation)
	for _, a := range allocations {
		index[a.WorkItemID] = append(index[a.WorkItemID], a)
	}
	return index
}

// allocationsByPerson indexes allocations by person, preserving input order
func allocationsByPerson(allocations []model.Allocation) map[string][]model.Allocation {
	index := make(map[string][]model.Allocation)
	for _, a := range allocations {
		index[a.PersonID] = append(index[a.PersonID], a)
	}
	return index
}

func sumDaysOnDates(allocations []model.Allocation, dates map[string]bool) float64 {
	total := 0.0
	for _, a := range allocations {
		if dates[a.Date] {
			total += a.Days
		}
	}
	return total
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
