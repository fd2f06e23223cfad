package grouping

import (
	"fmt"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// AffinityStrategy resolves the pod a person belongs to for display.
// An empty string means the person has no resolvable pod.
type AffinityStrategy interface {
	PodFor(person model.Person) string
}

// Affinity strategy names as they appear in config
const (
	AffinityHomePod     = "home_pod"
	AffinityAllocations = "allocations"
)

// HomePodAffinity places people by their home pod
type HomePodAffinity struct{}

func (HomePodAffinity) PodFor(person model.Person) string {
	return person.HomePodID
}

// AllocationAffinity places people in the pod most referenced by their allocations
type AllocationAffinity struct {
	podByPerson map[string]string
}

// NewAllocationAffinity counts each person's allocations per pod and keeps the
// pod with the highest count. Ties go to the pod seen first in allocation order.
// Allocations to unknown work items are ignored.
func NewAllocationAffinity(allocations []model.Allocation, workItems []model.WorkItem) *AllocationAffinity {
	podByWorkItem := make(map[string]string, len(workItems))
	for _, wi := range workItems {
		podByWorkItem[wi.ID] = wi.PodID
	}

	counts := make(map[string]map[string]int)
	order := make(map[string][]string)

	for _, a := range allocations {
		podID, ok := podByWorkItem[a.WorkItemID]
		if !ok || podID == "" {
			continue
		}

		if counts[a.PersonID] == nil {
			counts[a.PersonID] = make(map[string]int)
		}
		if counts[a.PersonID][podID] == 0 {
			order[a.PersonID] = append(order[a.PersonID], podID)
		}
		counts[a.PersonID][podID]++
	}

	podByPerson := make(map[string]string, len(counts))
	for personID, podOrder := range order {
		best := ""
		bestCount := 0
		for _, podID := range podOrder {
			if c := counts[personID][podID]; c > bestCount {
				best = podID
				bestCount = c
			}
		}
		podByPerson[personID] = best
	}

	return &AllocationAffinity{podByPerson: podByPerson}
}

func (a *AllocationAffinity) PodFor(person model.Person) string {
	return a.podByPerson[person.ID]
}

// NewAffinity builds the named strategy. Allocation data is only used by the
// allocations strategy.
func NewAffinity(name string, allocations []model.Allocation, workItems []model.WorkItem) (AffinityStrategy, error) {
	switch name {
	case "", AffinityHomePod:
		return HomePodAffinity{}, nil
	case AffinityAllocations:
		return NewAllocationAffinity(allocations, workItems), nil
	default:
		return nil, fmt.Errorf("unknown affinity strategy: %s", name)
	}
}
