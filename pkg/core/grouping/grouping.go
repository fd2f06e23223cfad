package grouping

import (
	"fmt"
	"strings"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// Synthetic subgroup IDs. Real pod IDs never start with "__".
const (
	QALeadSubgroupID     = "__qa_lead__"
	UnassignedSubgroupID = "__unassigned__"
	UnassignedLabel      = "Unassigned (Needs Owner)"
)

// LeadPods maps a pod lead's person ID to the pods they own, in display order
type LeadPods map[string][]string

// DefaultLeadPods is the built-in lead to pod mapping
var DefaultLeadPods = LeadPods{
	"person-tbh":    {"pod-ww"},
	"person-izzy":   {"pod-ps"},
	"person-lionel": {"pod-la"},
	"person-kawika": {"pod-tp", "pod-ss"},
}

// PodSubgroup is one pod's people within a group
type PodSubgroup struct {
	Pod    model.Pod
	People []model.Person
}

// PodGroup is a lead and the pods under them. Lead is nil for the unassigned group.
type PodGroup struct {
	Lead  *model.Person
	Label string
	Pods  []PodSubgroup
}

// People returns everyone in the group in subgroup order
func (g PodGroup) People() []model.Person {
	people := []model.Person{}
	for _, sg := range g.Pods {
		people = append(people, sg.People...)
	}
	return people
}

// RealPodIDs returns the group's pod IDs, excluding synthetic subgroups
func (g PodGroup) RealPodIDs() []string {
	ids := []string{}
	for _, sg := range g.Pods {
		if !IsSyntheticPodID(sg.Pod.ID) {
			ids = append(ids, sg.Pod.ID)
		}
	}
	return ids
}

// NoPodSubgroupID is the subgroup ID for a lead's reports that have no pod
func NoPodSubgroupID(leadID string) string {
	return fmt.Sprintf("__no_pod_%s__", leadID)
}

// IsSyntheticPodID returns true for subgroup IDs that do not name a real pod
func IsSyntheticPodID(id string) bool {
	return strings.HasPrefix(id, "__")
}

// BuildPodGroups arranges people into display groups:
//  1. the QA lead, with their pod-less reports
//  2. one group per pod lead in people order, with a subgroup per owned pod
//     holding the lead (first pod only) and every tester whose affinity is that pod,
//     followed by the lead's pod-less reports
//  3. everyone not yet placed, under "Unassigned (Needs Owner)"
//
// Every person appears exactly once. A pod lead is only given a group when at
// least one of their pods exists; otherwise the lead and their reports fall
// through to the unassigned group.
func BuildPodGroups(people []model.Person, pods []model.Pod, leadPods LeadPods, affinity AffinityStrategy) []PodGroup {
	if leadPods == nil {
		leadPods = DefaultLeadPods
	}
	if affinity == nil {
		affinity = HomePodAffinity{}
	}

	podMap := make(map[string]model.Pod, len(pods))
	for _, p := range pods {
		podMap[p.ID] = p
	}

	resolved := make(map[string]string, len(people))
	var testers []model.Person
	var leads []model.Person
	var qaLead *model.Person
	for i := range people {
		p := people[i]
		switch p.Role {
		case model.RoleTester:
			testers = append(testers, p)
			resolved[p.ID] = affinity.PodFor(p)
		case model.RolePodLead:
			leads = append(leads, p)
		case model.RoleQALead:
			if qaLead == nil {
				qaLead = &people[i]
			}
		}
	}

	placed := make(map[string]bool, len(people))
	groups := []PodGroup{}

	// noPodReports collects unplaced testers with no resolved pod who report to leadID
	noPodReports := func(leadID string) []model.Person {
		reports := []model.Person{}
		for _, t := range testers {
			if placed[t.ID] || resolved[t.ID] != "" || t.LeadID != leadID {
				continue
			}
			placed[t.ID] = true
			reports = append(reports, t)
		}
		return reports
	}

	if qaLead != nil {
		placed[qaLead.ID] = true
		subgroups := []PodSubgroup{
			{
				Pod:    model.Pod{ID: QALeadSubgroupID, Name: "QA Lead"},
				People: []model.Person{*qaLead},
			},
		}

		if reports := noPodReports(qaLead.ID); len(reports) > 0 {
			subgroups = append(subgroups, PodSubgroup{
				Pod:    model.Pod{ID: NoPodSubgroupID(qaLead.ID), Name: "No Pod"},
				People: reports,
			})
		}

		lead := *qaLead
		groups = append(groups, PodGroup{
			Lead:  &lead,
			Label: "QA Lead: " + qaLead.Name,
			Pods:  subgroups,
		})
	}

	for _, lead := range leads {
		podIDs := leadPods[lead.ID]
		if len(podIDs) == 0 && lead.HomePodID != "" {
			podIDs = []string{lead.HomePodID}
		}

		var ownedPods []model.Pod
		for _, podID := range podIDs {
			if pod, ok := podMap[podID]; ok {
				ownedPods = append(ownedPods, pod)
			}
		}
		if len(ownedPods) == 0 {
			continue
		}

		names := make([]string, len(podIDs))
		for i, podID := range podIDs {
			names[i] = podID
			if pod, ok := podMap[podID]; ok {
				names[i] = pod.Name
			}
		}

		placed[lead.ID] = true
		subgroups := []PodSubgroup{}

		for i, pod := range ownedPods {
			podPeople := []model.Person{}
			if i == 0 {
				podPeople = append(podPeople, lead)
			}
			for _, t := range testers {
				if placed[t.ID] || resolved[t.ID] != pod.ID {
					continue
				}
				placed[t.ID] = true
				podPeople = append(podPeople, t)
			}
			subgroups = append(subgroups, PodSubgroup{Pod: pod, People: podPeople})
		}

		if reports := noPodReports(lead.ID); len(reports) > 0 {
			subgroups = append(subgroups, PodSubgroup{
				Pod:    model.Pod{ID: NoPodSubgroupID(lead.ID), Name: "No Pod"},
				People: reports,
			})
		}

		l := lead
		groups = append(groups, PodGroup{
			Lead:  &l,
			Label: fmt.Sprintf("%s (Lead: %s)", strings.Join(names, " + "), lead.Name),
			Pods:  subgroups,
		})
	}

	unassigned := []model.Person{}
	for _, p := range people {
		if !placed[p.ID] {
			placed[p.ID] = true
			unassigned = append(unassigned, p)
		}
	}

	if len(unassigned) > 0 {
		groups = append(groups, PodGroup{
			Lead:  nil,
			Label: UnassignedLabel,
			Pods: []PodSubgroup{
				{
					Pod:    model.Pod{ID: UnassignedSubgroupID, Name: "Unassigned"},
					People: unassigned,
				},
			},
		})
	}

	return groups
}
