package grouping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

var testPods = []model.Pod{
	{ID: "pod-ww", Name: "Word Wizards"},
	{ID: "pod-ps", Name: "Pod Squad"},
	{ID: "pod-tp", Name: "TINPOZ"},
	{ID: "pod-ss", Name: "ServerScapes"},
	{ID: "pod-la", Name: "Lalo"},
}

func person(id, name string, role model.PersonRole, homePod, lead string) model.Person {
	return model.Person{
		ID:                 id,
		Name:               name,
		Role:               role,
		Type:               model.PersonTypeInternal,
		HomePodID:          homePod,
		LeadID:             lead,
		WeeklyCapacityDays: 5,
		Status:             model.StatusActive,
	}
}

func testPeople() []model.Person {
	return []model.Person{
		person("person-emily", "Emily", model.RoleQALead, "", ""),
		person("person-izzy", "Izzy", model.RolePodLead, "pod-ps", ""),
		person("person-kawika", "Kawika", model.RolePodLead, "pod-tp", ""),
		person("t-ps", "Pat", model.RoleTester, "pod-ps", "person-izzy"),
		person("t-tp", "Tom", model.RoleTester, "pod-tp", "person-kawika"),
		person("t-ss", "Sam", model.RoleTester, "pod-ss", "person-kawika"),
		person("t-emily-report", "Erin", model.RoleTester, "", "person-emily"),
		person("t-kawika-report", "Kim", model.RoleTester, "", "person-kawika"),
		person("t-floating", "Fay", model.RoleTester, "", ""),
		person("t-orphan-pod", "Olly", model.RoleTester, "pod-la", ""), // pod-la has no lead in this roster
	}
}

func ids(people []model.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.ID
	}
	return out
}

func assertEachPersonOnce(t *testing.T, people []model.Person, groups []PodGroup) {
	t.Helper()
	seen := make(map[string]int)
	for _, g := range groups {
		for _, p := range g.People() {
			seen[p.ID]++
		}
	}
	require.Len(t, seen, len(people), "every person should be placed")
	for _, p := range people {
		assert.Equal(t, 1, seen[p.ID], "person %s should appear exactly once", p.ID)
	}
}

func TestBuildPodGroups_HomePod(t *testing.T) {
	people := testPeople()
	groups := BuildPodGroups(people, testPods, DefaultLeadPods, HomePodAffinity{})

	require.Len(t, groups, 4)

	qa := groups[0]
	assert.Equal(t, "QA Lead: Emily", qa.Label)
	require.NotNil(t, qa.Lead)
	assert.Equal(t, "person-emily", qa.Lead.ID)
	require.Len(t, qa.Pods, 2)
	assert.Equal(t, QALeadSubgroupID, qa.Pods[0].Pod.ID)
	assert.Equal(t, []string{"person-emily"}, ids(qa.Pods[0].People))
	assert.Equal(t, "__no_pod_person-emily__", qa.Pods[1].Pod.ID)
	assert.Equal(t, "No Pod", qa.Pods[1].Pod.Name)
	assert.Equal(t, []string{"t-emily-report"}, ids(qa.Pods[1].People))

	izzy := groups[1]
	assert.Equal(t, "Pod Squad (Lead: Izzy)", izzy.Label)
	require.Len(t, izzy.Pods, 1)
	assert.Equal(t, []string{"person-izzy", "t-ps"}, ids(izzy.Pods[0].People))

	kawika := groups[2]
	assert.Equal(t, "TINPOZ + ServerScapes (Lead: Kawika)", kawika.Label)
	require.Len(t, kawika.Pods, 3)
	assert.Equal(t, "pod-tp", kawika.Pods[0].Pod.ID)
	assert.Equal(t, []string{"person-kawika", "t-tp"}, ids(kawika.Pods[0].People))
	assert.Equal(t, "pod-ss", kawika.Pods[1].Pod.ID)
	assert.Equal(t, []string{"t-ss"}, ids(kawika.Pods[1].People), "lead only appears in the first pod")
	assert.Equal(t, NoPodSubgroupID("person-kawika"), kawika.Pods[2].Pod.ID)
	assert.Equal(t, []string{"t-kawika-report"}, ids(kawika.Pods[2].People))

	unassigned := groups[3]
	assert.Nil(t, unassigned.Lead)
	assert.Equal(t, UnassignedLabel, unassigned.Label)
	require.Len(t, unassigned.Pods, 1)
	assert.Equal(t, UnassignedSubgroupID, unassigned.Pods[0].Pod.ID)
	assert.Equal(t, []string{"t-floating", "t-orphan-pod"}, ids(unassigned.Pods[0].People))

	assertEachPersonOnce(t, people, groups)
}

func TestBuildPodGroups_AllocationAffinity(t *testing.T) {
	people := testPeople()
	workItems := []model.WorkItem{
		{ID: "wi-ps", PodID: "pod-ps"},
		{ID: "wi-ss", PodID: "pod-ss"},
		{ID: "wi-tp", PodID: "pod-tp"},
	}
	allocations := []model.Allocation{
		// Home pod is PS, but mostly works on SS
		{ID: "a1", PersonID: "t-ps", WorkItemID: "wi-ps", Date: "2025-01-13", Days: 1},
		{ID: "a2", PersonID: "t-ps", WorkItemID: "wi-ss", Date: "2025-01-14", Days: 1},
		{ID: "a3", PersonID: "t-ps", WorkItemID: "wi-ss", Date: "2025-01-15", Days: 1},
		// Floating tester pulled into TINPOZ
		{ID: "a4", PersonID: "t-floating", WorkItemID: "wi-tp", Date: "2025-01-13", Days: 1},
		// Dangling work item is ignored
		{ID: "a5", PersonID: "t-kawika-report", WorkItemID: "missing", Date: "2025-01-13", Days: 1},
	}

	affinity := NewAllocationAffinity(allocations, workItems)
	groups := BuildPodGroups(people, testPods, DefaultLeadPods, affinity)

	assertEachPersonOnce(t, people, groups)

	var kawika PodGroup
	for _, g := range groups {
		if g.Lead != nil && g.Lead.ID == "person-kawika" {
			kawika = g
		}
	}
	require.Len(t, kawika.Pods, 3)
	assert.Equal(t, []string{"person-kawika", "t-floating"}, ids(kawika.Pods[0].People))
	assert.Equal(t, []string{"t-ps"}, ids(kawika.Pods[1].People))
	// Testers with no allocations have no affinity and fall back to their lead's No Pod subgroup
	assert.Equal(t, []string{"t-tp", "t-ss", "t-kawika-report"}, ids(kawika.Pods[2].People))

	last := groups[len(groups)-1]
	assert.Equal(t, UnassignedLabel, last.Label)
	assert.Equal(t, []string{"t-orphan-pod"}, ids(last.Pods[0].People))
}

func TestAllocationAffinity_TieGoesToFirstSeen(t *testing.T) {
	workItems := []model.WorkItem{{ID: "wi-a", PodID: "pod-a"}, {ID: "wi-b", PodID: "pod-b"}}
	allocations := []model.Allocation{
		{PersonID: "p1", WorkItemID: "wi-b"},
		{PersonID: "p1", WorkItemID: "wi-a"},
		{PersonID: "p1", WorkItemID: "wi-a"},
		{PersonID: "p1", WorkItemID: "wi-b"},
	}

	affinity := NewAllocationAffinity(allocations, workItems)
	assert.Equal(t, "pod-b", affinity.PodFor(model.Person{ID: "p1"}))
	assert.Equal(t, "", affinity.PodFor(model.Person{ID: "nobody", HomePodID: "pod-a"}))
}

func TestNewAffinity(t *testing.T) {
	a, err := NewAffinity("", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, HomePodAffinity{}, a)

	a, err = NewAffinity(AffinityAllocations, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &AllocationAffinity{}, a)

	_, err = NewAffinity("random", nil, nil)
	assert.Error(t, err)
}

func TestBuildPodGroups_LeadFallsBackToHomePod(t *testing.T) {
	people := []model.Person{
		person("lead-x", "Xena", model.RolePodLead, "pod-la", ""),
		person("t-la", "Lou", model.RoleTester, "pod-la", ""),
	}

	groups := BuildPodGroups(people, testPods, LeadPods{}, HomePodAffinity{})
	require.Len(t, groups, 1)
	assert.Equal(t, "Lalo (Lead: Xena)", groups[0].Label)
	assert.Equal(t, []string{"lead-x", "t-la"}, ids(groups[0].Pods[0].People))
}

func TestBuildPodGroups_LeadWithoutPodsIsUnassigned(t *testing.T) {
	people := []model.Person{
		person("lead-x", "Xena", model.RolePodLead, "", ""),
		person("lead-y", "Yuri", model.RolePodLead, "pod-gone", ""),
		person("t-report", "Rae", model.RoleTester, "", "lead-x"),
	}

	groups := BuildPodGroups(people, testPods, LeadPods{}, HomePodAffinity{})
	require.Len(t, groups, 1)
	assert.Equal(t, UnassignedLabel, groups[0].Label)
	assert.Equal(t, []string{"lead-x", "lead-y", "t-report"}, ids(groups[0].Pods[0].People))
}

func TestBuildPodGroups_SkipsMissingPods(t *testing.T) {
	people := []model.Person{
		person("lead-x", "Xena", model.RolePodLead, "", ""),
	}

	groups := BuildPodGroups(people, testPods, LeadPods{"lead-x": {"pod-gone", "pod-ww"}}, HomePodAffinity{})
	require.Len(t, groups, 1)
	assert.Equal(t, "pod-gone + Word Wizards (Lead: Xena)", groups[0].Label)
	require.Len(t, groups[0].Pods, 1)
	assert.Equal(t, "pod-ww", groups[0].Pods[0].Pod.ID)
	assert.Equal(t, []string{"lead-x"}, ids(groups[0].Pods[0].People))
}

func TestBuildPodGroups_SecondQALeadIsUnassigned(t *testing.T) {
	people := []model.Person{
		person("qa-1", "Ann", model.RoleQALead, "", ""),
		person("qa-2", "Bea", model.RoleQALead, "", ""),
	}

	groups := BuildPodGroups(people, testPods, nil, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "QA Lead: Ann", groups[0].Label)
	require.Len(t, groups[0].Pods, 1, "no empty No Pod subgroup")
	assert.Equal(t, []string{"qa-2"}, ids(groups[1].Pods[0].People))
	assertEachPersonOnce(t, people, groups)
}

func TestBuildPodGroups_Empty(t *testing.T) {
	groups := BuildPodGroups(nil, testPods, DefaultLeadPods, HomePodAffinity{})
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
}

func TestBuildPodGroups_Idempotent(t *testing.T) {
	people := testPeople()
	first := BuildPodGroups(people, testPods, DefaultLeadPods, HomePodAffinity{})
	second := BuildPodGroups(people, testPods, DefaultLeadPods, HomePodAffinity{})
	assert.Equal(t, first, second)
}

func TestComputeGroupWeeklySummary(t *testing.T) {
	week := calendar.PlanningWeeks(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), 1)[0]

	archived := person("t-archived", "Old", model.RoleTester, "pod-tp", "")
	archived.Status = model.StatusArchived
	archived.WeeklyCapacityDays = 3

	group := PodGroup{
		Label: "TINPOZ + ServerScapes (Lead: Kawika)",
		Pods: []PodSubgroup{
			{Pod: model.Pod{ID: "pod-tp"}, People: []model.Person{person("lead", "Kawika", model.RolePodLead, "pod-tp", ""), archived}},
			{Pod: model.Pod{ID: "pod-ss"}, People: []model.Person{person("t-ss", "Sam", model.RoleTester, "pod-ss", "")}},
			{Pod: model.Pod{ID: NoPodSubgroupID("lead")}, People: []model.Person{person("t-np", "Nia", model.RoleTester, "", "lead")}},
		},
	}

	workItems := []model.WorkItem{
		{ID: "wi-red", PodID: "pod-tp", StartDate: "2025-01-13", EndDate: "2025-01-17", RequiredMinDaysPerWeek: 5},
		{ID: "wi-yellow", PodID: "pod-ss", StartDate: "2025-01-13", EndDate: "2025-01-17", RequiredMinDaysPerWeek: 2},
		{ID: "wi-green", PodID: "pod-ss", StartDate: "2025-01-16", EndDate: "2025-02-28", RequiredMinDaysPerWeek: 1},
		{ID: "wi-later", PodID: "pod-tp", StartDate: "2025-02-03", EndDate: "2025-02-07", RequiredMinDaysPerWeek: 5},
		{ID: "wi-other", PodID: "pod-ww", StartDate: "2025-01-13", EndDate: "2025-01-17", RequiredMinDaysPerWeek: 5},
		{ID: "wi-synthetic", PodID: NoPodSubgroupID("lead"), StartDate: "2025-01-13", EndDate: "2025-01-17", RequiredMinDaysPerWeek: 5},
	}

	allocations := []model.Allocation{
		{ID: "a1", PersonID: "lead", WorkItemID: "wi-red", Date: "2025-01-13", Days: 1},
		{ID: "a2", PersonID: "t-ss", WorkItemID: "wi-yellow", Date: "2025-01-14", Days: 1.5},
		{ID: "a3", PersonID: "t-np", WorkItemID: "wi-green", Date: "2025-01-16", Days: 1},
		{ID: "a4", PersonID: "t-np", WorkItemID: "wi-green", Date: "2025-01-18", Days: 1}, // weekend
		{ID: "a5", PersonID: "outsider", WorkItemID: "wi-red", Date: "2025-01-14", Days: 1},
		{ID: "a6", PersonID: "lead", WorkItemID: "wi-later", Date: "2025-02-03", Days: 1}, // other week
	}

	summary := ComputeGroupWeeklySummary(group, allocations, workItems, week)

	assert.Equal(t, 3.5, summary.AssignedDays)
	assert.Equal(t, 15.0, summary.TotalCapDays, "archived people do not add capacity")
	assert.Equal(t, 1, summary.RedCount)
	assert.Equal(t, 1, summary.YellowCount)
}

func TestComputeGroupWeeklySummary_EmptyGroup(t *testing.T) {
	week := calendar.PlanningWeeks(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), 1)[0]
	assert.Equal(t, WeeklySummary{}, ComputeGroupWeeklySummary(PodGroup{}, nil, nil, week))
}
