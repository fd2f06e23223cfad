package labels

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
	{ID: "pod-tp", Name: "TINPOZ"},
	{ID: "growth", Name: "Growth"},
}

func TestPodPrefix(t *testing.T) {
	l := NewLabeler(testPods, map[string]string{"growth": "GR"}, nil)

	tests := []struct {
		podID    string
		expected string
	}{
		{"pod-ww", "WW"},
		{"pod-tp", "TP"},
		{"pod-qa", "QA"},
		{"growth", "GR"},
		{"mobile", "MO"},
		{"x", "X"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.podID, func(t *testing.T) {
			assert.Equal(t, tt.expected, l.PodPrefix(tt.podID))
		})
	}
}

func TestPodPrefix_OverrideKnownPod(t *testing.T) {
	l := NewLabeler(nil, map[string]string{"pod-ww": "WZ"}, nil)
	assert.Equal(t, "WZ", l.PodPrefix("pod-ww"))
	assert.Equal(t, "WW", DefaultPrefixes["pod-ww"], "defaults are not mutated")
}

func TestWorkItemLabel(t *testing.T) {
	l := NewLabeler(testPods, nil, nil)
	wi := model.WorkItem{ID: "wi-1", Name: "Spellcheck v2", PodID: "pod-ww"}

	assert.Equal(t, "WW: Spellcheck v2", l.WorkItemLabel(wi))
	assert.Equal(t, "WW: Spellcheck v2", l.WorkItemLabelByID([]model.WorkItem{wi}, "wi-1"))
	assert.Equal(t, UnknownLabel, l.WorkItemLabelByID([]model.WorkItem{wi}, "wi-missing"))
}

func TestPodName(t *testing.T) {
	l := NewLabeler(testPods, nil, nil)
	assert.Equal(t, "TINPOZ", l.PodName("pod-tp"))
	assert.Equal(t, "pod-gone", l.PodName("pod-gone"))
	assert.Equal(t, UnknownLabel, l.PodName(""))
}

func TestPodColor(t *testing.T) {
	l := NewLabeler(testPods, nil, map[string]string{"growth": "#123456"})
	assert.Equal(t, DefaultColors["pod-ww"], l.PodColor("pod-ww"))
	assert.Equal(t, "#123456", l.PodColor("growth"))
	assert.Equal(t, NeutralColor, l.PodColor("pod-gone"))
}

func TestIsCrossPodAllocation(t *testing.T) {
	home := model.Person{ID: "p1", HomePodID: "pod-a"}
	floating := model.Person{ID: "p2"}

	assert.True(t, IsCrossPodAllocation(home, model.WorkItem{PodID: "pod-b"}))
	assert.False(t, IsCrossPodAllocation(home, model.WorkItem{PodID: "pod-a"}))
	assert.False(t, IsCrossPodAllocation(floating, model.WorkItem{PodID: "pod-a"}))
	assert.False(t, IsCrossPodAllocation(floating, model.WorkItem{PodID: "pod-b"}))
}

func TestWeeklyPodBreakdown(t *testing.T) {
	week := calendar.PlanningWeeks(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), 1)[0]
	p := model.Person{ID: "p1", HomePodID: "pod-a"}

	workItems := []model.WorkItem{
		{ID: "wi-a1", PodID: "pod-a"},
		{ID: "wi-a2", PodID: "pod-a"},
		{ID: "wi-b", PodID: "pod-b"},
		{ID: "wi-c", PodID: "pod-c"},
	}

	allocations := []model.Allocation{
		{ID: "1", PersonID: "p1", WorkItemID: "wi-b", Date: "2025-01-13", Days: 1},
		{ID: "2", PersonID: "p1", WorkItemID: "wi-c", Date: "2025-01-13", Days: 1},
		{ID: "3", PersonID: "p1", WorkItemID: "wi-a1", Date: "2025-01-14", Days: 1},
		{ID: "4", PersonID: "p1", WorkItemID: "wi-a2", Date: "2025-01-15", Days: 1},
		{ID: "5", PersonID: "p1", WorkItemID: "wi-a1", Date: "2025-01-20", Days: 1}, // next week
		{ID: "6", PersonID: "p2", WorkItemID: "wi-c", Date: "2025-01-14", Days: 3},  // someone else
		{ID: "7", PersonID: "p1", WorkItemID: "wi-gone", Date: "2025-01-16", Days: 4},
	}

	breakdown := WeeklyPodBreakdown(p, allocations, workItems, week)
	require.Len(t, breakdown, 3)

	assert.Equal(t, PodDays{PodID: "pod-a", Days: 2, CrossPod: false}, breakdown[0])
	// pod-b and pod-c tie on one day each and keep first-seen order
	assert.Equal(t, PodDays{PodID: "pod-b", Days: 1, CrossPod: true}, breakdown[1])
	assert.Equal(t, PodDays{PodID: "pod-c", Days: 1, CrossPod: true}, breakdown[2])
}

func TestWeeklyPodBreakdown_NoAllocations(t *testing.T) {
	week := calendar.PlanningWeeks(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), 1)[0]
	breakdown := WeeklyPodBreakdown(model.Person{ID: "p1"}, nil, nil, week)
	assert.Empty(t, breakdown)
	assert.NotNil(t, breakdown)
}
