package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/sheetssql"
)

// fakeSheets keeps tabs in memory and returns cells as strings like the API does
type fakeSheets struct {
	tabs      map[string][][]interface{}
	order     []string
	updateErr error
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{tabs: make(map[string][][]interface{})}
}

func tabOf(sheetRange string) string {
	tab, _, _ := strings.Cut(sheetRange, "!")
	return tab
}

func (f *fakeSheets) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	rows := f.tabs[tabOf(sheetRange)]
	if strings.HasSuffix(sheetRange, "!A1:ZZ2") && len(rows) > 2 {
		rows = rows[:2]
	}
	return rows, nil
}

func (f *fakeSheets) AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	tab := tabOf(sheetRange)
	for _, row := range values {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		f.tabs[tab] = append(f.tabs[tab], cells)
	}
	return nil
}

// UpdateValues writes rows starting at the range's first row, e.g. "tab!A3"
func (f *fakeSheets) UpdateValues(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	tab, cell, _ := strings.Cut(sheetRange, "!")
	start, err := strconv.Atoi(strings.TrimPrefix(cell, "A"))
	if err != nil {
		return fmt.Errorf("unsupported range %s", sheetRange)
	}

	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		idx := start - 1 + i
		for len(f.tabs[tab]) <= idx {
			f.tabs[tab] = append(f.tabs[tab], []interface{}{})
		}
		f.tabs[tab][idx] = cells
	}
	return nil
}

func (f *fakeSheets) ClearValues(ctx context.Context, spreadsheetID, sheetRange string) error {
	tab := tabOf(sheetRange)
	if len(f.tabs[tab]) > 2 {
		f.tabs[tab] = f.tabs[tab][:2]
	}
	return nil
}

func (f *fakeSheets) CreateSheet(ctx context.Context, spreadsheetID, sheetTitle string) (int64, error) {
	f.tabs[sheetTitle] = [][]interface{}{}
	f.order = append(f.order, sheetTitle)
	return int64(len(f.order)), nil
}

func (f *fakeSheets) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	return f.order, nil
}

func newTestDB(t *testing.T) (*DB, *fakeSheets) {
	t.Helper()
	sheets := newFakeSheets()
	schema, err := Schema()
	require.NoError(t, err)

	ssql, err := sheetssql.NewDB(context.Background(), sheets, "db-sheet", schema)
	require.NoError(t, err)
	return NewDB(ssql), sheets
}

func TestSchema_TableNames(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)

	names := make([]string, 0, len(schema.Tables))
	for _, table := range schema.Tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"pod", "person", "scenario", "work_item", "allocation", "time_off"}, names)
}

func TestDB_RoundTrip(t *testing.T) {
	ctx := context.Background()
	database, sheets := newTestDB(t)
	assert.Len(t, sheets.order, 6)

	require.NoError(t, database.InsertPods(ctx, []Pod{{ID: "pod-ww", Name: "Word Wizards"}}))
	require.NoError(t, database.InsertPeople(ctx, []Person{
		{ID: "p1", Name: "Ana", Role: "tester", Type: "vendor", HomePodID: "pod-ww", WeeklyCapacityDays: 4.5, Status: "active", DefaultPodFilterIDs: "pod-ww,pod-ps"},
	}))
	require.NoError(t, database.InsertScenario(ctx, &Scenario{ID: "s1", Name: "Base", IsBase: true}))
	require.NoError(t, database.InsertScenario(ctx, &Scenario{ID: "s2", Name: "Copy"}))
	require.NoError(t, database.InsertWorkItems(ctx, []WorkItem{
		{ID: "wi-1", ScenarioID: "s1", Type: "feature", Name: "Search", PodID: "pod-ww", StartDate: "2025-01-13", EndDate: "2025-01-31", RequiredMinDaysPerWeek: 2.5},
		{ID: "wi-2", ScenarioID: "s2", Type: "feature", Name: "Search", PodID: "pod-ww", StartDate: "2025-01-13", EndDate: "2025-01-31", RequiredMinDaysPerWeek: 2.5},
	}))
	require.NoError(t, database.InsertAllocations(ctx, []Allocation{
		{ID: "a1", ScenarioID: "s1", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
		{ID: "a2", ScenarioID: "s1", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-14", Days: 0.5},
		{ID: "a3", ScenarioID: "s2", PersonID: "p1", WorkItemID: "wi-2", Date: "2025-01-13", Days: 1},
	}))
	require.NoError(t, database.InsertTimeOffs(ctx, []TimeOff{{ID: "to1", ScenarioID: "s1", PersonID: "p1", Date: "2025-01-17", Reason: "Holiday"}}))

	pods, err := database.GetPods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Pod{{ID: "pod-ww", Name: "Word Wizards"}}, pods)

	people, err := database.GetPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, 4.5, people[0].WeeklyCapacityDays)
	assert.Equal(t, "pod-ww,pod-ps", people[0].DefaultPodFilterIDs)

	scenarios, err := database.GetScenarios(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Scenario{{ID: "s1", Name: "Base", IsBase: true}, {ID: "s2", Name: "Copy"}}, scenarios)

	workItems, err := database.GetWorkItems(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, workItems, 1)
	assert.Equal(t, "wi-1", workItems[0].ID)
	assert.Equal(t, 2.5, workItems[0].RequiredMinDaysPerWeek)

	allocations, err := database.GetAllocations(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, allocations, 2)
	assert.Equal(t, 0.5, allocations[1].Days)

	timeOffs, err := database.GetTimeOffs(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, timeOffs)
}

func TestDB_DeleteAllocations(t *testing.T) {
	ctx := context.Background()
	database, _ := newTestDB(t)

	require.NoError(t, database.InsertAllocations(ctx, []Allocation{
		{ID: "a1", ScenarioID: "s1", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
		{ID: "a2", ScenarioID: "s1", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-14", Days: 1},
		{ID: "a1", ScenarioID: "s2", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
	}))

	require.NoError(t, database.DeleteAllocations(ctx, "s1", []string{"a1"}))

	s1, err := database.GetAllocations(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, s1, 1)
	assert.Equal(t, "a2", s1[0].ID)

	s2, err := database.GetAllocations(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, s2, 1, "other scenarios are untouched")
}

func TestDB_DeleteWorkItem(t *testing.T) {
	ctx := context.Background()
	database, _ := newTestDB(t)

	require.NoError(t, database.InsertWorkItems(ctx, []WorkItem{
		{ID: "wi-1", ScenarioID: "s1", Name: "Search"},
		{ID: "wi-2", ScenarioID: "s1", Name: "Billing"},
	}))
	require.NoError(t, database.InsertAllocations(ctx, []Allocation{
		{ID: "a1", ScenarioID: "s1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
		{ID: "a2", ScenarioID: "s1", WorkItemID: "wi-2", Date: "2025-01-13", Days: 1},
	}))

	require.NoError(t, database.DeleteWorkItem(ctx, "s1", "wi-1"))

	workItems, err := database.GetWorkItems(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, workItems, 1)
	assert.Equal(t, "wi-2", workItems[0].ID)

	allocations, err := database.GetAllocations(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, "a2", allocations[0].ID)
}

func TestDB_DeleteWorkItem_RemovedRowsDoNotReappear(t *testing.T) {
	ctx := context.Background()
	database, _ := newTestDB(t)

	require.NoError(t, database.InsertWorkItems(ctx, []WorkItem{
		{ID: "wi-1", ScenarioID: "s1", Name: "Search"},
		{ID: "wi-2", ScenarioID: "s1", Name: "Billing"},
	}))
	require.NoError(t, database.DeleteWorkItem(ctx, "s1", "wi-1"))
	require.NoError(t, database.InsertWorkItems(ctx, []WorkItem{{ID: "wi-3", ScenarioID: "s1", Name: "Search v2"}}))

	workItems, err := database.GetWorkItems(ctx, "s1")
	require.NoError(t, err)
	ids := []string{}
	for _, wi := range workItems {
		ids = append(ids, wi.ID)
	}
	assert.ElementsMatch(t, []string{"wi-2", "wi-3"}, ids)
}

func TestDB_DeleteWorkItem_FailedWriteKeepsRows(t *testing.T) {
	ctx := context.Background()
	database, sheets := newTestDB(t)

	require.NoError(t, database.InsertWorkItems(ctx, []WorkItem{
		{ID: "wi-1", ScenarioID: "s1", Name: "Search"},
		{ID: "wi-2", ScenarioID: "s1", Name: "Billing"},
	}))
	require.NoError(t, database.InsertAllocations(ctx, []Allocation{
		{ID: "a1", ScenarioID: "s1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
		{ID: "a2", ScenarioID: "s1", WorkItemID: "wi-2", Date: "2025-01-13", Days: 1},
	}))

	sheets.updateErr = errors.New("quota exceeded")
	err := database.DeleteWorkItem(ctx, "s1", "wi-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete allocations")

	allocations, err := database.GetAllocations(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, allocations, 2)

	workItems, err := database.GetWorkItems(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, workItems, 2)

	// A retry after the outage completes the delete
	sheets.updateErr = nil
	require.NoError(t, database.DeleteWorkItem(ctx, "s1", "wi-1"))
	workItems, err = database.GetWorkItems(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, workItems, 1)
	assert.Equal(t, "wi-2", workItems[0].ID)
}

func TestDB_Reset(t *testing.T) {
	ctx := context.Background()
	database, sheets := newTestDB(t)

	require.NoError(t, database.InsertPods(ctx, []Pod{{ID: "pod-ww", Name: "Word Wizards"}}))
	require.NoError(t, database.Reset(ctx))

	pods, err := database.GetPods(ctx)
	require.NoError(t, err)
	assert.Empty(t, pods)
	assert.Len(t, sheets.tabs["pod"], 2, "header and type rows survive")
}

func TestPeopleConversion(t *testing.T) {
	people := []model.Person{
		{ID: "p1", Name: "Ana", Role: model.RoleTester, Type: model.PersonTypeVendor, WeeklyCapacityDays: 5, Status: model.StatusActive, DefaultPodFilterIDs: []string{"pod-a", "pod-b"}},
		{ID: "p2", Name: "Ben", Role: model.RolePodLead, Type: model.PersonTypeInternal, HomePodID: "pod-a", Status: model.StatusArchived, ArchivedAt: "2025-02-01"},
	}

	rows := PeopleFromModel(people)
	assert.Equal(t, "pod-a,pod-b", rows[0].DefaultPodFilterIDs)
	assert.Equal(t, "", rows[1].DefaultPodFilterIDs)

	assert.Equal(t, people, PeopleToModel(rows))
}

func TestScenarioConversion(t *testing.T) {
	data := model.ScenarioData{
		WorkItems:   []model.WorkItem{{ID: "wi-1", Type: model.WorkItemFeature, Name: "Search", PodID: "pod-a", StartDate: "2025-01-13", EndDate: "2025-01-17", RequiredMinDaysPerWeek: 3}},
		Allocations: []model.Allocation{{ID: "a1", PersonID: "p1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1}},
		TimeOffs:    []model.TimeOff{{ID: "to1", PersonID: "p1", Date: "2025-01-14"}},
	}

	workItems := WorkItemsFromModel("s1", data.WorkItems)
	allocations := AllocationsFromModel("s1", data.Allocations)
	timeOffs := TimeOffsFromModel("s1", data.TimeOffs)

	assert.Equal(t, "s1", workItems[0].ScenarioID)
	assert.Equal(t, "s1", allocations[0].ScenarioID)
	assert.Equal(t, "s1", timeOffs[0].ScenarioID)

	assert.Equal(t, data.WorkItems, WorkItemsToModel(workItems))
	assert.Equal(t, data.Allocations, AllocationsToModel(allocations))
	assert.Equal(t, data.TimeOffs, TimeOffsToModel(timeOffs))
}
