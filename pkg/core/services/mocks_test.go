package services

import (
	"context"
	"errors"
	"time"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/clients/sheetsclient"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// mockStore is an in-memory db.Database
type mockStore struct {
	pods        []db.Pod
	people      []db.Person
	scenarios   []db.Scenario
	workItems   []db.WorkItem
	allocations []db.Allocation
	timeOffs    []db.TimeOff

	getScenariosErr error
	insertErr       error
	resetCalls      int
}

var _ db.Database = (*mockStore)(nil)

func (m *mockStore) GetPods(ctx context.Context) ([]db.Pod, error) {
	return m.pods, nil
}

func (m *mockStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	return m.people, nil
}

func (m *mockStore) GetScenarios(ctx context.Context) ([]db.Scenario, error) {
	if m.getScenariosErr != nil {
		return nil, m.getScenariosErr
	}
	return m.scenarios, nil
}

func (m *mockStore) GetWorkItems(ctx context.Context, scenarioID string) ([]db.WorkItem, error) {
	rows := []db.WorkItem{}
	for _, r := range m.workItems {
		if r.ScenarioID == scenarioID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (m *mockStore) GetAllocations(ctx context.Context, scenarioID string) ([]db.Allocation, error) {
	rows := []db.Allocation{}
	for _, r := range m.allocations {
		if r.ScenarioID == scenarioID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (m *mockStore) GetTimeOffs(ctx context.Context, scenarioID string) ([]db.TimeOff, error) {
	rows := []db.TimeOff{}
	for _, r := range m.timeOffs {
		if r.ScenarioID == scenarioID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (m *mockStore) InsertPods(ctx context.Context, pods []db.Pod) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.pods = append(m.pods, pods...)
	return nil
}

func (m *mockStore) InsertPeople(ctx context.Context, people []db.Person) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.people = append(m.people, people...)
	return nil
}

func (m *mockStore) InsertScenario(ctx context.Context, scenario *db.Scenario) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.scenarios = append(m.scenarios, *scenario)
	return nil
}

func (m *mockStore) InsertWorkItems(ctx context.Context, workItems []db.WorkItem) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.workItems = append(m.workItems, workItems...)
	return nil
}

func (m *mockStore) DeleteWorkItem(ctx context.Context, scenarioID, workItemID string) error {
	workItems := []db.WorkItem{}
	for _, r := range m.workItems {
		if r.ScenarioID == scenarioID && r.ID == workItemID {
			continue
		}
		workItems = append(workItems, r)
	}
	allocations := []db.Allocation{}
	for _, r := range m.allocations {
		if r.ScenarioID == scenarioID && r.WorkItemID == workItemID {
			continue
		}
		allocations = append(allocations, r)
	}
	m.workItems = workItems
	m.allocations = allocations
	return nil
}

func (m *mockStore) InsertAllocations(ctx context.Context, allocations []db.Allocation) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.allocations = append(m.allocations, allocations...)
	return nil
}

func (m *mockStore) DeleteAllocations(ctx context.Context, scenarioID string, ids []string) error {
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	kept := []db.Allocation{}
	for _, r := range m.allocations {
		if r.ScenarioID == scenarioID && remove[r.ID] {
			continue
		}
		kept = append(kept, r)
	}
	m.allocations = kept
	return nil
}

func (m *mockStore) InsertTimeOffs(ctx context.Context, timeOffs []db.TimeOff) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.timeOffs = append(m.timeOffs, timeOffs...)
	return nil
}

func (m *mockStore) Reset(ctx context.Context) error {
	m.resetCalls++
	m.pods = nil
	m.people = nil
	m.scenarios = nil
	m.workItems = nil
	m.allocations = nil
	m.timeOffs = nil
	return nil
}

// mockPublisher records published rosters
type mockPublisher struct {
	spreadsheetID string
	published     []*sheetsclient.PublishedRoster
	err           error
}

func (m *mockPublisher) PublishRoster(ctx context.Context, spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.spreadsheetID = spreadsheetID
	m.published = append(m.published, roster)
	return sheetsclient.RosterTabTitle(roster.FirstWeek, roster.LastWeek)
}

type sentEmail struct {
	to      []string
	subject string
	body    string
}

// mockMailer records sent emails
type mockMailer struct {
	sent []sentEmail
	err  error
}

func (m *mockMailer) SendEmail(ctx context.Context, to []string, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

var errBoom = errors.New("boom")

// Monday 13 January 2025
var monday = time.Date(2025, time.January, 13, 9, 30, 0, 0, time.UTC)

func testClock() calendar.Clock {
	return calendar.FixedClock{Time: monday}
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Store:         config.StoreConfig{Backend: config.BackendPostgres, PostgresURL: "postgres://localhost/qa"},
		PlanningWeeks: 4,
		Grouping: config.GroupingConfig{
			LeadPods: map[string][]string{"lead-a": {"pod-ww"}},
		},
		RosterSheetID: "roster-sheet",
		Digest: config.DigestConfig{
			Recipients:  []string{"qa@example.com"},
			Schedule:    "FREQ=WEEKLY;BYDAY=MO",
			GmailUserID: "me",
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

// newTestStore builds a small roster:
//   - Quinn is the QA lead
//   - Avery leads Word Wizards and Tess tests for it
//   - Tom's home pod has no lead so he is unassigned
//   - Uma is archived
//
// Tess is booked 6 days in the first week across two work items.
func newTestStore() *mockStore {
	const sid = "scenario-base"
	return &mockStore{
		pods: []db.Pod{
			{ID: "pod-ww", Name: "Word Wizards"},
			{ID: "pod-ps", Name: "Payments"},
		},
		people: []db.Person{
			{ID: "qa", Name: "Quinn", Role: "qa_lead", Type: "internal", WeeklyCapacityDays: 2, Status: "active"},
			{ID: "lead-a", Name: "Avery", Role: "pod_lead", Type: "internal", HomePodID: "pod-ww", WeeklyCapacityDays: 2, Status: "active"},
			{ID: "t1", Name: "Tess", Role: "tester", Type: "internal", HomePodID: "pod-ww", LeadID: "lead-a", WeeklyCapacityDays: 5, Status: "active"},
			{ID: "t2", Name: "Tom", Role: "tester", Type: "vendor", HomePodID: "pod-ps", WeeklyCapacityDays: 5, Status: "active"},
			{ID: "t3", Name: "Uma", Role: "tester", Type: "internal", HomePodID: "pod-ww", WeeklyCapacityDays: 5, Status: "archived", ArchivedAt: "2024-12-01"},
		},
		scenarios: []db.Scenario{
			{ID: sid, Name: "Base Plan", IsBase: true},
			{ID: "scenario-alt", Name: "Hiring", IsBase: false},
		},
		workItems: []db.WorkItem{
			{ID: "wi-1", ScenarioID: sid, Type: "feature", Name: "Search", PodID: "pod-ww", StartDate: "2025-01-13", EndDate: "2025-01-31", RequiredMinDaysPerWeek: 3},
			{ID: "wi-2", ScenarioID: sid, Type: "feature", Name: "Billing", PodID: "pod-ps", StartDate: "2025-01-13", EndDate: "2025-01-24", RequiredMinDaysPerWeek: 2},
			{ID: "wi-alt", ScenarioID: "scenario-alt", Type: "initiative", Name: "Onboarding", PodID: "pod-ww", StartDate: "2025-02-03", EndDate: "2025-02-14", RequiredMinDaysPerWeek: 1},
		},
		allocations: []db.Allocation{
			{ID: "a-1", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-1", Date: "2025-01-13", Days: 1},
			{ID: "a-2", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-1", Date: "2025-01-14", Days: 1},
			{ID: "a-3", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-1", Date: "2025-01-15", Days: 1},
			{ID: "a-4", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-1", Date: "2025-01-16", Days: 1},
			{ID: "a-5", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-1", Date: "2025-01-17", Days: 1},
			{ID: "a-6", ScenarioID: sid, PersonID: "t1", WorkItemID: "wi-2", Date: "2025-01-13", Days: 1},
		},
		timeOffs: []db.TimeOff{
			{ID: "to-1", ScenarioID: sid, PersonID: "t2", Date: "2025-01-21", Reason: "Dentist"},
		},
	}
}

func dbAllocation(id, personID, workItemID, date string) db.Allocation {
	return db.Allocation{ID: id, ScenarioID: "scenario-base", PersonID: personID, WorkItemID: workItemID, Date: date, Days: 1}
}
