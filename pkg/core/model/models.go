package model

// PersonRole is the staffing role of a person
type PersonRole string

const (
	RoleQALead  PersonRole = "qa_lead"
	RolePodLead PersonRole = "pod_lead"
	RoleTester  PersonRole = "tester"
)

func (r PersonRole) IsValid() bool {
	return r == RoleQALead || r == RolePodLead || r == RoleTester
}

// PersonType distinguishes employees from vendor contractors
type PersonType string

const (
	PersonTypeInternal PersonType = "internal"
	PersonTypeVendor   PersonType = "vendor"
)

func (t PersonType) IsValid() bool {
	return t == PersonTypeInternal || t == PersonTypeVendor
}

// PersonStatus marks whether a person is still on the roster
type PersonStatus string

const (
	StatusActive   PersonStatus = "active"
	StatusArchived PersonStatus = "archived"
)

func (s PersonStatus) IsValid() bool {
	return s == StatusActive || s == StatusArchived
}

// WorkItemType is the kind of planned work
type WorkItemType string

const (
	WorkItemFeature    WorkItemType = "feature"
	WorkItemInitiative WorkItemType = "initiative"
)

func (t WorkItemType) IsValid() bool {
	return t == WorkItemFeature || t == WorkItemInitiative
}

// Pod represents a team
type Pod struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Person represents a member of the QA roster
type Person struct {
	ID                  string       `json:"id" validate:"required"`
	Name                string       `json:"name" validate:"required"`
	Role                PersonRole   `json:"role" validate:"enum"`
	Type                PersonType   `json:"type" validate:"enum"`
	HomePodID           string       `json:"homePodId,omitempty"` // empty if floating
	LeadID              string       `json:"leadId,omitempty"`    // empty if no direct lead
	WeeklyCapacityDays  float64      `json:"weeklyCapacityDays" validate:"gte=0"`
	Status              PersonStatus `json:"status" validate:"enum"`
	ArchivedAt          string       `json:"archivedAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DefaultPodFilterIDs []string     `json:"defaultPodFilterIds,omitempty"`
}

// IsActive returns true unless the person has been archived
func (p Person) IsActive() bool {
	return p.Status != StatusArchived
}

// WorkItem represents a feature or initiative with a staffing requirement
type WorkItem struct {
	ID                     string       `json:"id" validate:"required"`
	Type                   WorkItemType `json:"type" validate:"enum"`
	Name                   string       `json:"name" validate:"required"`
	PodID                  string       `json:"podId" validate:"required"`
	StartDate              string       `json:"startDate" validate:"datetime=2006-01-02"`
	EndDate                string       `json:"endDate" validate:"datetime=2006-01-02"` // inclusive
	RequiredMinDaysPerWeek float64      `json:"requiredMinDaysPerWeek" validate:"gte=0"`
	ReleaseDate            string       `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes                  string       `json:"notes,omitempty"`
}

// Allocation assigns one person to one work item on one date
type Allocation struct {
	ID         string  `json:"id" validate:"required"`
	PersonID   string  `json:"personId" validate:"required"`
	WorkItemID string  `json:"workItemId" validate:"required"`
	Date       string  `json:"date" validate:"datetime=2006-01-02"`
	Days       float64 `json:"days" validate:"gt=0"`
}

// TimeOff marks a person as unavailable on a date
type TimeOff struct {
	ID       string `json:"id" validate:"required"`
	PersonID string `json:"personId" validate:"required"`
	Date     string `json:"date" validate:"datetime=2006-01-02"`
	Reason   string `json:"reason,omitempty"`
}

// Scenario is a named plan variant
type Scenario struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	IsBase bool   `json:"isBase"`
}

// ScenarioData holds the scenario-scoped entity sets
type ScenarioData struct {
	Scenario    Scenario     `json:"scenario"`
	Allocations []Allocation `json:"allocations" validate:"dive"`
	WorkItems   []WorkItem   `json:"workItems" validate:"dive"`
	TimeOffs    []TimeOff    `json:"timeOffs" validate:"dive"`
}

// AppData is the full export/import document
type AppData struct {
	Pods      []Pod          `json:"pods" validate:"dive"`
	People    []Person       `json:"people" validate:"dive"`
	Scenarios []ScenarioData `json:"scenarios" validate:"dive"`
}

// Snapshot is everything the engine needs for one scenario.
// Pods and People are shared across scenarios.
type Snapshot struct {
	Pods     []Pod
	People   []Person
	Scenario ScenarioData
}
