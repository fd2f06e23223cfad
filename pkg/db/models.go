package db

// Pod represents a database pod record
type Pod struct {
	ID   string `ssql_header:"id" ssql_type:"text"`
	Name string `ssql_header:"name" ssql_type:"text"`
}

// Person represents a database person record
type Person struct {
	ID                  string  `ssql_header:"id" ssql_type:"text"`
	Name                string  `ssql_header:"name" ssql_type:"text"`
	Role                string  `ssql_header:"role" ssql_type:"text"`
	Type                string  `ssql_header:"type" ssql_type:"text"`
	HomePodID           string  `ssql_header:"home_pod_id" ssql_type:"text"`
	LeadID              string  `ssql_header:"lead_id" ssql_type:"text"`
	WeeklyCapacityDays  float64 `ssql_header:"weekly_capacity_days" ssql_type:"float"`
	Status              string  `ssql_header:"status" ssql_type:"text"`
	ArchivedAt          string  `ssql_header:"archived_at" ssql_type:"date"`
	DefaultPodFilterIDs string  `ssql_header:"default_pod_filter_ids" ssql_type:"text"` // comma separated
}

// Scenario represents a database scenario record
type Scenario struct {
	ID     string `ssql_header:"id" ssql_type:"text"`
	Name   string `ssql_header:"name" ssql_type:"text"`
	IsBase bool   `ssql_header:"is_base" ssql_type:"bool"`
}

// WorkItem represents a database work item record
type WorkItem struct {
	ID                     string  `ssql_header:"id" ssql_type:"text"`
	ScenarioID             string  `ssql_header:"scenario_id" ssql_type:"text"`
	Type                   string  `ssql_header:"type" ssql_type:"text"`
	Name                   string  `ssql_header:"name" ssql_type:"text"`
	PodID                  string  `ssql_header:"pod_id" ssql_type:"text"`
	StartDate              string  `ssql_header:"start_date" ssql_type:"date"`
	EndDate                string  `ssql_header:"end_date" ssql_type:"date"`
	RequiredMinDaysPerWeek float64 `ssql_header:"required_min_days_per_week" ssql_type:"float"`
	ReleaseDate            string  `ssql_header:"release_date" ssql_type:"date"`
	Notes                  string  `ssql_header:"notes" ssql_type:"text"`
}

// Allocation represents a database allocation record
type Allocation struct {
	ID         string  `ssql_header:"id" ssql_type:"text"`
	ScenarioID string  `ssql_header:"scenario_id" ssql_type:"text"`
	PersonID   string  `ssql_header:"person_id" ssql_type:"text"`
	WorkItemID string  `ssql_header:"work_item_id" ssql_type:"text"`
	Date       string  `ssql_header:"date" ssql_type:"date"`
	Days       float64 `ssql_header:"days" ssql_type:"float"`
}

// TimeOff represents a database time off record
type TimeOff struct {
	ID         string `ssql_header:"id" ssql_type:"text"`
	ScenarioID string `ssql_header:"scenario_id" ssql_type:"text"`
	PersonID   string `ssql_header:"person_id" ssql_type:"text"`
	Date       string `ssql_header:"date" ssql_type:"date"`
	Reason     string `ssql_header:"reason" ssql_type:"text"`
}

// Models lists every table model, in schema order
func Models() []interface{} {
	return []interface{}{
		Pod{},
		Person{},
		Scenario{},
		WorkItem{},
		Allocation{},
		TimeOff{},
	}
}
