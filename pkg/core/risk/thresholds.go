package risk

// Fixed classification thresholds
const (
	// CoverageRedRatio is the fraction of the required days below which
	// coverage and feasibility are red. Anything under the full requirement is yellow.
	CoverageRedRatio = 0.6

	// ContextSwitchingYellow is the number of distinct work items in a week at which a person turns yellow
	ContextSwitchingYellow = 4

	// ContextSwitchingRed is the number of distinct work items in a week at which a person turns red
	ContextSwitchingRed = 6

	// CapacityYellowAbove is the assigned-day total a person must exceed in a week to turn yellow.
	// Note the strict comparison: exactly 5 days is green.
	CapacityYellowAbove = 5.0

	// CapacityRed is the assigned-day total at which a person turns red.
	// These are absolute day counts and deliberately ignore Person.WeeklyCapacityDays.
	CapacityRed = 6.0
)
