package calendar

import (
	"time"

	"github.com/teambition/rrule-go"
)

// DateLayout is the ISO date format used for every stored date
const DateLayout = "2006-01-02"

// DefaultPlanningWeeks is the length of the rolling planning window
const DefaultPlanningWeeks = 12

var workWeek = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Clock supplies the current time so "today" can be pinned in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// WeekInfo describes one Monday-anchored week of the planning window
type WeekInfo struct {
	WeekStart    time.Time
	WeekStartStr string
	WeekLabel    string
	// Weekdays is always the full Monday-Friday set
	Weekdays []time.Time
}

// WeekdayStrs returns the weekdays formatted as ISO dates
func (w WeekInfo) WeekdayStrs() []string {
	strs := make([]string, len(w.Weekdays))
	for i, d := range w.Weekdays {
		strs[i] = FormatDate(d)
	}
	return strs
}

// Contains returns true if the ISO date is one of the week's weekdays
func (w WeekInfo) Contains(date string) bool {
	for _, d := range w.Weekdays {
		if FormatDate(d) == date {
			return true
		}
	}
	return false
}

// Normalize strips the time of day, keeping the calendar date in UTC
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the clock's current calendar date
func Today(clock Clock) time.Time {
	return Normalize(clock.Now())
}

// TodayStr returns the clock's current calendar date as an ISO date
func TodayStr(clock Clock) string {
	return FormatDate(Today(clock))
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeekStart returns the Monday on or before the given date
func WeekStart(d time.Time) time.Time {
	d = Normalize(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekLabel returns the display label for a week starting on the given Monday
func WeekLabel(weekStart time.Time) string {
	return "Week of " + weekStart.Format("Jan 2")
}

// WeekdaysInRange returns every Monday-Friday date between start and end inclusive.
// Returns an empty slice when start is after end.
func WeekdaysInRange(start, end time.Time) []time.Time {
	return daysInRange(start, end, workWeek)
}

// DaysInRange returns every date between start and end inclusive, weekends included
func DaysInRange(start, end time.Time) []time.Time {
	return daysInRange(start, end, nil)
}

func daysInRange(start, end time.Time, byWeekday []rrule.Weekday) []time.Time {
	start, end = Normalize(start), Normalize(end)
	if start.After(end) {
		return []time.Time{}
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     end,
		Byweekday: byWeekday,
	})
	if err != nil {
		return []time.Time{}
	}

	days := rule.All()
	if days == nil {
		return []time.Time{}
	}
	return days
}

// WeekdaysInRangeStr is WeekdaysInRange over ISO date strings.
// Unparseable bounds yield an empty slice.
func WeekdaysInRangeStr(startStr, endStr string) []string {
	return rangeStr(startStr, endStr, WeekdaysInRange)
}

// DaysInRangeStr is DaysInRange over ISO date strings
func DaysInRangeStr(startStr, endStr string) []string {
	return rangeStr(startStr, endStr, DaysInRange)
}

func rangeStr(startStr, endStr string, expand func(start, end time.Time) []time.Time) []string {
	start, err := ParseDate(startStr)
	if err != nil {
		return []string{}
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return []string{}
	}

	days := expand(start, end)
	strs := make([]string, len(days))
	for i, d := range days {
		strs[i] = FormatDate(d)
	}
	return strs
}

// PlanningWeeks builds the rolling window of numWeeks weeks starting at the
// Monday of today's week
func PlanningWeeks(today time.Time, numWeeks int) []WeekInfo {
	if numWeeks <= 0 {
		return []WeekInfo{}
	}

	planStart := WeekStart(today)
	weeks := make([]WeekInfo, 0, numWeeks)

	for i := 0; i < numWeeks; i++ {
		ws := planStart.AddDate(0, 0, 7*i)
		weeks = append(weeks, WeekInfo{
			WeekStart:    ws,
			WeekStartStr: FormatDate(ws),
			WeekLabel:    WeekLabel(ws),
			Weekdays:     WeekdaysInRange(ws, ws.AddDate(0, 0, 4)),
		})
	}

	return weeks
}

// IsDateInRange reports whether date falls within [start, end].
// Any unparseable input is treated as out of range.
func IsDateInRange(date, start, end string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	s, err := ParseDate(start)
	if err != nil {
		return false
	}
	e, err := ParseDate(end)
	if err != nil {
		return false
	}
	return !d.Before(s) && !d.After(e)
}

// OverlapDays returns the week's weekdays that fall within [start, end].
// An inverted range never overlaps.
func OverlapDays(week WeekInfo, start, end string) []string {
	overlap := make([]string, 0, len(week.Weekdays))
	for _, d := range week.WeekdayStrs() {
		if IsDateInRange(d, start, end) {
			overlap = append(overlap, d)
		}
	}
	return overlap
}
