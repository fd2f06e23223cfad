package sheetsclient

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	colGroup  = "Group"
	colPod    = "Pod"
	colPerson = "Person"
	colNotes  = "Notes"

	// Rows 1 and 2 are left free for a title; the header is row 3
	headerRowIndex = 2
)

// PublishedRosterRow is one person's line in the published roster
type PublishedRosterRow struct {
	Group  string
	Pod    string
	Person string
	Days   []float64 // assigned days per week, in week order
	Levels []string  // capacity level per week; "green" is not shown
}

// PublishedRoster is the roster for a planning window
type PublishedRoster struct {
	FirstWeek  string // "2006-01-02" Monday of the first week
	LastWeek   string // "2006-01-02" Monday of the last week
	WeekLabels []string
	Rows       []PublishedRosterRow
}

// PublishRoster writes the roster to a tab named "Roster Jan 13 2025 - Mar 31 2025".
// The tab is created if missing. When it already exists, anything typed in
// the Notes column is kept for people still on the roster.
func (c *Client) PublishRoster(ctx context.Context, spreadsheetID string, roster *PublishedRoster) (string, error) {
	tabTitle, err := RosterTabTitle(roster.FirstWeek, roster.LastWeek)
	if err != nil {
		return "", fmt.Errorf("failed to generate tab title: %w", err)
	}

	titles, err := c.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	var existing [][]interface{}
	if slices.Contains(titles, tabTitle) {
		existing, err = c.GetValues(ctx, spreadsheetID, fmt.Sprintf("%s!A1:ZZ", tabTitle))
		if err != nil {
			return "", fmt.Errorf("failed to read existing tab data: %w", err)
		}
		if err := c.ClearValues(ctx, spreadsheetID, fmt.Sprintf("%s!A1:ZZ", tabTitle)); err != nil {
			return "", fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(ctx, spreadsheetID, tabTitle); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	values := BuildRosterValues(roster, existing)
	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("%s!A1", tabTitle), values); err != nil {
		return "", fmt.Errorf("failed to write roster: %w", err)
	}

	return tabTitle, nil
}

// RosterTabTitle formats the tab name from the first and last week starts
func RosterTabTitle(firstWeek, lastWeek string) (string, error) {
	first, err := time.Parse("2006-01-02", firstWeek)
	if err != nil {
		return "", fmt.Errorf("invalid first week: %w", err)
	}
	last, err := time.Parse("2006-01-02", lastWeek)
	if err != nil {
		return "", fmt.Errorf("invalid last week: %w", err)
	}

	return fmt.Sprintf("Roster %s - %s", first.Format("Jan 02 2006"), last.Format("Jan 02 2006")), nil
}

// BuildRosterValues lays out the tab: two blank rows, the header, then one row
// per person. Notes are carried over from existing by person name.
func BuildRosterValues(roster *PublishedRoster, existing [][]interface{}) [][]interface{} {
	notes := existingNotes(existing)

	header := []interface{}{colGroup, colPod, colPerson}
	for _, label := range roster.WeekLabels {
		header = append(header, label)
	}
	header = append(header, colNotes)

	values := [][]interface{}{{}, {}, header}

	for _, row := range roster.Rows {
		sheetRow := []interface{}{row.Group, row.Pod, row.Person}
		for i := range roster.WeekLabels {
			sheetRow = append(sheetRow, formatWeekCell(row, i))
		}
		sheetRow = append(sheetRow, notes[row.Person])
		values = append(values, sheetRow)
	}

	return values
}

// formatWeekCell renders "3" or "6 (red)"
func formatWeekCell(row PublishedRosterRow, week int) string {
	days := 0.0
	if week < len(row.Days) {
		days = row.Days[week]
	}
	cell := strconv.FormatFloat(days, 'f', -1, 64)

	if week < len(row.Levels) && row.Levels[week] != "" && row.Levels[week] != "green" {
		cell += " (" + row.Levels[week] + ")"
	}
	return cell
}

// existingNotes maps person name to the Notes cell of a previously published tab
func existingNotes(existing [][]interface{}) map[string]interface{} {
	notes := make(map[string]interface{})
	if len(existing) <= headerRowIndex {
		return notes
	}

	header := existing[headerRowIndex]
	personCol := findColumnIndex(header, colPerson)
	notesCol := findColumnIndex(header, colNotes)
	if personCol == -1 || notesCol == -1 {
		return notes
	}

	for _, row := range existing[headerRowIndex+1:] {
		if personCol >= len(row) || notesCol >= len(row) {
			continue
		}
		name, ok := row[personCol].(string)
		if !ok || name == "" {
			continue
		}
		notes[name] = row[notesCol]
	}

	return notes
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && str == columnName {
			return i
		}
	}
	return -1
}
