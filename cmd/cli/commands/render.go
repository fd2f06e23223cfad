package commands

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/labels"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
)

func newTable(app *AppContext) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(app.Out)
	tw.SetStyle(table.StyleLight)
	return tw
}

// levelText colors a risk level for the terminal
func levelText(level risk.Level) string {
	switch level {
	case risk.Red:
		return text.FgRed.Sprint(string(level))
	case risk.Yellow:
		return text.FgYellow.Sprint(string(level))
	default:
		return text.FgGreen.Sprint(string(level))
	}
}

// formatDays drops the decimals of whole day counts: 5 -> "5", 2.5 -> "2.5"
func formatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}

// breakdownText renders pod chips as "WW 3, PS 1*", marking cross-pod work with *
func breakdownText(labeler *labels.Labeler, breakdown []labels.PodDays) string {
	parts := make([]string, 0, len(breakdown))
	for _, pd := range breakdown {
		part := labeler.PodPrefix(pd.PodID) + " " + formatDays(pd.Days)
		if pd.CrossPod {
			part += "*"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
