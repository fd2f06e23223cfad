package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/calendar"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/risk"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

// Mailer sends plain text email
type Mailer interface {
	SendEmail(ctx context.Context, to []string, subject, body string) error
}

// DigestResult reports what the digest run did
type DigestResult struct {
	Sent          bool
	SkipReason    string
	Subject       string
	Body          string
	AtRisk        int
	OverAllocated int
}

// ScheduledOn reports whether the RRULE schedule has an occurrence on day.
// A DTSTART in the schedule is kept. Without one the rule is anchored a week
// before day so BYDAY rules match from the first week.
func ScheduledOn(schedule string, day time.Time) (bool, error) {
	rule, err := config.ParseSchedule(schedule)
	if err != nil {
		return false, fmt.Errorf("invalid schedule: %w", err)
	}

	dayStart := calendar.Normalize(day)
	if rule.OrigOptions.Dtstart.IsZero() {
		rule.DTStart(dayStart.AddDate(0, 0, -7))
	}

	return len(rule.Between(dayStart, dayStart.AddDate(0, 0, 1).Add(-time.Second), true)) > 0, nil
}

// SendRiskDigest emails the at-risk work items and overloaded people to the
// configured recipients. Runs only on days matching digest.schedule unless force is set.
func SendRiskDigest(
	ctx context.Context,
	store db.ScenarioStore,
	mailer Mailer,
	cfg *config.Config,
	clock calendar.Clock,
	logger *zap.Logger,
	scenarioID string,
	force bool,
) (*DigestResult, error) {
	if len(cfg.Digest.Recipients) == 0 {
		return nil, fmt.Errorf("no digest recipients configured")
	}

	today := calendar.Today(clock)
	if !force && cfg.Digest.Schedule != "" {
		due, err := ScheduledOn(cfg.Digest.Schedule, today)
		if err != nil {
			return nil, err
		}
		if !due {
			reason := fmt.Sprintf("digest is not scheduled on %s", calendar.FormatDate(today))
			logger.Info("Skipping risk digest", zap.String("reason", reason))
			return &DigestResult{SkipReason: reason}, nil
		}
	}

	risks, err := ViewRisks(ctx, store, cfg, clock, logger, scenarioID)
	if err != nil {
		return nil, err
	}

	atRisk := risk.AtRisk(risks.WorkItems)
	subject, body := formatDigest(cfg, risks, atRisk)

	result := &DigestResult{
		Subject:       subject,
		Body:          body,
		AtRisk:        len(atRisk),
		OverAllocated: len(risks.Report.Capacity),
	}

	logger.Info("Sending risk digest",
		zap.Strings("recipients", cfg.Digest.Recipients),
		zap.Int("at_risk", result.AtRisk),
		zap.Int("over_allocated", result.OverAllocated))

	if err := mailer.SendEmail(ctx, cfg.Digest.Recipients, subject, body); err != nil {
		return nil, fmt.Errorf("failed to send digest: %w", err)
	}

	result.Sent = true
	return result, nil
}

func formatDigest(cfg *config.Config, risks *ViewRisksResult, atRisk []risk.WorkItemRisk) (string, string) {
	weekLabel := ""
	if len(risks.Weeks) > 0 {
		weekLabel = risks.Weeks[0].WeekLabel
	}

	subject := fmt.Sprintf("%s %s: %d work items at risk", cfg.Digest.SubjectPrefix, weekLabel, len(atRisk))

	peopleByID := make(map[string]string, len(risks.People))
	for _, p := range risks.People {
		peopleByID[p.ID] = p.Name
	}
	weekLabels := make(map[string]string, len(risks.Weeks))
	for _, w := range risks.Weeks {
		weekLabels[w.WeekStartStr] = w.WeekLabel
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n\n", risks.Scenario.Name)

	b.WriteString("Work items at risk\n")
	if len(atRisk) == 0 {
		b.WriteString("  none\n")
	}
	for _, row := range atRisk {
		coverage := make([]string, 0, len(row.CoverageLevels))
		for _, l := range row.CoverageLevels {
			coverage = append(coverage, string(l))
		}
		fmt.Fprintf(&b, "  [%s] %s (coverage: %s; feasibility: %s)\n",
			strings.ToUpper(string(row.Worst)),
			risks.Labeler.WorkItemLabel(row.WorkItem),
			strings.Join(coverage, ", "),
			row.Feasibility)
	}

	b.WriteString("\nOver-allocated people\n")
	if len(risks.Report.Capacity) == 0 {
		b.WriteString("  none\n")
	}
	for _, c := range risks.Report.Capacity {
		fmt.Fprintf(&b, "  [%s] %s, %s: %g days assigned (capacity %g)\n",
			strings.ToUpper(string(c.Level)), nameOrID(peopleByID, c.PersonID), weekLabels[c.WeekStart], c.AssignedDays, c.Cap)
	}

	if len(risks.Report.ContextSwitching) > 0 {
		b.WriteString("\nContext switching\n")
		for _, cs := range risks.Report.ContextSwitching {
			fmt.Fprintf(&b, "  [%s] %s, %s: %d work items\n",
				strings.ToUpper(string(cs.Level)), nameOrID(peopleByID, cs.PersonID), weekLabels[cs.WeekStart], cs.DistinctWorkItems)
		}
	}

	return subject, b.String()
}

func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
