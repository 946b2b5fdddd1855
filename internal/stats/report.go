package stats

import (
	"errors"
	"slices"

	"shiplate/internal/shipment"

	"github.com/samber/lo"
)

// DefaultTopLateLimit bounds the late-shipment detail list.
const DefaultTopLateLimit = 25

// Options tunes report construction. The zero value gives the standard report.
type Options struct {
	TopLateLimit int
}

// DateIssue records a shipment date that could not be read and was treated as on time.
type DateIssue struct {
	ShipmentID string `json:"shipmentId" yaml:"shipmentId"`
	Field      string `json:"field" yaml:"field"`
	Value      string `json:"value" yaml:"value"`
}

// Report is the lateness summary of one shipment export.
type Report struct {
	AsOf          string         `json:"asOf" yaml:"asOf"`
	TotalCount    int            `json:"totalCount" yaml:"totalCount"`
	LateCount     int            `json:"lateCount" yaml:"lateCount"`
	OnTimePercent float64        `json:"onTimePercent" yaml:"onTimePercent"`
	AvgLateDays   float64        `json:"avgLateDays" yaml:"avgLateDays"`
	BySupplier    []GroupCount   `json:"bySupplier" yaml:"bySupplier"`
	ByHandoff     []GroupCount   `json:"byHandoff" yaml:"byHandoff"`
	TopLate       []shipment.Row `json:"topLate" yaml:"topLate"`
	InvalidDates  int            `json:"invalidDates" yaml:"invalidDates"`
	DateIssues    []DateIssue    `json:"dateIssues,omitempty" yaml:"dateIssues,omitempty"`
}

// BuildReport computes the standard report for an export as of the given ISO date.
func BuildReport(csvText, asOf string) Report {
	return BuildReportWithOptions(csvText, asOf, Options{})
}

// BuildReportWithOptions computes a report for an export as of the given ISO date.
// It never fails: malformed rows and unreadable dates degrade instead of aborting.
func BuildReportWithOptions(csvText, asOf string, opts Options) Report {
	limit := opts.TopLateLimit
	if limit <= 0 {
		limit = DefaultTopLateLimit
	}

	table := shipment.Parse(csvText)
	report := Report{
		AsOf:       asOf,
		TotalCount: len(table.Rows),
	}

	rows := make([]shipment.Row, len(table.Rows))
	for i, r := range table.Rows {
		days, err := DaysLate(r, asOf)
		if err != nil {
			var de *DateError
			if errors.As(err, &de) {
				report.DateIssues = append(report.DateIssues, DateIssue{
					ShipmentID: r.Label(),
					Field:      de.Field,
					Value:      de.Value,
				})
			}
		}
		rows[i] = r.WithDaysLate(days)
	}
	report.InvalidDates = len(report.DateIssues)

	late := lo.Filter(rows, func(r shipment.Row, _ int) bool {
		return r.DaysLate > 0
	})
	slices.SortStableFunc(late, func(a, b shipment.Row) int {
		return b.DaysLate - a.DaysLate
	})
	report.LateCount = len(late)

	if report.TotalCount > 0 {
		report.OnTimePercent = float64(report.TotalCount-report.LateCount) / float64(report.TotalCount) * 100
	}
	if report.LateCount > 0 {
		total := lo.SumBy(late, func(r shipment.Row) int { return r.DaysLate })
		report.AvgLateDays = float64(total) / float64(report.LateCount)
	}

	report.BySupplier = CountBy(late, shipment.FieldSupplier)
	report.ByHandoff = CountBy(late, shipment.FieldHandoffPoint)
	report.TopLate = late[:min(limit, len(late))]

	return report
}

// WorstSupplier returns the supplier with the most late shipments.
func (r Report) WorstSupplier() (GroupCount, bool) {
	return first(r.BySupplier)
}

// WorstHandoff returns the handoff point with the most late shipments.
func (r Report) WorstHandoff() (GroupCount, bool) {
	return first(r.ByHandoff)
}

func first(groups []GroupCount) (GroupCount, bool) {
	if len(groups) == 0 {
		return GroupCount{}, false
	}
	return groups[0], true
}
