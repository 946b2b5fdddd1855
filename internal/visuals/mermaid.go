package visuals

import (
	"fmt"
	"math"
	"strings"

	"shiplate/internal/stats"
)

// GenerateBottleneckChart creates a Mermaid xychart-beta bar chart for one late-shipment ranking.
func GenerateBottleneckChart(title string, groups []stats.GroupCount) string {
	if len(groups) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0

	// Limit to the largest groups so the axis stays readable
	limit := min(len(groups), maxChartBars)
	for _, g := range groups[:limit] {
		labels = append(labels, fmt.Sprintf("\"%s\"", strings.ReplaceAll(g.Key, "\"", "'")))
		values = append(values, fmt.Sprintf("%d", g.Count))
		if g.Count > maxVal {
			maxVal = g.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Late shipments\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// RenderMarkdown renders the report as a Markdown document, optionally with Mermaid charts.
func RenderMarkdown(r stats.Report, withCharts bool) string {
	var sb strings.Builder

	sb.WriteString("# Shipment lateness report\n\n")
	sb.WriteString(fmt.Sprintf("As of: %s\n\n", r.AsOf))

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Shipments | %d |\n", r.TotalCount))
	sb.WriteString(fmt.Sprintf("| Late | %d |\n", r.LateCount))
	sb.WriteString(fmt.Sprintf("| On time | %s |\n", FormatPercent(r.OnTimePercent)))
	sb.WriteString(fmt.Sprintf("| Avg days late | %s |\n", FormatDays(r.AvgLateDays)))
	sb.WriteString(fmt.Sprintf("| Worst supplier | %s |\n", escapeCell(WorstLabel(r.BySupplier))))
	sb.WriteString(fmt.Sprintf("| Worst handoff | %s |\n", escapeCell(WorstLabel(r.ByHandoff))))
	if r.InvalidDates > 0 {
		sb.WriteString(fmt.Sprintf("| Unreadable dates | %d |\n", r.InvalidDates))
	}

	for _, section := range []struct {
		title  string
		groups []stats.GroupCount
	}{
		{"Late by supplier", r.BySupplier},
		{"Late by handoff point", r.ByHandoff},
	} {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", section.title))
		if len(section.groups) == 0 {
			sb.WriteString("_No late shipments._\n")
			continue
		}
		for _, g := range section.groups {
			sb.WriteString(fmt.Sprintf("- %s\n", FormatGroup(g)))
		}
		if withCharts {
			sb.WriteString("\n")
			sb.WriteString(GenerateBottleneckChart(section.title, section.groups))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n## Latest shipments\n\n")
	sb.WriteString("| " + strings.Join(LateTableColumns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(LateTableColumns)) + "\n")
	for _, row := range r.TopLate {
		cells := LateCells(row)
		for i, c := range cells {
			cells[i] = escapeCell(c)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
