package visuals

import (
	"fmt"
	"io"
	"strings"

	"shiplate/internal/stats"

	"github.com/charmbracelet/lipgloss"
)

// RenderText writes a terminal summary of the report.
// Colour is decided by the renderer from w, so redirected output stays plain.
func RenderText(w io.Writer, r stats.Report) error {
	re := lipgloss.NewRenderer(w)

	var (
		title  = re.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
		label  = re.NewStyle().Foreground(lipgloss.Color("244"))
		accent = re.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
		late   = re.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
		panel  = re.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	)

	kpis := []struct{ name, value string }{
		{"As of", r.AsOf},
		{"Shipments", fmt.Sprintf("%d", r.TotalCount)},
		{"Late", fmt.Sprintf("%d", r.LateCount)},
		{"On time", FormatPercent(r.OnTimePercent)},
		{"Avg days late", FormatDays(r.AvgLateDays)},
		{"Worst supplier", WorstLabel(r.BySupplier)},
		{"Worst handoff", WorstLabel(r.ByHandoff)},
	}
	if r.InvalidDates > 0 {
		kpis = append(kpis, struct{ name, value string }{"Unreadable dates", fmt.Sprintf("%d", r.InvalidDates)})
	}

	var summary []string
	for _, k := range kpis {
		summary = append(summary, fmt.Sprintf("%s %s", label.Render(fmt.Sprintf("%-16s", k.name)), accent.Render(k.value)))
	}

	ranking := func(heading string, groups []stats.GroupCount) string {
		lines := []string{title.Render(heading)}
		if len(groups) == 0 {
			lines = append(lines, label.Render(Placeholder))
		}
		for _, g := range groups {
			lines = append(lines, FormatGroup(g))
		}
		return panel.Render(strings.Join(lines, "\n"))
	}

	var table strings.Builder
	widths := columnWidths(r)
	writeRow := func(cells []string, style func(i int, s string) string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style(i, fmt.Sprintf("%-*s", widths[i], c))
		}
		table.WriteString(strings.Join(parts, "  "))
		table.WriteString("\n")
	}
	writeRow(LateTableColumns, func(_ int, s string) string { return label.Render(s) })
	for _, row := range r.TopLate {
		writeRow(LateCells(row), func(i int, s string) string {
			if i == 7 {
				return late.Render(s)
			}
			return s
		})
	}

	out := strings.Join([]string{
		title.Render("Shipment lateness report"),
		panel.Render(strings.Join(summary, "\n")),
		lipgloss.JoinHorizontal(lipgloss.Top,
			ranking("Late by supplier", r.BySupplier),
			" ",
			ranking("Late by handoff point", r.ByHandoff),
		),
		title.Render("Latest shipments"),
		table.String(),
	}, "\n")

	_, err := io.WriteString(w, out)
	return err
}

func columnWidths(r stats.Report) []int {
	widths := make([]int, len(LateTableColumns))
	for i, c := range LateTableColumns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range r.TopLate {
		for i, c := range LateCells(row) {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	return widths
}
