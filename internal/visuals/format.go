package visuals

import (
	"fmt"
	"math"
	"strings"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"
)

// Placeholder is shown for missing values.
const Placeholder = "—"

// LateTableColumns are the detail table headings, in display order.
var LateTableColumns = []string{
	"Shipment", "PO", "Supplier", "Carrier", "Status",
	"Planned", "Actual", "Days late", "Handoff point",
}

// FormatPercent renders a KPI percentage rounded to a whole number.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(p)))
}

// FormatDays renders average late days with one decimal.
func FormatDays(d float64) string {
	return fmt.Sprintf("%.1f", d)
}

// FormatGroup renders a ranked entry as "key: count".
func FormatGroup(g stats.GroupCount) string {
	return fmt.Sprintf("%s: %d", g.Key, g.Count)
}

// WorstLabel renders the top entry of a ranking as "key (count)".
func WorstLabel(groups []stats.GroupCount) string {
	if len(groups) == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%s (%d)", groups[0].Key, groups[0].Count)
}

// LateCells returns one detail-table row for a late shipment.
func LateCells(r shipment.Row) []string {
	return []string{
		r.Get(shipment.FieldShipmentID),
		r.Get(shipment.FieldPO),
		r.Get(shipment.FieldSupplier),
		r.Get(shipment.FieldCarrier),
		r.Get(shipment.FieldStatus),
		orPlaceholder(r.Get(shipment.FieldPlannedDelivery)),
		orPlaceholder(r.Get(shipment.FieldActualDelivery)),
		fmt.Sprintf("%d", r.DaysLate),
		orPlaceholder(r.Get(shipment.FieldHandoffPoint)),
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
