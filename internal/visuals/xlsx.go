package visuals

import (
	"fmt"
	"io"

	"shiplate/internal/stats"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary   = "Summary"
	SheetSuppliers = "Suppliers"
	SheetHandoffs  = "Handoffs"
	SheetLate      = "Late"
)

// WriteXLSX exports the report as a workbook with one sheet per section.
func WriteXLSX(w io.Writer, r stats.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"As of", r.AsOf},
		{"Shipments", r.TotalCount},
		{"Late", r.LateCount},
		{"On time %", r.OnTimePercent},
		{"Avg days late", r.AvgLateDays},
		{"Worst supplier", WorstLabel(r.BySupplier)},
		{"Worst handoff", WorstLabel(r.ByHandoff)},
		{"Unreadable dates", r.InvalidDates},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	for _, ranking := range []struct {
		sheet  string
		key    string
		groups []stats.GroupCount
	}{
		{SheetSuppliers, "Supplier", r.BySupplier},
		{SheetHandoffs, "Handoff point", r.ByHandoff},
	} {
		if _, err := f.NewSheet(ranking.sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", ranking.sheet, err)
		}
		rows := [][]interface{}{{ranking.key, "Late shipments"}}
		for _, g := range ranking.groups {
			rows = append(rows, []interface{}{g.Key, g.Count})
		}
		if err := writeRows(f, ranking.sheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetLate); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetLate, err)
	}
	late := [][]interface{}{toInterfaces(LateTableColumns)}
	for _, row := range r.TopLate {
		cells := toInterfaces(LateCells(row))
		cells[7] = row.DaysLate
		late = append(late, cells)
	}
	if err := writeRows(f, SheetLate, late); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
