package stats

import (
	"reflect"
	"testing"

	"shiplate/internal/shipment"
)

func suppliers(names ...string) []shipment.Row {
	rows := make([]shipment.Row, len(names))
	for i, n := range names {
		rows[i] = row(map[string]string{shipment.FieldSupplier: n})
	}
	return rows
}

func TestCountBy(t *testing.T) {
	tests := []struct {
		name string
		rows []shipment.Row
		want []GroupCount
	}{
		{"Empty", nil, []GroupCount{}},
		{"Descending", suppliers("Acme", "Beta", "Acme"), []GroupCount{{"Acme", 2}, {"Beta", 1}}},
		{"TiesKeepFirstSeen", suppliers("Zed", "Acme", "Mid"), []GroupCount{{"Zed", 1}, {"Acme", 1}, {"Mid", 1}}},
		{"CountBeatsFirstSeen", suppliers("Beta", "Acme", "Acme"), []GroupCount{{"Acme", 2}, {"Beta", 1}}},
		{"BlankIsUnknown", suppliers("", "  ", "Acme"), []GroupCount{{UnknownGroup, 2}, {"Acme", 1}}},
		{"TrimmedBeforeGrouping", suppliers("Acme ", " Acme"), []GroupCount{{"Acme", 2}}},
		{"MissingColumnIsUnknown", []shipment.Row{row(map[string]string{})}, []GroupCount{{UnknownGroup, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountBy(tt.rows, shipment.FieldSupplier)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CountBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountBy_SumsToInput(t *testing.T) {
	rows := suppliers("A", "B", "", "A", "C", "B", "A")
	total := 0
	for _, g := range CountBy(rows, shipment.FieldSupplier) {
		if g.Count < 1 {
			t.Errorf("group %q has count %d", g.Key, g.Count)
		}
		total += g.Count
	}
	if total != len(rows) {
		t.Errorf("counts sum to %d, want %d", total, len(rows))
	}
}
