package stats

import (
	"errors"
	"testing"

	"shiplate/internal/shipment"
)

func row(fields map[string]string) shipment.Row {
	return shipment.Row{Fields: fields}
}

func TestDaysLate(t *testing.T) {
	tests := []struct {
		name    string
		planned string
		actual  string
		asOf    string
		want    int
	}{
		{"OpenAndLate", "2024-01-01", "", "2024-01-10", 9},
		{"DeliveredEarly", "2024-01-10", "2024-01-05", "2024-02-01", 0},
		{"DeliveredOnTime", "2024-01-10", "2024-01-10", "2024-02-01", 0},
		{"DeliveredLateIgnoresAsOf", "2024-01-10", "2024-01-12", "2024-03-01", 2},
		{"OpenNotYetDue", "2024-01-20", "", "2024-01-10", 0},
		{"NoPlan", "", "2024-01-12", "2024-03-01", 0},
		{"NoPlanNoActual", "", "", "2024-03-01", 0},
		{"PaddedValues", " 2024-01-01 ", " ", "2024-01-03", 2},
		{"CenturiesLate", "1700-01-01", "2024-01-01", "2024-03-01", 118338},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := row(map[string]string{
				shipment.FieldPlannedDelivery: tt.planned,
				shipment.FieldActualDelivery:  tt.actual,
			})
			got, err := DaysLate(r, tt.asOf)
			if err != nil {
				t.Fatalf("DaysLate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysLate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysLate_MissingColumns(t *testing.T) {
	got, err := DaysLate(row(map[string]string{}), "2024-01-10")
	if err != nil || got != 0 {
		t.Errorf("DaysLate() = %d, %v; want 0, nil", got, err)
	}

	// Without an actual_delivery column the reference date is used.
	got, err = DaysLate(row(map[string]string{shipment.FieldPlannedDelivery: "2024-01-01"}), "2024-01-04")
	if err != nil || got != 3 {
		t.Errorf("DaysLate() = %d, %v; want 3, nil", got, err)
	}
}

func TestDaysLate_InvalidDatesDegradeToZero(t *testing.T) {
	tests := []struct {
		name      string
		planned   string
		actual    string
		asOf      string
		wantField string
	}{
		{"BadPlanned", "tomorrow", "2024-01-05", "2024-01-10", shipment.FieldPlannedDelivery},
		{"BadActual", "2024-01-01", "01/05/2024", "2024-01-10", shipment.FieldActualDelivery},
		{"BadAsOf", "2024-01-01", "", "", FieldAsOf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := row(map[string]string{
				shipment.FieldPlannedDelivery: tt.planned,
				shipment.FieldActualDelivery:  tt.actual,
			})
			got, err := DaysLate(r, tt.asOf)
			if got != 0 {
				t.Errorf("DaysLate() = %d, want 0", got)
			}
			var de *DateError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want *DateError", err)
			}
			if de.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", de.Field, tt.wantField)
			}
			if !errors.Is(err, shipment.ErrInvalidDate) {
				t.Errorf("error should wrap ErrInvalidDate: %v", err)
			}
		})
	}
}
