package stats

import (
	"fmt"
	"strings"

	"shiplate/internal/shipment"
)

// FieldAsOf names the reference date when it stands in for a missing actual delivery.
const FieldAsOf = "as_of"

// DateError reports which date of a shipment could not be read.
type DateError struct {
	Field string
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// DaysLate returns how many whole days a shipment missed its planned delivery by.
//
// Shipments without a planned date are never late. Delivered shipments compare the
// actual date, undelivered ones compare asOf. Early or on-time deliveries clamp to 0.
// An unreadable date yields 0 together with a *DateError.
func DaysLate(row shipment.Row, asOf string) (int, error) {
	planned := strings.TrimSpace(row.Get(shipment.FieldPlannedDelivery))
	if planned == "" {
		return 0, nil
	}

	endField := shipment.FieldActualDelivery
	end := strings.TrimSpace(row.Get(shipment.FieldActualDelivery))
	if end == "" {
		endField = FieldAsOf
		end = strings.TrimSpace(asOf)
	}

	plannedDate, err := shipment.ParseDate(planned)
	if err != nil {
		return 0, &DateError{Field: shipment.FieldPlannedDelivery, Value: planned, Err: err}
	}
	endDate, err := shipment.ParseDate(end)
	if err != nil {
		return 0, &DateError{Field: endField, Value: end, Err: err}
	}

	if diff := plannedDate.DaysUntil(endDate); diff > 0 {
		return diff, nil
	}
	return 0, nil
}
