package shipment

import (
	"encoding/json"
	"strings"
)

// Column names of the shipment export.
const (
	FieldShipmentID      = "shipment_id"
	FieldPO              = "po"
	FieldSupplier        = "supplier"
	FieldCarrier         = "carrier"
	FieldStatus          = "status"
	FieldPlannedDelivery = "planned_delivery"
	FieldActualDelivery  = "actual_delivery"
	FieldHandoffPoint    = "handoff_point"

	// FieldDaysLate is the derived column attached after lateness is computed.
	FieldDaysLate = "days_late"
)

// Row is one shipment line keyed by header name.
type Row struct {
	Fields   map[string]string
	DaysLate int
}

// Table is the parsed export: the header in file order and one Row per data line.
type Table struct {
	Header []string
	Rows   []Row
}

// Get returns the named field, or "" when the row has no such column.
func (r Row) Get(name string) string {
	return r.Fields[name]
}

// Values returns the row's fields in header order.
func (r Row) Values(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = r.Fields[h]
	}
	return out
}

// WithDaysLate returns a copy of the row annotated with days late.
// The field map is shared; rows are read-only once annotated.
func (r Row) WithDaysLate(days int) Row {
	r.DaysLate = days
	return r
}

func (r Row) flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[FieldDaysLate] = r.DaysLate
	return out
}

// MarshalJSON renders the row as a flat object of its raw fields plus days_late.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.flatten())
}

// UnmarshalJSON accepts the flat form produced by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]string, len(raw))
	r.DaysLate = 0
	for k, v := range raw {
		if k == FieldDaysLate {
			if err := json.Unmarshal(v, &r.DaysLate); err != nil {
				return err
			}
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		r.Fields[k] = s
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (r Row) MarshalYAML() (interface{}, error) {
	return r.flatten(), nil
}

// Label returns a short identifier for logs and issue lists.
func (r Row) Label() string {
	if id := strings.TrimSpace(r.Get(FieldShipmentID)); id != "" {
		return id
	}
	return "(no id)"
}
