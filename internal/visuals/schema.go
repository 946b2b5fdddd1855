package visuals

import (
	"fmt"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
)

// ReportSchema describes the JSON report document.
func ReportSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[stats.Report](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer report schema: %w", err)
	}
	schema.Title = "Shipment lateness report"

	// Rows serialize flat, which reflection cannot see.
	top, ok := schema.Properties["topLate"]
	if !ok {
		return nil, fmt.Errorf("report schema has no topLate property")
	}
	top.Description = "Late shipments, most days late first"
	top.Items = RowSchema()

	return schema, nil
}

// RowSchema describes one serialized shipment row.
func RowSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Raw export fields keyed by header name, plus the derived days_late",
		Properties: map[string]*jsonschema.Schema{
			shipment.FieldDaysLate: {Type: "integer", Description: "Whole days past the planned delivery, never negative"},
		},
		Required:             []string{shipment.FieldDaysLate},
		AdditionalProperties: &jsonschema.Schema{Type: "string"},
	}
}
