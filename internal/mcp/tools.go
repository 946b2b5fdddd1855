package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool names.
const (
	ToolShipmentReport   = "shipment_report"
	ToolShipmentDaysLate = "shipment_days_late"
)

// ReportArgs are the arguments of the shipment_report tool.
type ReportArgs struct {
	CSVPath string `json:"csv_path,omitempty" jsonschema:"Path of the shipment CSV export to read"`
	CSVText string `json:"csv_text,omitempty" jsonschema:"Inline CSV export text, used instead of csv_path"`
	AsOf    string `json:"as_of,omitempty" jsonschema:"Reference date (YYYY-MM-DD) for undelivered shipments. Defaults to today (UTC)"`
	Top     int    `json:"top,omitempty" jsonschema:"Maximum number of late shipments to list. Defaults to 25"`
}

// DaysLateArgs are the arguments of the shipment_days_late tool.
type DaysLateArgs struct {
	PlannedDelivery string `json:"planned_delivery" jsonschema:"Planned delivery date (YYYY-MM-DD)"`
	ActualDelivery  string `json:"actual_delivery,omitempty" jsonschema:"Actual delivery date (YYYY-MM-DD). Empty when not delivered yet"`
	AsOf            string `json:"as_of,omitempty" jsonschema:"Reference date (YYYY-MM-DD) used when there is no actual delivery. Defaults to today (UTC)"`
}

type toolDef struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

func (s *Server) listTools() (interface{}, interface{}) {
	reportSchema, err := jsonschema.For[ReportArgs](nil)
	if err != nil {
		return nil, rpcError(-32603, fmt.Sprintf("failed to build schema: %v", err))
	}
	daysSchema, err := jsonschema.For[DaysLateArgs](nil)
	if err != nil {
		return nil, rpcError(-32603, fmt.Sprintf("failed to build schema: %v", err))
	}

	return map[string]interface{}{
		"tools": []toolDef{
			{
				Name: ToolShipmentReport,
				Description: "Build the shipment lateness report for a CSV export: shipment and late counts, on-time percentage, " +
					"average days late, late shipments ranked by supplier and by handoff point, and the latest shipments. " +
					"Provide either csv_path or csv_text. Unreadable dates are counted as on time and listed in dateIssues.",
				InputSchema: reportSchema,
			},
			{
				Name:        ToolShipmentDaysLate,
				Description: "Compute how many whole days a single shipment is late. Early or on-time deliveries return 0.",
				InputSchema: daysSchema,
			},
		},
	}, nil
}
