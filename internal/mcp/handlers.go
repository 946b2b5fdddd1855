package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"

	"github.com/rs/zerolog/log"
)

var errNoSource = errors.New("either csv_path or csv_text is required")

type reportResult struct {
	stats.Report
	WorstSupplier *stats.GroupCount `json:"worstSupplier,omitempty"`
	WorstHandoff  *stats.GroupCount `json:"worstHandoff,omitempty"`
}

type daysLateResult struct {
	DaysLate int    `json:"days_late"`
	Late     bool   `json:"late"`
	Compared string `json:"compared_to"`
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, rpcError(codeInvalidParams, "Invalid params")
	}
	if len(call.Arguments) == 0 {
		call.Arguments = json.RawMessage("{}")
	}

	var data interface{}
	var err error

	switch call.Name {
	case ToolShipmentReport:
		var args ReportArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, rpcError(codeInvalidParams, fmt.Sprintf("Invalid arguments: %v", err))
		}
		data, err = s.handleShipmentReport(args)
	case ToolShipmentDaysLate:
		var args DaysLateArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, rpcError(codeInvalidParams, fmt.Sprintf("Invalid arguments: %v", err))
		}
		data, err = s.handleDaysLate(args)
	default:
		return nil, rpcError(codeMethodNotFound, "Tool not found")
	}

	if err != nil {
		log.Warn().Err(err).Str("tool", call.Name).Msg("Tool call failed")
		return toolResult(err.Error(), true), nil
	}
	return toolResult(s.formatResult(data), false), nil
}

func (s *Server) handleShipmentReport(args ReportArgs) (interface{}, error) {
	asOf, err := s.resolveAsOf(args.AsOf)
	if err != nil {
		return nil, err
	}

	text := args.CSVText
	source := "inline"
	if text == "" {
		if args.CSVPath == "" {
			return nil, errNoSource
		}
		text, err = s.opts.Load(args.CSVPath)
		if err != nil {
			return nil, err
		}
		source = args.CSVPath
	}

	top := s.opts.TopLateLimit
	if args.Top > 0 {
		top = args.Top
	}

	report := stats.BuildReportWithOptions(text, asOf, stats.Options{TopLateLimit: top})
	log.Info().Str("source", source).Int("total", report.TotalCount).Int("late", report.LateCount).Msg("Report served")

	res := reportResult{Report: report}
	if g, ok := report.WorstSupplier(); ok {
		res.WorstSupplier = &g
	}
	if g, ok := report.WorstHandoff(); ok {
		res.WorstHandoff = &g
	}
	return res, nil
}

func (s *Server) handleDaysLate(args DaysLateArgs) (interface{}, error) {
	asOf, err := s.resolveAsOf(args.AsOf)
	if err != nil {
		return nil, err
	}

	row := shipment.Row{Fields: map[string]string{
		shipment.FieldPlannedDelivery: args.PlannedDelivery,
		shipment.FieldActualDelivery:  args.ActualDelivery,
	}}
	days, err := stats.DaysLate(row, asOf)
	if err != nil {
		return nil, err
	}

	compared := shipment.FieldActualDelivery
	if args.ActualDelivery == "" {
		compared = stats.FieldAsOf
	}
	return daysLateResult{DaysLate: days, Late: days > 0, Compared: compared}, nil
}

// resolveAsOf defaults to today and rejects malformed reference dates.
func (s *Server) resolveAsOf(asOf string) (string, error) {
	if asOf == "" {
		return shipment.Today(s.opts.Now()).String(), nil
	}
	if _, err := shipment.ParseDate(asOf); err != nil {
		return "", fmt.Errorf("as_of: %w", err)
	}
	return asOf, nil
}

func toolResult(text string, isError bool) map[string]interface{} {
	res := map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
	}
	if isError {
		res["isError"] = true
	}
	return res
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
