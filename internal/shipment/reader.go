package shipment

import (
	"regexp"
	"strings"
)

// Separator between fields. Quoted fields are not supported: a comma inside a value
// always starts a new field.
const Separator = ","

var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse splits an export into its header and rows.
//
// The first line is the header. Every later line becomes a Row; values are trimmed and
// matched to header names by position. Short lines get "" for the missing trailing
// columns, extra values are dropped. Empty input yields an empty Table.
func Parse(text string) Table {
	text = strings.TrimSpace(text)
	if text == "" {
		return Table{}
	}

	lines := lineBreak.Split(text, -1)
	header := splitTrim(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := splitTrim(line)
		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(cols) {
				fields[h] = cols[i]
			} else {
				fields[h] = ""
			}
		}
		rows = append(rows, Row{Fields: fields})
	}

	return Table{Header: header, Rows: rows}
}

// Format writes the table back out in header order. Derived values are not included.
func Format(t Table) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(t.Header, Separator))
	for _, r := range t.Rows {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(r.Values(t.Header), Separator))
	}
	sb.WriteString("\n")
	return sb.String()
}

func splitTrim(line string) []string {
	parts := strings.Split(line, Separator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
