package visuals

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding of a report.
type Format string

const (
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
)

// Formats lists every supported output format.
var Formats = []Format{FormatHTML, FormatJSON, FormatYAML, FormatText, FormatMarkdown, FormatXLSX}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Extension returns the file extension used when the format is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Write renders page in the given format.
func Write(w io.Writer, format Format, page Page, mermaid bool) error {
	switch format {
	case FormatHTML:
		return RenderHTML(w, page)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page.Report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page.Report); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return RenderText(w, page.Report)
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(page.Report, mermaid))
		return err
	case FormatXLSX:
		return WriteXLSX(w, page.Report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
