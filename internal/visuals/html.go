package visuals

import (
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"sync"
	"time"

	"shiplate/internal/stats"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
)

// Page is everything the browser report shows.
type Page struct {
	Report      stats.Report
	Source      string
	RunID       string
	GeneratedAt time.Time
	Charts      []Chart
}

// Chart is a rendered image embedded in the page.
type Chart struct {
	Title string
	PNG   []byte
}

// NewPage prepares a page for report. Charts are added by WithCharts.
func NewPage(report stats.Report, source, runID string, now time.Time) Page {
	return Page{Report: report, Source: source, RunID: runID, GeneratedAt: now}
}

// WithCharts returns the page with both bottleneck charts rendered.
// Chart failures are logged and the chart is left out.
func (page Page) WithCharts() Page {
	page.Charts = nil
	for _, c := range []struct {
		title  string
		groups []stats.GroupCount
	}{
		{"Late shipments by supplier", page.Report.BySupplier},
		{"Late shipments by handoff point", page.Report.ByHandoff},
	} {
		png, err := BottleneckChartPNG(c.title, c.groups)
		if err != nil {
			if !errors.Is(err, ErrNoBars) {
				log.Warn().Err(err).Str("chart", c.title).Msg("Failed to render chart")
			}
			continue
		}
		page.Charts = append(page.Charts, Chart{Title: c.title, PNG: png})
	}
	return page
}

const pageCSS = `
body {
  font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
  margin: 0 auto;
  max-width: 1100px;
  padding: 24px;
  color: #1f2933;
}
header .muted, footer { color: #6b7280; font-size: 0.9em; }
.tiles { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; margin: 16px 0; }
.tile { border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px; }
.tile .label { color: #6b7280; font-size: 0.8em; text-transform: uppercase; }
.tile .value { font-size: 1.4em; font-weight: 600; margin-top: 4px; }
.columns { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; }
.charts img { max-width: 100%; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border-bottom: 1px solid #e5e7eb; padding: 6px 8px; text-align: left; }
th { background: #f9fafb; }
td.days { font-weight: 600; color: #b91c1c; }
.error { border: 1px solid #fca5a5; background: #fef2f2; color: #991b1b; padding: 16px; border-radius: 8px; }
.warning { color: #92400e; }
`

var (
	cssOnce     sync.Once
	minifiedCSS template.CSS
)

// stylesheet returns the page CSS minified by esbuild, or as written if minification fails.
func stylesheet() template.CSS {
	cssOnce.Do(func() {
		result := api.Transform(pageCSS, api.TransformOptions{
			Loader:           api.LoaderCSS,
			MinifyWhitespace: true,
			MinifySyntax:     true,
		})
		if len(result.Errors) > 0 {
			log.Warn().Str("error", result.Errors[0].Text).Msg("CSS minification failed, using unminified stylesheet")
			minifiedCSS = template.CSS(pageCSS)
			return
		}
		minifiedCSS = template.CSS(result.Code)
	})
	return minifiedCSS
}

var funcs = template.FuncMap{
	"percent":   FormatPercent,
	"days":      FormatDays,
	"group":     FormatGroup,
	"worst":     WorstLabel,
	"cells":     LateCells,
	"timestamp": func(t time.Time) string { return t.Format(time.RFC3339) },
	"pngURL": func(b []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(b))
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(funcs).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Shipment lateness report</title>
<style>{{.CSS}}</style>
</head>
<body>
{{- with .Page}}
<header>
  <h1>Shipment lateness report</h1>
  <div id="asOf" class="muted">As of: {{.Report.AsOf}}</div>
  {{- if .Source}}<div id="source" class="muted">Source: {{.Source}}</div>{{end}}
</header>
<section class="tiles">
  <div class="tile"><div class="label">Shipments</div><div id="totalCount" class="value">{{.Report.TotalCount}}</div></div>
  <div class="tile"><div class="label">Late</div><div id="lateCount" class="value">{{.Report.LateCount}}</div></div>
  <div class="tile"><div class="label">On time</div><div id="onTimePct" class="value">{{percent .Report.OnTimePercent}}</div></div>
  <div class="tile"><div class="label">Avg days late</div><div id="avgLate" class="value">{{days .Report.AvgLateDays}}</div></div>
  <div class="tile"><div class="label">Worst supplier</div><div id="worstSupplier" class="value">{{worst .Report.BySupplier}}</div></div>
  <div class="tile"><div class="label">Worst handoff</div><div id="worstHandoff" class="value">{{worst .Report.ByHandoff}}</div></div>
</section>
{{- if .Report.InvalidDates}}
<p id="dateIssues" class="warning">{{.Report.InvalidDates}} shipment date(s) could not be read and were counted as on time.</p>
{{- end}}
<section class="columns">
  <div>
    <h2>Late by supplier</h2>
    <ul id="lateBySupplier">
    {{- range .Report.BySupplier}}
      <li>{{group .}}</li>
    {{- end}}
    </ul>
  </div>
  <div>
    <h2>Late by handoff point</h2>
    <ul id="lateByHandoff">
    {{- range .Report.ByHandoff}}
      <li>{{group .}}</li>
    {{- end}}
    </ul>
  </div>
</section>
{{- if .Charts}}
<section class="charts columns">
  {{- range .Charts}}
  <figure><img alt="{{.Title}}" src="{{pngURL .PNG}}"><figcaption>{{.Title}}</figcaption></figure>
  {{- end}}
</section>
{{- end}}
<section>
  <h2>Latest shipments</h2>
  <table id="lateTable">
    <thead><tr>{{range $.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- range .Report.TopLate}}
      <tr>{{range $i, $c := cells .}}<td{{if eq $i 7}} class="days"{{end}}>{{$c}}</td>{{end}}</tr>
    {{- end}}
    </tbody>
  </table>
</section>
<footer>
  {{- if .RunID}}Run {{.RunID}} · {{end}}Generated {{timestamp .GeneratedAt}}
</footer>
{{- end}}
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Shipment lateness report: failed to load</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>Shipment lateness report</h1>
<div id="error" class="error">{{.Message}}</div>
</body>
</html>
`))

// RenderHTML writes the browser report for page.
func RenderHTML(w io.Writer, page Page) error {
	return reportTemplate.Execute(w, struct {
		CSS     template.CSS
		Columns []string
		Page    Page
	}{
		CSS:     stylesheet(),
		Columns: LateTableColumns,
		Page:    page,
	})
}

// RenderErrorPage writes a page that only shows message, used when the export cannot be loaded.
func RenderErrorPage(w io.Writer, message string) error {
	return errorTemplate.Execute(w, struct {
		CSS     template.CSS
		Message string
	}{
		CSS:     stylesheet(),
		Message: message,
	})
}
