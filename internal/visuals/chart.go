package visuals

import (
	"bytes"
	"errors"

	"shiplate/internal/stats"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoBars is returned when there is nothing to chart.
var ErrNoBars = errors.New("no groups to chart")

// maxChartBars keeps labels legible on the rendered image.
const maxChartBars = 10

// BottleneckChartPNG draws a bar chart of the largest groups of a ranking.
func BottleneckChartPNG(title string, groups []stats.GroupCount) ([]byte, error) {
	if len(groups) == 0 {
		return nil, ErrNoBars
	}

	limit := min(len(groups), maxChartBars)
	bars := make([]chart.Value, 0, limit)
	maxCount := 0
	for _, g := range groups[:limit] {
		bars = append(bars, chart.Value{Label: g.Key, Value: float64(g.Count)})
		maxCount = max(maxCount, g.Count)
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      640,
		Height:     320,
		BarWidth:   40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
