package pipeline

import (
	"context"
	"time"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options controls a batch of report runs.
type Options struct {
	Report      stats.Options
	Concurrency int
	// Load reads one source; defaults to shipment.LoadFile.
	Load func(path string) (string, error)
}

// Result pairs a source with its report.
type Result struct {
	Path     string
	Report   stats.Report
	Duration time.Duration
}

// Run builds one report per path, in parallel up to opts.Concurrency.
// Results keep the order of paths. The first load failure cancels the rest.
func Run(ctx context.Context, paths []string, asOf string, opts Options) ([]Result, error) {
	load := opts.Load
	if load == nil {
		load = shipment.LoadFile
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			text, err := load(path)
			if err != nil {
				return err
			}

			report := stats.BuildReportWithOptions(text, asOf, opts.Report)
			results[i] = Result{Path: path, Report: report, Duration: time.Since(start)}

			for _, issue := range report.DateIssues {
				log.Debug().
					Str("path", path).
					Str("shipment", issue.ShipmentID).
					Str("field", issue.Field).
					Str("value", issue.Value).
					Msg("Unreadable date treated as on time")
			}
			log.Info().
				Str("path", path).
				Int("total", report.TotalCount).
				Int("late", report.LateCount).
				Int("invalidDates", report.InvalidDates).
				Dur("took", results[i].Duration).
				Msg("Report built")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
