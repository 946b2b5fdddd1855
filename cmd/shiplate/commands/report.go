package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shiplate/internal/pipeline"
	"shiplate/internal/shipment"
	"shiplate/internal/stats"
	"shiplate/internal/visuals"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ErrorPageName is the file written when an html report cannot be built.
const ErrorPageName = "shiplate-error.html"

var (
	asOfFlag   string
	formatFlag string
	outFlag    string
	openFlag   bool
	topFlag    int
)

var reportCmd = &cobra.Command{
	Use:   "report [csv files...]",
	Short: "Build the lateness report for one or more shipment exports",
	Long: `Build the lateness report for each CSV export given, or for SHIPLATE_CSV_PATH when
none is given. HTML and XLSX reports are written to the output directory; the other
formats print to stdout unless --out is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := visuals.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		paths := args
		if len(paths) == 0 {
			paths = []string{cfg.CSVPath}
		}

		outDir := outFlag
		if outDir == "" && writesFile(format) {
			if err := cfg.EnsureOutputDir(); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			outDir = cfg.OutputDir
		}

		top := cfg.TopLate
		if topFlag > 0 {
			top = topFlag
		}
		open := cfg.OpenBrowser
		if cmd.Flags().Changed("open") {
			open = openFlag
		}

		_, err = executeReport(cmd.Context(), reportRequest{
			Paths:       paths,
			AsOf:        asOfFlag,
			Format:      format,
			OutDir:      outDir,
			Open:        open,
			Top:         top,
			Concurrency: cfg.Concurrency,
			Mermaid:     cfg.MermaidChart,
		}, cmd.OutOrStdout(), browser.OpenFile)
		return err
	},
}

func init() {
	reportCmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date (YYYY-MM-DD) for undelivered shipments, defaults to today (UTC)")
	reportCmd.Flags().StringVarP(&formatFlag, "format", "f", string(visuals.FormatHTML), fmt.Sprintf("output format %v", visuals.Formats))
	reportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "directory to write reports to")
	reportCmd.Flags().BoolVar(&openFlag, "open", true, "open html reports in the browser")
	reportCmd.Flags().IntVar(&topFlag, "top", 0, "maximum number of late shipments to list")
}

type reportRequest struct {
	Paths       []string
	AsOf        string
	Format      visuals.Format
	OutDir      string // empty writes to stdout
	Open        bool
	Top         int
	Concurrency int
	Mermaid     bool
	Now         time.Time
}

func writesFile(f visuals.Format) bool {
	return f == visuals.FormatHTML || f.Binary()
}

// executeReport builds and writes one report per path and returns the files written.
func executeReport(ctx context.Context, req reportRequest, stdout io.Writer, open func(string) error) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	if req.OutDir == "" && req.Format.Binary() {
		return nil, fmt.Errorf("%s output needs --out", req.Format)
	}

	asOf := strings.TrimSpace(req.AsOf)
	if asOf == "" {
		asOf = shipment.Today(req.Now).String()
	} else if _, err := shipment.ParseDate(asOf); err != nil {
		return nil, fmt.Errorf("--as-of: %w", err)
	}

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().Strs("paths", req.Paths).Str("asOf", asOf).Str("format", string(req.Format)).Msg("Report run started")

	results, err := pipeline.Run(ctx, req.Paths, asOf, pipeline.Options{
		Report:      stats.Options{TopLateLimit: req.Top},
		Concurrency: req.Concurrency,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Report run failed")
		if req.Format == visuals.FormatHTML && req.OutDir != "" {
			writeErrorPage(req, err, open)
		}
		return nil, err
	}

	names := reportFileNames(req.Paths, req.Format)

	var written []string
	for i, res := range results {
		page := visuals.NewPage(res.Report, res.Path, runID, req.Now)
		if req.Format == visuals.FormatHTML {
			page = page.WithCharts()
		}

		if req.OutDir == "" {
			if err := visuals.Write(stdout, req.Format, page, req.Mermaid); err != nil {
				return written, fmt.Errorf("failed to write report for %s: %w", res.Path, err)
			}
			continue
		}

		var buf bytes.Buffer
		if err := visuals.Write(&buf, req.Format, page, req.Mermaid); err != nil {
			return written, fmt.Errorf("failed to render report for %s: %w", res.Path, err)
		}
		target := filepath.Join(req.OutDir, names[i])
		if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
		logger.Info().Str("path", res.Path).Str("file", target).Msg("Report written")
		fmt.Fprintln(stdout, target)

		if req.Open && req.Format == visuals.FormatHTML {
			if err := open(target); err != nil {
				logger.Warn().Err(err).Str("file", target).Msg("Could not open browser")
			}
		}
	}
	return written, nil
}

func writeErrorPage(req reportRequest, cause error, open func(string) error) {
	var buf bytes.Buffer
	if err := visuals.RenderErrorPage(&buf, cause.Error()); err != nil {
		log.Error().Err(err).Msg("Failed to render error page")
		return
	}
	target := filepath.Join(req.OutDir, ErrorPageName)
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		log.Error().Err(err).Str("file", target).Msg("Failed to write error page")
		return
	}
	if req.Open {
		if err := open(target); err != nil {
			log.Warn().Err(err).Str("file", target).Msg("Could not open browser")
		}
	}
}

// reportFileName maps data/shipments.csv to shipments-report.html.
func reportFileName(path string, f visuals.Format) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return base + "-report" + f.Extension()
}

// reportFileNames names one output per path. Repeated base names get a numeric
// suffix in input order: shipments-report.html, shipments-report-2.html, ...
func reportFileNames(paths []string, f visuals.Format) []string {
	names := make([]string, len(paths))
	used := make(map[string]bool, len(paths))
	for i, path := range paths {
		name := reportFileName(path, f)
		stem := strings.TrimSuffix(name, f.Extension())
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", stem, n, f.Extension())
		}
		used[name] = true
		names[i] = name
	}
	return names
}
