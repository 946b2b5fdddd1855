package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"shiplate/cmd/mockgen/engine"
	"shiplate/internal/shipment"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./data", "Output directory for the export")
	name := flag.String("name", "shipments", "Export file name without extension")
	count := flag.Int("count", 200, "Number of shipments to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	asOf := flag.String("as-of", "", "Date (YYYY-MM-DD) the export is taken on, defaults to today")
	flag.Parse()

	now := time.Now()
	if *asOf != "" {
		d, err := shipment.ParseDate(*asOf)
		if err != nil {
			fmt.Printf("Invalid -as-of: %v\n", err)
			os.Exit(1)
		}
		now = d.Time()
	}

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Seed:         *seed,
		Now:          now,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, *outDir)

	path, err := engine.Save(*outDir, *name, engine.Generate(cfg))
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %s\n", path)
}
