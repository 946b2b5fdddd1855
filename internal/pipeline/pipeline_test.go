package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"
)

const header = "shipment_id,po,supplier,carrier,status,planned_delivery,actual_delivery,handoff_point\n"

func TestRun_KeepsInputOrder(t *testing.T) {
	sources := map[string]string{
		"a.csv": header + "S1,PO,Acme,UPS,x,2024-01-01,,Dock\n",
		"b.csv": header,
		"c.csv": header + "S1,PO,Acme,UPS,x,2024-01-01,,Dock\nS2,PO,Beta,UPS,x,2024-01-01,,Dock\n",
	}
	load := func(path string) (string, error) { return sources[path], nil }

	paths := []string{"c.csv", "a.csv", "b.csv"}
	results, err := Run(context.Background(), paths, "2024-01-05", Options{Concurrency: 2, Load: load})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantLate := []int{2, 1, 0}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("results[%d].Path = %s, want %s", i, res.Path, paths[i])
		}
		if res.Report.LateCount != wantLate[i] {
			t.Errorf("results[%d].LateCount = %d, want %d", i, res.Report.LateCount, wantLate[i])
		}
		if res.Report.AsOf != "2024-01-05" {
			t.Errorf("results[%d].AsOf = %s", i, res.Report.AsOf)
		}
	}
}

func TestRun_PropagatesLoadError(t *testing.T) {
	var calls atomic.Int32
	boom := fmt.Errorf("%w: gone", shipment.ErrSourceUnavailable)
	load := func(path string) (string, error) {
		calls.Add(1)
		if path == "bad.csv" {
			return "", boom
		}
		return header, nil
	}

	_, err := Run(context.Background(), []string{"ok.csv", "bad.csv"}, "2024-01-05", Options{Concurrency: 1, Load: load})
	if !errors.Is(err, shipment.ErrSourceUnavailable) {
		t.Fatalf("Run error = %v, want ErrSourceUnavailable", err)
	}
	if calls.Load() == 0 {
		t.Error("loader never called")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	load := func(string) (string, error) {
		t.Error("loader should not run after cancellation")
		return "", nil
	}
	_, err := Run(ctx, []string{"a.csv"}, "2024-01-05", Options{Load: load})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRun_ReadsFilesAndAppliesOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shipments.csv")
	content := header +
		"S1,PO,Acme,UPS,x,2024-01-01,,Dock\n" +
		"S2,PO,Acme,UPS,x,2024-01-02,,Dock\n" +
		"S3,PO,Acme,UPS,x,2024-01-03,,Dock\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := Run(context.Background(), []string{path}, "2024-01-10", Options{
		Report: stats.Options{TopLateLimit: 2},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := len(results[0].Report.TopLate); got != 2 {
		t.Errorf("len(TopLate) = %d, want 2", got)
	}
	if results[0].Report.LateCount != 3 {
		t.Errorf("LateCount = %d, want 3", results[0].Report.LateCount)
	}
}
