package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `SHIPLATE_CSV_PATH='exports/march "final".csv'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `exports/march "final".csv`
	if env["SHIPLATE_CSV_PATH"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["SHIPLATE_CSV_PATH"])
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATA_PATH", "LOGS_FOLDER", "SHIPLATE_OUTPUT_DIR", "SHIPLATE_CSV_PATH",
		"SHIPLATE_TOP_LATE", "SHIPLATE_OPEN_BROWSER", "SHIPLATE_CONCURRENCY", "ENABLE_MERMAID_CHARTS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := fromEnv("/opt/shiplate")

	if cfg.DataPath != "/opt/shiplate" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.OutputDir != filepath.Join("/opt/shiplate", "reports") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.LogDir != filepath.Join("/opt/shiplate", "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.CSVPath != filepath.Join("data", "shipments.csv") {
		t.Errorf("CSVPath = %q", cfg.CSVPath)
	}
	if cfg.TopLate != 25 {
		t.Errorf("TopLate = %d, want 25", cfg.TopLate)
	}
	if !cfg.OpenBrowser {
		t.Error("OpenBrowser should default to true")
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", "/srv/data")
	t.Setenv("SHIPLATE_CSV_PATH", "/tmp/in.csv")
	t.Setenv("SHIPLATE_TOP_LATE", "10")
	t.Setenv("SHIPLATE_OPEN_BROWSER", "false")
	t.Setenv("SHIPLATE_CONCURRENCY", "0")
	t.Setenv("SHIPLATE_OUTPUT_DIR", "")

	cfg := fromEnv("")

	if cfg.CSVPath != "/tmp/in.csv" {
		t.Errorf("CSVPath = %q", cfg.CSVPath)
	}
	if cfg.OutputDir != filepath.Join("/srv/data", "reports") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.TopLate != 10 {
		t.Errorf("TopLate = %d, want 10", cfg.TopLate)
	}
	if cfg.OpenBrowser {
		t.Error("OpenBrowser should be false")
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
}

func TestFromEnv_InvalidTopLateFallsBack(t *testing.T) {
	t.Setenv("SHIPLATE_TOP_LATE", "-3")
	if cfg := fromEnv("."); cfg.TopLate != 25 {
		t.Errorf("TopLate = %d, want 25", cfg.TopLate)
	}

	t.Setenv("SHIPLATE_TOP_LATE", "lots")
	if cfg := fromEnv("."); cfg.TopLate != 25 {
		t.Errorf("TopLate = %d, want 25", cfg.TopLate)
	}
}
