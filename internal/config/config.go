package config

import (
	"os"
	"path/filepath"
	"strconv"

	"shiplate/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	CSVPath      string
	DataPath     string
	LogDir       string
	OutputDir    string
	TopLate      int
	OpenBrowser  bool
	Concurrency  int
	MermaidChart bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir), nil
}

func fromEnv(exeDir string) *AppConfig {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	outputDir := getEnv("SHIPLATE_OUTPUT_DIR", filepath.Join(dataPath, "reports"))

	topLate := getEnvInt("SHIPLATE_TOP_LATE", stats.DefaultTopLateLimit)
	if topLate <= 0 {
		log.Warn().Int("value", topLate).Msg("SHIPLATE_TOP_LATE must be positive, using default")
		topLate = stats.DefaultTopLateLimit
	}

	concurrency := getEnvInt("SHIPLATE_CONCURRENCY", 4)
	if concurrency <= 0 {
		concurrency = 1
	}

	return &AppConfig{
		CSVPath:      getEnv("SHIPLATE_CSV_PATH", filepath.Join("data", "shipments.csv")),
		DataPath:     dataPath,
		LogDir:       logDir,
		OutputDir:    outputDir,
		TopLate:      topLate,
		OpenBrowser:  getEnvBool("SHIPLATE_OPEN_BROWSER", true),
		Concurrency:  concurrency,
		MermaidChart: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}
}

// EnsureOutputDir creates the report directory if needed.
func (c *AppConfig) EnsureOutputDir() error {
	return os.MkdirAll(c.OutputDir, 0755)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
