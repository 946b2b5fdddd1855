package commands

import (
	"os"

	"shiplate/internal/config"
	"shiplate/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "shiplate",
	Short: "Shiplate reports late shipments and their bottlenecks",
	Long: `Reads a shipment CSV export, computes how many days each shipment is late and
reports the on-time rate, the average lateness and which suppliers and handoff points
account for the late shipments.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose, os.Stderr)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		if err := logging.Setup(verbose, cfg.LogDir, os.Stderr); err != nil {
			log.Warn().Err(err).Msg("File logging disabled")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Shiplate starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(reportCmd, schemaCmd, mcpCmd, versionCmd)
}
