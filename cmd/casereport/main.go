// Package main provides the CLI entry point for casereport.
package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/supportops/casereport-go/pkg/casereport/metrics"
)

var (
	configPath string
	pretty     bool
	verbose    bool
	pushURL    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "casereport",
		Short: "Interpret call-center case report exports",
		Long: `casereport computes the first call resolution rate from the re-opened,
closed and parent cases exports, and formats the Workload Management case report.`,
		SilenceUsage:      true,
		PersistentPreRun:  setupLogging,
		PersistentPostRun: pushMetrics,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.yaml or .toml; default: $CASEREPORT_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&pushURL, "push-url", "", "Pushgateway URL to push run metrics to")

	rootCmd.AddCommand(newFCRCommand(), newFormatCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Str("command", cmd.Name()).
		Logger()
}

func pushMetrics(cmd *cobra.Command, _ []string) {
	if pushURL == "" {
		return
	}
	if err := metrics.Push(pushURL, "casereport_"+cmd.Name()); err != nil {
		log.Warn().Err(err).Str("url", pushURL).Msg("metrics.push.failed")
		return
	}
	log.Debug().Str("url", pushURL).Msg("metrics.pushed")
}
