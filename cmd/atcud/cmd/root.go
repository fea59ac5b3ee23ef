package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/atcud-qr/internal/config"
	"github.com/rezonia/atcud-qr/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	logLevel     string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "atcud",
	Short: "Validate and decode Portuguese invoice QR codes",
	Long: `atcud reads the QR code printed on Portuguese fiscal documents
(invoices, receipts, credit notes...) and turns it into structured data.

The QR code carries a payload of KEY:VALUE entities separated by '*':

  A:123456789*B:999999999*C:PT*D:FT*E:N*F:20250314*...

Payloads are taken from the command arguments or, when none are given,
one per line from stdin.

Examples:
  # Check a payload
  atcud validate 'A:123456789*B:999999999*...'

  # Decode every payload of a file as a table
  atcud decode -f table < payloads.txt

  # List the invalid fields of a payload
  atcud parse 'A:123*B:...'

  # Start the HTTP API
  atcud serve --address :8080`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format (json, table, csv) (env: ATCUD_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error) (env: ATCUD_LOG_LEVEL)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg = config.Load()

	if outputFormat == "" {
		outputFormat = cfg.Format
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	if verbose {
		logLevel = "debug"
	}

	logger = config.NewLogger(logLevel, os.Stderr)
}

func newPipeline() *processor.Pipeline {
	return processor.NewPipeline(
		processor.WithLogger(logger),
		processor.WithConcurrency(cfg.BatchConcurrency),
	)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
