package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/atcud-qr/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBatchSize int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validating and decoding payloads.

The API provides endpoints for:
  - POST /api/v1/validate      - Check a payload
  - POST /api/v1/parse         - Fields or invalid fields of a payload
  - POST /api/v1/decode        - Decode a payload
  - POST /api/v1/decode/batch  - Decode {"payloads": [...]}
  - POST /api/v1/encode        - Encode a document into a payload
  - GET  /metrics              - Prometheus metrics
  - GET  /health               - Health check

Flags fall back to ATCUD_ADDRESS, ATCUD_DEBUG, ATCUD_READ_TIMEOUT,
ATCUD_WRITE_TIMEOUT and ATCUD_MAX_BATCH_SIZE.

Examples:
  # Start server on default port
  atcud serve

  # Start on custom port in debug mode
  atcud serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default 10s)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default 30s)")
	serveCmd.Flags().IntVar(&maxBatchSize, "max-batch", 0, "Maximum payloads per batch request (default 1000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:          firstNonEmpty(serverAddr, cfg.Address),
		ReadTimeout:      cfg.ReadTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		Debug:            serverDebug || cfg.Debug,
		Logger:           logger,
		BatchConcurrency: cfg.BatchConcurrency,
		MaxBatchSize:     cfg.MaxBatchSize,
	}
	if readTimeout > 0 {
		config.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		config.WriteTimeout = writeTimeout
	}
	if maxBatchSize > 0 {
		config.MaxBatchSize = maxBatchSize
	}

	srv := server.NewServer(config)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting server on %s\n", config.Address)
	return srv.Run(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
