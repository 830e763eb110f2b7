package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/chartd/metrics"
	"github.com/rustyeddy/chartd/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serve starts the chartd HTTP server: the indicator endpoint, the
OANDA proxy endpoints, and Prometheus metrics.

The proxy endpoints answer 503 until an OANDA token is configured, so
the server is useful for indicator computation alone.

Example:
  chartd serve -c chartd.yaml
  OANDA_TOKEN=... chartd serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	broker, err := newBroker(cfg)
	if err != nil {
		return fmt.Errorf("broker: %w", err)
	}
	if broker == nil {
		log.Warn("no OANDA token configured, proxy endpoints disabled")
	}

	jnl, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer jnl.Close()

	met := metrics.New(prometheus.DefaultRegisterer)

	srv, err := server.New(cfg, broker, jnl, met, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
