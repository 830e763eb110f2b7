// Package server exposes the indicator engine and the OANDA proxy
// over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/chartd/config"
	"github.com/rustyeddy/chartd/indicators"
	"github.com/rustyeddy/chartd/journal"
	"github.com/rustyeddy/chartd/metrics"
	"github.com/rustyeddy/chartd/oanda"
)

// Server wires the engine, the broker client, the journal, and the
// metrics into one HTTP surface. The engine itself is stateless, so a
// single Server instance serves concurrent requests without locks.
type Server struct {
	cfg     config.ServerConfig
	variant indicators.Variant
	broker  *oanda.Client // nil when no broker credentials are configured
	jnl     journal.Journal
	met     *metrics.Metrics
	log     *logrus.Logger
}

// New builds a Server. broker may be nil; the proxy endpoints then
// answer 503. jnl may be nil and defaults to the no-op journal.
func New(cfg *config.Config, broker *oanda.Client, jnl journal.Journal, met *metrics.Metrics, log *logrus.Logger) (*Server, error) {
	variant, err := indicators.ParseVariant(cfg.Engine.Variant)
	if err != nil {
		return nil, err
	}
	if jnl == nil {
		jnl = journal.Nop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:     cfg.Server,
		variant: variant,
		broker:  broker,
		jnl:     jnl,
		met:     met,
		log:     log,
	}, nil
}

// Run serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("chartd listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
