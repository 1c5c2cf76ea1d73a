package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/oggyb/accountadate/internal/metrics"
)

// StartMetricsServer serves /metrics on addr until ctx is done. An empty
// addr disables it.
func StartMetricsServer(ctx context.Context, addr string, log *slog.Logger) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
