package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quorumlabs/rollcall/internal/health"
	"github.com/quorumlabs/rollcall/internal/observe"
)

// startDiagnostics serves /metrics, /healthz, and /readyz on addr in the
// background. The returned function shuts the server down.
func startDiagnostics(addr string, metrics *observe.Metrics) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	health.New().Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(metrics)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("diagnostics server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("diagnostics server error", slog.Any("err", err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
