// Command reportsvc runs the wildlife observation report service: an HTTP
// API that turns submitted observation batches into PDF reports.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/wildlife-report-service/internal/adapter/http"
	"github.com/couchcryptid/wildlife-report-service/internal/config"
	"github.com/couchcryptid/wildlife-report-service/internal/domain"
	"github.com/couchcryptid/wildlife-report-service/internal/observability"
	"github.com/couchcryptid/wildlife-report-service/internal/pipeline"
	"github.com/couchcryptid/wildlife-report-service/internal/render"
	"github.com/couchcryptid/wildlife-report-service/internal/report"
)

// aggregatorFunc adapts the domain battery dispatcher to the pipeline seam.
type aggregatorFunc func(domain.Variant, []domain.Observation) []domain.SummaryEntry

func (f aggregatorFunc) Aggregate(v domain.Variant, obs []domain.Observation) []domain.SummaryEntry {
	return f(v, obs)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	generator := pipeline.New(
		aggregatorFunc(domain.Aggregate),
		render.New(cfg.ChartWidth, cfg.ChartHeight),
		report.New(),
		logger,
		metrics,
	)

	srv := httpadapter.New(cfg, generator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
