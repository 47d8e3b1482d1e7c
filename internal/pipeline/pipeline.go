// Package pipeline orchestrates one report-generation call: aggregate the
// observation batch, render a chart per statistic, assemble the document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/wildlife-report-service/internal/domain"
	"github.com/couchcryptid/wildlife-report-service/internal/observability"
)

// Aggregator computes the fixed statistic battery for a variant.
type Aggregator interface {
	Aggregate(variant domain.Variant, observations []domain.Observation) []domain.SummaryEntry
}

// ChartRenderer turns one summary entry into a PNG chart image.
type ChartRenderer interface {
	Render(entry domain.SummaryEntry) ([]byte, error)
}

// Assembler builds the final document from chart artifacts and their
// same-order summary entries.
type Assembler interface {
	Assemble(charts []domain.ChartArtifact, entries []domain.SummaryEntry, observationCount int, variant domain.Variant) ([]byte, error)
}

// Stage labels attached to hard failures so callers can tell which part of
// the pipeline gave up without seeing internals.
const (
	StageAggregation = "aggregation"
	StageRendering   = "rendering"
	StageAssembly    = "assembly"
)

// ErrNoStatistics means every statistic's contributing category set was
// empty, so there is nothing to report on.
var ErrNoStatistics = errors.New("no charts could be generated; check that the data contains valid fields")

// StageError is a hard pipeline failure labelled with its originating stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + " failed: " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

// Generator runs the aggregate-render-assemble sequence for one call.
// A Generator holds no per-call state, so concurrent requests can share one
// instance; every call operates on its own intermediate artifacts.
type Generator struct {
	aggregator Aggregator
	renderer   ChartRenderer
	assembler  Assembler
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Generator with the given stages and observability.
func New(a Aggregator, r ChartRenderer, asm Assembler, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		aggregator: a,
		renderer:   r,
		assembler:  asm,
		logger:     logger,
		metrics:    metrics,
	}
}

// Generate produces the PDF report for an observation batch. It also
// returns the summary entries that actually made it into the document, for
// logging and inspection by the caller.
//
// A statistic whose chart fails to render is logged, counted, and dropped
// from both sequences; the surviving pairs keep their 1:1 positional
// correspondence. Hard failures (no statistics at all, every render
// failing, an assembler precondition) abort the call with a stage-labelled
// error. Chart artifacts are call-scoped in-memory buffers, released on
// every exit path when the call returns.
func (g *Generator) Generate(ctx context.Context, variant domain.Variant, observations []domain.Observation) ([]byte, []domain.SummaryEntry, error) {
	start := time.Now()
	g.metrics.ReportsInFlight.Inc()
	defer g.metrics.ReportsInFlight.Dec()
	g.metrics.BatchSize.Observe(float64(len(observations)))

	entries := g.aggregator.Aggregate(variant, observations)
	if len(entries) == 0 {
		return nil, nil, g.fail(variant, &StageError{Stage: StageAggregation, Err: ErrNoStatistics})
	}

	// Artifact names are namespaced by a per-call ID so concurrent calls
	// never produce colliding identifiers.
	callID := uuid.NewString()
	charts := make([]domain.ChartArtifact, 0, len(entries))
	rendered := make([]domain.SummaryEntry, 0, len(entries))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, g.fail(variant, err)
		}

		png, err := g.renderer.Render(entry)
		if err != nil {
			g.logger.Warn("chart render failed, dropping statistic", "title", entry.Title, "error", err)
			g.metrics.ChartRenderErrors.Inc()
			continue
		}
		g.metrics.ChartsRendered.Inc()
		charts = append(charts, domain.ChartArtifact{
			Name: fmt.Sprintf("%s-%02d.png", callID, i),
			PNG:  png,
		})
		rendered = append(rendered, entry)
	}

	if len(charts) == 0 {
		return nil, nil, g.fail(variant, &StageError{Stage: StageRendering, Err: errors.New("every chart failed to render")})
	}

	pdf, err := g.assembler.Assemble(charts, rendered, len(observations), variant)
	if err != nil {
		return nil, nil, g.fail(variant, &StageError{Stage: StageAssembly, Err: err})
	}

	g.metrics.ReportDuration.WithLabelValues(string(variant)).Observe(time.Since(start).Seconds())
	g.metrics.ReportsGenerated.WithLabelValues(string(variant), "success").Inc()
	g.logger.Info("report generated",
		"variant", variant,
		"observations", len(observations),
		"statistics", len(rendered),
		"bytes", len(pdf),
	)
	return pdf, rendered, nil
}

func (g *Generator) fail(variant domain.Variant, err error) error {
	g.metrics.ReportsGenerated.WithLabelValues(string(variant), "failure").Inc()
	return err
}
