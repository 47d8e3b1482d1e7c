// Package http exposes the report-generation endpoints plus health and
// metrics routes.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wildlife-report-service/internal/config"
	"github.com/couchcryptid/wildlife-report-service/internal/domain"
	"github.com/couchcryptid/wildlife-report-service/internal/pipeline"
)

// ReportGenerator runs the full aggregate-render-assemble pipeline for one
// observation batch.
type ReportGenerator interface {
	Generate(ctx context.Context, variant domain.Variant, observations []domain.Observation) ([]byte, []domain.SummaryEntry, error)
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg        *config.Config
	generator  ReportGenerator
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New constructs a server with routes and middleware.
func New(cfg *config.Config, generator ReportGenerator, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	s := &Server{
		cfg:       cfg,
		generator: generator,
		logger:    logger,
		engine:    engine,
		httpServer: &http.Server{
			Addr:        cfg.HTTPAddr,
			Handler:     engine,
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "SERVER IS RUNNING"})
	})
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/generate-reports/sightings", s.handleGenerate(domain.VariantSightings))
		v1.POST("/generate-reports/reportings", s.handleGenerate(domain.VariantReportings))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// handleGenerate accepts a JSON body or a multipart file field named "file",
// validates the batch, and streams back the PDF as an attachment. Input
// problems are rejected before the pipeline runs.
func (s *Server) handleGenerate(variant domain.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := s.requestPayload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		observations, err := domain.ParseBatch(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(observations) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no observations found in data"})
			return
		}
		if len(observations) > s.cfg.MaxObservations {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("too many observations, maximum %d allowed", s.cfg.MaxObservations),
			})
			return
		}

		pdf, entries, err := s.generator.Generate(c.Request.Context(), variant, observations)
		if err != nil {
			s.respondPipelineError(c, variant, err)
			return
		}

		s.logger.Info("report ready", "variant", variant, "statistics", len(entries))

		filename := uuid.NewString() + ".pdf"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

// respondPipelineError maps a stage-labelled failure to a status code: an
// aggregation failure means the data held nothing to report on (client
// problem); render and assembly failures are server-side. Messages never
// include internal paths.
func (s *Server) respondPipelineError(c *gin.Context, variant domain.Variant, err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) && stageErr.Stage == pipeline.StageAggregation {
		c.JSON(http.StatusBadRequest, gin.H{"error": stageErr.Err.Error()})
		return
	}

	s.logger.Error("report generation failed", "variant", variant, "error", err)
	if stageErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": stageErr.Stage + " failed"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred, please try again later"})
}

// requestPayload reads the observation payload from a JSON body or from a
// multipart file upload, enforcing the configured body size limit.
func (s *Server) requestPayload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)

	if c.ContentType() == "multipart/form-data" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("no data provided")
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, errors.New("could not read uploaded file")
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.New("could not read uploaded file")
		}
		return raw, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body exceeds %d bytes", s.cfg.MaxBodyBytes)
		}
		return nil, errors.New("could not read request body")
	}
	if len(raw) == 0 {
		return nil, errors.New("no data provided")
	}
	return raw, nil
}
