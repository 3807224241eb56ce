// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/middleware"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/pipeline"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/report"
)

// Server represents the HTTP server
type Server struct {
	cfg      *domain.Config
	logger   *logrus.Logger
	pipeline *pipeline.Pipeline
	store    report.Store
	router   *gin.Engine
	server   *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *domain.Config, logger *logrus.Logger, p *pipeline.Pipeline, store report.Store) *Server {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RateLimit(cfg.Limits.RequestsPerSecond, cfg.Limits.RequestBurst))

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		pipeline: p,
		store:    store,
		router:   router,
	}
	s.setupRoutes()
	return s
}

// Router exposes the configured engine, mainly for handler tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.GET("/report/:patient_id", s.handleReport)
		v1.POST("/detect-drug", s.handleDetectDrug)
	}

	// Unprefixed aliases kept for existing clients
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/report/:patient_id", s.handleReport)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}
