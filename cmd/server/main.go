package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/api"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/config"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/explain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/pipeline"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/report"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/vcf"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting pharmacogenomic guidance server")

	store, err := report.NewLRUStore(cfg.Cache.MaxEntries)
	if err != nil {
		log.Fatalf("Failed to create result store: %v", err)
	}

	explainer := explain.New(cfg.Explanation, logger)
	logger.WithField("explainer", explainer.Name()).Info("Explanation backend selected")

	p := pipeline.New(logger, vcf.NewStreamExtractor(), explainer, store, cfg.Limits.MaxVcfSizeBytes)

	// Create server
	server := api.NewServer(cfg, logger, p, store)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
