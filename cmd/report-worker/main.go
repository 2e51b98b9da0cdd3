package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"grantcalc/internal/amqp"
	"grantcalc/internal/config"
	applog "grantcalc/internal/log"
	"grantcalc/internal/report"
	"grantcalc/internal/storage"
	"grantcalc/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting report-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.ReportOutputDir, 0755); err != nil {
		logger.Error("Failed to create report output directory", "error", err, "path", cfg.ReportOutputDir)
		os.Exit(1)
	}

	// The worker reads the snapshots the server persisted, so it opens the
	// shared SQLite database.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	pdf := report.NewPDFRenderer(report.PDFConfig{
		ChromiumPath: cfg.ChromiumPath,
		Timeout:      cfg.PDFTimeout,
	})
	reportWorker := worker.NewReportWorker(repo, pdf, cfg.ReportOutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeReportRequests(ctx, reportWorker.HandleReportRequest)
	})

	logger.Info("Report worker started", "queue", cfg.AMQPQueue, "output_dir", cfg.ReportOutputDir)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Report worker stopped gracefully")
}
