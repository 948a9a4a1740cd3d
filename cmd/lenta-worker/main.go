package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"lenta/internal/amqp"
	"lenta/internal/config"
	"lenta/internal/source"
	"lenta/internal/source/httpapi"
	"lenta/internal/source/sheets"
	"lenta/internal/storage"
	"lenta/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting lenta-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Upstream source for backfills (optional).
	var upstream source.TransactionLister
	switch {
	case cfg.UpstreamURL != "":
		upstream = httpapi.New(cfg.UpstreamURL, nil)
		logger.Info("Backfill upstream configured", "base_url", cfg.UpstreamURL)
	case cfg.GoogleSpreadsheetID != "":
		upstream, err = sheets.New(context.Background(), sheets.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Backfill upstream configured", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		logger.Info("No backfill upstream configured - consuming queue only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ingest := worker.NewIngestWorker(repo, upstream)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ingest.StartupCheck(ctx); err != nil {
		logger.Error("Startup check failed", "error", err)
		// Keep running; the queue and periodic backfill can still recover.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeTransactionUpserts(ctx, func(msg *amqp.TransactionUpsertMessage) error {
			return ingest.HandleUpsertMessage(ctx, msg)
		})
	})

	if upstream != nil {
		g.Go(func() error {
			return ingest.RunPeriodicBackfill(ctx, cfg.BackfillInterval)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
