package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lenta/internal/amqp"
	"lenta/internal/core"
	"lenta/internal/source"
)

// TransactionStore is the subset of the storage layer the worker needs.
type TransactionStore interface {
	UpsertTransaction(ctx context.Context, t core.Transaction) error
	UpsertTransactions(ctx context.Context, records []core.Transaction) error
	CountTransactions(ctx context.Context) (int64, error)
}

// IngestWorker keeps the local SQLite mirror current. It applies single
// transactions arriving over AMQP and pulls full snapshots from the upstream
// source as a recovery path for lost messages.
type IngestWorker struct {
	store    TransactionStore
	upstream source.TransactionLister
}

func NewIngestWorker(store TransactionStore, upstream source.TransactionLister) *IngestWorker {
	return &IngestWorker{
		store:    store,
		upstream: upstream,
	}
}

// HandleUpsertMessage processes a single transaction upsert message from AMQP.
func (w *IngestWorker) HandleUpsertMessage(ctx context.Context, msg *amqp.TransactionUpsertMessage) error {
	t := msg.Transaction

	if err := t.Validate(); err != nil {
		// Validation failures are permanent; requeueing would loop forever.
		slog.WarnContext(ctx, "Dropping invalid transaction message",
			"id", t.ID,
			"error", err)
		return nil
	}

	if err := w.store.UpsertTransaction(ctx, t); err != nil {
		return fmt.Errorf("store transaction: %w", err)
	}

	return nil
}

// Backfill fetches the upstream snapshot and mirrors it locally.
func (w *IngestWorker) Backfill(ctx context.Context) error {
	if w.upstream == nil {
		slog.InfoContext(ctx, "No upstream source configured, skipping backfill")
		return nil
	}

	records, err := w.upstream.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list upstream transactions: %w", err)
	}

	valid := records[:0:0]
	for _, t := range records {
		if err := t.Validate(); err != nil {
			slog.WarnContext(ctx, "Skipping invalid upstream transaction",
				"id", t.ID,
				"error", err)
			continue
		}
		valid = append(valid, t)
	}

	if len(valid) == 0 {
		slog.InfoContext(ctx, "Upstream returned no usable transactions")
		return nil
	}

	if err := w.store.UpsertTransactions(ctx, valid); err != nil {
		return fmt.Errorf("store backfill batch: %w", err)
	}

	slog.InfoContext(ctx, "Backfill completed",
		"fetched", len(records),
		"stored", len(valid))

	return nil
}

// StartupCheck runs an initial backfill when the mirror is empty, so a fresh
// deployment serves data before the first periodic backfill fires.
func (w *IngestWorker) StartupCheck(ctx context.Context) error {
	count, err := w.store.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count stored transactions: %w", err)
	}

	if count > 0 {
		slog.InfoContext(ctx, "Local mirror already populated", "count", count)
		return nil
	}

	slog.InfoContext(ctx, "Local mirror is empty, running startup backfill")
	return w.Backfill(ctx)
}

// RunPeriodicBackfill backfills on a fixed interval until the context is done.
func (w *IngestWorker) RunPeriodicBackfill(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Backfill(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic backfill failed", "error", err)
			}
		}
	}
}
