package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lenta/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "lenta.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func storedTx(id string, date time.Time, cents int64, txType string) core.Transaction {
	return core.Transaction{
		ID:     id,
		Date:   date,
		Amount: core.Money{Cents: cents},
		Type:   txType,
	}
}

func TestUpsertAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)

	if err := repo.UpsertTransaction(ctx, storedTx("a", older, -500, "commission")); err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	if err := repo.UpsertTransaction(ctx, storedTx("b", newer, 1000, "replenishing")); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	records, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "b" || records[1].ID != "a" {
		t.Errorf("expected newest first, got %s then %s", records[0].ID, records[1].ID)
	}
	if records[1].Amount.Cents != -500 {
		t.Errorf("expected -500 cents, got %d", records[1].Amount.Cents)
	}
}

func TestListOrdersAcrossZones(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Same instant neighborhood in different zones: "b" is one hour older
	// than "a" in UTC but its offset-bearing timestamp string would sort
	// newer lexically.
	newer := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	older := time.Date(2025, 3, 2, 3, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))

	if err := repo.UpsertTransaction(ctx, storedTx("a", newer, -100, "viewing")); err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	if err := repo.UpsertTransaction(ctx, storedTx("b", older, -200, "stick")); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	records, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Errorf("expected a then b, got %s then %s", records[0].ID, records[1].ID)
	}
	if !records[1].Date.Equal(older) {
		t.Errorf("stored date = %v, want instant %v", records[1].Date, older)
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	date := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpsertTransaction(ctx, storedTx("dup", date, -100, "viewing")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertTransaction(ctx, storedTx("dup", date, -250, "viewing")); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after replace, got %d", len(records))
	}
	if records[0].Amount.Cents != -250 {
		t.Errorf("expected updated amount -250, got %d", records[0].Amount.Cents)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpsertTransaction(context.Background(), core.Transaction{})
	if err == nil {
		t.Fatal("expected validation error for empty transaction")
	}
}

func TestUpsertBatchAndCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	batch := []core.Transaction{
		storedTx("1", base, -100, "viewing"),
		storedTx("2", base.Add(time.Hour), -200, "stick"),
		storedTx("3", base.Add(2*time.Hour), 300, "replenishing"),
	}
	if err := repo.UpsertTransactions(ctx, batch); err != nil {
		t.Fatalf("UpsertTransactions: %v", err)
	}

	count, err := repo.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("CountTransactions: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestDetailsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := storedTx("d1", time.Date(2025, 4, 5, 8, 30, 0, 0, time.UTC), -199, "commission")
	tx.Details = map[string]any{"merchant": "kiosk", "code": "77"}

	if err := repo.UpsertTransaction(ctx, tx); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].Details["merchant"]; got != "kiosk" {
		t.Errorf("expected merchant kiosk, got %v", got)
	}
}
