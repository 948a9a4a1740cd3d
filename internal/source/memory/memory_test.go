package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lenta/internal/core"
)

func TestNewSortsDescending(t *testing.T) {
	items := []core.Transaction{
		{ID: "old", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Type: "viewing"},
		{ID: "new", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Type: "viewing"},
	}
	got, err := New(items).ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("order = %s, %s; want new, old", got[0].ID, got[1].ID)
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	seed := `[
		{"id": 1, "date": "2025-03-14T10:00:00Z", "sum": -12.5, "transactionType": "autoUp", "description": "x"},
		{"id": 2, "date": "2025-03-15T10:00:00Z", "sum": 100, "transactionType": "replenishing", "description": "y"}
	]`
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	got, err := NewFromFiles(dir).ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].ID != "2" {
		t.Errorf("newest first, got %s", got[0].ID)
	}
	if got[1].Amount.Cents != -1250 {
		t.Errorf("cents = %d, want -1250", got[1].Amount.Cents)
	}
}

func TestNewFromFilesMissingSeed(t *testing.T) {
	got, err := NewFromFiles(t.TempDir()).ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty store, got %d", len(got))
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := New([]core.Transaction{{ID: "1", Date: time.Now(), Type: "viewing"}})
	first, _ := store.ListTransactions(context.Background())
	first[0].ID = "mutated"
	second, _ := store.ListTransactions(context.Background())
	if second[0].ID != "1" {
		t.Errorf("store leaked internal slice")
	}
}
