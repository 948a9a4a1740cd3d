package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"lenta/internal/core"
	"lenta/internal/source"
)

// Store is an in-memory transaction source, used for development and
// tests. Records are kept in display order (date descending).
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New(items []core.Transaction) *Store {
	sorted := append([]core.Transaction(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &Store{items: sorted}
}

// NewFromFiles seeds the store from <base>/transactions.json, the same
// flat array shape the upstream API serves. A missing or unreadable seed
// yields an empty store rather than an error.
func NewFromFiles(base string) *Store {
	data, err := os.ReadFile(filepath.Join(base, "transactions.json"))
	if err != nil {
		return New(nil)
	}
	var items []core.Transaction
	if err := json.Unmarshal(data, &items); err != nil {
		return New(nil)
	}
	return New(items)
}

// ListTransactions implements source.TransactionLister.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

var _ source.TransactionLister = (*Store)(nil)
