package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lenta/internal/core"
	"lenta/internal/source"
	"lenta/internal/source/memory"
)

type failingLister struct{}

func (failingLister) ListTransactions(context.Context) ([]core.Transaction, error) {
	return nil, source.Transport("fetch transactions", errors.New("connection refused"))
}

func feedTx(id string, date time.Time, cents int64, txType, desc string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Type:        txType,
		Description: desc,
	}
}

func newTestServer(t *testing.T, backend source.TransactionLister) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", backend, Options{})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, memory.New(nil))

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := get(s, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestIndexPage(t *testing.T) {
	now := time.Now()
	s := newTestServer(t, memory.New([]core.Transaction{
		feedTx("1", now, -500, "viewing", ""),
	}))

	rec := get(s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "История операций") {
		t.Error("index should render the page title")
	}
	if !strings.Contains(body, "Просмотр") {
		t.Error("index should list the dataset's transaction types")
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("first visit should set a session cookie")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should be set")
	}
}

func TestTransactionsPartial(t *testing.T) {
	now := time.Now()
	s := newTestServer(t, memory.New([]core.Transaction{
		feedTx("1", now, -500, "viewing", "продвижение объявления"),
		feedTx("2", now.Add(-time.Hour), 10000, "replenishing", ""),
	}))

	rec := get(s, "/ui/transactions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Сегодня") {
		t.Error("today's transactions should be bucketed under Сегодня")
	}
	if !strings.Contains(body, "продвижение объявления") {
		t.Error("transaction description should render")
	}
	if !strings.Contains(body, "Пополнение") {
		t.Error("type label should render")
	}
}

func TestTransactionsPartialFilter(t *testing.T) {
	now := time.Now()
	s := newTestServer(t, memory.New([]core.Transaction{
		feedTx("1", now, -500, "viewing", ""),
		feedTx("2", now, 10000, "replenishing", ""),
	}))

	rec := get(s, "/ui/transactions?type=viewing")
	body := rec.Body.String()
	if !strings.Contains(body, "Просмотр") {
		t.Error("matching type should render")
	}
	if strings.Contains(body, "Пополнение") {
		t.Error("filtered-out type should not render")
	}
}

func TestTransactionsPartialPagination(t *testing.T) {
	now := time.Now()
	var records []core.Transaction
	for i := 0; i < 30; i++ {
		records = append(records, feedTx(
			string(rune('a'+i%26))+string(rune('0'+i/26)),
			now.Add(-time.Duration(i)*time.Minute),
			-100,
			"viewing",
			"",
		))
	}
	s := newTestServer(t, memory.New(records))

	rec := get(s, "/ui/transactions")
	if !strings.Contains(rec.Body.String(), "1 из 2") {
		t.Error("first page should report page 1 of 2")
	}

	rec = get(s, "/ui/transactions?page=2")
	if !strings.Contains(rec.Body.String(), "2 из 2") {
		t.Error("page=2 should land on the second page")
	}

	// Out of range reverts to the current page instead of failing.
	rec = get(s, "/ui/transactions?page=99")
	if rec.Code != http.StatusOK {
		t.Errorf("out-of-range page should still render, status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "1 из 2") {
		t.Error("out-of-range page should keep the current page")
	}
}

func TestTransactionsPartialSourceFailure(t *testing.T) {
	s := newTestServer(t, failingLister{})

	rec := get(s, "/ui/transactions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Не удалось загрузить историю операций") {
		t.Error("source failure should render the error state")
	}
	if !strings.Contains(body, "Повторить") {
		t.Error("error state should offer a retry")
	}
}

func TestChartPartial(t *testing.T) {
	now := time.Now()
	s := newTestServer(t, memory.New([]core.Transaction{
		feedTx("1", now, -7500, "viewing", ""),
		feedTx("2", now, -2500, "commission", ""),
		feedTx("3", now, 90000, "replenishing", ""),
	}))

	rec := get(s, "/ui/chart")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "75.0%") {
		t.Errorf("chart should show the 75%% share, body: %s", body)
	}
	if !strings.Contains(body, "25.0%") {
		t.Error("chart should show the 25% share")
	}
	if strings.Contains(body, "Пополнение") {
		t.Error("income should not enter the expense chart")
	}
}

func TestChartPartialNoExpenses(t *testing.T) {
	now := time.Now()
	s := newTestServer(t, memory.New([]core.Transaction{
		feedTx("1", now, 10000, "replenishing", ""),
	}))

	rec := get(s, "/ui/chart")
	if !strings.Contains(rec.Body.String(), "Нет данных о расходах") {
		t.Error("income-only dataset should render the empty chart state")
	}
}

func TestListTransactionsCaching(t *testing.T) {
	now := time.Now()
	backend := &countingLister{inner: memory.New([]core.Transaction{
		feedTx("1", now, -500, "viewing", ""),
	})}
	s := newTestServer(t, backend)

	ctx := context.Background()
	if _, err := s.ListTransactions(ctx); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := s.ListTransactions(ctx); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if backend.calls != 1 {
		t.Errorf("second fetch should hit the cache, backend called %d times", backend.calls)
	}
}

type countingLister struct {
	inner source.TransactionLister
	calls int
}

func (c *countingLister) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	c.calls++
	return c.inner.ListTransactions(ctx)
}
