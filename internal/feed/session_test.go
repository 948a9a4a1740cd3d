package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"lenta/internal/core"
	"lenta/internal/source"
)

type fakeLister struct {
	records []core.Transaction
	err     error
	calls   int
}

func (f *fakeLister) ListTransactions(context.Context) ([]core.Transaction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newReadySession(t *testing.T, records []core.Transaction) *Session {
	t.Helper()
	s := NewSession(
		WithClock(fixedClock(day(2025, 3, 20, 12, 0))),
		WithLocation(time.UTC),
	)
	if err := s.Load(context.Background(), &fakeLister{records: records}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestSessionLoadingRejectsInput(t *testing.T) {
	s := NewSession()
	if err := s.SetFilter(core.FilterSpec{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("SetFilter while loading = %v", err)
	}
	if err := s.SetPage(1); !errors.Is(err, ErrNotReady) {
		t.Errorf("SetPage while loading = %v", err)
	}
	if _, err := s.PageView(); !errors.Is(err, ErrNotReady) {
		t.Errorf("PageView while loading = %v", err)
	}
}

func TestSessionLoadFailureIsTerminal(t *testing.T) {
	s := NewSession()
	fetchErr := source.Transport("list transactions", errors.New("connection refused"))
	if err := s.Load(context.Background(), &fakeLister{err: fetchErr}); err == nil {
		t.Fatalf("expected load error")
	}
	if s.State() != StateFailed {
		t.Errorf("state = %s, want failed", s.State())
	}
	if !source.IsTransport(s.Err()) {
		t.Errorf("Err() = %v, want TransportError", s.Err())
	}
	// No retry on the same session: input stays rejected.
	if err := s.SetFilter(core.FilterSpec{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("SetFilter on failed session = %v", err)
	}
}

func TestSessionSetFilterResetsPage(t *testing.T) {
	s := newReadySession(t, records(60))
	if err := s.SetPage(3); err != nil {
		t.Fatalf("SetPage(3): %v", err)
	}
	if err := s.SetFilter(core.FilterSpec{Types: []string{"viewing"}}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	view, err := s.PageView()
	if err != nil {
		t.Fatalf("PageView: %v", err)
	}
	if view.Page.CurrentPage != 1 {
		t.Errorf("filter change left page at %d, want 1", view.Page.CurrentPage)
	}
}

func TestSessionSetPageValidation(t *testing.T) {
	s := newReadySession(t, records(60)) // 3 pages
	if err := s.SetPage(4); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("SetPage(4) = %v, want ErrInvalidPage", err)
	}
	view, err := s.PageView()
	if err != nil {
		t.Fatalf("PageView: %v", err)
	}
	if view.Page.CurrentPage != 1 {
		t.Errorf("rejected SetPage moved cursor to %d", view.Page.CurrentPage)
	}
}

func TestSessionPageViewPipeline(t *testing.T) {
	src := []core.Transaction{
		tx("5", day(2025, 3, 20, 9, 0), -500, "autoUp"),
		tx("4", day(2025, 3, 19, 22, 0), -300, "viewing"),
		tx("3", day(2025, 3, 19, 8, 0), 10000, "replenishing"),
		tx("2", day(2025, 3, 10, 12, 0), -200, "viewing"),
		tx("1", day(2025, 2, 1, 12, 0), -100, "commission"),
	}
	s := newReadySession(t, src)

	if err := s.SetFilter(core.FilterSpec{MaxCents: i64(0)}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	view, err := s.PageView()
	if err != nil {
		t.Fatalf("PageView: %v", err)
	}
	if view.Page.TotalItems != 4 {
		t.Fatalf("TotalItems = %d, want 4 expenses", view.Page.TotalItems)
	}
	if len(view.Buckets) != 4 {
		t.Fatalf("got %d buckets, want 4", len(view.Buckets))
	}
	if view.Buckets[0].Label != "Сегодня" || view.Buckets[1].Label != "Вчера" {
		t.Errorf("labels = %q, %q", view.Buckets[0].Label, view.Buckets[1].Label)
	}
	// Income record filtered out: yesterday's bucket holds one item.
	if len(view.Buckets[1].Items) != 1 || view.Buckets[1].Items[0].ID != "4" {
		t.Errorf("yesterday bucket = %+v", view.Buckets[1].Items)
	}
}

func TestSessionChartBypassesFilter(t *testing.T) {
	src := []core.Transaction{
		tx("1", day(2025, 3, 1, 0, 0), -10000, "viewing"),
		tx("2", day(2025, 3, 2, 0, 0), -30000, "autoUp"),
	}
	s := newReadySession(t, src)
	if err := s.SetFilter(core.FilterSpec{Types: []string{"viewing"}}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	chart, err := s.ChartData()
	if err != nil {
		t.Fatalf("ChartData: %v", err)
	}
	if len(chart) != 2 {
		t.Fatalf("chart sees %d categories, want 2 (full set)", len(chart))
	}
}

func TestSessionSeqMonotonic(t *testing.T) {
	s := newReadySession(t, records(60))
	v1, _ := s.PageView()
	if err := s.SetPage(2); err != nil {
		t.Fatalf("SetPage: %v", err)
	}
	v2, _ := s.PageView()
	if v2.Seq <= v1.Seq {
		t.Errorf("seq did not advance: %d then %d", v1.Seq, v2.Seq)
	}
	// A renderer holding v1 can now tell its result is stale.
	if err := s.SetFilter(core.FilterSpec{}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	v3, _ := s.PageView()
	if v3.Seq <= v2.Seq {
		t.Errorf("seq did not advance on filter change: %d then %d", v2.Seq, v3.Seq)
	}
}

func TestSessionTypes(t *testing.T) {
	s := newReadySession(t, sampleRecords())
	types, err := s.Types()
	if err != nil {
		t.Fatalf("Types: %v", err)
	}
	if len(types) != 5 {
		t.Errorf("Types = %v", types)
	}
}

func TestSessionSingleFetch(t *testing.T) {
	lister := &fakeLister{records: records(3)}
	s := NewSession()
	if err := s.Load(context.Background(), lister); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Load(context.Background(), lister); err == nil {
		t.Fatalf("second load on a ready session must fail")
	}
	if lister.calls != 1 {
		t.Errorf("lister called %d times, want exactly one fetch per session", lister.calls)
	}
}
