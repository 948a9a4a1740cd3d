package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lenta/internal/core"
	"lenta/internal/source"
)

// State is the session lifecycle: one fetch per mount, then ready or
// failed until the view is remounted.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrNotReady is returned for filter/page input while the session is
// still loading or has failed.
var ErrNotReady = errors.New("session not ready")

// View is the materialized page: day buckets of the current page plus the
// pagination cursor. Seq tags the recomputation that produced it; a
// renderer holding an older Seq discards its result instead of
// overwriting a newer one.
type View struct {
	Buckets []DayBucket
	Page    PageState
	Seq     uint64
}

// Session owns one view's pipeline state: the immutable fetched record
// list, the active filter spec and the pagination cursor. Every input
// recomputes filter → paginate → group from scratch; nothing is patched
// incrementally. All mutable state lives behind one mutex, so a view is
// never observed mid-recomputation.
type Session struct {
	mu       sync.Mutex
	state    State
	loadErr  error
	records  []core.Transaction // source order, chronological descending
	filtered []core.Transaction
	spec     core.FilterSpec
	pager    *Paginator
	seq      uint64

	now func() time.Time
	loc *time.Location
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLocation sets the zone for day bucketing and today/yesterday labels.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.loc = loc }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		state: StateLoading,
		pager: NewPaginator(),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load performs the session's single fetch. On success the session
// becomes ready with an unfiltered first page; on failure it is failed
// for the rest of its lifetime.
func (s *Session) Load(ctx context.Context, src source.TransactionLister) error {
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return fmt.Errorf("load on %s session", s.state)
	}
	s.mu.Unlock()

	records, err := src.ListTransactions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		slog.ErrorContext(ctx, "Transaction fetch failed", "error", err)
		return err
	}

	s.records = records
	s.state = StateReady
	s.recomputeLocked()
	slog.InfoContext(ctx, "Transactions loaded", "count", len(records))
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the fetch error for a failed session, nil otherwise.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// SetFilter installs a new filter spec, resets the cursor to page 1 and
// recomputes the filtered set.
func (s *Session) SetFilter(spec core.FilterSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	s.spec = spec
	s.pager.Reset()
	s.recomputeLocked()
	return nil
}

// SetPage moves the cursor. The filter set is untouched; out-of-range
// pages are rejected with ErrInvalidPage and the state is unchanged.
func (s *Session) SetPage(page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	if err := s.pager.GoTo(page); err != nil {
		return err
	}
	s.seq++
	return nil
}

// Filter returns the active filter spec.
func (s *Session) Filter() core.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// PageView materializes the current page: the filtered set sliced to the
// cursor, then bucketed by calendar day.
func (s *Session) PageView() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return View{}, ErrNotReady
	}
	page := s.pager.Slice(s.filtered)
	return View{
		Buckets: GroupByDay(page, s.now(), s.loc),
		Page:    s.pager.State(),
		Seq:     s.seq,
	}, nil
}

// ChartData aggregates the full record set into the expense breakdown.
// It bypasses both filter and pagination, matching the chart view which
// mounts with its own unfiltered dataset.
func (s *Session) ChartData() ([]CategoryAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return AggregateExpenses(s.records), nil
}

// Types lists the distinct transaction types present in the dataset, for
// the filter panel's checkboxes.
func (s *Session) Types() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return DistinctTypes(s.records), nil
}

// recomputeLocked reruns the filter stage and republishes the total.
// seq increments so any in-flight render of the previous state is
// recognizably stale (last-writer-wins by issuance order).
func (s *Session) recomputeLocked() {
	s.filtered = ApplyFilter(s.records, s.spec)
	s.pager.SetTotal(len(s.filtered))
	s.seq++
}
