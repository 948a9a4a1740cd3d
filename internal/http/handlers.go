package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"lenta/internal/core"
	"lenta/internal/feed"
)

type typeOption struct {
	Value string
	Label string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sess := s.sessions.resolve(r.Context(), w, r, s)

	data := struct {
		Failed bool
		Types  []typeOption
	}{
		Failed: sess.State() == feed.StateFailed,
	}

	if types, err := sess.Types(); err == nil {
		for _, t := range types {
			data.Types = append(data.Types, typeOption{Value: t, Label: core.LabelOf(t)})
		}
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleTransactions renders the filtered, paginated feed partial.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if r.URL.Query().Get("retry") != "" {
		// Remount: drop the failed session so resolve fetches again.
		s.sessions.drop(r)
	}

	sess := s.sessions.resolve(r.Context(), w, r, s)

	if sess.State() == feed.StateFailed {
		slog.ErrorContext(r.Context(), "Feed unavailable", "error", sess.Err())
		s.renderFeedError(w, r)
		return
	}

	spec := ParseFilterSpec(r.URL.Query(), s.loc)
	if !specsEqual(spec, sess.Filter()) {
		if err := sess.SetFilter(spec); err != nil {
			s.renderFeedError(w, r)
			return
		}
	} else if page, ok := ParsePage(r.URL.Query()); ok {
		// Out-of-range input reverts to the current page.
		if err := sess.SetPage(page); err != nil && !errors.Is(err, feed.ErrInvalidPage) {
			s.renderFeedError(w, r)
			return
		}
	}

	view, err := sess.PageView()
	if err != nil {
		s.renderFeedError(w, r)
		return
	}

	data := buildFeedView(view, filterQuery(r.URL.Query()))
	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transactions.html")
		s.renderFeedError(w, r)
	}
}

// handleChart renders the expense breakdown partial.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sess := s.sessions.resolve(r.Context(), w, r, s)

	aggregates, err := sess.ChartData()
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart data unavailable", "error", sess.Err())
		_, _ = w.Write([]byte(`<section id="chart" class="chart"><div class="placeholder">Не удалось загрузить данные</div></section>`))
		return
	}

	data := buildChartView(aggregates)
	if err := s.templates.ExecuteTemplate(w, "chart.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "chart.html")
		_, _ = w.Write([]byte(`<section id="chart" class="chart"><div class="placeholder">Ошибка отображения</div></section>`))
	}
}

func (s *Server) renderFeedError(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`<section id="feed" class="feed"><div class="error">Не удалось загрузить историю операций` +
		` <button hx-get="/ui/transactions?retry=1" hx-target="#feed" hx-swap="outerHTML">Повторить</button></div></section>`))
}

// filterQuery re-encodes the filter parameters so page links preserve the
// active filter. The page parameter itself is excluded.
func filterQuery(query url.Values) string {
	carried := url.Values{}
	for _, key := range []string{"from", "to", "min", "max"} {
		if v := strings.TrimSpace(query.Get(key)); v != "" {
			carried.Set(key, v)
		}
	}
	for _, t := range query["type"] {
		if t = strings.TrimSpace(t); t != "" {
			carried.Add("type", t)
		}
	}
	if len(carried) == 0 {
		return ""
	}
	return "&" + carried.Encode()
}
