package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"lenta/internal/core"
)

// ParseFilterSpec builds a filter spec from the filter panel's query
// parameters. Malformed dates and amounts fail open: the field is treated
// as unset rather than surfacing an error, so a half-typed bound never
// blocks the rest of the filter.
func ParseFilterSpec(query url.Values, loc *time.Location) core.FilterSpec {
	if loc == nil {
		loc = time.Local
	}

	var spec core.FilterSpec

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if d, err := time.ParseInLocation("2006-01-02", v, loc); err == nil {
			spec.From = &d
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if d, err := time.ParseInLocation("2006-01-02", v, loc); err == nil {
			spec.To = &d
		}
	}

	for _, t := range query["type"] {
		t = strings.TrimSpace(sanitizeInput(t))
		if t != "" {
			spec.Types = append(spec.Types, t)
		}
	}

	if v := strings.TrimSpace(query.Get("min")); v != "" {
		if cents, err := core.ParseSignedCents(v); err == nil {
			spec.MinCents = &cents
		}
	}
	if v := strings.TrimSpace(query.Get("max")); v != "" {
		if cents, err := core.ParseSignedCents(v); err == nil {
			spec.MaxCents = &cents
		}
	}

	return spec
}

// ParsePage extracts the requested page number. Returns ok=false when the
// parameter is absent or not a number; page validity against the total is
// the paginator's call, not the parser's.
func ParsePage(query url.Values) (int, bool) {
	v := strings.TrimSpace(query.Get("page"))
	if v == "" {
		return 0, false
	}
	page, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return page, true
}

// specsEqual compares two filter specs field by field, treating nil bounds
// as distinct from set ones.
func specsEqual(a, b core.FilterSpec) bool {
	if !timePtrEqual(a.From, b.From) || !timePtrEqual(a.To, b.To) {
		return false
	}
	if !int64PtrEqual(a.MinCents, b.MinCents) || !int64PtrEqual(a.MaxCents, b.MaxCents) {
		return false
	}
	if len(a.Types) != len(b.Types) {
		return false
	}
	for i := range a.Types {
		if a.Types[i] != b.Types[i] {
			return false
		}
	}
	return true
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
