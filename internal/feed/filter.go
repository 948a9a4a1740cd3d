// Package feed implements the transaction history pipeline: filtering,
// day grouping, category aggregation and pagination over the in-memory
// record list, plus the per-view session that composes them.
package feed

import (
	"time"

	"lenta/internal/core"
)

// ApplyFilter narrows records by the given criteria. Five independent predicates
// are AND-combined; each applies only when its field is set. The result
// preserves input order and never aliases growth into the input slice.
func ApplyFilter(records []core.Transaction, spec core.FilterSpec) []core.Transaction {
	if spec.IsZero() {
		return records
	}

	var typeSet map[string]struct{}
	if len(spec.Types) > 0 {
		typeSet = make(map[string]struct{}, len(spec.Types))
		for _, t := range spec.Types {
			typeSet[t] = struct{}{}
		}
	}

	var to time.Time
	if spec.To != nil {
		to = endOfDay(*spec.To)
	}

	out := make([]core.Transaction, 0, len(records))
	for _, tx := range records {
		if spec.From != nil && tx.Date.Before(*spec.From) {
			continue
		}
		if spec.To != nil && tx.Date.After(to) {
			continue
		}
		if typeSet != nil {
			if _, ok := typeSet[tx.Type]; !ok {
				continue
			}
		}
		if spec.MinCents != nil && tx.Amount.Cents < *spec.MinCents {
			continue
		}
		if spec.MaxCents != nil && tx.Amount.Cents > *spec.MaxCents {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// endOfDay moves the upper date bound to 23:59:59.999 of that calendar
// day, making the To bound inclusive for any time on that date.
func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, 999_000_000, d.Location())
}

// DistinctTypes returns the transaction types present in the records, in
// first-seen order. The filters panel offers exactly these.
func DistinctTypes(records []core.Transaction) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tx := range records {
		if _, ok := seen[tx.Type]; ok {
			continue
		}
		seen[tx.Type] = struct{}{}
		out = append(out, tx.Type)
	}
	return out
}
