package feed

import (
	"math"
	"sort"

	"lenta/internal/core"
)

// CategoryAggregate is one slice of the expense breakdown chart.
type CategoryAggregate struct {
	Category   string  // resolved display label
	TotalCents int64   // summed magnitude, always >= 0
	Percentage float64 // share of total expenses, one decimal
}

// AggregateExpenses builds the per-category expense breakdown. Only
// records with a negative amount participate; income never enters the
// denominator. Returns nil when there are no expenses; that is "no chart
// data", not an error. Percentages are rounded half-up to one decimal and
// are not renormalized to sum to exactly 100.
func AggregateExpenses(records []core.Transaction) []CategoryAggregate {
	totals := make(map[string]int64)
	var order []string
	var grand int64
	for _, tx := range records {
		if !tx.IsExpense() {
			continue
		}
		label := core.LabelOf(tx.Type)
		if _, ok := totals[label]; !ok {
			order = append(order, label)
		}
		totals[label] += tx.Amount.Abs()
		grand += tx.Amount.Abs()
	}
	if grand == 0 {
		return nil
	}

	out := make([]CategoryAggregate, 0, len(order))
	for _, label := range order {
		sum := totals[label]
		out = append(out, CategoryAggregate{
			Category:   label,
			TotalCents: sum,
			Percentage: roundTenth(float64(sum) / float64(grand) * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCents != out[j].TotalCents {
			return out[i].TotalCents > out[j].TotalCents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// roundTenth rounds half-up to one decimal place.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
