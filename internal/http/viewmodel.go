package http

import (
	"strconv"

	"lenta/internal/core"
	"lenta/internal/feed"
)

// Template view models. Everything is resolved to strings here so the
// templates stay free of logic.

type itemView struct {
	Label       string
	Icon        string
	Description string
	Amount      string
	Income      bool
}

type bucketView struct {
	Label string
	Items []itemView
}

type pageButton struct {
	Number  int
	Label   string
	Gap     bool
	Current bool
}

type feedView struct {
	Buckets     []bucketView
	Empty       bool
	CurrentPage int
	TotalPages  int
	PrevPage    int
	NextPage    int
	HasPrev     bool
	HasNext     bool
	Window      []pageButton
	Seq         uint64
	Query       string // active filter query string, carried into page links
}

type chartRow struct {
	Category   string
	Amount     string
	Percentage string
	Width      int
}

type chartView struct {
	Rows  []chartRow
	Empty bool
}

func buildFeedView(v feed.View, query string) feedView {
	out := feedView{
		CurrentPage: v.Page.CurrentPage,
		TotalPages:  v.Page.TotalPages,
		PrevPage:    v.Page.CurrentPage - 1,
		NextPage:    v.Page.CurrentPage + 1,
		HasPrev:     v.Page.CurrentPage > 1,
		HasNext:     v.Page.CurrentPage < v.Page.TotalPages,
		Seq:         v.Seq,
		Query:       query,
	}

	for _, b := range v.Buckets {
		bucket := bucketView{Label: b.Label}
		for _, tx := range b.Items {
			bucket.Items = append(bucket.Items, itemView{
				Label:       core.LabelOf(tx.Type),
				Icon:        string(core.IconOf(tx.Type)),
				Description: tx.Description,
				Amount:      tx.Amount.Format(),
				Income:      tx.Amount.Cents >= 0,
			})
		}
		out.Buckets = append(out.Buckets, bucket)
	}
	out.Empty = len(out.Buckets) == 0

	for _, p := range feed.WindowPages(v.Page.CurrentPage, v.Page.TotalPages) {
		if p == feed.Gap {
			out.Window = append(out.Window, pageButton{Gap: true, Label: "…"})
			continue
		}
		out.Window = append(out.Window, pageButton{
			Number:  p,
			Label:   strconv.Itoa(p),
			Current: p == v.Page.CurrentPage,
		})
	}

	return out
}

func buildChartView(aggregates []feed.CategoryAggregate) chartView {
	if len(aggregates) == 0 {
		return chartView{Empty: true}
	}

	// Widths scale against the largest slice so the top bar spans fully.
	maxCents := aggregates[0].TotalCents
	var out chartView
	for _, agg := range aggregates {
		width := 0
		if maxCents > 0 {
			width = int((agg.TotalCents*100 + maxCents/2) / maxCents)
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		out.Rows = append(out.Rows, chartRow{
			Category:   agg.Category,
			Amount:     core.Money{Cents: agg.TotalCents}.Format(),
			Percentage: strconv.FormatFloat(agg.Percentage, 'f', 1, 64) + "%",
			Width:      width,
		})
	}
	return out
}
