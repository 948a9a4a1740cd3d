package http

import (
	"testing"
	"time"

	"lenta/internal/core"
	"lenta/internal/feed"
)

func TestBuildFeedViewAmountClasses(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	view := feed.View{
		Buckets: []feed.DayBucket{{
			Day:   day,
			Label: "1 марта 2025",
			Items: []core.Transaction{
				{ID: "1", Date: day, Amount: core.Money{Cents: 500}, Type: "replenishing"},
				{ID: "2", Date: day, Amount: core.Money{Cents: 0}, Type: "commission"},
				{ID: "3", Date: day, Amount: core.Money{Cents: -500}, Type: "viewing"},
			},
		}},
		Page: feed.PageState{CurrentPage: 1, PageSize: feed.PageSize, TotalItems: 3, TotalPages: 1},
	}

	out := buildFeedView(view, "")
	if len(out.Buckets) != 1 || len(out.Buckets[0].Items) != 3 {
		t.Fatalf("unexpected view shape: %+v", out)
	}

	items := out.Buckets[0].Items
	if !items[0].Income {
		t.Error("positive amount should render as income")
	}
	if !items[1].Income {
		t.Error("zero amount carries a plus sign and should render as income")
	}
	if items[2].Income {
		t.Error("negative amount should not render as income")
	}
	if items[1].Amount != "+ 0,00 ₽" {
		t.Errorf("zero amount = %q, want %q", items[1].Amount, "+ 0,00 ₽")
	}
}
