package feed

import (
	"sort"
	"strconv"
	"time"

	"lenta/internal/core"
)

// DayBucket is one calendar day's worth of transactions for display.
type DayBucket struct {
	Day   time.Time // local midnight of the bucket's date
	Label string
	Items []core.Transaction
}

// russian genitive month names, as a long localized date spells them.
var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// GroupByDay buckets records by their local calendar date and returns the
// buckets sorted most recent day first. Items keep their input order
// inside a bucket; the source already delivers them in display order.
// Labels are resolved against now: today and yesterday by calendar-date
// equality, anything else as a long Russian date.
func GroupByDay(records []core.Transaction, now time.Time, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[time.Time]*DayBucket)
	var order []time.Time
	for _, tx := range records {
		key := truncateToDay(tx.Date, loc)
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{Day: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.Items = append(b.Items, tx)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].After(order[j]) })

	today := truncateToDay(now.In(loc), loc)
	yesterday := today.AddDate(0, 0, -1)

	out := make([]DayBucket, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		switch {
		case key.Equal(today):
			b.Label = "Сегодня"
		case key.Equal(yesterday):
			b.Label = "Вчера"
		default:
			b.Label = formatLongDate(key)
		}
		out = append(out, *b)
	}
	return out
}

// truncateToDay drops the time-of-day in the given location. Bucketing is
// by local calendar date, not by UTC day boundary.
func truncateToDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// formatLongDate renders "2 января 2025 г.".
func formatLongDate(day time.Time) string {
	return strconv.Itoa(day.Day()) + " " + monthsGenitive[day.Month()-1] + " " + strconv.Itoa(day.Year()) + " г."
}
