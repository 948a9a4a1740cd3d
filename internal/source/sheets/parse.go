package sheets

import (
	"errors"
	"fmt"
	"strings"

	"lenta/internal/core"
)

var errShortRow = errors.New("row has fewer than 4 cells")

// parseRow converts one sheet row into a transaction. Expected columns:
// A id, B date (ISO 8601), C sum (decimal, signed), D type,
// E description (optional).
func parseRow(row []any) (core.Transaction, error) {
	if len(row) < 4 {
		return core.Transaction{}, errShortRow
	}

	id := strings.TrimSpace(cellString(row[0]))
	if id == "" {
		return core.Transaction{}, errors.New("empty id cell")
	}

	date, err := core.ParseDate(cellString(row[1]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date cell: %w", err)
	}

	cents, err := core.ParseSignedCents(cellString(row[2]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("sum cell: %w", err)
	}

	typ := strings.TrimSpace(cellString(row[3]))
	if typ == "" {
		return core.Transaction{}, errors.New("empty type cell")
	}

	var desc string
	if len(row) > 4 {
		desc = cellString(row[4])
	}

	return core.Transaction{
		ID:          id,
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Type:        typ,
		Description: desc,
	}, nil
}

// cellString renders a sheet cell value; the API hands cells back as any.
func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
