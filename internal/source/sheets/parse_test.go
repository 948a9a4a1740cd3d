package sheets

import "testing"

func TestParseRow(t *testing.T) {
	row := []any{"42", "2025-03-14T09:30:00Z", "-199,99", "autoUp", "поднятие"}
	tx, err := parseRow(row)
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if tx.ID != "42" || tx.Type != "autoUp" || tx.Description != "поднятие" {
		t.Errorf("parsed = %+v", tx)
	}
	if tx.Amount.Cents != -19999 {
		t.Errorf("cents = %d, want -19999", tx.Amount.Cents)
	}
}

func TestParseRowNoDescription(t *testing.T) {
	tx, err := parseRow([]any{"1", "2025-03-14", "10", "deposit"})
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if tx.Description != "" {
		t.Errorf("description = %q", tx.Description)
	}
}

func TestParseRowErrors(t *testing.T) {
	cases := []struct {
		name string
		row  []any
	}{
		{"short row", []any{"1", "2025-03-14"}},
		{"empty id", []any{"", "2025-03-14", "10", "deposit"}},
		{"bad date", []any{"1", "not a date", "10", "deposit"}},
		{"bad sum", []any{"1", "2025-03-14", "ten", "deposit"}},
		{"empty type", []any{"1", "2025-03-14", "10", " "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseRow(tc.row); err == nil {
				t.Errorf("expected error for %v", tc.row)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	if got := cellString(nil); got != "" {
		t.Errorf("nil cell = %q", got)
	}
	if got := cellString(12.5); got != "12.5" {
		t.Errorf("numeric cell = %q", got)
	}
}
