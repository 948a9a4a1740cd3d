package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Transaction is one ledger entry as delivered by the data source.
	// Records are never mutated after load; every pipeline stage derives
	// new slices instead.
	Transaction struct {
		ID          string
		Date        time.Time
		Amount      Money
		Type        string
		Description string
		Details     map[string]any
	}

	// FilterSpec is the active combination of date/type/amount constraints.
	// Nil bounds mean "unset"; an empty Types slice means no type restriction.
	FilterSpec struct {
		From     *time.Time
		To       *time.Time // inclusive through end of that calendar day
		Types    []string
		MinCents *int64
		MaxCents *int64
	}
)

var (
	ErrEmptyID     = errors.New("empty transaction id")
	ErrZeroDate    = errors.New("zero transaction date")
	ErrEmptyType   = errors.New("empty transaction type")
	ErrInvalidDate = errors.New("invalid date")
)

// Validate checks the fields required for ingest. Description may be empty
// and Type is an open enum, so unknown values pass.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.Type) == "" {
		return ErrEmptyType
	}
	return nil
}

// IsExpense reports whether the record is an outflow (negative amount).
func (t Transaction) IsExpense() bool {
	return t.Amount.Cents < 0
}

// IsZero reports whether no filter field is set. Applying a zero spec
// returns the input unchanged.
func (f FilterSpec) IsZero() bool {
	return f.From == nil && f.To == nil && len(f.Types) == 0 &&
		f.MinCents == nil && f.MaxCents == nil
}

// dateLayouts are tried in order when decoding the upstream date field.
// The upstream API emits ISO 8601 with or without zone information.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate decodes an ISO 8601 timestamp. Zone-less values are
// interpreted in the local zone to match user-local day semantics.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	for _, layout := range dateLayouts[1:] {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// wireTransaction is the upstream JSON shape.
type wireTransaction struct {
	ID          json.RawMessage `json:"id"`
	Date        string          `json:"date"`
	Sum         json.RawMessage `json:"sum"`
	Type        string          `json:"transactionType"`
	Description string          `json:"description"`
	Details     map[string]any  `json:"details,omitempty"`
}

// UnmarshalJSON decodes the upstream record shape. The id may arrive as a
// string or a number; the sum is parsed digit-wise into cents so amounts
// like -123.45 survive without float drift.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := strings.TrimSpace(string(w.ID))
	if strings.HasPrefix(id, `"`) {
		if err := json.Unmarshal(w.ID, &id); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
	}
	t.ID = id

	if w.Date != "" {
		ts, err := ParseDate(w.Date)
		if err != nil {
			return fmt.Errorf("decode date: %w", err)
		}
		t.Date = ts
	} else {
		t.Date = time.Time{}
	}

	t.Amount = Money{}
	if len(w.Sum) > 0 && string(w.Sum) != "null" {
		cents, err := ParseSignedCents(string(w.Sum))
		if err != nil {
			return fmt.Errorf("decode sum: %w", err)
		}
		t.Amount = Money{Cents: cents}
	}

	t.Type = w.Type
	t.Description = w.Description
	t.Details = w.Details
	return nil
}

// MarshalJSON emits the same wire shape the upstream uses, so records
// round-trip including unrecognized transaction types.
func (t Transaction) MarshalJSON() ([]byte, error) {
	idRaw, err := json.Marshal(t.ID)
	if err != nil {
		return nil, err
	}
	w := wireTransaction{
		ID:          idRaw,
		Date:        t.Date.Format(time.RFC3339),
		Sum:         json.RawMessage(t.Amount.Decimal()),
		Type:        t.Type,
		Description: t.Description,
		Details:     t.Details,
	}
	return json.Marshal(w)
}
