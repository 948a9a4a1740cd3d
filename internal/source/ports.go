// Package source defines the outbound port to the transaction data
// source and the adapters' shared error type.
package source

import (
	"context"
	"errors"

	"lenta/internal/core"
)

// TransactionLister fetches the entire dataset in one call. No filtering
// or pagination parameters are sent; narrowing happens client-side.
type TransactionLister interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// TransportError marks a data-source fetch failure. It is terminal for
// the session that hit it: the view shows an error panel and retries only
// on remount.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transport wraps err as a TransportError; nil stays nil.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
