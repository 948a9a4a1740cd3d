package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lenta/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// UpsertTransaction stores a transaction, replacing any previous row with the
// same id. Details are serialized as JSON; an empty map is stored as NULL.
func (r *SQLiteRepository) UpsertTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}

	var details sql.NullString
	if len(t.Details) > 0 {
		raw, err := json.Marshal(t.Details)
		if err != nil {
			return fmt.Errorf("marshal details: %w", err)
		}
		details = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, amount_cents, type, description, details, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			amount_cents = excluded.amount_cents,
			type = excluded.type,
			description = excluded.description,
			details = excluded.details,
			updated_at = excluded.updated_at`,
		t.ID,
		t.Date.UTC().Format(time.RFC3339Nano),
		t.Amount.Cents,
		t.Type,
		t.Description,
		details,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents)

	return nil
}

// UpsertTransactions stores a batch inside a single transaction so a backfill
// either lands whole or not at all.
func (r *SQLiteRepository) UpsertTransactions(ctx context.Context, records []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, amount_cents, type, description, details, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			amount_cents = excluded.amount_cents,
			type = excluded.type,
			description = excluded.description,
			details = excluded.details,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, t := range records {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("validate transaction %s: %w", t.ID, err)
		}

		var details sql.NullString
		if len(t.Details) > 0 {
			raw, err := json.Marshal(t.Details)
			if err != nil {
				return fmt.Errorf("marshal details for %s: %w", t.ID, err)
			}
			details = sql.NullString{String: string(raw), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.Date.UTC().Format(time.RFC3339Nano),
			t.Amount.Cents,
			t.Type,
			t.Description,
			details,
			now,
		); err != nil {
			return fmt.Errorf("upsert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Transaction batch saved to SQLite", "count", len(records))
	return nil
}

// ListTransactions returns every stored transaction ordered newest first.
// Dates are stored as UTC RFC 3339 strings, so lexical order is
// chronological. Implements source.TransactionLister.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount_cents, type, description, details
		FROM transactions
		ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			rawDate string
			details sql.NullString
		)
		if err := rows.Scan(&t.ID, &rawDate, &t.Amount.Cents, &t.Type, &t.Description, &details); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		t.Date, err = core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse date for %s: %w", t.ID, err)
		}

		if details.Valid {
			if err := json.Unmarshal([]byte(details.String), &t.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details for %s: %w", t.ID, err)
			}
		}

		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return records, nil
}

// CountTransactions returns the number of stored transactions.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
