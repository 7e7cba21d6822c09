// Package settings persists per-user client state in a local SQLite database.
// The only setting today is the monthly income; it survives restarts but is
// never shared across machines or users.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// incomeKey matches the storage key the original web client used.
const incomeKey = "monthlyIncome"

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Income returns the persisted monthly income. A missing setting is not an
// error; it yields zero.
func (s *Store) Income(ctx context.Context) (decimal.Decimal, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, incomeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read income setting: %w", err)
	}

	income, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored income %q: %w", value, err)
	}
	return income, nil
}

// SetIncome overwrites the persisted monthly income. Validation of the value
// is the controller's job; the store writes what it is given.
func (s *Store) SetIncome(ctx context.Context, income decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		incomeKey, income.String())
	if err != nil {
		return fmt.Errorf("write income setting: %w", err)
	}
	return nil
}
