package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/tutordash-web/internal/model"
)

var _ model.KeyValueStore = (*Store)(nil)

// DB is the subset of *sql.DB the store needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store keeps persisted session state in the browser_state table.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM browser_state WHERE key = $1`

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get browser state: %w", err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO browser_state (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set browser state: %w", err)
	}

	return nil
}

// Remove deletes all keys in one statement.
func (s *Store) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = k
	}
	query := `DELETE FROM browser_state WHERE key IN (` + strings.Join(placeholders, ", ") + `)`

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove browser state: %w", err)
	}

	return nil
}
