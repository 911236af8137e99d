package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// KVEntry represents a row in the kv_entries table.
type KVEntry struct {
	Key       string    `db:"entry_key"`
	Value     string    `db:"entry_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KVStore is the sqlx-backed implementation of KV.
type KVStore struct {
	db *sqlx.DB
}

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *KVStore) q(query string) string { return s.db.Rebind(query) }

// Get returns the value stored under key, or ErrNotFound.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.q(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Put overwrites the value stored under key, creating the row if needed.
func (s *KVStore) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.q(s.upsertSQL()), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// upsertSQL returns the insert-or-replace statement for the connected driver.
// SQLite and PostgreSQL share ON CONFLICT; MySQL needs ON DUPLICATE KEY.
func (s *KVStore) upsertSQL() string {
	if s.db.DriverName() == "mysql" {
		return `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = VALUES(updated_at)
	`
	}
	return `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = excluded.entry_value,
			updated_at = excluded.updated_at
	`
}
