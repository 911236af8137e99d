package migrations

// kv_entries is a small durable key/value table. Values are opaque text
// (JSON documents in practice). Column types differ per driver because MySQL
// cannot use an unbounded TEXT column as a primary key.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateKVEntries, downCreateKVEntries)
}

func upCreateKVEntries(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   VARCHAR(191) PRIMARY KEY,
    entry_value LONGTEXT NOT NULL,
    updated_at  TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at  DATETIME NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv_entries table: %w", err)
	}
	return nil
}

func downCreateKVEntries(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS kv_entries`)
	return err
}
