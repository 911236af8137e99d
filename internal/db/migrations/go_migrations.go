// Package migrations holds the goose migrations for dexview's kv_entries
// table. They are written in Go so the column types can follow the driver.
package migrations

// dialect is the goose dialect of the database being migrated.
var dialect string

// SetDialect records the goose dialect ("sqlite3", "postgres" or "mysql")
// used by upCreateKVEntries. db.Migrate calls it before goose.Up.
func SetDialect(d string) {
	dialect = d
}
