package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested key does not exist.
	ErrNotFound = errors.New("not found")
)

// KV is the durable key/value storage the favorites store writes through to.
// KVStore is the database-backed implementation.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}
