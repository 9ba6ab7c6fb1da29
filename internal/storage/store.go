package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned (optionally wrapped) by backends when a key is
// absent so services can translate it into a domain error.
var ErrNotFound = errors.New("key not found")

// KV is the storage port: string keys to JSON-serialized values. It is
// interface-driven so the election and session layers can be backed by an
// in-memory fake in tests and by Redis or Postgres in production, and is
// always injected, never reached through a package-level singleton.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Notifier carries the cross-process change signal: every Set on a watched
// backend publishes the written key so other processes can reload. Delivery is
// best effort; there is no mutual exclusion between subscribers.
type Notifier interface {
	// Subscribe returns a channel of changed keys and a cancel function that
	// releases the subscription.
	Subscribe(ctx context.Context) (<-chan string, func(), error)
}
