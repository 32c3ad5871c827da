// Package store implements the durable client-side key-value store that
// survives process restarts. The session manager keeps its credential
// material here under discrete string keys.
package store

import "context"

// Repository is a string-keyed durable store.
//
// Get returns (nil, nil) when the key is absent; absence is not an error.
// ReplaceAll swaps the entire contents of the store for the given entries in
// a single transaction, so a session replace is all-or-nothing.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ReplaceAll(ctx context.Context, entries map[string][]byte) error
	Clear(ctx context.Context) error
}
