package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is a durable string key-value store.
type Repository interface {
	Get(ctx context.Context, key string) (Entry, error)
	// GetMany returns the entries that exist; missing keys are skipped.
	GetMany(ctx context.Context, keys ...string) (map[string]Entry, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, filter KeyFilter) ([]string, error)
	Close() error
}
