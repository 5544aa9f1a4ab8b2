// Package store provides the origin-scoped key/value storage interface and
// its SQLite and in-memory implementations.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/scroll-memory/internal/model"
)

// ErrNotFound is returned when no entry exists for an origin/key pair.
var ErrNotFound = errors.New("entry not found")

// PutParams holds parameters for storing a value.
type PutParams struct {
	Origin string
	Key    string
	Value  string
}

// GetParams holds parameters for retrieving a value.
type GetParams struct {
	Origin string
	Key    string
}

// ListParams holds parameters for listing entries.
type ListParams struct {
	Origin string
	Prefix string // key prefix filter
	Limit  int
}

// RmParams holds parameters for deleting an entry.
type RmParams struct {
	Origin string
	Key    string
}

// Store defines the durable key/value interface.
type Store interface {
	// Put stores or overwrites a value. Returns the stored entry.
	Put(ctx context.Context, p PutParams) (*model.Entry, error)

	// Get retrieves an entry. Returns ErrNotFound when absent.
	Get(ctx context.Context, p GetParams) (*model.Entry, error)

	// List lists entries matching the given filters, ordered by key.
	List(ctx context.Context, p ListParams) ([]model.Entry, error)

	// Rm deletes an entry. Deleting an absent entry is not an error.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
