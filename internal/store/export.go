package store

import (
	"context"
	"math"

	"github.com/rcliao/scroll-memory/internal/model"
)

// ExportAll returns every entry, optionally filtered by origin.
func ExportAll(ctx context.Context, s Store, origin string) ([]model.Entry, error) {
	return s.List(ctx, ListParams{Origin: origin, Limit: math.MaxInt32})
}

// Import stores entries from an export, overwriting existing values.
func Import(ctx context.Context, s Store, entries []model.Entry) (int, error) {
	imported := 0
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		_, err := s.Put(ctx, PutParams{
			Origin: e.Origin,
			Key:    e.Key,
			Value:  e.Value,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
