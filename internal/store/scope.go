package store

import (
	"context"
	"errors"
)

// Scoped binds a Store to one browser origin and exposes the plain
// get/set/remove surface a page sees.
type Scoped struct {
	s      Store
	origin string
}

// Scope returns s restricted to origin.
func Scope(s Store, origin string) *Scoped {
	return &Scoped{s: s, origin: origin}
}

// Origin returns the origin this scope is bound to.
func (sc *Scoped) Origin() string { return sc.origin }

// Get returns the stored value and whether it exists.
func (sc *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	e, err := sc.s.Get(ctx, GetParams{Origin: sc.origin, Key: key})
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set overwrites the value for key.
func (sc *Scoped) Set(ctx context.Context, key, value string) error {
	_, err := sc.s.Put(ctx, PutParams{Origin: sc.origin, Key: key, Value: value})
	return err
}

// Remove deletes key.
func (sc *Scoped) Remove(ctx context.Context, key string) error {
	return sc.s.Rm(ctx, RmParams{Origin: sc.origin, Key: key})
}
