package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
)

// MemStore is a process-local Store. Values are lost on exit.
type MemStore struct {
	mu      sync.RWMutex
	rev     uint64
	entries map[memKey]model.Entry
}

type memKey struct {
	origin string
	key    string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[memKey]model.Entry)}
}

func (s *MemStore) Put(_ context.Context, p PutParams) (*model.Entry, error) {
	if p.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rev++
	e := model.Entry{
		ID:        strconv.FormatUint(s.rev, 10),
		Origin:    p.Origin,
		Key:       p.Key,
		Value:     p.Value,
		UpdatedAt: time.Now().UTC(),
	}
	s.entries[memKey{p.Origin, p.Key}] = e
	return &e, nil
}

func (s *MemStore) Get(_ context.Context, p GetParams) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[memKey{p.Origin, p.Key}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, p.Origin, p.Key)
	}
	return &e, nil
}

func (s *MemStore) List(_ context.Context, p ListParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	var out []model.Entry
	for k, e := range s.entries {
		if p.Origin != "" && k.origin != p.Origin {
			continue
		}
		if !strings.HasPrefix(k.key, p.Prefix) {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) Rm(_ context.Context, p RmParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, memKey{p.Origin, p.Key})
	return nil
}

func (s *MemStore) Close() error { return nil }
