package scroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/store"
)

var errGone = errors.New("region detached")

// fakeRegion is an in-memory scroll container.
type fakeRegion struct {
	mu     sync.Mutex
	top    float64
	height float64
	now    float64
	hasNow bool
	gone   bool
	sets   []float64
	onSet  func(float64)
}

func (r *fakeRegion) ScrollTop(context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return 0, errGone
	}
	return r.top, nil
}

func (r *fakeRegion) SetScrollTop(_ context.Context, offset float64) error {
	r.mu.Lock()
	if r.gone {
		r.mu.Unlock()
		return errGone
	}
	r.top = offset
	r.sets = append(r.sets, offset)
	onSet := r.onSet
	r.mu.Unlock()

	if onSet != nil {
		onSet(offset)
	}
	return nil
}

func (r *fakeRegion) ViewportHeight(context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return 0, errGone
	}
	return r.height, nil
}

func (r *fakeRegion) NowIndicator(context.Context) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return 0, false, errGone
	}
	return r.now, r.hasNow, nil
}

func (r *fakeRegion) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}

func (r *fakeRegion) offset() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// countingStorage wraps a Storage and counts calls.
type countingStorage struct {
	Storage
	mu   sync.Mutex
	gets int
	sets int
}

func (s *countingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.gets++
	s.mu.Unlock()
	return s.Storage.Get(ctx, key)
}

func (s *countingStorage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.Storage.Set(ctx, key, value)
}

func (s *countingStorage) counts() (gets, sets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets
}

// brokenStorage fails every call, optionally by panicking.
type brokenStorage struct {
	panics bool
}

func (s brokenStorage) fail() error {
	if s.panics {
		panic("storage disabled")
	}
	return errors.New("quota exceeded")
}

func (s brokenStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, s.fail()
}

func (s brokenStorage) Set(context.Context, string, string) error { return s.fail() }

func (s brokenStorage) Remove(context.Context, string) error { return s.fail() }

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	c    *fakeClock
	at   time.Duration
	f    func()
	done bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.done && t.at <= c.now {
			t.done = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStorage() *store.Scoped {
	return store.Scope(store.NewMemStore(), "http://localhost")
}

func newTestMemory(t *testing.T, storage Storage) *Memory {
	t.Helper()
	return NewMemory(storage,
		WithLogger(quietLogger()),
		WithAnimator(&StepAnimator{Steps: 5}),
	)
}

func stored(t *testing.T, s Storage, v model.ViewMode) (string, bool) {
	t.Helper()
	val, ok, err := s.Get(context.Background(), model.Key(model.DefaultPrefix, v))
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	return val, ok
}
