package scroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcliao/scroll-memory/internal/model"
)

// Option mutates Memory configuration.
type Option func(*Memory)

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPrefix sets the storage namespace prefix.
func WithPrefix(prefix string) Option {
	return func(m *Memory) {
		if prefix != "" {
			m.prefix = prefix
		}
	}
}

// WithClassifier replaces the default view classification.
func WithClassifier(c model.Classifier) Option {
	return func(m *Memory) {
		m.classifier = c
	}
}

// WithAnimator sets the animator used by ScrollToNow.
func WithAnimator(a Animator) Option {
	return func(m *Memory) {
		if a != nil {
			m.animator = a
		}
	}
}

// Memory maps view modes to their last persisted scroll offset and applies
// offsets to the attached region.
type Memory struct {
	storage    Storage
	prefix     string
	classifier model.Classifier
	animator   Animator
	logger     *slog.Logger

	mu     sync.Mutex
	region Region
}

// NewMemory creates a Memory persisting through storage.
func NewMemory(storage Storage, options ...Option) *Memory {
	m := &Memory{
		storage:  storage,
		prefix:   model.DefaultPrefix,
		animator: NewStepAnimator(),
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Prefix returns the storage namespace prefix.
func (m *Memory) Prefix() string { return m.prefix }

// Key returns the storage key for v.
func (m *Memory) Key(v model.ViewMode) string { return model.Key(m.prefix, v) }

// Attach makes r the region offsets are applied to.
func (m *Memory) Attach(r Region) {
	m.mu.Lock()
	m.region = r
	m.mu.Unlock()
}

// Detach forgets the current region.
func (m *Memory) Detach() {
	m.Attach(nil)
}

func (m *Memory) currentRegion() Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.region
}

// IsScrollable reports whether v keeps scroll memory at all.
func (m *Memory) IsScrollable(v model.ViewMode) bool {
	return m.classifier.IsScrollable(v)
}

// Restore applies the persisted offset for v to the region. Nothing
// happens for non-scrollable modes or when no offset was ever captured.
func (m *Memory) Restore(ctx context.Context, v model.ViewMode) {
	if !m.IsScrollable(v) {
		return
	}
	if err := m.restore(ctx, v); err != nil {
		m.logger.DebugContext(ctx, "scroll restore skipped", "view", v, "key", m.Key(v), "error", err)
	}
}

func (m *Memory) restore(ctx context.Context, v model.ViewMode) error {
	r := m.currentRegion()
	if r == nil {
		return ErrRegionUnavailable
	}
	offset, found, err := m.Load(ctx, v)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := r.SetScrollTop(ctx, offset); err != nil {
		return fmt.Errorf("%w: %v", ErrRegionUnavailable, err)
	}
	return nil
}

// Load returns the persisted offset for v. Unreadable or malformed values
// report ErrStorageUnavailable.
func (m *Memory) Load(ctx context.Context, v model.ViewMode) (offset float64, found bool, err error) {
	raw, found, err := m.get(ctx, m.Key(v))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !found {
		return 0, false, nil
	}
	offset, err = model.ParseOffset(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return offset, true, nil
}

// get shields callers from storage implementations that panic.
func (m *Memory) get(ctx context.Context, key string) (value string, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage panic: %v", r)
		}
	}()
	return m.storage.Get(ctx, key)
}

func (m *Memory) set(ctx context.Context, key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage panic: %v", r)
		}
	}()
	return m.storage.Set(ctx, key, value)
}

// Capture persists offset as the latest position for v, replacing any
// previous value. Non-scrollable modes and invalid offsets are dropped.
func (m *Memory) Capture(ctx context.Context, v model.ViewMode, offset float64) {
	if !m.IsScrollable(v) {
		return
	}
	if err := m.capture(ctx, v, offset); err != nil {
		m.logger.DebugContext(ctx, "scroll capture dropped", "view", v, "offset", offset, "error", err)
	}
}

func (m *Memory) capture(ctx context.Context, v model.ViewMode, offset float64) error {
	if !model.ValidOffset(offset) {
		return ErrInvalidOffset
	}
	if err := m.set(ctx, m.Key(v), model.FormatOffset(offset)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// ScrollToNow animates the region so the current-time indicator sits in the
// middle of the viewport, then persists the resulting offset.
func (m *Memory) ScrollToNow(ctx context.Context, v model.ViewMode) {
	offset, err := m.scrollToNow(ctx, v)
	if err != nil {
		m.logger.DebugContext(ctx, "scroll to now skipped", "view", v, "error", err)
		return
	}
	m.Capture(ctx, v, offset)
}

// scrollToNow performs the animation and returns the settled offset.
func (m *Memory) scrollToNow(ctx context.Context, v model.ViewMode) (float64, error) {
	if !m.IsScrollable(v) {
		return 0, ErrMissingNowIndicator
	}
	r := m.currentRegion()
	if r == nil {
		return 0, ErrRegionUnavailable
	}
	top, found, err := r.NowIndicator(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRegionUnavailable, err)
	}
	if !found {
		return 0, ErrMissingNowIndicator
	}
	height, err := r.ViewportHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRegionUnavailable, err)
	}

	target := top - height/2
	if target < 0 {
		target = 0
	}
	if err := m.animator.AnimateScrollTo(ctx, r, target); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRegionUnavailable, err)
	}

	settled, err := r.ScrollTop(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRegionUnavailable, err)
	}
	return settled, nil
}
