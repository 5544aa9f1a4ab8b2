// Package scroll remembers where a calendar view was scrolled, per view
// mode, and restores it when the view is shown again.
package scroll

import (
	"context"
	"errors"
)

// Failure classes. None of them reaches callers of Memory or Controller;
// they are logged and the operation degrades to a no-op.
var (
	ErrStorageUnavailable  = errors.New("scroll storage unavailable")
	ErrInvalidOffset       = errors.New("invalid scroll offset")
	ErrMissingNowIndicator = errors.New("now indicator not found")
	ErrRegionUnavailable   = errors.New("scroll region unavailable")
)

// Storage is the durable per-origin key/value provider.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Region is the scrollable part of the rendered calendar.
type Region interface {
	// ScrollTop returns the current vertical offset in pixels.
	ScrollTop(ctx context.Context) (float64, error)
	// SetScrollTop jumps to offset without animation.
	SetScrollTop(ctx context.Context, offset float64) error
	// ViewportHeight returns the visible height of the region.
	ViewportHeight(ctx context.Context) (float64, error)
	// NowIndicator returns the indicator's offset from the top of the
	// scrollable content. found is false when no indicator is rendered.
	NowIndicator(ctx context.Context) (top float64, found bool, err error)
}

// Animator moves a region to target with a visible transition.
type Animator interface {
	AnimateScrollTo(ctx context.Context, r Region, target float64) error
}
