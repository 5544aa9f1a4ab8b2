package scroll

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/scroll-memory/internal/model"
)

// State is the lifecycle phase of a mounted calendar view.
type State int

const (
	Unmounted State = iota
	Mounting
	Restoring
	Idle
	Capturing
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounting:
		return "mounting"
	case Restoring:
		return "restoring"
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// ControllerOption mutates Controller configuration.
type ControllerOption func(*Controller)

// WithDebounce sets the quiet period before a scroll position is captured.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.deb.wait = d
		}
	}
}

// WithClock replaces the timer source, mainly for tests.
func WithClock(clock Clock) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.deb.clock = clock
		}
	}
}

// Controller drives a Memory through one calendar view's lifecycle: restore
// on mount and view switch, debounced capture while scrolling, and
// cancellation on unmount.
type Controller struct {
	mem    *Memory
	id     string
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	view   model.ViewMode
	region Region
	epoch  uint64 // bumped whenever view or region identity changes
	deb    debouncer
}

// NewController returns an unmounted controller for mem.
func NewController(mem *Memory, options ...ControllerOption) *Controller {
	c := &Controller{
		mem: mem,
		id:  ulid.MustNew(ulid.Now(), rand.Reader).String(),
		deb: debouncer{clock: realClock{}, wait: DefaultDebounce},
	}
	for _, option := range options {
		option(c)
	}
	c.logger = mem.logger.With("instance", c.id)
	return c
}

// ID identifies this controller in logs.
func (c *Controller) ID() string { return c.id }

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ViewMode returns the active view mode.
func (c *Controller) ViewMode() model.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Pending reports whether a capture is waiting for the debounce window.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deb.isPending()
}

// Mount starts observing a calendar shown in view v. When r is nil the
// controller waits in Mounting until RegionReady supplies one.
func (c *Controller) Mount(ctx context.Context, v model.ViewMode, r Region) {
	c.mu.Lock()
	if c.state != Unmounted {
		c.unmountLocked()
	}
	c.state = Mounting
	c.view = v
	c.epoch++
	c.logger.DebugContext(ctx, "calendar mounted", "view", v)

	if r == nil {
		c.mu.Unlock()
		return
	}
	c.attachLocked(r)
	c.restoreAndUnlock(ctx)
}

// RegionReady supplies the scrollable region once it exists.
func (c *Controller) RegionReady(ctx context.Context, r Region) {
	if r == nil {
		return
	}
	c.mu.Lock()
	if c.state != Mounting {
		c.mu.Unlock()
		return
	}
	c.attachLocked(r)
	c.restoreAndUnlock(ctx)
}

func (c *Controller) attachLocked(r Region) {
	c.region = r
	c.mem.Attach(r)
	c.epoch++
}

// restoreAndUnlock must be called with c.mu held and releases it. The
// region is written without the lock because it may report that write
// back through OnScroll; Restoring makes OnScroll ignore it.
func (c *Controller) restoreAndUnlock(ctx context.Context) {
	c.state = Restoring
	v, epoch := c.view, c.epoch
	c.mu.Unlock()

	c.mem.Restore(ctx, v)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch == c.epoch && c.state == Restoring {
		c.state = Idle
	}
}

// OnScroll records the region's new offset. The capture happens once no
// further scroll arrives within the debounce window.
func (c *Controller) OnScroll(offset float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle && c.state != Capturing {
		return
	}
	if !c.mem.IsScrollable(c.view) {
		return
	}
	if !model.ValidOffset(offset) {
		c.logger.Debug("scroll event ignored", "view", c.view, "offset", offset, "error", ErrInvalidOffset)
		return
	}
	c.state = Capturing
	c.deb.arm(pendingCapture{view: c.view, offset: offset}, c.fire)
}

func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.deb.take(seq)
	if !ok || c.state == Unmounted {
		return
	}
	c.mem.Capture(context.Background(), p.view, p.offset)
	if c.state == Capturing {
		c.state = Idle
	}
}

// Flush writes a pending capture immediately.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked(ctx)
}

func (c *Controller) flushLocked(ctx context.Context) {
	if p, ok := c.deb.flush(); ok {
		c.mem.Capture(ctx, p.view, p.offset)
	}
	if c.state == Capturing {
		c.state = Idle
	}
}

// SwitchView commits the outgoing mode's pending capture and then restores
// the incoming mode.
func (c *Controller) SwitchView(ctx context.Context, v model.ViewMode) {
	c.mu.Lock()
	if c.state == Unmounted || v == c.view {
		c.mu.Unlock()
		return
	}
	c.flushLocked(ctx)
	c.logger.DebugContext(ctx, "view switched", "from", c.view, "to", v)
	c.view = v
	c.epoch++

	if c.region == nil {
		c.mu.Unlock()
		return
	}
	c.restoreAndUnlock(ctx)
}

// ScrollToNow brings the current-time indicator into view and persists the
// offset the animation settles on.
func (c *Controller) ScrollToNow(ctx context.Context) {
	c.mu.Lock()
	if c.state != Idle && c.state != Capturing {
		c.mu.Unlock()
		return
	}
	c.flushLocked(ctx)
	v, epoch := c.view, c.epoch
	c.mu.Unlock()

	// The animation runs unlocked: regions may report scroll events
	// through OnScroll while it moves.
	offset, err := c.mem.scrollToNow(ctx, v)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.DebugContext(ctx, "scroll to now skipped", "view", v, "error", err)
		return
	}
	if epoch != c.epoch || c.state == Unmounted {
		return
	}
	c.deb.cancel()
	c.mem.Capture(ctx, v, offset)
	c.state = Idle
}

// Unmount stops observing. A pending capture is discarded; offsets already
// written stay in storage.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmountLocked()
}

func (c *Controller) unmountLocked() {
	c.deb.cancel()
	c.mem.Detach()
	c.region = nil
	c.state = Unmounted
	c.epoch++
}
