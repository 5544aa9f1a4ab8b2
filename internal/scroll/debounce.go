package scroll

import (
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
)

// DefaultDebounce is how long scrolling must pause before a capture.
const DefaultDebounce = 200 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// pendingCapture is the offset waiting for the debounce window to close.
type pendingCapture struct {
	view   model.ViewMode
	offset float64
}

// debouncer collapses bursts of scroll events into one trailing capture.
// It is not safe for concurrent use; the owning Controller serializes it.
type debouncer struct {
	clock   Clock
	wait    time.Duration
	timer   Timer
	seq     uint64
	pending *pendingCapture
}

// arm replaces any pending capture with p and restarts the window. fire
// receives the sequence number it must present to take.
func (d *debouncer) arm(p pendingCapture, fire func(seq uint64)) {
	d.stop()
	d.seq++
	d.pending = &p
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.wait, func() { fire(seq) })
}

// take hands out the pending capture if seq is still current.
func (d *debouncer) take(seq uint64) (pendingCapture, bool) {
	if seq != d.seq || d.pending == nil {
		return pendingCapture{}, false
	}
	p := *d.pending
	d.pending = nil
	d.timer = nil
	return p, true
}

// flush cancels the timer and returns whatever was pending.
func (d *debouncer) flush() (pendingCapture, bool) {
	d.stop()
	d.seq++
	if d.pending == nil {
		return pendingCapture{}, false
	}
	p := *d.pending
	d.pending = nil
	return p, true
}

// cancel drops the pending capture without writing it.
func (d *debouncer) cancel() {
	d.flush()
}

func (d *debouncer) isPending() bool {
	return d.pending != nil
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
