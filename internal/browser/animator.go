package browser

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/scroll"
)

const (
	settlePoll    = 16 * time.Millisecond
	settleTimeout = 2 * time.Second
)

// SmoothAnimator uses the browser's native smooth scrolling and waits for
// the scroller to settle. Regions that are not a *Page fall back to
// scroll.StepAnimator.
type SmoothAnimator struct {
	Fallback scroll.Animator
}

// NewSmoothAnimator returns a SmoothAnimator with a step fallback.
func NewSmoothAnimator() *SmoothAnimator {
	return &SmoothAnimator{Fallback: scroll.NewStepAnimator()}
}

func (a *SmoothAnimator) AnimateScrollTo(ctx context.Context, r scroll.Region, target float64) error {
	p, ok := r.(*Page)
	if !ok {
		return a.Fallback.AnimateScrollTo(ctx, r, target)
	}

	var started bool
	if err := p.eval(ctx, setScrollScript(p.opts.ScrollerSelector, target, true), &started); err != nil {
		return err
	}
	if !started {
		return ErrNoScroller
	}

	// Done when the target is reached, the bottom is hit, or the scroller
	// vanished (the next read reports ErrNoScroller).
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return true;
		return Math.abs(el.scrollTop - %s) < 1 || el.scrollTop + el.clientHeight >= el.scrollHeight - 1;
	})()`, strconv.Quote(p.opts.ScrollerSelector), model.FormatOffset(target))

	if err := chromedp.Run(p.tab, chromedp.Poll(js, nil,
		chromedp.WithPollingInterval(settlePoll),
		chromedp.WithPollingTimeout(settleTimeout),
	)); err != nil && !errors.Is(err, chromedp.ErrPollingTimeout) {
		return err
	}
	return nil
}
