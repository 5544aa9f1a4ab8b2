// Package browser drives a live calendar page through headless Chromium and
// exposes its scroll container as a scroll.Region.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/rcliao/scroll-memory/internal/model"
)

// Default selectors for a FullCalendar time grid.
const (
	DefaultScrollerSelector = ".fc-scroller-liquid-absolute"
	DefaultNowSelector      = ".fc-timegrid-now-indicator-line"
	DefaultViewSelector     = ".fc-view"
	DefaultWidth            = 1280
	DefaultHeight           = 800
	DefaultTimeout          = 30 * time.Second
)

// ErrNoScroller is returned when the scroll container is not in the DOM.
var ErrNoScroller = errors.New("browser: scroll container not found")

// Options defines how the calendar page is opened.
type Options struct {
	// URL of the calendar page.
	URL string

	// ScrollerSelector matches the element whose scrollTop is remembered.
	ScrollerSelector string
	// NowSelector matches the current-time indicator inside the scroller.
	NowSelector string
	// ViewSelector matches the element carrying the fc-<view>-view class.
	ViewSelector string

	Width  int
	Height int

	// Timeout bounds page load. Zero uses DefaultTimeout.
	Timeout time.Duration
}

func (o *Options) normalize() {
	if o.ScrollerSelector == "" {
		o.ScrollerSelector = DefaultScrollerSelector
	}
	if o.NowSelector == "" {
		o.NowSelector = DefaultNowSelector
	}
	if o.ViewSelector == "" {
		o.ViewSelector = DefaultViewSelector
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
}

// Page is an open calendar tab. It implements scroll.Region.
type Page struct {
	tab  context.Context // chromedp target context
	opts Options
}

// Open launches Chromium, loads opts.URL and waits for the scroll container.
// The returned cancel func closes the browser.
func Open(parent context.Context, opts Options) (*Page, context.CancelFunc, error) {
	if opts.URL == "" {
		return nil, nil, fmt.Errorf("browser: URL is required")
	}
	opts.normalize()

	tab, cancel := chromedp.NewContext(parent)

	loadCtx, loadCancel := context.WithTimeout(tab, opts.Timeout)
	defer loadCancel()

	err := chromedp.Run(loadCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(opts.ScrollerSelector, chromedp.ByQuery),
	)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("browser: load %s: %w", opts.URL, err)
	}

	return &Page{tab: tab, opts: opts}, cancel, nil
}

func (p *Page) eval(ctx context.Context, js string, res any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := runContext(p.tab, ctx)
	defer cancel()

	err := chromedp.Run(runCtx, chromedp.Evaluate(js, res))
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// runContext derives a context from the tab, so chromedp can find its
// target, that is also cancelled when ctx is done. Cancelling it leaves
// the tab open.
func runContext(tab, ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(tab)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// metric reads one numeric property of the scroller; missing scrollers
// report -1.
func (p *Page) metric(ctx context.Context, prop string) (float64, error) {
	var v float64
	js := fmt.Sprintf(`(() => { const el = document.querySelector(%s); return el ? el.%s : -1; })()`,
		strconv.Quote(p.opts.ScrollerSelector), prop)
	if err := p.eval(ctx, js, &v); err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrNoScroller
	}
	return v, nil
}

// ScrollTop returns the scroller's current offset.
func (p *Page) ScrollTop(ctx context.Context) (float64, error) {
	return p.metric(ctx, "scrollTop")
}

// ViewportHeight returns the scroller's visible height.
func (p *Page) ViewportHeight(ctx context.Context) (float64, error) {
	return p.metric(ctx, "clientHeight")
}

// SetScrollTop jumps the scroller to offset.
func (p *Page) SetScrollTop(ctx context.Context, offset float64) error {
	var ok bool
	if err := p.eval(ctx, setScrollScript(p.opts.ScrollerSelector, offset, false), &ok); err != nil {
		return err
	}
	if !ok {
		return ErrNoScroller
	}
	return nil
}

type nowResult struct {
	Scroller bool    `json:"scroller"`
	Found    bool    `json:"found"`
	Top      float64 `json:"top"`
}

// NowIndicator locates the current-time line relative to the top of the
// scrollable content.
func (p *Page) NowIndicator(ctx context.Context) (float64, bool, error) {
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return {scroller: false, found: false, top: 0};
		const now = el.querySelector(%s);
		if (!now) return {scroller: true, found: false, top: 0};
		const top = now.getBoundingClientRect().top - el.getBoundingClientRect().top + el.scrollTop;
		return {scroller: true, found: true, top: top};
	})()`, strconv.Quote(p.opts.ScrollerSelector), strconv.Quote(p.opts.NowSelector))

	var res nowResult
	if err := p.eval(ctx, js, &res); err != nil {
		return 0, false, err
	}
	if !res.Scroller {
		return 0, false, ErrNoScroller
	}
	return res.Top, res.Found, nil
}

// ViewMode reads the active calendar view from the view element's classes.
func (p *Page) ViewMode(ctx context.Context) (model.ViewMode, error) {
	var classes string
	js := fmt.Sprintf(`(() => { const el = document.querySelector(%s); return el ? el.className : ""; })()`,
		strconv.Quote(p.opts.ViewSelector))
	if err := p.eval(ctx, js, &classes); err != nil {
		return "", err
	}
	v, ok := viewFromClasses(classes)
	if !ok {
		return "", fmt.Errorf("browser: no view class in %q", classes)
	}
	return v, nil
}

// Watch polls the scroller every interval and reports offset changes to fn
// until ctx is done or the scroller disappears.
func (p *Page) Watch(ctx context.Context, interval time.Duration, fn func(offset float64)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		top, err := p.ScrollTop(ctx)
		if err != nil {
			return err
		}
		if top != last {
			last = top
			fn(top)
		}
	}
}

func setScrollScript(selector string, offset float64, smooth bool) string {
	behavior := "instant"
	if smooth {
		behavior = "smooth"
	}
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return false;
		el.scrollTo({top: %s, behavior: %q});
		return true;
	})()`, strconv.Quote(selector), model.FormatOffset(offset), behavior)
}

// viewFromClasses finds the "fc-<view>-view" class FullCalendar sets on the
// view harness.
func viewFromClasses(classes string) (model.ViewMode, bool) {
	for _, c := range strings.Fields(classes) {
		name, ok := strings.CutPrefix(c, "fc-")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, "-view")
		if !ok || name == "" {
			continue
		}
		return model.ViewMode(name), true
	}
	return "", false
}
