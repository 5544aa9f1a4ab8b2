package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/scroll"
)

func TestViewFromClasses(t *testing.T) {
	cases := map[string]model.ViewMode{
		"fc-view fc-timeGridWeek-view fc-timegrid": model.TimeGridWeek,
		"fc-dayGridMonth-view fc-view":             model.DayGridMonth,
		"fc-view fc-timegrid":                      "",
		"":                                         "",
	}
	for classes, want := range cases {
		got, ok := viewFromClasses(classes)
		if ok != (want != "") || got != want {
			t.Errorf("viewFromClasses(%q) = %q, %v; want %q", classes, got, ok, want)
		}
	}
}

func TestSetScrollScript(t *testing.T) {
	js := setScrollScript(`.a "b"`, 412.5, true)
	if !strings.Contains(js, `".a \"b\""`) {
		t.Errorf("expected quoted selector, got %s", js)
	}
	if !strings.Contains(js, "top: 412.5") || !strings.Contains(js, `"smooth"`) {
		t.Errorf("expected smooth scroll to 412.5, got %s", js)
	}
	if !strings.Contains(setScrollScript(".x", 3, false), `"instant"`) {
		t.Error("expected instant behavior")
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{URL: "http://localhost:3000/calendar"}
	o.normalize()
	if o.ScrollerSelector != DefaultScrollerSelector || o.NowSelector != DefaultNowSelector {
		t.Errorf("expected default selectors, got %+v", o)
	}
	if o.Timeout != DefaultTimeout || o.Width != DefaultWidth {
		t.Errorf("expected default sizing, got %+v", o)
	}
}

func TestOpenRequiresURL(t *testing.T) {
	if _, _, err := Open(context.Background(), Options{}); err == nil {
		t.Error("expected error without URL")
	}
}

type tabKey struct{}

func TestRunContextFollowsCaller(t *testing.T) {
	tab := context.WithValue(context.Background(), tabKey{}, "tab")
	ctx, cancel := context.WithCancel(context.Background())

	runCtx, release := runContext(tab, ctx)
	defer release()
	if runCtx.Value(tabKey{}) != "tab" {
		t.Fatal("expected run context to carry the tab")
	}

	cancel()
	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected run context cancelled with the caller")
	}
	if tab.Err() != nil {
		t.Error("expected tab left open")
	}
}

func TestRunContextReleaseKeepsTab(t *testing.T) {
	tab, closeTab := context.WithCancel(context.Background())
	defer closeTab()

	runCtx, release := runContext(tab, context.Background())
	release()
	if !errors.Is(runCtx.Err(), context.Canceled) {
		t.Errorf("expected released run context cancelled, got %v", runCtx.Err())
	}
	if tab.Err() != nil {
		t.Error("expected tab left open")
	}
}

func TestEvalHonorsCancelledContext(t *testing.T) {
	p := &Page{tab: context.Background()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ScrollTop(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type stubRegion struct{ top float64 }

func (r *stubRegion) ScrollTop(context.Context) (float64, error) { return r.top, nil }
func (r *stubRegion) SetScrollTop(_ context.Context, o float64) error {
	r.top = o
	return nil
}
func (r *stubRegion) ViewportHeight(context.Context) (float64, error) { return 0, nil }
func (r *stubRegion) NowIndicator(context.Context) (float64, bool, error) { return 0, false, nil }

func TestSmoothAnimatorFallback(t *testing.T) {
	a := &SmoothAnimator{Fallback: &scroll.StepAnimator{Steps: 3}}
	r := &stubRegion{top: 10}

	if err := a.AnimateScrollTo(context.Background(), r, 90); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if r.top != 90 {
		t.Errorf("expected fallback to reach 90, got %v", r.top)
	}
}
