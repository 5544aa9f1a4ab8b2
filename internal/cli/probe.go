package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/scroll-memory/internal/browser"
	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/scroll"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Mount scroll memory against a live calendar page",
		Long: "Open the calendar in headless Chromium, restore the remembered offset for its view, " +
			"optionally scroll to the current time, and watch scrolling for a while.",
		Run: runProbe,
	}

	cmd.Flags().String("url", "", "Calendar page URL (default: config browser.url)")
	cmd.Flags().StringP("view", "v", "", "View mode (default: read from the page)")
	cmd.Flags().Bool("now", false, "Scroll to the current-time indicator after restore")
	cmd.Flags().Duration("watch", 0, "Keep observing scroll events for this long")
	cmd.Flags().Duration("interval", 50*time.Millisecond, "Scroll polling interval while watching")

	RootCmd.AddCommand(cmd)
}

// probeResult is printed when probe finishes.
type probeResult struct {
	URL    string         `json:"url"`
	View   model.ViewMode `json:"view"`
	Offset float64        `json:"offset"`
	Stored *float64       `json:"stored,omitempty"`
	State  string         `json:"state"`
}

func runProbe(cmd *cobra.Command, args []string) {
	url, _ := cmd.Flags().GetString("url")
	now, _ := cmd.Flags().GetBool("now")
	watch, _ := cmd.Flags().GetDuration("watch")
	interval, _ := cmd.Flags().GetDuration("interval")
	if url == "" {
		url = cfg.Browser.URL
	}
	ctx := cmd.Context()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	page, closePage, err := browser.Open(ctx, browser.Options{
		URL:              url,
		ScrollerSelector: cfg.Browser.ScrollerSelector,
		NowSelector:      cfg.Browser.NowSelector,
		ViewSelector:     cfg.Browser.ViewSelector,
		Timeout:          cfg.Browser.Timeout,
	})
	if err != nil {
		exitErr("open page", err)
	}
	defer closePage()

	view := viewFlag(cmd)
	if view == "" {
		view, err = page.ViewMode(ctx)
		if err != nil {
			exitErr("detect view", err)
		}
	}

	mem := newMemory(s, scroll.WithAnimator(browser.NewSmoothAnimator()))
	ctrl := scroll.NewController(mem, scroll.WithDebounce(cfg.Debounce))
	ctrl.Mount(ctx, view, page)
	logger.Info("calendar mounted", "url", url, "view", view, "instance", ctrl.ID())

	if now {
		ctrl.ScrollToNow(ctx)
	}

	if watch > 0 {
		watchCtx, cancel := context.WithTimeout(ctx, watch)
		err := page.Watch(watchCtx, interval, func(offset float64) {
			if v, err := page.ViewMode(watchCtx); err == nil && v != ctrl.ViewMode() {
				ctrl.SwitchView(watchCtx, v)
				return
			}
			ctrl.OnScroll(offset)
		})
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("watch stopped", "error", err)
		}
	}

	ctrl.Flush(ctx)
	res := probeResult{URL: url, View: ctrl.ViewMode(), State: ctrl.State().String()}
	if top, err := page.ScrollTop(ctx); err == nil {
		res.Offset = top
	}
	if stored, found, err := mem.Load(ctx, res.View); err == nil && found {
		res.Stored = &stored
	}
	ctrl.Unmount()

	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
