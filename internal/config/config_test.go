package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != model.DefaultPrefix || cfg.Origin != DefaultOrigin {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("expected 200ms debounce, got %s", cfg.Debounce)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
origin: https://erp.example.com
debounce: 250ms
scrollable_views: [resourceTimelineDay]
log_level: DEBUG
browser:
  url: https://erp.example.com/calendar
  timeout: 10s
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Origin != "https://erp.example.com" {
		t.Errorf("expected origin from file, got %q", cfg.Origin)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.Debounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected normalized level 'debug', got %q", cfg.LogLevel)
	}
	if cfg.Browser.Timeout != 10*time.Second {
		t.Errorf("expected 10s browser timeout, got %s", cfg.Browser.Timeout)
	}
	if !cfg.Classifier().IsScrollable("resourceTimelineDay") {
		t.Error("expected configured view to be scrollable")
	}
	if cfg.Prefix != model.DefaultPrefix {
		t.Errorf("expected default prefix kept, got %q", cfg.Prefix)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("origin: http://file\nprefix: fromFile\n"), 0o600)

	t.Setenv("SCROLLMEM_ORIGIN", "http://env")
	t.Setenv("SCROLLMEM_SCROLLABLE_VIEWS", "a,b")
	t.Setenv("SCROLLMEM_BROWSER_URL", "http://env/calendar")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Origin != "http://env" {
		t.Errorf("expected env origin, got %q", cfg.Origin)
	}
	if cfg.Prefix != "fromFile" {
		t.Errorf("expected file prefix kept, got %q", cfg.Prefix)
	}
	if len(cfg.ScrollableViews) != 2 {
		t.Errorf("expected 2 views from env, got %v", cfg.ScrollableViews)
	}
	if cfg.Browser.URL != "http://env/calendar" {
		t.Errorf("expected browser url from env, got %q", cfg.Browser.URL)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("debounce: [nope"), 0o600)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Origin = "http://saved"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600, got %o", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Origin != "http://saved" || got.Debounce != cfg.Debounce {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
