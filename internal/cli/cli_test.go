package cli

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rcliao/scroll-memory/internal/config"
	"github.com/rcliao/scroll-memory/internal/store"
)

func TestCaptureCommandPersists(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "scroll.db")
	run := func(args ...string) {
		t.Helper()
		RootCmd.SetArgs(append(args, "--db", db, "--config", filepath.Join(dir, "absent.yaml")))
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	run("capture", "--view", "timeGridWeek", "--offset", "400")
	run("capture", "--view", "dayGridMonth", "--offset", "50")
	run("restore", "--view", "timeGridWeek", "--from", "10")

	s, err := store.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	e, err := s.Get(ctx, store.GetParams{Origin: config.DefaultOrigin, Key: "calendarScrollPosition_timeGridWeek"})
	if err != nil {
		t.Fatalf("get week: %v", err)
	}
	if e.Value != "400" {
		t.Errorf("expected '400', got %q", e.Value)
	}

	_, err = s.Get(ctx, store.GetParams{Origin: config.DefaultOrigin, Key: "calendarScrollPosition_dayGridMonth"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected month view absent, got %v", err)
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	l := newLogger("verbose")
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug disabled")
	}
}
