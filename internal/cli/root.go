// Package cli implements the scroll-memory CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rcliao/scroll-memory/internal/config"
	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/scroll"
	"github.com/rcliao/scroll-memory/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	originFlag string

	cfg    *config.Config
	logger *slog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "scroll-memory",
	Short: "Per-view calendar scroll positions",
	Long:  "Inspect and drive the calendar scroll memory: one persisted offset per view mode, SQLite-backed.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(getConfigPath())
		if err != nil {
			return err
		}
		if originFlag != "" {
			cfg.Origin = originFlag
		}
		logger = newLogger(cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: config db_path, $SCROLLMEM_DB or ~/.scroll-memory/scroll.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $SCROLLMEM_CONFIG or ~/.scroll-memory/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&originFlag, "origin", "o", "", "Browser origin the keys belong to")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("SCROLLMEM_CONFIG"); env != "" {
		return env
	}
	return config.DefaultPath()
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultDBPath()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newMemory(s store.Store, options ...scroll.Option) *scroll.Memory {
	opts := []scroll.Option{
		scroll.WithPrefix(cfg.Prefix),
		scroll.WithClassifier(cfg.Classifier()),
		scroll.WithLogger(logger),
	}
	return scroll.NewMemory(store.Scope(s, cfg.Origin), append(opts, options...)...)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func viewFlag(cmd *cobra.Command) model.ViewMode {
	v, _ := cmd.Flags().GetString("view")
	return model.ViewMode(v)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
