// main.go - Yak Launcher entry point: a tray-resident launcher window
// built on the window shell.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"yak-launcher/config"
	"yak-launcher/internal/history"
	"yak-launcher/internal/hotkey"
	"yak-launcher/internal/launcher"
	"yak-launcher/internal/logging"
	"yak-launcher/internal/shell"
)

// Version information, set at build time.
var (
	Version   = "1.2.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  = flag.String("config", "", "config file path (default: <user config dir>/yak-launcher/config.yaml)")
	showVersion = flag.Bool("version", false, "print version information")
)

const historyKeep = 500

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Yak Launcher\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Built: %s\n", BuildTime)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = defaultConfigPath()
	}

	// Materialize the default config on first run so the watcher has a
	// file to follow.
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(config.Default(), path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	watcher, err := config.NewWatcher(path, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()
	cfg := watcher.Config()

	logger, logHandler := setupLogger(cfg.Logging)
	slog.SetDefault(logger)
	watcher.UpdateLogger(logger)
	defer logHandler.Close()
	logger.Info("starting", "version", Version, "config", path)

	hist := openHistory(logger)
	if hist != nil {
		defer hist.Close()
	}

	ui := launcher.New(cfg, path, launcher.Builtin(), hist, logger)
	watcher.AddReloadCallback(ui.ApplyConfig)

	cols, rows := cfg.Grid()
	width, height := launcher.WindowSize(cols, rows)

	app, err := shell.New(shell.Options{
		CreateWidgets: ui.Attach,
		Title:         "Yak Launcher",
		Geometry:      fmt.Sprintf("%dx%d", width, height),
		AutoHideDelay: cfg.AutoHide.Delay,
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !cfg.AutoHide.Enabled {
		app.DisableAutoHide()
	}

	hk := hotkey.New(func() { fyne.Do(app.ShowWindow) }, logger)
	if err := hk.Start(); err != nil {
		logger.Warn("global hotkey unavailable", "error", err)
	}
	defer hk.Stop()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging per the config.
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, *logging.Handler) {
	level := logging.ParseLevel(cfg.Level)

	var rotator *logging.FileRotator
	if cfg.FileEnabled {
		maxSize, err := logging.ParseSize(cfg.MaxFileSize)
		if err != nil {
			fmt.Printf("warning: cannot parse log size %q, using 10MB: %v\n", cfg.MaxFileSize, err)
			maxSize = 10 * 1024 * 1024
		}

		rotator, err = logging.NewFileRotator(cfg.FilePath, maxSize, cfg.MaxFiles, cfg.CompressRotated)
		if err != nil {
			fmt.Printf("warning: cannot create log file rotator: %v\n", err)
			rotator = nil
		}
	}

	handler := logging.NewHandler(level, rotator)
	logger := slog.New(handler).With("session", uuid.NewString())
	return logger, handler
}

// openHistory opens the launch history store. Failures are non-fatal;
// the launcher just runs without a recent row.
func openHistory(logger *slog.Logger) *history.Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		logger.Warn("launch history disabled", "error", err)
		return nil
	}

	store, err := history.Open(filepath.Join(dir, "yak-launcher", "history.db"))
	if err != nil {
		logger.Warn("launch history disabled", "error", err)
		return nil
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Prune(ctx, historyKeep); err != nil {
			logger.Warn("failed to prune launch history", "error", err)
		}
	}()

	return store
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "yak-launcher", "config.yaml")
}
