package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of write events editors produce when
// saving a file.
const reloadDebounce = 500 * time.Millisecond

// Watcher keeps the configuration in sync with the file on disk and
// notifies registered callbacks after each successful reload.
type Watcher struct {
	configPath string

	mutex         sync.RWMutex
	config        *Config
	watcher       *fsnotify.Watcher
	logger        *slog.Logger
	callbacks     []func(*Config)
	lastModTime   time.Time
	debounceTimer *time.Timer
}

// NewWatcher loads the configuration at configPath and starts watching it
// for changes. The file must exist.
func NewWatcher(configPath string, logger *slog.Logger) (*Watcher, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		configPath:  configPath,
		config:      cfg,
		watcher:     watcher,
		logger:      logger,
		lastModTime: fileInfo.ModTime(),
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	go w.watchLoop()

	return w, nil
}

// Config returns the current configuration (thread-safe).
func (w *Watcher) Config() *Config {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.config
}

// AddReloadCallback registers a callback invoked after each reload.
func (w *Watcher) AddReloadCallback(callback func(*Config)) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// UpdateLogger swaps the watcher's logger. The watcher is typically
// created before the configured logger exists; callers hand the real one
// over once logging is set up.
func (w *Watcher) UpdateLogger(logger *slog.Logger) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.logger = logger
}

func (w *Watcher) log() *slog.Logger {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.logger
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Write) {
				fileInfo, err := os.Stat(w.configPath)
				if err != nil {
					w.log().Warn("cannot stat config file", "error", err)
					continue
				}
				if !fileInfo.ModTime().After(w.lastModTime) {
					continue
				}
				w.lastModTime = fileInfo.ModTime()

				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(reloadDebounce, func() {
					w.log().Info("config file changed, reloading", "file", event.Name)
					if err := w.reload(); err != nil {
						w.log().Error("config reload failed", "error", err)
					}
				})
			}

			// Some editors rename the file during save; re-add it once it
			// reappears.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				time.Sleep(100 * time.Millisecond)
				if _, err := os.Stat(w.configPath); err == nil {
					w.watcher.Add(w.configPath)
					w.log().Info("re-watching config file", "file", w.configPath)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log().Error("config watch error", "error", err)
		}
	}
}

func (w *Watcher) reload() error {
	cfg, err := Load(w.configPath)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	w.config = cfg
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mutex.Unlock()

	for _, callback := range callbacks {
		callback(cfg)
	}
	return nil
}

// Close stops watching. Pending reload timers are cancelled.
func (w *Watcher) Close() error {
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	return w.watcher.Close()
}
