// Package hotkey registers a global keyboard shortcut that brings the
// launcher window up from the tray.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// Manager owns the lifecycle of the global show-window shortcut
// (Ctrl+Shift+Y). Registration can fail on platforms without the
// required permissions; callers treat that as non-fatal.
type Manager struct {
	onTrigger func()
	log       *slog.Logger

	mu   sync.Mutex
	hk   *hotkey.Hotkey
	stop chan struct{}
}

// New creates a manager firing onTrigger on each hotkey press. The
// callback runs on the listener goroutine; marshal GUI work yourself.
func New(onTrigger func(), logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{onTrigger: onTrigger, log: logger}
}

// Start registers the hotkey and begins listening.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hk != nil {
		return nil
	}

	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyY)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey: %w", err)
	}

	m.hk = hk
	m.stop = make(chan struct{})
	go m.listen(hk, m.stop)

	m.log.Info("global hotkey registered", "combo", "ctrl+shift+y")
	return nil
}

func (m *Manager) listen(hk *hotkey.Hotkey, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			if m.onTrigger != nil {
				m.onTrigger()
			}
		}
	}
}

// Stop unregisters the hotkey. Safe to call without a prior Start.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hk == nil {
		return
	}
	close(m.stop)
	if err := m.hk.Unregister(); err != nil {
		m.log.Warn("failed to unregister hotkey", "error", err)
	}
	m.hk = nil
}
