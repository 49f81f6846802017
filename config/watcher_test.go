package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, path string, cfg *Config) {
	t.Helper()
	require.NoError(t, Save(cfg, path))
}

func TestWatcherInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.SetGrid(4, 2)
	writeTestConfig(t, path, cfg)

	w, err := NewWatcher(path, slog.Default())
	require.NoError(t, err)
	defer w.Close()

	cols, rows := w.Config().Grid()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), slog.Default())
	require.Error(t, err)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeTestConfig(t, path, Default())

	w, err := NewWatcher(path, slog.Default())
	require.NoError(t, err)
	defer w.Close()

	var reloads atomic.Int32
	w.AddReloadCallback(func(*Config) { reloads.Add(1) })

	// Ensure the modification time moves forward on coarse filesystems.
	time.Sleep(20 * time.Millisecond)

	updated := Default()
	updated.SetGrid(6, 4)
	writeTestConfig(t, path, updated)

	require.Eventually(t, func() bool {
		return reloads.Load() > 0
	}, 5*time.Second, 50*time.Millisecond, "expected a reload after the file changed")

	cols, rows := w.Config().Grid()
	assert.Equal(t, 6, cols)
	assert.Equal(t, 4, rows)
}

// lockedBuffer lets the test read what the watch loop goroutine logged.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatcherUpdateLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeTestConfig(t, path, Default())

	w, err := NewWatcher(path, slog.Default())
	require.NoError(t, err)
	defer w.Close()

	var out lockedBuffer
	w.UpdateLogger(slog.New(slog.NewTextHandler(&out, nil)))

	time.Sleep(20 * time.Millisecond)
	writeTestConfig(t, path, Default())

	// Reload logging must route through the swapped-in logger.
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "config file changed")
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcherKeepsOldConfigOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.SetGrid(4, 2)
	writeTestConfig(t, path, cfg)

	w, err := NewWatcher(path, slog.Default())
	require.NoError(t, err)
	defer w.Close()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("tabs: [broken"), 0644))

	// The bad content must not replace the last good config.
	time.Sleep(time.Second)
	cols, rows := w.Config().Grid()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
}
