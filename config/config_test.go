package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cols, rows := cfg.Grid()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)
	assert.Equal(t, DefaultTabs, cfg.TabCount())
	assert.Equal(t, "Tab 1", cfg.TabName(0))
	assert.True(t, cfg.AutoHide.Enabled)
	assert.Equal(t, time.Second, cfg.AutoHide.Delay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tabs: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.SetGrid(5, 2)
	cfg.Tabs[0].Name = "Work"
	cfg.SetSlot(0, 1, 3, Slot{Type: SlotTypeFile, Name: "Notes", Path: "/tmp/notes.txt"})
	cfg.SetSlot(1, 0, 0, Slot{Type: SlotTypeURL, Name: "Docs", URL: "https://example.com"})
	cfg.SetSlot(2, 2, 2, Slot{Type: SlotTypeTool, Name: "Counter", Tool: "counter"})

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	cols, rows := loaded.Grid()
	assert.Equal(t, 5, cols)
	assert.Equal(t, 2, rows)
	assert.Equal(t, "Work", loaded.TabName(0))

	slot, ok := loaded.Slot(0, 1, 3)
	require.True(t, ok)
	assert.Equal(t, SlotTypeFile, slot.Type)
	assert.Equal(t, "/tmp/notes.txt", slot.Path)

	slot, ok = loaded.Slot(1, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", slot.URL)

	slot, ok = loaded.Slot(2, 2, 2)
	require.True(t, ok)
	assert.Equal(t, "counter", slot.Tool)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown slot type",
			yaml: "tabs:\n  - name: T\n    slots:\n      \"0_0\": {type: rocket, name: X}\n",
		},
		{
			name: "bad slot key",
			yaml: "tabs:\n  - name: T\n    slots:\n      \"zero-zero\": {type: file, name: X, path: /x}\n",
		},
		{
			name: "grid cols out of range",
			yaml: "grid_size: {cols: 99, rows: 3}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSlotAccessors(t *testing.T) {
	cfg := Default()

	_, ok := cfg.Slot(0, 0, 0)
	assert.False(t, ok)

	cfg.SetSlot(0, 0, 0, Slot{Type: SlotTypeURL, Name: "Home", URL: "https://example.org"})
	slot, ok := cfg.Slot(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "Home", slot.Name)

	cfg.ClearSlot(0, 0, 0)
	_, ok = cfg.Slot(0, 0, 0)
	assert.False(t, ok)

	// Out-of-range tabs are ignored rather than panicking.
	cfg.SetSlot(99, 0, 0, Slot{Type: SlotTypeURL, Name: "X", URL: "https://x"})
	_, ok = cfg.Slot(99, 0, 0)
	assert.False(t, ok)
	cfg.ClearSlot(99, 0, 0)
}

func TestAutoHideDelayString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_hide:\n  enabled: true\n  delay: 750ms\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.AutoHide.Enabled)
	assert.Equal(t, 750*time.Millisecond, cfg.AutoHide.Delay)

	// Round-trips as a duration string, not nanoseconds.
	require.NoError(t, Save(cfg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "delay: 750ms")
}

func TestAutoHideDisabledWithoutDelay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_hide:\n  enabled: false\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// An explicit enabled: false survives defaulting even when no delay
	// is written alongside it.
	assert.False(t, cfg.AutoHide.Enabled)
	assert.Equal(t, time.Second, cfg.AutoHide.Delay)

	// And survives a save/load round trip.
	require.NoError(t, Save(cfg, path))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.AutoHide.Enabled)
}

func TestSlotKeyRoundTrip(t *testing.T) {
	key := SlotKey(2, 7)
	assert.Equal(t, "2_7", key)

	row, col, err := ParseSlotKey(key)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 7, col)

	for _, bad := range []string{"oops", "1_2junk", "junk1_2", "1_", "_2", "1_2_3", "-1_2", "1_ 2"} {
		_, _, err := ParseSlotKey(bad)
		require.Error(t, err, "key %q must not parse", bad)
	}
}

func TestSetDefaultsFillsPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tabs:\n  - name: \"\"\n  - name: Second\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cols, rows := cfg.Grid()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)
	assert.Equal(t, "Tab 1", cfg.TabName(0))
	assert.Equal(t, "Second", cfg.TabName(1))
	assert.NotNil(t, cfg.Tabs[0].Slots)
}
