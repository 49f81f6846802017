// Package config persists the launcher layout: grid size, tabs and the
// slot assignments inside each tab, plus ambient logging settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default layout, matching a comfortable 8x3 grid over four tabs.
const (
	DefaultCols = 8
	DefaultRows = 3
	DefaultTabs = 4

	maxCols = 32
	maxRows = 32
	maxTabs = 16
)

// Slot types assignable to a grid cell.
const (
	SlotTypeFile = "file"
	SlotTypeURL  = "url"
	SlotTypeTool = "tool"
)

type Config struct {
	GridSize GridSize       `yaml:"grid_size"`
	Tabs     []Tab          `yaml:"tabs"`
	AutoHide AutoHideConfig `yaml:"auto_hide"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type GridSize struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Tab is a named page of slots. Slots is sparse, keyed by "row_col".
type Tab struct {
	Name  string          `yaml:"name"`
	Slots map[string]Slot `yaml:"slots,omitempty"`
}

// Slot is one assigned grid cell.
type Slot struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
	Path string `yaml:"path,omitempty"` // type "file"
	URL  string `yaml:"url,omitempty"`  // type "url"
	Tool string `yaml:"tool,omitempty"` // type "tool", tool id
}

type AutoHideConfig struct {
	Enabled bool          `yaml:"enabled"`
	Delay   time.Duration `yaml:"delay"` // default: 1s

	// explicit records that the auto_hide key was present in the file, so
	// defaulting does not override a written "enabled: false".
	explicit bool
}

// autoHideYAML carries the delay as a duration string ("1s", "500ms") so
// the file stays hand-editable.
type autoHideYAML struct {
	Enabled bool   `yaml:"enabled"`
	Delay   string `yaml:"delay,omitempty"`
}

func (a *AutoHideConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw autoHideYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	a.Enabled = raw.Enabled
	a.explicit = true
	if raw.Delay != "" {
		d, err := time.ParseDuration(raw.Delay)
		if err != nil {
			return fmt.Errorf("invalid auto_hide delay %q: %w", raw.Delay, err)
		}
		a.Delay = d
	}
	return nil
}

func (a AutoHideConfig) MarshalYAML() (interface{}, error) {
	raw := autoHideYAML{Enabled: a.Enabled}
	if a.Delay != 0 {
		raw.Delay = a.Delay.String()
	}
	return raw, nil
}

type LoggingConfig struct {
	Level           string `yaml:"level"`            // debug/info/warn/error
	FileEnabled     bool   `yaml:"file_enabled"`     // enable file logging
	FilePath        string `yaml:"file_path"`        // log file path
	MaxFileSize     string `yaml:"max_file_size"`    // e.g. "10MB"
	MaxFiles        int    `yaml:"max_files"`        // rotated files to keep
	CompressRotated bool   `yaml:"compress_rotated"` // brotli-compress rotated files
}

// SlotKey builds the sparse map key for a grid position.
func SlotKey(row, col int) string {
	return fmt.Sprintf("%d_%d", row, col)
}

// ParseSlotKey is the inverse of SlotKey.
func ParseSlotKey(key string) (row, col int, err error) {
	r, c, ok := strings.Cut(key, "_")
	if !ok {
		return 0, 0, fmt.Errorf("invalid slot key %q: expected ROW_COL", key)
	}
	row, err = strconv.Atoi(r)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot key %q: bad row: %w", key, err)
	}
	col, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot key %q: bad col: %w", key, err)
	}
	if row < 0 || col < 0 {
		return 0, 0, fmt.Errorf("invalid slot key %q: negative position", key)
	}
	return row, col, nil
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	cfg := &Config{
		GridSize: GridSize{Cols: DefaultCols, Rows: DefaultRows},
		Tabs:     make([]Tab, DefaultTabs),
	}
	for i := range cfg.Tabs {
		cfg.Tabs[i] = Tab{Name: fmt.Sprintf("Tab %d", i+1), Slots: map[string]Slot{}}
	}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration from path. A missing file yields the
// default configuration; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults fills zero values so that partial configs stay usable.
func (c *Config) setDefaults() {
	if c.GridSize.Cols == 0 {
		c.GridSize.Cols = DefaultCols
	}
	if c.GridSize.Rows == 0 {
		c.GridSize.Rows = DefaultRows
	}
	if len(c.Tabs) == 0 {
		c.Tabs = Default().Tabs
	}
	for i := range c.Tabs {
		if c.Tabs[i].Name == "" {
			c.Tabs[i].Name = fmt.Sprintf("Tab %d", i+1)
		}
		if c.Tabs[i].Slots == nil {
			c.Tabs[i].Slots = map[string]Slot{}
		}
	}
	if !c.AutoHide.explicit {
		c.AutoHide.Enabled = true
	}
	if c.AutoHide.Delay == 0 {
		c.AutoHide.Delay = time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.FileEnabled && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/launcher.log"
	}
	if c.Logging.MaxFileSize == "" {
		c.Logging.MaxFileSize = "10MB"
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = 5
	}
}

func (c *Config) validate() error {
	if c.GridSize.Cols < 1 || c.GridSize.Cols > maxCols {
		return fmt.Errorf("grid cols out of range: %d", c.GridSize.Cols)
	}
	if c.GridSize.Rows < 1 || c.GridSize.Rows > maxRows {
		return fmt.Errorf("grid rows out of range: %d", c.GridSize.Rows)
	}
	if len(c.Tabs) > maxTabs {
		return fmt.Errorf("too many tabs: %d", len(c.Tabs))
	}
	for ti, tab := range c.Tabs {
		for key, slot := range tab.Slots {
			if _, _, err := ParseSlotKey(key); err != nil {
				return fmt.Errorf("tab %d: %w", ti, err)
			}
			switch slot.Type {
			case SlotTypeFile, SlotTypeURL, SlotTypeTool:
			default:
				return fmt.Errorf("tab %d slot %s: unknown type %q", ti, key, slot.Type)
			}
		}
	}
	return nil
}

// TabCount returns the number of tabs.
func (c *Config) TabCount() int {
	return len(c.Tabs)
}

// TabName returns the name of the tab at index, or a placeholder when the
// index is out of range.
func (c *Config) TabName(index int) string {
	if index >= 0 && index < len(c.Tabs) {
		return c.Tabs[index].Name
	}
	return fmt.Sprintf("Tab %d", index+1)
}

// Slot returns the slot assigned at the given position, if any.
func (c *Config) Slot(tab, row, col int) (Slot, bool) {
	if tab < 0 || tab >= len(c.Tabs) {
		return Slot{}, false
	}
	s, ok := c.Tabs[tab].Slots[SlotKey(row, col)]
	return s, ok
}

// SetSlot assigns a slot at the given position. Out-of-range tabs are
// ignored.
func (c *Config) SetSlot(tab, row, col int, slot Slot) {
	if tab < 0 || tab >= len(c.Tabs) {
		return
	}
	if c.Tabs[tab].Slots == nil {
		c.Tabs[tab].Slots = map[string]Slot{}
	}
	c.Tabs[tab].Slots[SlotKey(row, col)] = slot
}

// ClearSlot removes the assignment at the given position.
func (c *Config) ClearSlot(tab, row, col int) {
	if tab < 0 || tab >= len(c.Tabs) {
		return
	}
	delete(c.Tabs[tab].Slots, SlotKey(row, col))
}

// Grid returns the configured grid dimensions.
func (c *Config) Grid() (cols, rows int) {
	return c.GridSize.Cols, c.GridSize.Rows
}

// SetGrid stores new grid dimensions.
func (c *Config) SetGrid(cols, rows int) {
	c.GridSize.Cols = cols
	c.GridSize.Rows = rows
}
