// Package launcher builds the launcher UI hosted by the window shell: a
// tabbed grid of slots that launch files, URLs and built-in tools.
package launcher

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"yak-launcher/config"
	"yak-launcher/internal/history"
	"yak-launcher/internal/shell"
)

const recentLimit = 6

// UI owns the launcher widgets and their wiring to config and history.
type UI struct {
	cfg     *config.Config
	cfgPath string
	tools   []Tool
	hist    *history.Store
	log     *slog.Logger

	app  *shell.App
	win  fyne.Window
	body *fyne.Container
	tabs *container.AppTabs

	recentBox *fyne.Container
}

// New prepares a launcher UI over the given config. hist may be nil, in
// which case the recent row is omitted.
func New(cfg *config.Config, cfgPath string, tools []Tool, hist *history.Store, logger *slog.Logger) *UI {
	if logger == nil {
		logger = slog.Default()
	}
	return &UI{
		cfg:     cfg,
		cfgPath: cfgPath,
		tools:   tools,
		hist:    hist,
		log:     logger,
	}
}

// Attach populates the shell window. It is the shell's CreateWidgets
// callback and runs exactly once, before the event loop starts.
func (u *UI) Attach(app *shell.App, root fyne.Window) {
	u.app = app
	u.win = root

	root.SetMainMenu(u.buildMainMenu())

	u.recentBox = container.NewHBox()
	u.body = container.NewStack()
	u.rebuildTabs()
	u.refreshRecent()

	root.SetContent(u.body)
	u.resizeWindow()
}

// ApplyConfig swaps in a new configuration (e.g. after a file reload) and
// rebuilds the tabs. Safe to call from any goroutine.
func (u *UI) ApplyConfig(cfg *config.Config) {
	fyne.Do(func() {
		u.cfg = cfg
		if u.body != nil {
			u.rebuildTabs()
			u.resizeWindow()
		}
	})
}

// rebuildTabs recreates the tab container from the current config,
// keeping the selected tab where possible.
func (u *UI) rebuildTabs() {
	selected := 0
	if u.tabs != nil {
		selected = u.tabs.SelectedIndex()
	}

	items := make([]*container.TabItem, 0, u.cfg.TabCount())
	for ti := 0; ti < u.cfg.TabCount(); ti++ {
		items = append(items, container.NewTabItem(u.cfg.TabName(ti), u.buildGrid(ti)))
	}
	u.tabs = container.NewAppTabs(items...)
	if selected > 0 && selected < len(items) {
		u.tabs.SelectIndex(selected)
	}

	bottom := container.NewPadded(u.recentBox)
	u.body.Objects = []fyne.CanvasObject{
		container.NewBorder(nil, bottom, nil, nil, u.tabs),
	}
	u.body.Refresh()
}

func (u *UI) resizeWindow() {
	cols, rows := u.cfg.Grid()
	width, height := WindowSize(cols, rows)
	u.app.UpdateWindowSize(width, height)
}

// refreshRecent rebuilds the recent-launches row from the history store.
func (u *UI) refreshRecent() {
	if u.recentBox == nil {
		return
	}
	u.recentBox.Objects = nil

	if u.hist != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		entries, err := u.hist.Recent(ctx, recentLimit)
		cancel()
		if err != nil {
			u.log.Warn("failed to load recent launches", "error", err)
		} else if len(entries) > 0 {
			u.recentBox.Objects = append(u.recentBox.Objects, widget.NewLabel("Recent:"))
			for _, e := range entries {
				entry := e
				btn := widget.NewButton(entry.Name, func() {
					u.launchRecent(entry)
				})
				btn.Importance = widget.LowImportance
				u.recentBox.Objects = append(u.recentBox.Objects, btn)
			}
		}
	}
	u.recentBox.Refresh()
}

func (u *UI) launchRecent(e history.Entry) {
	slot := config.Slot{Type: e.Type, Name: e.Name}
	switch e.Type {
	case config.SlotTypeFile:
		slot.Path = e.Target
	case config.SlotTypeURL:
		slot.URL = e.Target
	case config.SlotTypeTool:
		slot.Tool = e.Target
	}
	u.launchAndHide(slot)
}

// saveConfig persists the current config; failures are logged, the
// in-memory state stays authoritative.
func (u *UI) saveConfig() {
	if err := config.Save(u.cfg, u.cfgPath); err != nil {
		u.log.Error("failed to save config", "error", err)
	}
}
