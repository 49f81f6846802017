package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"yak-launcher/config"
	"yak-launcher/internal/history"
	"yak-launcher/internal/icon"
)

// slotButton is one grid cell: an assigned item tile or an empty "+"
// placeholder. Primary tap launches, secondary tap opens the slot menu.
type slotButton struct {
	widget.BaseWidget
	ui            *UI
	tab, row, col int
}

var (
	_ fyne.Tappable          = (*slotButton)(nil)
	_ fyne.SecondaryTappable = (*slotButton)(nil)
)

func newSlotButton(ui *UI, tab, row, col int) *slotButton {
	b := &slotButton{ui: ui, tab: tab, row: row, col: col}
	b.ExtendBaseWidget(b)
	return b
}

func (b *slotButton) CreateRenderer() fyne.WidgetRenderer {
	var content fyne.CanvasObject
	if slot, ok := b.ui.cfg.Slot(b.tab, b.row, b.col); ok {
		img := canvas.NewImageFromResource(icon.Badge(slot.Name))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(28, 24))

		label := widget.NewLabel(slot.Name)
		label.Alignment = fyne.TextAlignCenter
		label.Truncation = fyne.TextTruncateEllipsis

		content = container.NewVBox(container.NewCenter(img), label)
	} else {
		placeholder := widget.NewLabel("+")
		placeholder.Alignment = fyne.TextAlignCenter
		content = container.NewCenter(placeholder)
	}
	return &slotRenderer{WidgetRenderer: widget.NewSimpleRenderer(content)}
}

// slotRenderer pins the cell to the fixed slot size.
type slotRenderer struct {
	fyne.WidgetRenderer
}

func (r *slotRenderer) MinSize() fyne.Size {
	return fyne.NewSize(slotWidth, slotHeight)
}

func (b *slotButton) Tapped(pe *fyne.PointEvent) {
	if _, ok := b.ui.cfg.Slot(b.tab, b.row, b.col); ok {
		b.ui.launchSlot(b.tab, b.row, b.col)
		return
	}
	b.ui.showSlotMenu(b, pe.AbsolutePosition)
}

func (b *slotButton) TappedSecondary(pe *fyne.PointEvent) {
	b.ui.showSlotMenu(b, pe.AbsolutePosition)
}

// launchSlot launches the assigned item. On success the window hides to
// tray; on failure it stays up and shows the error.
func (u *UI) launchSlot(tab, row, col int) {
	slot, ok := u.cfg.Slot(tab, row, col)
	if !ok {
		return
	}
	u.launchAndHide(slot)
}

func (u *UI) launchAndHide(slot config.Slot) {
	if err := u.launch(slot); err != nil {
		u.log.Warn("launch failed", "name", slot.Name, "type", slot.Type, "error", err)
		dialog.ShowError(err, u.win)
		return
	}

	u.log.Info("launched", "name", slot.Name, "type", slot.Type)
	u.recordLaunch(slot)
	u.refreshRecent()
	u.app.HideToTray()
}

func (u *UI) launch(slot config.Slot) error {
	switch slot.Type {
	case config.SlotTypeFile:
		if _, err := os.Stat(slot.Path); err != nil {
			return fmt.Errorf("file not found: %s", slot.Path)
		}
		return openTarget(slot.Path)

	case config.SlotTypeURL:
		if slot.URL == "" {
			return fmt.Errorf("slot %q has no URL", slot.Name)
		}
		return openTarget(slot.URL)

	case config.SlotTypeTool:
		tool, ok := u.findTool(slot.Tool)
		if !ok {
			return fmt.Errorf("unknown tool %q", slot.Tool)
		}
		tool.Launch(fyne.CurrentApp())
		return nil

	default:
		return fmt.Errorf("unknown slot type %q", slot.Type)
	}
}

func (u *UI) recordLaunch(slot config.Slot) {
	if u.hist == nil {
		return
	}
	entry := history.Entry{Type: slot.Type, Name: slot.Name}
	switch slot.Type {
	case config.SlotTypeFile:
		entry.Target = slot.Path
	case config.SlotTypeURL:
		entry.Target = slot.URL
	case config.SlotTypeTool:
		entry.Target = slot.Tool
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := u.hist.Record(ctx, entry); err != nil {
		u.log.Warn("failed to record launch", "error", err)
	}
}

// assignFile prompts for a file and a display name, then stores the slot.
func (u *UI) assignFile(tab, row, col int) {
	u.app.DisableAutoHide()
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			u.app.EnableAutoHide()
			dialog.ShowError(err, u.win)
			return
		}
		if rc == nil {
			u.app.EnableAutoHide()
			return
		}
		path := rc.URI().Path()
		rc.Close()

		u.promptName(filepath.Base(path), func(name string) {
			u.cfg.SetSlot(tab, row, col, config.Slot{
				Type: config.SlotTypeFile,
				Name: name,
				Path: path,
			})
			u.saveConfig()
			u.rebuildTabs()
		})
	}, u.win)
}

// assignURL prompts for a URL and a display name, then stores the slot.
func (u *UI) assignURL(tab, row, col int) {
	u.app.DisableAutoHide()

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com")
	nameEntry := widget.NewEntry()

	items := []*widget.FormItem{
		widget.NewFormItem("URL", urlEntry),
		widget.NewFormItem("Name", nameEntry),
	}
	dialog.ShowForm("Assign website", "Save", "Cancel", items, func(ok bool) {
		u.app.EnableAutoHide()
		if !ok || urlEntry.Text == "" {
			return
		}
		name := nameEntry.Text
		if name == "" {
			name = urlEntry.Text
		}
		u.cfg.SetSlot(tab, row, col, config.Slot{
			Type: config.SlotTypeURL,
			Name: name,
			URL:  urlEntry.Text,
		})
		u.saveConfig()
		u.rebuildTabs()
	}, u.win)
}

// assignTool stores a tool slot.
func (u *UI) assignTool(tab, row, col int, tool Tool) {
	u.cfg.SetSlot(tab, row, col, config.Slot{
		Type: config.SlotTypeTool,
		Name: tool.Name,
		Tool: tool.ID,
	})
	u.saveConfig()
	u.rebuildTabs()
}

// clearSlot removes the assignment at the given position.
func (u *UI) clearSlot(tab, row, col int) {
	u.cfg.ClearSlot(tab, row, col)
	u.saveConfig()
	u.rebuildTabs()
}

func (u *UI) promptName(initial string, onConfirm func(string)) {
	entry := widget.NewEntry()
	entry.SetText(initial)

	items := []*widget.FormItem{widget.NewFormItem("Display name", entry)}
	dialog.ShowForm("Name", "Save", "Cancel", items, func(ok bool) {
		u.app.EnableAutoHide()
		if !ok || entry.Text == "" {
			return
		}
		onConfirm(entry.Text)
	}, u.win)
}
