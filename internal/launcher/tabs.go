package launcher

import (
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showTabEditDialog lets the user rename the launcher tabs.
func (u *UI) showTabEditDialog() {
	u.app.DisableAutoHide()

	entries := make([]*widget.Entry, u.cfg.TabCount())
	items := make([]*widget.FormItem, u.cfg.TabCount())
	for i := range entries {
		entry := widget.NewEntry()
		entry.SetText(u.cfg.TabName(i))
		entries[i] = entry
		items[i] = widget.NewFormItem(u.cfg.TabName(i), entry)
	}

	dialog.ShowForm("Edit tabs", "Save", "Cancel", items, func(ok bool) {
		u.app.EnableAutoHide()
		if !ok {
			return
		}
		changed := false
		for i, entry := range entries {
			if entry.Text != "" && entry.Text != u.cfg.Tabs[i].Name {
				u.cfg.Tabs[i].Name = entry.Text
				changed = true
			}
		}
		if changed {
			u.saveConfig()
			u.rebuildTabs()
		}
	}, u.win)
}
