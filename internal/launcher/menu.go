package launcher

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// buildMainMenu creates the window menu bar: a Tools menu listing the
// built-in tools and a Settings menu with the tab editor.
func (u *UI) buildMainMenu() *fyne.MainMenu {
	toolItems := make([]*fyne.MenuItem, 0, len(u.tools))
	for _, tool := range u.tools {
		tool := tool
		toolItems = append(toolItems, fyne.NewMenuItem(tool.Name, func() {
			tool.Launch(fyne.CurrentApp())
			u.app.HideToTray()
		}))
	}

	settingsItems := []*fyne.MenuItem{
		fyne.NewMenuItem("Edit tabs…", u.showTabEditDialog),
	}

	return fyne.NewMainMenu(
		fyne.NewMenu("Tools", toolItems...),
		fyne.NewMenu("Settings", settingsItems...),
	)
}

// showSlotMenu opens the context menu for one grid cell. Entries depend
// on whether the slot is assigned.
func (u *UI) showSlotMenu(b *slotButton, pos fyne.Position) {
	_, assigned := u.cfg.Slot(b.tab, b.row, b.col)

	var items []*fyne.MenuItem
	if assigned {
		items = append(items,
			fyne.NewMenuItem("Launch", func() { u.launchSlot(b.tab, b.row, b.col) }),
			fyne.NewMenuItemSeparator(),
		)
	}

	items = append(items,
		fyne.NewMenuItem("Assign file…", func() { u.assignFile(b.tab, b.row, b.col) }),
		fyne.NewMenuItem("Assign website…", func() { u.assignURL(b.tab, b.row, b.col) }),
	)

	if len(u.tools) > 0 {
		toolItems := make([]*fyne.MenuItem, 0, len(u.tools))
		for _, tool := range u.tools {
			tool := tool
			toolItems = append(toolItems, fyne.NewMenuItem(tool.Name, func() {
				u.assignTool(b.tab, b.row, b.col, tool)
			}))
		}
		assignTool := fyne.NewMenuItem("Assign tool", nil)
		assignTool.ChildMenu = fyne.NewMenu("", toolItems...)
		items = append(items, assignTool)
	}

	if assigned {
		items = append(items,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Clear", func() { u.clearSlot(b.tab, b.row, b.col) }),
		)
	}

	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), u.win.Canvas(), pos)
}
