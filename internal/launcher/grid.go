package launcher

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Slot cell geometry and the window chrome around the grid, in pixels.
const (
	slotWidth   = 72
	slotHeight  = 64
	slotPadding = 3

	menuBarHeight = 25
	tabBarHeight  = 40
	windowPadding = 20

	// Keep the menus from being clipped on tiny grids.
	minWindowWidth  = 380
	minWindowHeight = 190
)

// WindowSize computes the window dimensions that fit a cols x rows slot
// grid plus menu and tab chrome.
func WindowSize(cols, rows int) (width, height int) {
	contentWidth := cols * (slotWidth + slotPadding*2)
	contentHeight := rows * (slotHeight + slotPadding*2)

	width = contentWidth + windowPadding
	height = contentHeight + menuBarHeight + tabBarHeight + windowPadding

	if width < minWindowWidth {
		width = minWindowWidth
	}
	if height < minWindowHeight {
		height = minWindowHeight
	}
	return width, height
}

// buildGrid creates the slot grid for one tab, centered in its page.
func (u *UI) buildGrid(tab int) fyne.CanvasObject {
	cols, rows := u.cfg.Grid()

	cells := make([]fyne.CanvasObject, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cells = append(cells, newSlotButton(u, tab, row, col))
		}
	}

	return container.NewCenter(container.NewGridWithColumns(cols, cells...))
}
