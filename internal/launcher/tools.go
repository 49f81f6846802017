package launcher

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Tool is a built-in mini application launchable from slots and the
// Tools menu. Launch opens the tool in its own window.
type Tool struct {
	ID          string
	Name        string
	Description string
	Launch      func(a fyne.App)
}

// Builtin returns the tools shipped with the launcher.
func Builtin() []Tool {
	return []Tool{
		{
			ID:          "counter",
			Name:        "Counter",
			Description: "A simple tally counter",
			Launch:      launchCounter,
		},
		{
			ID:          "notepad",
			Name:        "Notepad",
			Description: "A scratch pad with save-to-file",
			Launch:      launchNotepad,
		},
	}
}

func (u *UI) findTool(id string) (Tool, bool) {
	for _, t := range u.tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

func launchCounter(a fyne.App) {
	win := a.NewWindow("Counter")

	count := 0
	label := widget.NewLabel("Count: 0")
	label.Alignment = fyne.TextAlignCenter

	update := func(delta int) {
		count += delta
		label.SetText(fmt.Sprintf("Count: %d", count))
	}

	win.SetContent(container.NewVBox(
		label,
		widget.NewButton("Count up", func() { update(1) }),
		widget.NewButton("Count down", func() { update(-1) }),
		widget.NewButton("Reset", func() {
			count = 0
			label.SetText("Count: 0")
		}),
	))
	win.Resize(fyne.NewSize(220, 180))
	win.Show()
}

func launchNotepad(a fyne.App) {
	win := a.NewWindow("Notepad")

	text := widget.NewMultiLineEntry()
	text.SetPlaceHolder("Jot something down…")

	save := widget.NewButton("Save…", func() {
		dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if wc == nil {
				return
			}
			defer wc.Close()
			if _, err := wc.Write([]byte(text.Text)); err != nil {
				dialog.ShowError(err, win)
			}
		}, win)
	})

	win.SetContent(container.NewBorder(nil, save, nil, nil, text))
	win.Resize(fyne.NewSize(320, 260))
	win.Show()
}
