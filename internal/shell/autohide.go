package shell

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// installAutoHide wraps the window content in a pointer-tracking region.
// While the window is shown, the pointer leaving it arms a timer that
// hides the window to tray; re-entering cancels the timer.
func (s *App) installAutoHide() {
	content := s.window.Content()
	if content == nil {
		return
	}
	s.window.SetContent(newHoverRegion(content, s.cancelAutoHide, s.scheduleAutoHide))
}

// EnableAutoHide re-enables hiding the window when the pointer leaves it.
func (s *App) EnableAutoHide() {
	s.mu.Lock()
	s.autoHideEnabled = true
	s.mu.Unlock()
}

// DisableAutoHide keeps the window up regardless of pointer position,
// e.g. while a dialog is open.
func (s *App) DisableAutoHide() {
	s.mu.Lock()
	s.autoHideEnabled = false
	s.mu.Unlock()
	s.cancelAutoHide()
}

func (s *App) scheduleAutoHide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.autoHideEnabled || s.terminated || !s.visible {
		return
	}
	if s.autoHideTimer != nil {
		s.autoHideTimer.Stop()
	}
	s.autoHideTimer = time.AfterFunc(s.autoHideDelay, func() {
		fyne.Do(s.HideToTray)
	})
}

func (s *App) cancelAutoHide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoHideTimer != nil {
		s.autoHideTimer.Stop()
		s.autoHideTimer = nil
	}
}

// hoverRegion reports pointer enter/leave over the wrapped content.
type hoverRegion struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onEnter func()
	onLeave func()
}

var _ desktop.Hoverable = (*hoverRegion)(nil)

func newHoverRegion(content fyne.CanvasObject, onEnter, onLeave func()) *hoverRegion {
	h := &hoverRegion{content: content, onEnter: onEnter, onLeave: onLeave}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverRegion) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.content)
}

func (h *hoverRegion) MouseIn(*desktop.MouseEvent) { h.onEnter() }

func (h *hoverRegion) MouseMoved(*desktop.MouseEvent) {}

func (h *hoverRegion) MouseOut() { h.onLeave() }
