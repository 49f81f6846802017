// Package shell implements a tray-hosted window: a single top-level window
// that hides to the system tray instead of closing, with a caller-supplied
// widget callback populating its contents.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"yak-launcher/internal/icon"
	"yak-launcher/internal/tray"
)

const (
	appID = "io.yak.launcher"

	defaultTitle    = "Tray Window"
	defaultGeometry = "320x180"

	// Delay before the pointer leaving the window hides it to tray.
	defaultAutoHideDelay = 1 * time.Second

	startupToastDelay = 500 * time.Millisecond
)

// Seams for tests: headless fyne driver and a fake tray controller.
var (
	newGUIApp = func() fyne.App { return app.NewWithID(appID) }
	trayStart = tray.Start
)

// Options configures a window shell.
type Options struct {
	// CreateWidgets populates the window contents. It is invoked exactly
	// once, synchronously, during New, with the shell and its root window.
	// When nil a minimal default widget set is installed instead.
	CreateWidgets func(*App, fyne.Window)

	// Title of the root window, also used as the tray tooltip.
	Title string

	// Geometry is a "WIDTHxHEIGHT" size specification. Parse errors are
	// returned from New unchanged.
	Geometry string

	// Icon holds the tray icon image bytes. Defaults to a generated icon.
	Icon []byte

	// AutoHideDelay is how long the pointer may stay outside the window
	// before it is hidden to tray. Zero means the default of one second.
	AutoHideDelay time.Duration

	Logger *slog.Logger
}

// App owns the root window and the tray icon loop. The only state beyond
// the window itself is a visibility flag: shown or hidden-to-tray, until
// Quit makes the state terminal.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	log     *slog.Logger

	title    string
	trayIcon []byte

	mu         sync.Mutex
	width      int
	height     int
	visible    bool
	terminated bool

	autoHideEnabled bool
	autoHideDelay   time.Duration
	autoHideTimer   *time.Timer

	trayCtrl tray.Controller
	quitOnce sync.Once

	// handleClose is what the window close gesture is mapped to.
	handleClose func()
}

// New constructs the root window, applies title and geometry and invokes
// the widget callback before any event loop is started.
func New(opts Options) (*App, error) {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Geometry == "" {
		opts.Geometry = defaultGeometry
	}
	if opts.AutoHideDelay == 0 {
		opts.AutoHideDelay = defaultAutoHideDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.Icon) == 0 {
		opts.Icon = icon.Tray()
	}

	width, height, err := ParseGeometry(opts.Geometry)
	if err != nil {
		return nil, err
	}

	fyneApp := newGUIApp()
	window := fyneApp.NewWindow(opts.Title)
	window.Resize(fyne.NewSize(float32(width), float32(height)))

	s := &App{
		fyneApp:         fyneApp,
		window:          window,
		log:             opts.Logger,
		title:           opts.Title,
		trayIcon:        opts.Icon,
		width:           width,
		height:          height,
		autoHideEnabled: true,
		autoHideDelay:   opts.AutoHideDelay,
	}

	// The close gesture hides to tray rather than destroying the window.
	s.handleClose = s.HideToTray
	window.SetCloseIntercept(func() { s.handleClose() })

	if opts.CreateWidgets != nil {
		opts.CreateWidgets(s, window)
	} else {
		window.SetContent(s.defaultContent())
	}
	s.installAutoHide()

	return s, nil
}

// Run starts the tray icon loop, hides the window to tray and enters the
// GUI main loop. It blocks until Quit.
func (s *App) Run() error {
	ctrl, err := trayStart(context.Background(), tray.Options{
		Icon:    s.trayIcon,
		Tooltip: s.title,
		OnShow:  func() { fyne.Do(s.ShowWindow) },
		OnQuit:  func() { fyne.Do(s.Quit) },
	})
	if err != nil {
		return fmt.Errorf("failed to start tray icon: %w", err)
	}
	s.mu.Lock()
	s.trayCtrl = ctrl
	s.mu.Unlock()

	s.HideToTray()

	time.AfterFunc(startupToastDelay, s.notifyStartup)

	s.log.Info("entering main loop", "title", s.title, "size", fmt.Sprintf("%dx%d", s.width, s.height))
	s.fyneApp.Run()
	return nil
}

// ShowWindow maps and raises the window. Idempotent when already shown,
// a no-op after Quit. Callers outside the GUI goroutine must marshal via
// fyne.Do.
func (s *App) ShowWindow() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.visible = true
	width, height := s.width, s.height
	s.mu.Unlock()

	s.window.Resize(fyne.NewSize(float32(width), float32(height)))
	s.window.CenterOnScreen()
	s.window.Show()
	s.window.RequestFocus()
}

// HideToTray unmaps the window, leaving the process and tray icon active.
func (s *App) HideToTray() {
	s.cancelAutoHide()

	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.visible = false
	s.mu.Unlock()

	s.window.Hide()
}

// Quit tears down the tray icon and terminates the event loop. Terminal
// and irreversible; safe to call more than once.
func (s *App) Quit() {
	s.quitOnce.Do(func() {
		s.mu.Lock()
		s.terminated = true
		s.visible = false
		ctrl := s.trayCtrl
		s.mu.Unlock()

		s.cancelAutoHide()
		if ctrl != nil {
			ctrl.Stop()
		}
		s.log.Info("shutting down")
		s.fyneApp.Quit()
	})
}

// Root returns the root window handle for use by widget callbacks.
func (s *App) Root() fyne.Window {
	return s.window
}

// Visible reports whether the window is currently shown.
func (s *App) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Size returns the window size the shell was configured with.
func (s *App) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// UpdateWindowSize records a new window size, used on the next show.
// Widget callbacks call this when their layout resizes the window.
func (s *App) UpdateWindowSize(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	terminated := s.terminated
	s.mu.Unlock()

	if !terminated {
		s.window.Resize(fyne.NewSize(float32(width), float32(height)))
	}
}

func (s *App) defaultContent() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabel("This is the window (left-click the tray icon to restore)"),
		widget.NewButton("Hide to tray", s.HideToTray),
	)
}

func (s *App) notifyStartup() {
	s.fyneApp.SendNotification(fyne.NewNotification(
		s.title,
		"Minimized to the tray. Click the tray icon to open.",
	))
}
