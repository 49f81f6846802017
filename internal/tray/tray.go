// Package tray runs the system tray icon with its Show/Quit menu. The
// backend loop runs on its own goroutine; callers marshal the callbacks
// onto their own event loop as needed.
package tray

import "context"

// Controller stops a running tray icon.
type Controller interface {
	Stop()
}

// Options configures the tray icon.
type Options struct {
	// Icon holds the tray icon image bytes (.ico recommended on Windows,
	// PNG elsewhere).
	Icon []byte

	// Tooltip is the hover text for the tray icon.
	Tooltip string

	// OnShow fires when the user asks for the main window (tray icon
	// click or the "Show" menu item).
	OnShow func()

	// OnQuit fires when the user picks "Quit" from the tray menu.
	OnQuit func()
}

// Start launches the platform tray implementation.
func Start(ctx context.Context, opts Options) (Controller, error) {
	return start(ctx, opts)
}
