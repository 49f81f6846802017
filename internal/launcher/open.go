package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
)

// startCommand is a seam so tests can intercept process launches.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// openTarget hands a file path or URL to the platform opener without
// waiting for the launched program.
func openTarget(target string) error {
	cmd := openCommand(target)
	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("failed to open %q: %w", target, err)
	}
	// Reap the opener once it exits.
	go cmd.Wait()
	return nil
}

func openCommand(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}
