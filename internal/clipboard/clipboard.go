// Package clipboard copies generated prompts to the system clipboard by
// shelling out to the platform utility.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoUtility reports that no clipboard utility is installed.
type ErrNoUtility struct {
	OS string
}

func (e *ErrNoUtility) Error() string {
	switch e.OS {
	case "linux":
		return "no clipboard utility found. Install one of:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	default:
		return fmt.Sprintf("clipboard not supported on %s", e.OS)
	}
}

// Copy copies text to the system clipboard
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "windows":
		return pipeTo(text, "cmd", "/c", "clip")
	case "linux":
		return copyLinux(text)
	default:
		return &ErrNoUtility{OS: runtime.GOOS}
	}
}

// copyLinux tries xclip, xsel, then wl-copy
func copyLinux(text string) error {
	var lastErr error

	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
	}
	for _, candidate := range candidates {
		if !isCommandAvailable(candidate[0]) {
			continue
		}
		if err := pipeTo(text, candidate[0], candidate[1:]...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", candidate[0], err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return lastErr
	}
	return &ErrNoUtility{OS: "linux"}
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CopyWithFallback copies to the clipboard and returns a user-facing message
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		var noUtil *ErrNoUtility
		if errors.As(err, &noUtil) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsAvailable reports whether a clipboard utility can be found
func IsAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return isCommandAvailable("pbcopy")
	case "windows":
		return true
	case "linux":
		return isCommandAvailable("xclip") || isCommandAvailable("xsel") || isCommandAvailable("wl-copy")
	default:
		return false
	}
}
