//go:build darwin

package config

import (
	"os"
	"os/exec"
)

// DetectTerminals returns a list of installed terminal applications on macOS
func DetectTerminals() []TerminalInfo {
	// Popular macOS terminals in order of preference
	candidates := []TerminalInfo{
		{ID: "terminal", Name: "Terminal", Cmd: "", Default: true}, // Always available on macOS
		{ID: "iterm2", Name: "iTerm", Cmd: ""},
		{ID: "wezterm", Name: "WezTerm", Cmd: "wezterm"},
		{ID: "kitty", Name: "Kitty", Cmd: "kitty"},
		{ID: "alacritty", Name: "Alacritty", Cmd: "alacritty"},
		{ID: "ghostty", Name: "Ghostty", Cmd: "ghostty"},
	}

	var installed []TerminalInfo

	for _, term := range candidates {
		if term.Default {
			// Terminal.app is always available
			installed = append(installed, term)
			continue
		}

		// Check if command exists in PATH
		if term.Cmd != "" {
			if _, err := exec.LookPath(term.Cmd); err == nil {
				installed = append(installed, term)
				continue
			}
		}

		// Check if app exists in /Applications
		if info, err := os.Stat("/Applications/" + term.Name + ".app"); err == nil && info.IsDir() {
			installed = append(installed, term)
		}
	}

	return installed
}

// DefaultTerminalID returns the ID of the default terminal for macOS
func DefaultTerminalID() string {
	return "terminal"
}
