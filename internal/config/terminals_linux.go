//go:build linux

package config

import "os/exec"

// DetectTerminals returns a list of installed terminal applications on Linux
func DetectTerminals() []TerminalInfo {
	// Popular Linux terminals in order of preference
	candidates := []TerminalInfo{
		{ID: "gnome-terminal", Name: "GNOME Terminal", Cmd: "gnome-terminal"},
		{ID: "konsole", Name: "Konsole", Cmd: "konsole"},
		{ID: "xfce4-terminal", Name: "XFCE Terminal", Cmd: "xfce4-terminal"},
		{ID: "mate-terminal", Name: "MATE Terminal", Cmd: "mate-terminal"},
		{ID: "tilix", Name: "Tilix", Cmd: "tilix"},
		{ID: "terminator", Name: "Terminator", Cmd: "terminator"},
		{ID: "alacritty", Name: "Alacritty", Cmd: "alacritty"},
		{ID: "kitty", Name: "Kitty", Cmd: "kitty"},
		{ID: "wezterm", Name: "WezTerm", Cmd: "wezterm"},
		{ID: "foot", Name: "Foot", Cmd: "foot"},
		{ID: "ghostty", Name: "Ghostty", Cmd: "ghostty"},
		{ID: "x-terminal-emulator", Name: "Default Terminal", Cmd: "x-terminal-emulator"},
		{ID: "xterm", Name: "XTerm", Cmd: "xterm"},
	}

	var installed []TerminalInfo
	foundDefault := false

	for _, term := range candidates {
		if _, err := exec.LookPath(term.Cmd); err == nil {
			// Mark the first found terminal as default
			if !foundDefault {
				term.Default = true
				foundDefault = true
			}
			installed = append(installed, term)
		}
	}

	return installed
}

// DefaultTerminalID returns the ID of the default terminal for Linux
// Returns empty string to use first available
func DefaultTerminalID() string {
	return ""
}
