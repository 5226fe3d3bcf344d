package config

// TerminalInfo represents an available terminal application
type TerminalInfo struct {
	ID      string // Identifier used in config
	Name    string // Display name
	Cmd     string // Command to check if installed
	Default bool   // True if this is the platform default
}

// PreferredTerminal resolves a configured terminal ID against the installed
// terminals. An empty or unknown ID falls back to the detected default,
// then to the first installed terminal.
func PreferredTerminal(id string) (TerminalInfo, bool) {
	installed := DetectTerminals()
	if len(installed) == 0 {
		return TerminalInfo{}, false
	}

	if id != "" {
		for _, term := range installed {
			if term.ID == id {
				return term, true
			}
		}
	}

	for _, term := range installed {
		if term.Default {
			return term, true
		}
	}
	return installed[0], true
}
