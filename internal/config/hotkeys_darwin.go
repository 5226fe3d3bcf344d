//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
// Uses Cmd for settings and quit (macOS convention)
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		// Deck editing
		NewButton:    "Ctrl+N",
		EditButton:   "Ctrl+E",
		RemoveButton: "Delete",
		ImportFolder: "Ctrl+I",

		// Overlays
		Search:   "Ctrl+F",
		Help:     "F1",
		Settings: "Cmd+Comma",

		// UI
		ToggleLabels: "Ctrl+L",
		Quit:         "Cmd+Q",
	}
}
