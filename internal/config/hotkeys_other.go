//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
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
		Settings: "Ctrl+Comma",

		// UI
		ToggleLabels: "Ctrl+L",
		Quit:         "Ctrl+Q",
	}
}
