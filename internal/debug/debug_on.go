//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	APP    Category = "APP"    // Application orchestration, mode transitions, state
	CONFIG Category = "CONFIG" // Config load, save, hot reload
	DECK   Category = "DECK"   // Button placement, moves, grid resizes
	LAUNCH Category = "LAUNCH" // Action dispatch and process spawning
	SCAN   Category = "SCAN"   // Folder import walking
	STORE  Category = "STORE"  // Database operations, launch history, settings
	UI     Category = "UI"     // UI events, layout, rendering
	HOTKEY Category = "HOTKEY" // Keyboard shortcut handling and matching
	WATCH  Category = "WATCH"  // Config file watcher events

	// Detailed subcategories (use sparingly - can be verbose)
	UI_EVENT  Category = "UI_EVENT"  // UI event handling
	UI_LAYOUT Category = "UI_LAYOUT" // Layout calculations (extremely verbose)
)

var (
	// enabledCategories controls which categories are active
	// By default, all main categories are enabled
	enabledCategories = map[Category]bool{
		APP:    true,
		CONFIG: true,
		DECK:   true,
		LAUNCH: true,
		SCAN:   true,
		STORE:  true,
		UI:     true,
		HOTKEY: true,
		WATCH:  true,
		// Verbose categories disabled by default
		UI_EVENT:  false,
		UI_LAYOUT: false,
	}
	categoryMu sync.RWMutex

	// Output destination
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Check environment variable for category overrides
	// Format: QUICKDECK_DEBUG=APP,DECK,LAUNCH or QUICKDECK_DEBUG=all or QUICKDECK_DEBUG=none
	if env := os.Getenv("QUICKDECK_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			// Disable all first, then enable specified
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				cat = strings.TrimSpace(cat)
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// DisableAll disables all debug categories
func DisableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = false
	}
	categoryMu.Unlock()
}

// SetCategories sets the enabled state for multiple categories
func SetCategories(cats map[Category]bool) {
	categoryMu.Lock()
	for cat, enabled := range cats {
		enabledCategories[cat] = enabled
	}
	categoryMu.Unlock()
}

// ListEnabled returns a slice of currently enabled categories
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for cat, on := range enabledCategories {
		if on {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}
