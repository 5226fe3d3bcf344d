//go:build windows

package app

import (
	"gioui.org/app"

	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/platform"
)

// handlePlatformEvent handles Windows-specific view events
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	switch evt := e.(type) {
	case app.Win32ViewEvent:
		// Register the OLE drop target once the window handle exists
		debug.Log(debug.APP, "Win32ViewEvent: Valid=%v HWND=%d", evt.Valid(), evt.HWND)
		if evt.Valid() {
			platform.SetupExternalDrop(evt.HWND)
		}
		return true
	}
	return false
}
