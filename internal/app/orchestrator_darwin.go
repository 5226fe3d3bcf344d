//go:build darwin && !ios

package app

import (
	"gioui.org/app"

	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/platform"
)

// handlePlatformEvent handles Darwin-specific view events
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	switch evt := e.(type) {
	case app.AppKitViewEvent:
		// Register the drag destination once the NSView handle exists
		debug.Log(debug.APP, "AppKitViewEvent: Valid=%v View=%d", evt.Valid(), evt.View)
		if evt.Valid() {
			platform.SetupExternalDrop(evt.View)
		}
		return true
	}
	return false
}
