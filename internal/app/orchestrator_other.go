//go:build !darwin && !windows

package app

// handlePlatformEvent handles platform view events. No-op where no native
// drop hook exists.
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	return false
}
