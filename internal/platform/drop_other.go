//go:build !darwin && !windows

package platform

// Gio's transfer targets receive X11/Wayland drops directly, so no native
// hook is needed here.

// SetupExternalDrop configures external file drop handling (no-op on this platform)
func SetupExternalDrop(viewPtr uintptr) {}
