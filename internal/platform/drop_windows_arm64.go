//go:build windows && arm64

package platform

// Windows ARM64 stub - the WM_DROPFILES subclass callback path has not been
// validated on ARM64, so external drag-and-drop is disabled there.

// SetupExternalDrop configures external file drop handling (no-op on ARM64)
func SetupExternalDrop(hwnd uintptr) {}
