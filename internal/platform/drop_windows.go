//go:build windows && !arm64

package platform

// Windows drag-and-drop implementation using WM_DROPFILES.
// This uses DragAcceptFiles + window subclassing to receive dropped files.
// Unlike IDropTarget, this doesn't require external thread callbacks.

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// Windows constants for WM_DROPFILES
const (
	WM_DROPFILES = 0x0233
)

// Windows API
var (
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	comctl32 = windows.NewLazySystemDLL("comctl32.dll")

	procDragAcceptFiles   = shell32.NewProc("DragAcceptFiles")
	procDragQueryFileW    = shell32.NewProc("DragQueryFileW")
	procDragQueryPoint    = shell32.NewProc("DragQueryPoint")
	procDragFinish        = shell32.NewProc("DragFinish")
	procSetWindowSubclass = comctl32.NewProc("SetWindowSubclass")
	procDefSubclassProc   = comctl32.NewProc("DefSubclassProc")
)

// Subclass ID for our handler
const dropSubclassID = 1

var (
	subclassHwnd     uintptr
	subclassCallback uintptr // prevent GC of callback
)

// dropSubclassProc handles WM_DROPFILES messages
// Signature for SetWindowSubclass: SUBCLASSPROC(HWND, UINT, WPARAM, LPARAM, UINT_PTR uIdSubclass, DWORD_PTR dwRefData)
func dropSubclassProc(hwnd uintptr, msg uint32, wParam, lParam, uIdSubclass, dwRefData uintptr) uintptr {
	if msg == WM_DROPFILES {
		debug.Log(debug.APP, "[Windows DnD] WM_DROPFILES received! wParam=0x%x", wParam)
		handleDropFiles(wParam)
		return 0
	}

	// Call next handler in subclass chain
	ret, _, _ := procDefSubclassProc.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

// handleDropFiles extracts the drop point and file paths from HDROP and
// delivers them to the drop handler
func handleDropFiles(hDrop uintptr) {
	// Drop point in client coordinates; only valid inside the client area
	var pt struct{ X, Y int32 }
	x, y := -1, -1
	inClient, _, _ := procDragQueryPoint.Call(hDrop, uintptr(unsafe.Pointer(&pt)))
	if inClient != 0 {
		x, y = int(pt.X), int(pt.Y)
	}

	// Get number of files
	count, _, _ := procDragQueryFileW.Call(hDrop, 0xFFFFFFFF, 0, 0)
	debug.Log(debug.APP, "[Windows DnD] Drop contains %d files at (%d, %d)", count, x, y)

	if count == 0 {
		procDragFinish.Call(hDrop)
		return
	}

	var paths []string
	for i := uintptr(0); i < count; i++ {
		// Get required buffer size
		size, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		if size == 0 {
			continue
		}

		// Allocate buffer and get file path
		buf := make([]uint16, size+1)
		procDragQueryFileW.Call(hDrop, i, uintptr(unsafe.Pointer(&buf[0])), size+1)
		path := windows.UTF16ToString(buf)
		debug.Log(debug.APP, "[Windows DnD] File[%d]: %s", i, path)
		paths = append(paths, path)
	}

	// Release HDROP
	procDragFinish.Call(hDrop)

	deliverDrop(paths, x, y)
}

// SetupExternalDrop configures the window to accept external file drops
func SetupExternalDrop(hwnd uintptr) {
	debug.Log(debug.APP, "[Windows DnD] SetupExternalDrop called with hwnd=0x%x", hwnd)

	if hwnd == 0 {
		debug.Log(debug.APP, "[Windows DnD] SetupExternalDrop: hwnd is 0, skipping")
		return
	}

	// Keep the CGO thread-init shim linked in; NewCallback needs it for
	// callbacks arriving on Windows-owned threads
	if !CgoEnabled() {
		debug.Log(debug.APP, "[Windows DnD] CGO not linked, drops may misbehave")
	}

	// Enable drag-and-drop for this window
	procDragAcceptFiles.Call(hwnd, 1)
	debug.Log(debug.APP, "[Windows DnD] DragAcceptFiles called")

	// Subclass the window using comctl32 SetWindowSubclass (safer than SetWindowLongPtr)
	subclassHwnd = hwnd
	subclassCallback = syscall.NewCallback(dropSubclassProc) // store to prevent GC
	ret, _, err := procSetWindowSubclass.Call(hwnd, subclassCallback, dropSubclassID, 0)
	if ret == 0 {
		debug.Log(debug.APP, "[Windows DnD] SetWindowSubclass failed: %v", err)
		return
	}
	debug.Log(debug.APP, "[Windows DnD] Window subclassed with SetWindowSubclass")
}
