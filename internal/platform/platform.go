// Package platform bridges OS-native external drag-and-drop into the app.
// Gio's transfer API delivers drops on Linux; Windows and macOS need native
// hooks installed on the window once its view handle is known.
package platform

import "sync"

// DropHandler is called when files are dropped from an external source.
// x, y are the drop point in window pixels, or -1, -1 when unknown.
type DropHandler func(paths []string, x, y int)

type pendingFiles struct {
	paths []string
	x, y  int
}

var (
	dropMu      sync.Mutex
	dropHandler DropHandler
	pendingDrop []pendingFiles
)

// SetDropHandler sets the callback for external file drops.
func SetDropHandler(handler DropHandler) {
	dropMu.Lock()
	defer dropMu.Unlock()
	dropHandler = handler

	// Deliver drops that arrived before the handler was registered
	if handler != nil {
		for _, p := range pendingDrop {
			handler(p.paths, p.x, p.y)
		}
		pendingDrop = nil
	}
}

// deliverDrop hands paths to the handler, or queues them until one is set.
func deliverDrop(paths []string, x, y int) {
	if len(paths) == 0 {
		return
	}

	dropMu.Lock()
	handler := dropHandler
	if handler == nil {
		pendingDrop = append(pendingDrop, pendingFiles{paths: paths, x: x, y: y})
	}
	dropMu.Unlock()

	if handler != nil {
		handler(paths, x, y)
	}
}
