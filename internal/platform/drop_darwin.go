//go:build darwin && !ios

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation

#include <stdint.h>

void quickdeck_setupExternalDrop(uintptr_t viewPtr);
*/
import "C"

// SetupExternalDrop configures the NSView to accept external file drops.
// This should be called when AppKitViewEvent is received with a valid View pointer.
func SetupExternalDrop(viewPtr uintptr) {
	if viewPtr == 0 {
		return
	}
	C.quickdeck_setupExternalDrop(C.uintptr_t(viewPtr))
}

//export quickdeck_onExternalDrop
func quickdeck_onExternalDrop(pathCStr *C.char, x C.int, y C.int) {
	deliverDrop([]string{C.GoString(pathCStr)}, int(x), int(y))
}
