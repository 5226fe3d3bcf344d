//go:build windows

package main

import (
	"syscall"
)

// manageConsole handles the console window visibility on Windows.
// If debug is false, it detaches (hides) the console window.
func manageConsole(debug bool) {
	if !debug {
		// FreeConsole detaches the calling process from its console,
		// so launching from Explorer does not leave a console window behind.
		kernel32 := syscall.NewLazyDLL("kernel32.dll")
		freeConsole := kernel32.NewProc("FreeConsole")
		freeConsole.Call()
	}
}
