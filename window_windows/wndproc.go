//go:build windows

package window_windows

import (
	"golang.org/x/sys/windows"

	"winembed/window"
)

// Dispatcher receives every message delivered to a hooked window
type Dispatcher interface {
	Dispatch(h window.Handle, msg uint32, wparam, lparam uintptr) uintptr
}

// NewWindowProc creates a native window procedure that forwards to d. Each call
// consumes one of the process's limited callback slots, so create one per
// interceptor, not per window.
func NewWindowProc(d Dispatcher) uintptr {
	return windows.NewCallback(func(hwnd, msg, wparam, lparam uintptr) uintptr {
		return d.Dispatch(window.Handle(hwnd), uint32(msg), wparam, lparam)
	})
}
