// Package window holds the platform-neutral half of window embedding: handle and
// geometry types, the style arithmetic applied to an embedded window, the message
// filter installed on hooked windows and the registry of their original procedures.
//
// The Win32 implementation of the interfaces declared here lives in window_windows.
package window

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no visible window could be resolved in time.
	ErrNotFound = errors.New("window not found")

	// ErrHookNoop is returned when a window procedure could not be replaced.
	ErrHookNoop = errors.New("window procedure not replaced")
)

// Handle is an opaque native window handle (HWND)
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// Rect mirrors a Win32 RECT. Right and Bottom are exclusive.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Left, r.Top, r.Width(), r.Height())
}

// ShowState is the show command reported by GetWindowPlacement
type ShowState uint32

const (
	ShowHidden    ShowState = SW_HIDE
	ShowNormal    ShowState = SW_SHOWNORMAL
	ShowMinimized ShowState = SW_SHOWMINIMIZED
	ShowMaximized ShowState = SW_SHOWMAXIMIZED
)

func (s ShowState) String() string {
	switch s {
	case ShowHidden:
		return "hidden"
	case ShowNormal:
		return "normal"
	case ShowMinimized:
		return "minimized"
	case ShowMaximized:
		return "maximized"
	}
	return fmt.Sprintf("show(%d)", uint32(s))
}
