package window

import "winembed/process"

// Enumerator discovers windows and who owns them
type Enumerator interface {
	// TopLevelWindows returns every top-level window in z-order
	TopLevelWindows() ([]Handle, error)

	// ThreadWindows returns the top-level windows created by a thread
	ThreadWindows(tid process.ThreadID) ([]Handle, error)

	// ChildWindows returns the direct children of h
	ChildWindows(h Handle) []Handle

	// WindowProcessID returns the process owning h, zero if h is gone
	WindowProcessID(h Handle) process.ProcessID

	IsVisible(h Handle) bool
	ClassName(h Handle) string
	Title(h Handle) string
}

// Styler reads and writes window styles and parentage
type Styler interface {
	Style(h Handle) (uint32, error)
	SetStyle(h Handle, style uint32) error
	ExStyle(h Handle) (uint32, error)
	SetExStyle(h Handle, exStyle uint32) error

	// SetPos wraps SetWindowPos
	SetPos(h Handle, insertAfter Handle, r Rect, flags uint32) error

	// SetParent makes child a child window of parent
	SetParent(child, parent Handle) error

	// SetOwner rewrites the owner/parent pointer (GWLP_HWNDPARENT)
	SetOwner(h Handle, owner Handle) error
}

// Placer observes and changes window geometry and visibility
type Placer interface {
	Placement(h Handle) (ShowState, error)
	ClientRect(h Handle) (Rect, error)
	IsZoomed(h Handle) bool

	// Move wraps MoveWindow
	Move(h Handle, r Rect, repaint bool) error

	// SetPos wraps SetWindowPos
	SetPos(h Handle, insertAfter Handle, r Rect, flags uint32) error

	// Show wraps ShowWindow
	Show(h Handle, cmd int32)

	// MonitorWorkArea returns the work area of the monitor nearest to h
	MonitorWorkArea(h Handle) (Rect, error)

	// SetCornerMask installs mask as the window region, nil removes any region
	SetCornerMask(h Handle, mask *CornerMask) error

	// SupportsCornerMask reports whether the OS draws rounded frames (Windows 11 and later)
	SupportsCornerMask() bool
}

// Hooker replaces window procedures
type Hooker interface {
	ChildWindows(h Handle) []Handle
	ClassName(h Handle) string

	// Subclass installs proc as the window procedure of h and returns the previous one
	Subclass(h Handle, proc uintptr) (uintptr, error)
}

// Forwarder hands messages to a window procedure
type Forwarder interface {
	CallWindowProc(proc uintptr, h Handle, msg uint32, wparam, lparam uintptr) uintptr
	DefWindowProc(h Handle, msg uint32, wparam, lparam uintptr) uintptr
}

// Messenger posts messages without waiting for them to be processed
type Messenger interface {
	Post(h Handle, msg uint32, wparam, lparam uintptr) error
}

// Desktop is everything the embedding engine needs from the window system
type Desktop interface {
	Enumerator
	Styler
	Placer
	Hooker
	Forwarder
	Messenger
}
