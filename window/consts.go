package window

// Win32 constants shared by the filter, the style arithmetic and the synchronizer.
// They are declared here rather than taken from x/sys so the logic builds and
// tests on every platform.
const (
	WS_MAXIMIZEBOX  = 0x00010000
	WS_MINIMIZEBOX  = 0x00020000
	WS_THICKFRAME   = 0x00040000
	WS_SYSMENU      = 0x00080000
	WS_CAPTION      = 0x00C00000
	WS_CLIPCHILDREN = 0x02000000
	WS_CHILD        = 0x40000000

	WS_EX_DLGMODALFRAME = 0x00000001
	WS_EX_WINDOWEDGE    = 0x00000100
	WS_EX_APPWINDOW     = 0x00040000
)

const (
	WM_CLOSE          = 0x0010
	WM_NCHITTEST      = 0x0084
	WM_SYSCOMMAND     = 0x0112
	WM_CAPTURECHANGED = 0x0215

	HTCLIENT = 1

	SC_MOVE = 0xF010
)

const (
	SWP_NOSIZE       = 0x0001
	SWP_NOMOVE       = 0x0002
	SWP_NOZORDER     = 0x0004
	SWP_NOACTIVATE   = 0x0010
	SWP_FRAMECHANGED = 0x0020
	SWP_SHOWWINDOW   = 0x0040
)

const (
	SW_HIDE          = 0
	SW_SHOWNORMAL    = 1
	SW_SHOWMINIMIZED = 2
	SW_SHOWMAXIMIZED = 3
	SW_RESTORE       = 9
)

// Special insert-after handles for SetWindowPos
const (
	HWND_TOPMOST   = ^Handle(0) // (HWND)-1
	HWND_NOTOPMOST = ^Handle(1) // (HWND)-2
)
