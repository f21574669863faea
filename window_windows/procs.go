//go:build windows

package window_windows

import (
	"golang.org/x/sys/windows"
)

var (
	moduser32 = windows.NewLazySystemDLL("user32.dll")
	modgdi32  = windows.NewLazySystemDLL("gdi32.dll")
	modkernel = windows.NewLazySystemDLL("kernel32.dll")

	procEnumWindows              = moduser32.NewProc("EnumWindows")
	procEnumThreadWindows        = moduser32.NewProc("EnumThreadWindows")
	procFindWindowExW            = moduser32.NewProc("FindWindowExW")
	procGetWindowThreadProcessId = moduser32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible          = moduser32.NewProc("IsWindowVisible")
	procIsZoomed                 = moduser32.NewProc("IsZoomed")
	procGetClassNameW            = moduser32.NewProc("GetClassNameW")
	procGetWindowTextW           = moduser32.NewProc("GetWindowTextW")
	procCallWindowProcW          = moduser32.NewProc("CallWindowProcW")
	procDefWindowProcW           = moduser32.NewProc("DefWindowProcW")
	procSetParent                = moduser32.NewProc("SetParent")
	procSetWindowPos             = moduser32.NewProc("SetWindowPos")
	procMoveWindow               = moduser32.NewProc("MoveWindow")
	procShowWindow               = moduser32.NewProc("ShowWindow")
	procGetClientRect            = moduser32.NewProc("GetClientRect")
	procGetWindowPlacement       = moduser32.NewProc("GetWindowPlacement")
	procMonitorFromWindow        = moduser32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW          = moduser32.NewProc("GetMonitorInfoW")
	procSetWindowRgn             = moduser32.NewProc("SetWindowRgn")
	procPostMessageW             = moduser32.NewProc("PostMessageW")

	procCreateRectRgn      = modgdi32.NewProc("CreateRectRgn")
	procCreateRoundRectRgn = modgdi32.NewProc("CreateRoundRectRgn")
	procCombineRgn         = modgdi32.NewProc("CombineRgn")
	procDeleteObject       = modgdi32.NewProc("DeleteObject")

	procSetLastError = modkernel.NewProc("SetLastError")
)

const (
	GWLP_WNDPROC    = -4
	GWLP_HWNDPARENT = -8
	GWL_STYLE       = -16
	GWL_EXSTYLE     = -20

	MONITOR_DEFAULTTONEAREST = 2

	RGN_OR = 2
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type windowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    point
	PtMaxPosition    point
	RcNormalPosition rect
}

type monitorInfo struct {
	CbSize    uint32
	RcMonitor rect
	RcWork    rect
	DwFlags   uint32
}

// signed converts a possibly negative Win32 int argument for a syscall slot
func signed(v int32) uintptr {
	return uintptr(v)
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func clearLastError() {
	procSetLastError.Call(0)
}
