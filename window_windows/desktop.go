//go:build windows

// Package window_windows implements window.Desktop on top of user32 and gdi32.
package window_windows

import (
	"fmt"
	"unsafe"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"

	"winembed/process"
	"winembed/window"
)

// Desktop implements window.Desktop for the interactive Windows desktop
type Desktop struct {
	log *logger.Logger
}

// NewDesktop creates a Desktop
func NewDesktop() *Desktop {
	return &Desktop{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "desktop")),
	}
}

// TopLevelWindows lists every top-level window in z-order
func (d *Desktop) TopLevelWindows() ([]window.Handle, error) {
	var callErr error
	handles := collect(func(id uintptr) {
		ret, _, err := procEnumWindows.Call(enumCallback, id)
		if ret == 0 {
			callErr = fmt.Errorf("EnumWindows failed: %v", err)
		}
	})
	return handles, callErr
}

// ThreadWindows lists the non-child windows created by thread tid
func (d *Desktop) ThreadWindows(tid process.ThreadID) ([]window.Handle, error) {
	// EnumThreadWindows returns FALSE for threads without windows, that is not an error
	handles := collect(func(id uintptr) {
		procEnumThreadWindows.Call(uintptr(tid), enumCallback, id)
	})
	return handles, nil
}

// ChildWindows walks the direct children of h with FindWindowEx
func (d *Desktop) ChildWindows(h window.Handle) []window.Handle {
	var children []window.Handle
	var child uintptr
	for {
		child, _, _ = procFindWindowExW.Call(uintptr(h), child, 0, 0)
		if child == 0 {
			return children
		}
		children = append(children, window.Handle(child))
	}
}

// WindowProcessID returns the process that created h, 0 when h is gone
func (d *Desktop) WindowProcessID(h window.Handle) process.ProcessID {
	var pid uint32
	procGetWindowThreadProcessId.Call(uintptr(h), uintptr(unsafe.Pointer(&pid)))
	return process.ProcessID(pid)
}

// IsVisible wraps IsWindowVisible, so a hidden ancestor hides h too
func (d *Desktop) IsVisible(h window.Handle) bool {
	ret, _, _ := procIsWindowVisible.Call(uintptr(h))
	return ret != 0
}

// IsZoomed reports whether h is maximized
func (d *Desktop) IsZoomed(h window.Handle) bool {
	ret, _, _ := procIsZoomed.Call(uintptr(h))
	return ret != 0
}

// ClassName returns the window class of h
func (d *Desktop) ClassName(h window.Handle) string {
	buf := make([]uint16, 256)
	n, _, _ := procGetClassNameW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

// Title returns the caption of h
func (d *Desktop) Title(h window.Handle) string {
	buf := make([]uint16, 256)
	n, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func (d *Desktop) getLong(h window.Handle, index int32) (uintptr, error) {
	clearLastError()
	ret, _, err := procGetWindowLongPtrW.Call(uintptr(h), signed(index))
	if ret == 0 && err != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("GetWindowLongPtr(%d) failed: %v", index, err)
	}
	return ret, nil
}

func (d *Desktop) setLong(h window.Handle, index int32, value uintptr) (uintptr, error) {
	clearLastError()
	prev, _, err := procSetWindowLongPtrW.Call(uintptr(h), signed(index), value)
	if prev == 0 && err != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("SetWindowLongPtr(%d) failed: %v", index, err)
	}
	return prev, nil
}

// Style reads GWL_STYLE
func (d *Desktop) Style(h window.Handle) (uint32, error) {
	style, err := d.getLong(h, GWL_STYLE)
	return uint32(style), err
}

// SetStyle writes GWL_STYLE
func (d *Desktop) SetStyle(h window.Handle, style uint32) error {
	_, err := d.setLong(h, GWL_STYLE, uintptr(style))
	return err
}

// ExStyle reads GWL_EXSTYLE
func (d *Desktop) ExStyle(h window.Handle) (uint32, error) {
	style, err := d.getLong(h, GWL_EXSTYLE)
	return uint32(style), err
}

// SetExStyle writes GWL_EXSTYLE
func (d *Desktop) SetExStyle(h window.Handle, exStyle uint32) error {
	_, err := d.setLong(h, GWL_EXSTYLE, uintptr(exStyle))
	return err
}

// SetOwner replaces the owner window of h
func (d *Desktop) SetOwner(h window.Handle, owner window.Handle) error {
	_, err := d.setLong(h, GWLP_HWNDPARENT, uintptr(owner))
	return err
}

// Subclass replaces the window procedure of h. The OS refuses this for windows
// owned by another process, in which case an error is returned and nothing changes.
func (d *Desktop) Subclass(h window.Handle, proc uintptr) (uintptr, error) {
	return d.setLong(h, GWLP_WNDPROC, proc)
}

// SetParent moves child under parent
func (d *Desktop) SetParent(child, parent window.Handle) error {
	clearLastError()
	ret, _, err := procSetParent.Call(uintptr(child), uintptr(parent))
	if ret == 0 && err != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetParent failed: %v", err)
	}
	return nil
}

// SetPos wraps SetWindowPos
func (d *Desktop) SetPos(h window.Handle, insertAfter window.Handle, r window.Rect, flags uint32) error {
	ret, _, err := procSetWindowPos.Call(
		uintptr(h),
		uintptr(insertAfter),
		signed(r.Left),
		signed(r.Top),
		signed(r.Width()),
		signed(r.Height()),
		uintptr(flags),
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %v", err)
	}
	return nil
}

// Move places h at r in its parent's client coordinates
func (d *Desktop) Move(h window.Handle, r window.Rect, repaint bool) error {
	ret, _, err := procMoveWindow.Call(
		uintptr(h),
		signed(r.Left),
		signed(r.Top),
		signed(r.Width()),
		signed(r.Height()),
		boolArg(repaint),
	)
	if ret == 0 {
		return fmt.Errorf("MoveWindow failed: %v", err)
	}
	return nil
}

// Show wraps ShowWindow
func (d *Desktop) Show(h window.Handle, cmd int32) {
	procShowWindow.Call(uintptr(h), signed(cmd))
}

// Placement returns the show state of h
func (d *Desktop) Placement(h window.Handle) (window.ShowState, error) {
	wp := windowPlacement{}
	wp.Length = uint32(unsafe.Sizeof(wp))
	ret, _, err := procGetWindowPlacement.Call(uintptr(h), uintptr(unsafe.Pointer(&wp)))
	if ret == 0 {
		return 0, fmt.Errorf("GetWindowPlacement failed: %v", err)
	}
	return window.ShowState(wp.ShowCmd), nil
}

// ClientRect returns the client area of h
func (d *Desktop) ClientRect(h window.Handle) (window.Rect, error) {
	var r rect
	ret, _, err := procGetClientRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return window.Rect{}, fmt.Errorf("GetClientRect failed: %v", err)
	}
	return window.Rect(r), nil
}

// MonitorWorkArea returns the work area of the monitor nearest to h
func (d *Desktop) MonitorWorkArea(h window.Handle) (window.Rect, error) {
	monitor, _, _ := procMonitorFromWindow.Call(uintptr(h), MONITOR_DEFAULTTONEAREST)
	if monitor == 0 {
		return window.Rect{}, fmt.Errorf("MonitorFromWindow returned no monitor")
	}

	mi := monitorInfo{}
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	ret, _, err := procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return window.Rect{}, fmt.Errorf("GetMonitorInfo failed: %v", err)
	}
	return window.Rect(mi.RcWork), nil
}

// CallWindowProc forwards a message to the procedure proc
func (d *Desktop) CallWindowProc(proc uintptr, h window.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	ret, _, _ := procCallWindowProcW.Call(proc, uintptr(h), uintptr(msg), wparam, lparam)
	return ret
}

// DefWindowProc runs the default handling for a message
func (d *Desktop) DefWindowProc(h window.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	ret, _, _ := procDefWindowProcW.Call(uintptr(h), uintptr(msg), wparam, lparam)
	return ret
}

// Post queues a message for h without waiting
func (d *Desktop) Post(h window.Handle, msg uint32, wparam, lparam uintptr) error {
	ret, _, err := procPostMessageW.Call(uintptr(h), uintptr(msg), wparam, lparam)
	if ret == 0 {
		return fmt.Errorf("PostMessage failed: %v", err)
	}
	return nil
}

// SupportsCornerMask reports Windows 11 (build 22000 and later)
func (d *Desktop) SupportsCornerMask() bool {
	v := windows.RtlGetVersion()
	return v.MajorVersion == 10 && v.BuildNumber >= 22000
}
