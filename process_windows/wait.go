//go:build windows

package process_windows

import (
	"fmt"

	"golang.org/x/sys/windows"

	"winembed/process"
)

// WindowsWaiter blocks on process exit with a SYNCHRONIZE handle
type WindowsWaiter struct{}

// NewWaiter creates a new WindowsWaiter
func NewWaiter() *WindowsWaiter {
	return &WindowsWaiter{}
}

// WaitForExit blocks until pid exits. There is no timeout and no way to cancel
// the wait other than the process exiting. Failing to open the process wraps
// process.ErrParentUnavailable.
func (w *WindowsWaiter) WaitForExit(pid process.ProcessID) error {
	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("%w: OpenProcess(%d): %v", process.ErrParentUnavailable, pid, err)
	}
	defer windows.CloseHandle(h)

	event, err := windows.WaitForSingleObject(h, windows.INFINITE)
	if err != nil {
		return fmt.Errorf("waiting for process %d: %w", pid, err)
	}
	if event != windows.WAIT_OBJECT_0 {
		return fmt.Errorf("unexpected wait result for process %d: %d", pid, event)
	}
	return nil
}
