//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"winembed/process"
)

// LinuxWaiter waits for a process by polling /proc, since there is no
// portable way to wait on a process that is not our child.
type LinuxWaiter struct {
	Root string
}

// NewWaiter creates a new LinuxWaiter
func NewWaiter() *LinuxWaiter {
	return &LinuxWaiter{Root: "/proc"}
}

// WaitForExit blocks until pid is gone. A pid that does not exist when the
// wait starts wraps process.ErrParentUnavailable, like a failed open on Windows.
func (w *LinuxWaiter) WaitForExit(pid process.ProcessID) error {
	if !w.exists(pid) {
		return fmt.Errorf("%w: pid %d does not exist", process.ErrParentUnavailable, pid)
	}

	tick := 25 * time.Millisecond
	for w.exists(pid) {
		time.Sleep(tick)
		// back off up to 250ms to reduce pressure on /proc
		if tick < 250*time.Millisecond {
			tick += 10 * time.Millisecond
		}
	}
	return nil
}

func (w *LinuxWaiter) exists(pid process.ProcessID) bool {
	_, err := os.Stat(filepath.Join(w.Root, strconv.Itoa(int(pid))))
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	// transient errors (permission, EIO): fall back to kill 0
	return syscall.Kill(int(pid), 0) == nil
}
