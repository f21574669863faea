//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/shayne/go-winpeg"
	"golang.org/x/sys/windows"

	"winembed/process"
)

// WindowsSpawner starts child processes inside a kill-on-close job object
type WindowsSpawner struct {
	log *logger.Logger
}

// NewSpawner creates a new WindowsSpawner
func NewSpawner() *WindowsSpawner {
	return &WindowsSpawner{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorOrange, coloransi.ColorPurple, "spawn")),
	}
}

// Spawn runs command with its main window shown or hidden. The process is
// created suspended, placed in its own job object and only then resumed, so
// nothing it starts can escape the job.
//
// When the job cannot be set up the child is returned together with the error
// so the caller can terminate it.
func (s *WindowsSpawner) Spawn(command string, show bool) (*Child, error) {
	cmdline, err := windows.UTF16PtrFromString(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", process.ErrSpawn, err)
	}

	si := windows.StartupInfo{
		Flags:      windows.STARTF_USESHOWWINDOW,
		ShowWindow: windows.SW_HIDE,
	}
	si.Cb = uint32(unsafe.Sizeof(si))
	if show {
		si.ShowWindow = windows.SW_SHOWNORMAL
	}

	var pi windows.ProcessInformation
	if err := windows.CreateProcess(nil, cmdline, nil, nil, false, windows.CREATE_SUSPENDED, nil, nil, &si, &pi); err != nil {
		return nil, fmt.Errorf("%w: CreateProcess(%q): %v", process.ErrSpawn, command, err)
	}

	child := &Child{
		pid:     process.ProcessID(pi.ProcessId),
		process: pi.Process,
		thread:  pi.Thread,
		log:     s.log,
	}

	group, err := winpeg.NewProcessExitGroup()
	if err != nil {
		return child, fmt.Errorf("%w: %v", process.ErrContainment, err)
	}
	child.group = &group

	if err := attach(group, pi.Process, child.pid); err != nil {
		return child, fmt.Errorf("%w: pid %d: %v", process.ErrAssign, child.pid, err)
	}

	if _, err := windows.ResumeThread(pi.Thread); err != nil {
		return child, fmt.Errorf("%w: ResumeThread: %v", process.ErrSpawn, err)
	}

	s.log.Infoln("Spawned", command, "pid", child.pid)
	return child, nil
}

func attach(g winpeg.ProcessExitGroup, handle windows.Handle, pid process.ProcessID) error {
	if err := windows.AssignProcessToJobObject(windows.Handle(g), handle); err == nil {
		return nil
	}

	p, err := os.FindProcess(int(pid))
	if err != nil {
		return err
	}
	defer p.Release()

	return g.AddProcess(p)
}

// Child is a process started by WindowsSpawner
type Child struct {
	mu      sync.Mutex
	pid     process.ProcessID
	process windows.Handle
	thread  windows.Handle
	group   *winpeg.ProcessExitGroup
	log     *logger.Logger
}

func (c *Child) PID() process.ProcessID {
	return c.pid
}

// Terminate kills the job and the process and closes every handle. Calling it
// again is a no-op.
func (c *Child) Terminate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.group != nil {
		if err := windows.TerminateJobObject(windows.Handle(*c.group), 1); err != nil {
			errs = append(errs, fmt.Errorf("TerminateJobObject: %w", err))
		}
		if err := c.group.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("closing job: %w", err))
		}
		c.group = nil
	}

	if c.process != 0 {
		// the job may already have taken it down
		if err := windows.TerminateProcess(c.process, 1); err != nil && !c.exitedLocked() {
			errs = append(errs, fmt.Errorf("TerminateProcess: %w", err))
		}
	}

	c.closeLocked()

	if len(errs) > 0 {
		c.log.Warn("Terminate pid", c.pid, errors.Join(errs...))
		return errors.Join(errs...)
	}

	c.log.Infoln("Terminated pid", c.pid)
	return nil
}

// Release closes the process and thread handles, waiting up to wait for the
// process to exit first. The job stays open, so the process is still killed
// when this program exits.
func (c *Child) Release(wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if wait > 0 && c.process != 0 {
		event, werr := windows.WaitForSingleObject(c.process, uint32(wait.Milliseconds()))
		switch {
		case werr != nil:
			err = fmt.Errorf("waiting for pid %d: %w", c.pid, werr)
		case event == uint32(windows.WAIT_TIMEOUT):
			err = fmt.Errorf("pid %d still running after %v", c.pid, wait)
		}
	}

	c.closeLocked()
	return err
}

func (c *Child) exitedLocked() bool {
	if c.process == 0 {
		return true
	}
	event, err := windows.WaitForSingleObject(c.process, 0)
	return err == nil && event == windows.WAIT_OBJECT_0
}

func (c *Child) closeLocked() {
	if c.thread != 0 {
		windows.CloseHandle(c.thread)
		c.thread = 0
	}
	if c.process != 0 {
		windows.CloseHandle(c.process)
		c.process = 0
	}
}
