// Package embed runs a foreign application's window inside a host window.
//
// An Engine spawns the application, finds its window, hooks its message handling,
// strips its chrome and re-parents it under the host, then keeps the two windows'
// geometry in step until it is stopped. A watchdog on the host's own process
// takes the child down with it.
package embed

import (
	"errors"
	"time"

	"winembed/process"
	"winembed/window"
)

var (
	// ErrHostNotFound is returned by New when the host process has no visible window.
	ErrHostNotFound = errors.New("host window not found")

	// ErrAlreadyRunning is returned by Launch when an embedding is already active.
	ErrAlreadyRunning = errors.New("engine already running")

	// ErrStopped is returned by Launch when Stop ends it before the window is embedded.
	ErrStopped = errors.New("engine stopped during launch")
)

// Child is a spawned process the engine owns
type Child interface {
	PID() process.ProcessID

	// Terminate kills the process and releases it. Safe to call more than once.
	Terminate() error

	// Release closes our handles on the process, waiting up to wait for it to exit.
	Release(wait time.Duration) error
}

// Spawner starts the embedded application. On containment failures it may
// return a non-nil Child alongside the error.
type Spawner interface {
	Spawn(command string, show bool) (Child, error)
}

// Waiter blocks until a process exits
type Waiter interface {
	WaitForExit(pid process.ProcessID) error
}

// Deps are the platform services an Engine is built on
type Deps struct {
	Desktop   window.Desktop
	Processes *process.Finder
	Spawner   Spawner
	Waiter    Waiter

	// Procedure turns an interceptor into a native window procedure address
	Procedure func(i *window.Interceptor) uintptr

	// Self is the pid whose parent the watchdog follows, usually os.Getpid()
	Self process.ProcessID

	// Exit ends the program once the host is gone, usually os.Exit
	Exit func(code int)
}
