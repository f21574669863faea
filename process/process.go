// Package process provides platform-neutral types for spawning and tracking
// the processes behind an embedded window.
package process

import "errors"

var (
	// ErrSpawn is returned when the child process could not be created.
	ErrSpawn = errors.New("spawn failed")

	// ErrContainment is returned when the containment group (job object) could not be
	// created or configured. The already created process is still returned to the caller.
	ErrContainment = errors.New("containment group setup failed")

	// ErrAssign is returned when the spawned process could not be added to its
	// containment group.
	ErrAssign = errors.New("assign to containment group failed")

	// ErrParentUnavailable is returned when the watchdog cannot open the host process.
	ErrParentUnavailable = errors.New("parent process unavailable")

	ErrProcessNotFound = errors.New("process not found")
)
