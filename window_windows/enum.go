//go:build windows

package window_windows

import (
	"sync"

	"golang.org/x/sys/windows"

	"winembed/window"
)

// Enumeration callbacks are created once; windows.NewCallback slots are a
// limited resource. Each enumeration gets its own collector, selected by the
// LPARAM value handed to the callback.
var (
	collectorsMu  sync.Mutex
	collectors    = make(map[uintptr]*[]window.Handle)
	nextCollector uintptr

	enumCallback = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		collectorsMu.Lock()
		handles := collectors[lparam]
		if handles != nil {
			*handles = append(*handles, window.Handle(hwnd))
		}
		collectorsMu.Unlock()
		return 1 // continue enumeration
	})
)

// collect registers a collector, runs enumerate with its id and returns every
// handle the callback received
func collect(enumerate func(id uintptr)) []window.Handle {
	var handles []window.Handle

	collectorsMu.Lock()
	nextCollector++
	id := nextCollector
	collectors[id] = &handles
	collectorsMu.Unlock()

	enumerate(id)

	collectorsMu.Lock()
	delete(collectors, id)
	collectorsMu.Unlock()

	return handles
}
