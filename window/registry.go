package window

import "sync"

// Registry maps every hooked window to the procedure it had before hooking.
// Entries are never removed; a registry lives as long as the engine that owns it.
type Registry struct {
	mu    sync.Mutex
	procs map[Handle]uintptr
	order []Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		procs: make(map[Handle]uintptr),
	}
}

// Record stores the original procedure of h. It returns false and keeps the
// existing entry if h was already recorded.
func (r *Registry) Record(h Handle, original uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.procs[h]; exists {
		return false
	}
	r.procs[h] = original
	r.order = append(r.order, h)
	return true
}

// Original returns the procedure h had before it was hooked
func (r *Registry) Original(h Handle) (uintptr, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proc, ok := r.procs[h]
	return proc, ok
}

// Contains reports whether h has been hooked
func (r *Registry) Contains(h Handle) bool {
	_, ok := r.Original(h)
	return ok
}

// Len returns the number of hooked windows
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

// Handles returns the hooked windows in hook order
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Handle, len(r.order))
	copy(result, r.order)
	return result
}
