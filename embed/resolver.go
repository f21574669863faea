package embed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/process"
	"winembed/window"
)

// Resolver finds the visible window belonging to a process or any of its descendants
type Resolver struct {
	windows window.Enumerator
	procs   *process.Finder
	log     *logger.Logger
}

func NewResolver(windows window.Enumerator, procs *process.Finder, log *logger.Logger) *Resolver {
	return &Resolver{
		windows: windows,
		procs:   procs,
		log:     log,
	}
}

// Resolve polls every interval until a visible window owned by pid or one of
// its descendants shows up. Top-level windows are searched first, then the
// windows of every thread in the process tree. The first match in enumeration
// order wins.
//
// After timeout the error wraps window.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, pid process.ProcessID, timeout, interval time.Duration) (window.Handle, error) {
	deadline := time.Now().Add(timeout)
	attempts := 0

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}

		attempts++
		if h, ok := r.attempt(pid); ok {
			r.log.Infoln("Resolved window", h, "for pid", pid, "after", attempts, "attempts")
			return h, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			if node, err := r.procs.GetProcessTree(pid); err == nil {
				r.log.Debugln("No window after", attempts, "attempts, process tree:", node)
			}
			return 0, fmt.Errorf("%w: resolution timeout for pid %d after %v", window.ErrNotFound, pid, timeout)
		}
		timer.Reset(min(interval, remaining))
	}
}

func (r *Resolver) attempt(pid process.ProcessID) (window.Handle, bool) {
	tree, err := r.procs.Tree(pid)
	if err != nil {
		r.log.Debugln("Process snapshot failed, searching pid", pid, "alone:", err)
	}

	if h, ok := r.findTopLevel(tree); ok {
		return h, true
	}

	threads, err := r.procs.ThreadsOf(tree)
	if err != nil {
		r.log.Debugln("Thread snapshot failed:", err)
		return 0, false
	}

	for _, tid := range threads {
		handles, err := r.windows.ThreadWindows(tid)
		if err != nil {
			r.log.Debugln("Enumerating windows of thread", tid, "failed:", err)
			continue
		}
		for _, h := range handles {
			if r.windows.IsVisible(h) {
				return h, true
			}
		}
	}

	return 0, false
}

func (r *Resolver) findTopLevel(tree process.Tree) (window.Handle, bool) {
	handles, err := r.windows.TopLevelWindows()
	if err != nil {
		r.log.Debugln("Enumerating top-level windows failed:", err)
		return 0, false
	}

	for _, h := range handles {
		if tree.Contains(r.windows.WindowProcessID(h)) && r.windows.IsVisible(h) {
			return h, true
		}
	}
	return 0, false
}

// FindByProcess returns the first visible top-level window of pid without retrying
func (r *Resolver) FindByProcess(pid process.ProcessID) (window.Handle, error) {
	if h, ok := r.findTopLevel(process.NewTree(pid)); ok {
		return h, nil
	}
	return 0, fmt.Errorf("%w: no visible window for pid %d", window.ErrNotFound, pid)
}

// FindByTitle returns the first visible top-level window whose title contains title
func (r *Resolver) FindByTitle(title string) (window.Handle, error) {
	handles, err := r.windows.TopLevelWindows()
	if err != nil {
		return 0, err
	}

	for _, h := range handles {
		if r.windows.IsVisible(h) && strings.Contains(r.windows.Title(h), title) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: no visible window titled %q", window.ErrNotFound, title)
}
