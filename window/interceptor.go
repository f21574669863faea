package window

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"
)

// Interceptor installs a single window procedure on a window tree and routes
// the messages it receives through Filter before forwarding them to the
// procedure each window had before.
type Interceptor struct {
	hooker   Hooker
	fwd      Forwarder
	registry *Registry
	proc     uintptr
	log      *logger.Logger
}

// NewInterceptor creates an interceptor with an empty registry. Bind must be
// called with the native procedure address before HookTree.
func NewInterceptor(hooker Hooker, fwd Forwarder, log *logger.Logger) *Interceptor {
	return &Interceptor{
		hooker:   hooker,
		fwd:      fwd,
		registry: NewRegistry(),
		log:      log,
	}
}

// Bind sets the native procedure installed on hooked windows. The procedure
// is expected to call Dispatch.
func (i *Interceptor) Bind(proc uintptr) {
	i.proc = proc
}

// Registry returns the original procedures recorded so far
func (i *Interceptor) Registry() *Registry {
	return i.registry
}

// HookTree hooks root and every descendant window present right now. Windows
// created later are not hooked until HookTree runs again; already hooked windows
// are left alone so their recorded original is never replaced with our own
// procedure. Windows that refuse the new procedure are skipped. It returns the
// number of windows newly hooked.
func (i *Interceptor) HookTree(root Handle) int {
	if i.proc == 0 {
		i.log.Warn("HookTree called before Bind, nothing hooked")
		return 0
	}
	return i.hook(root)
}

func (i *Interceptor) hook(h Handle) int {
	hooked := 0

	if !i.registry.Contains(h) {
		if err := i.install(h); err != nil {
			i.log.Debugln("Skipping", h, err)
		} else {
			hooked++
		}
	}

	for _, child := range i.hooker.ChildWindows(h) {
		hooked += i.hook(child)
	}

	return hooked
}

func (i *Interceptor) install(h Handle) error {
	original, err := i.hooker.Subclass(h, i.proc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHookNoop, err)
	}
	if original == i.proc {
		return fmt.Errorf("%w: already running our procedure", ErrHookNoop)
	}

	i.registry.Record(h, original)
	i.log.Infoln("Hooked", h, "class", i.hooker.ClassName(h))
	return nil
}

// Dispatch is the body of the installed window procedure
func (i *Interceptor) Dispatch(h Handle, msg uint32, wparam, lparam uintptr) uintptr {
	if result, handled := Filter(msg, wparam); handled {
		if msg == WM_SYSCOMMAND {
			i.log.Debugln("Blocked SC_MOVE on", h)
		}
		return result
	}

	if msg == WM_CAPTURECHANGED {
		i.log.Debugln("Capture changed on", h)
	}

	if original, ok := i.registry.Original(h); ok && original != 0 {
		return i.fwd.CallWindowProc(original, h, msg, wparam, lparam)
	}
	return i.fwd.DefWindowProc(h, msg, wparam, lparam)
}
