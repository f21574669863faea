package embed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/google/uuid"

	"winembed/config"
	"winembed/process"
	"winembed/window"
)

// Engine embeds one application window into one host window at a time
type Engine struct {
	id      string
	hostPID process.ProcessID
	host    window.Handle
	command string
	cfg     config.Config
	deps    Deps
	log     *logger.Logger

	resolver    *Resolver
	transform   *Transform
	interceptor *window.Interceptor
	monitor     *Monitor
	monitorOnce sync.Once

	running   atomic.Bool
	launching atomic.Bool
	wg        sync.WaitGroup

	mu       sync.Mutex
	child    Child
	embedded window.Handle
	cancel   context.CancelFunc
}

// New prepares an engine that will run command inside the window of hostPID.
// The host window is looked up once, here.
func New(hostPID process.ProcessID, command string, cfg config.Config, deps Deps) (*Engine, error) {
	if deps.Desktop == nil || deps.Processes == nil || deps.Spawner == nil || deps.Waiter == nil || deps.Procedure == nil {
		return nil, errors.New("embed: incomplete dependencies")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Self == 0 {
		deps.Self = process.ProcessID(os.Getpid())
	}
	if deps.Exit == nil {
		deps.Exit = os.Exit
	}

	id := uuid.NewString()[:8]
	e := &Engine{
		id:      id,
		hostPID: hostPID,
		command: command,
		cfg:     cfg,
		deps:    deps,
		log:     logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "embed-"+id)),
	}

	e.resolver = NewResolver(deps.Desktop, deps.Processes, e.log)
	e.transform = NewTransform(deps.Desktop, e.log)
	e.interceptor = window.NewInterceptor(deps.Desktop, deps.Desktop, e.log)
	e.interceptor.Bind(deps.Procedure(e.interceptor))
	e.monitor = NewMonitor(deps.Processes, deps.Waiter, deps.Self, e.hostExited, e.log)

	host, err := e.resolver.FindByProcess(hostPID)
	if err != nil {
		return nil, fmt.Errorf("%w: pid %d: %v", ErrHostNotFound, hostPID, err)
	}
	e.host = host

	e.log.Infoln("Host window", host, "of pid", hostPID)
	return e, nil
}

// Launch spawns the command, waits for its window and embeds it. It returns
// once the window is embedded; synchronization continues in the background
// until Stop is called or the host exits. If any step fails the child is
// terminated. A Stop that arrives before the window is embedded makes Launch
// return ErrStopped.
func (e *Engine) Launch(show bool) error {
	// a launch abandoned by Stop may still be unwinding
	if !e.launching.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.launching.Store(false)

	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := e.launch(show); err != nil {
		if !errors.Is(err, ErrStopped) {
			e.running.Store(false)
		}
		e.log.Warn("Launch of", e.command, "failed:", err)
		return err
	}
	return nil
}

func (e *Engine) launch(show bool) error {
	e.log.Infoln("Launching", e.command)

	ctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	child, err := e.deps.Spawner.Spawn(e.command, show)
	if err != nil {
		if child != nil {
			e.terminate(child)
		}
		return e.abandon(nil, cancel, err)
	}

	e.mu.Lock()
	e.child = child
	e.mu.Unlock()

	embedded, err := e.resolver.Resolve(ctx, child.PID(), e.cfg.Resolve.Timeout(), e.cfg.Resolve.Interval())
	if err != nil {
		return e.abandon(child, cancel, err)
	}

	// hooking replaces the window procedure, so it has to finish before any style churn
	hooked := e.interceptor.HookTree(embedded)
	e.log.Infoln("Hooked", hooked, "windows under", embedded)

	if err := e.transform.Embed(embedded, e.host); err != nil {
		return e.abandon(child, cancel, err)
	}

	syncer := NewSynchronizer(e.deps.Desktop, e.host, embedded, e.cfg.Sync.CornerRadius, e.log)

	// Stop flips running before it takes the lock, so the workers are either
	// counted before its Wait or never started
	e.mu.Lock()
	if !e.running.Load() {
		e.mu.Unlock()
		return e.abandon(child, cancel, ErrStopped)
	}
	e.embedded = embedded
	e.wg.Add(2)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		e.transform.Reassert(ctx, embedded, e.cfg.Embed.ReassertInterval(), e.cfg.Embed.ReassertDuration())
	}()
	go func() {
		defer e.wg.Done()
		syncer.Run(&e.running, e.cfg.Sync.TickInterval())
	}()

	// the wait only ends with the host, so one watchdog serves every launch
	e.monitorOnce.Do(func() {
		go e.monitor.Watch()
	})

	return nil
}

// abandon undoes a partial launch. The child is terminated unless Stop has
// already taken it. Once Stop has run the result is ErrStopped.
func (e *Engine) abandon(child Child, cancel context.CancelFunc, err error) error {
	e.mu.Lock()
	stopped := !e.running.Load()
	owned := child != nil && e.child == child
	if owned {
		e.child = nil
	}
	e.cancel = nil
	e.mu.Unlock()

	cancel()
	if owned {
		e.terminate(child)
	}
	if stopped {
		return ErrStopped
	}
	return err
}

func (e *Engine) terminate(child Child) {
	if err := child.Terminate(); err != nil {
		e.log.Warn("Terminating pid", child.PID(), err)
	}
}

// IsRunning reports whether an embedding is active
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Stop ends synchronization and waits for the background work to finish.
// With force the child is terminated; otherwise only our handles on it are
// released and it lives until it exits on its own or this program ends.
// The host watchdog keeps running.
func (e *Engine) Stop(force bool) error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	e.mu.Lock()
	child, cancel := e.child, e.cancel
	e.child, e.cancel = nil, nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()

	if child == nil {
		return nil
	}

	e.log.Infoln("Stopping pid", child.PID(), "force", force)
	if force {
		return child.Terminate()
	}
	return child.Release(0)
}

// hostExited tears everything down and ends the program
func (e *Engine) hostExited(parent process.ProcessID) {
	e.mu.Lock()
	child, embedded, cancel := e.child, e.embedded, e.cancel
	e.mu.Unlock()

	if child != nil {
		e.terminate(child)
	}

	e.running.Store(false)
	if cancel != nil {
		cancel()
	}

	if embedded != 0 {
		if err := e.deps.Desktop.Post(embedded, window.WM_CLOSE, 0, 0); err != nil {
			e.log.Debugln("Posting WM_CLOSE to", embedded, err)
		}
	}

	e.log.Infoln("Host", parent, "is gone, exiting")
	e.deps.Exit(0)
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Host() window.Handle {
	return e.host
}

func (e *Engine) Embedded() window.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.embedded
}

func (e *Engine) Child() Child {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.child
}

// Registry exposes the original window procedures recorded while hooking
func (e *Engine) Registry() *window.Registry {
	return e.interceptor.Registry()
}
