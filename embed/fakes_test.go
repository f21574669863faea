package embed

import (
	"errors"
	"sync"
	"time"

	"winembed/config"
	"winembed/process"
	"winembed/window"
)

type fakeWindow struct {
	pid      process.ProcessID
	visible  bool
	title    string
	style    uint32
	exStyle  uint32
	parent   window.Handle
	owner    window.Handle
	state    window.ShowState
	zoomed   bool
	client   window.Rect
	proc     uintptr
	children []window.Handle
	refuse   bool

	// number of top-level enumerations before the window shows up
	since int
}

type posCall struct {
	h     window.Handle
	after window.Handle
	r     window.Rect
	flags uint32
}

type moveCall struct {
	h window.Handle
	r window.Rect
}

type showCall struct {
	h   window.Handle
	cmd int32
}

type maskCall struct {
	h    window.Handle
	mask *window.CornerMask
}

type msgCall struct {
	proc uintptr
	h    window.Handle
	msg  uint32
}

// fakeDesktop is an in-memory window system
type fakeDesktop struct {
	mu      sync.Mutex
	windows map[window.Handle]*fakeWindow
	order   []window.Handle
	threads map[process.ThreadID][]window.Handle

	workArea       window.Rect
	rounded        bool
	placementErr   map[window.Handle]error
	setParentErr   error
	topLevelErr    error
	topLevelCalls  int
	threadEnumErrs map[process.ThreadID]error

	moves     []moveCall
	positions []posCall
	shows     []showCall
	masks     []maskCall
	posts     []msgCall
	forwarded []msgCall
	defaulted []msgCall
}

func newFakeDesktop() *fakeDesktop {
	return &fakeDesktop{
		windows:        map[window.Handle]*fakeWindow{},
		threads:        map[process.ThreadID][]window.Handle{},
		placementErr:   map[window.Handle]error{},
		threadEnumErrs: map[process.ThreadID]error{},
		workArea:       window.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040},
	}
}

// add registers a top-level window
func (d *fakeDesktop) add(h window.Handle, w *fakeWindow) *fakeWindow {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows[h] = w
	d.order = append(d.order, h)
	return w
}

// addChild registers a child window that is not part of top-level enumeration
func (d *fakeDesktop) addChild(parent, h window.Handle, w *fakeWindow) *fakeWindow {
	d.mu.Lock()
	defer d.mu.Unlock()
	w.parent = parent
	d.windows[h] = w
	d.windows[parent].children = append(d.windows[parent].children, h)
	return w
}

func (d *fakeDesktop) with(h window.Handle, fn func(w *fakeWindow)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.windows[h])
}

func (d *fakeDesktop) get(h window.Handle) fakeWindow {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.windows[h]
}

func (d *fakeDesktop) TopLevelWindows() ([]window.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.topLevelCalls++
	if d.topLevelErr != nil {
		return nil, d.topLevelErr
	}
	var out []window.Handle
	for _, h := range d.order {
		if d.topLevelCalls > d.windows[h].since {
			out = append(out, h)
		}
	}
	return out, nil
}

func (d *fakeDesktop) ThreadWindows(tid process.ThreadID) ([]window.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.threadEnumErrs[tid]; err != nil {
		return nil, err
	}
	return d.threads[tid], nil
}

func (d *fakeDesktop) ChildWindows(h window.Handle) []window.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[h]; ok {
		return append([]window.Handle(nil), w.children...)
	}
	return nil
}

func (d *fakeDesktop) WindowProcessID(h window.Handle) process.ProcessID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[h]; ok {
		return w.pid
	}
	return 0
}

func (d *fakeDesktop) IsVisible(h window.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	return ok && w.visible
}

func (d *fakeDesktop) ClassName(h window.Handle) string { return "FakeClass" }

func (d *fakeDesktop) Title(h window.Handle) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[h]; ok {
		return w.title
	}
	return ""
}

var errNoWindow = errors.New("invalid window handle")

func (d *fakeDesktop) lookup(h window.Handle) (*fakeWindow, error) {
	w, ok := d.windows[h]
	if !ok {
		return nil, errNoWindow
	}
	return w, nil
}

func (d *fakeDesktop) Style(h window.Handle) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return 0, err
	}
	return w.style, nil
}

func (d *fakeDesktop) SetStyle(h window.Handle, style uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return err
	}
	w.style = style
	return nil
}

func (d *fakeDesktop) ExStyle(h window.Handle) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return 0, err
	}
	return w.exStyle, nil
}

func (d *fakeDesktop) SetExStyle(h window.Handle, exStyle uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return err
	}
	w.exStyle = exStyle
	return nil
}

func (d *fakeDesktop) SetPos(h window.Handle, insertAfter window.Handle, r window.Rect, flags uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.lookup(h); err != nil {
		return err
	}
	d.positions = append(d.positions, posCall{h: h, after: insertAfter, r: r, flags: flags})
	return nil
}

func (d *fakeDesktop) SetParent(child, parent window.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.setParentErr != nil {
		return d.setParentErr
	}
	w, err := d.lookup(child)
	if err != nil {
		return err
	}
	w.parent = parent
	return nil
}

func (d *fakeDesktop) SetOwner(h window.Handle, owner window.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return err
	}
	w.owner = owner
	return nil
}

func (d *fakeDesktop) Placement(h window.Handle) (window.ShowState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.placementErr[h]; err != nil {
		return 0, err
	}
	w, err := d.lookup(h)
	if err != nil {
		return 0, err
	}
	return w.state, nil
}

func (d *fakeDesktop) ClientRect(h window.Handle) (window.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return window.Rect{}, err
	}
	return w.client, nil
}

func (d *fakeDesktop) IsZoomed(h window.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	return ok && w.zoomed
}

func (d *fakeDesktop) Move(h window.Handle, r window.Rect, repaint bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.lookup(h); err != nil {
		return err
	}
	d.moves = append(d.moves, moveCall{h: h, r: r})
	return nil
}

func (d *fakeDesktop) Show(h window.Handle, cmd int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shows = append(d.shows, showCall{h: h, cmd: cmd})
	w, ok := d.windows[h]
	if !ok {
		return
	}
	switch cmd {
	case window.SW_HIDE:
		w.visible = false
	case window.SW_RESTORE:
		w.visible = true
		w.zoomed = false
		w.state = window.ShowNormal
	}
}

func (d *fakeDesktop) MonitorWorkArea(h window.Handle) (window.Rect, error) {
	return d.workArea, nil
}

func (d *fakeDesktop) SetCornerMask(h window.Handle, mask *window.CornerMask) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.masks = append(d.masks, maskCall{h: h, mask: mask})
	return nil
}

func (d *fakeDesktop) SupportsCornerMask() bool { return d.rounded }

func (d *fakeDesktop) Subclass(h window.Handle, proc uintptr) (uintptr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.lookup(h)
	if err != nil {
		return 0, err
	}
	if w.refuse {
		return 0, errors.New("access denied")
	}
	prev := w.proc
	w.proc = proc
	return prev, nil
}

func (d *fakeDesktop) CallWindowProc(proc uintptr, h window.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forwarded = append(d.forwarded, msgCall{proc: proc, h: h, msg: msg})
	return 42
}

func (d *fakeDesktop) DefWindowProc(h window.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defaulted = append(d.defaulted, msgCall{h: h, msg: msg})
	return 7
}

func (d *fakeDesktop) Post(h window.Handle, msg uint32, wparam, lparam uintptr) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.posts = append(d.posts, msgCall{h: h, msg: msg})
	return nil
}

func (d *fakeDesktop) movesOf(h window.Handle) []window.Rect {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []window.Rect
	for _, m := range d.moves {
		if m.h == h {
			out = append(out, m.r)
		}
	}
	return out
}

func (d *fakeDesktop) positionsOf(h window.Handle) []posCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []posCall
	for _, p := range d.positions {
		if p.h == h {
			out = append(out, p)
		}
	}
	return out
}

func (d *fakeDesktop) showsOf(h window.Handle, cmd int32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.shows {
		if s.h == h && s.cmd == cmd {
			n++
		}
	}
	return n
}

func (d *fakeDesktop) masksOf(h window.Handle) []maskCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []maskCall
	for _, m := range d.masks {
		if m.h == h {
			out = append(out, m)
		}
	}
	return out
}

func (d *fakeDesktop) postsTo(h window.Handle) []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []uint32
	for _, p := range d.posts {
		if p.h == h {
			out = append(out, p.msg)
		}
	}
	return out
}

// fakeSnapshot is a fixed process and thread table
type fakeSnapshot struct {
	mu      sync.Mutex
	procs   []process.ProcessInfo
	threads []process.ThreadInfo
	err     error
}

func (s *fakeSnapshot) Processes() ([]process.ProcessInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]process.ProcessInfo(nil), s.procs...), nil
}

func (s *fakeSnapshot) Threads() ([]process.ThreadInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]process.ThreadInfo(nil), s.threads...), nil
}

func (s *fakeSnapshot) addProcess(pid, ppid process.ProcessID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.procs = append(s.procs, process.ProcessInfo{PID: pid, PPID: ppid})
}

type fakeChild struct {
	mu         sync.Mutex
	pid        process.ProcessID
	terminated int
	released   int
	termErr    error
}

func (c *fakeChild) PID() process.ProcessID { return c.pid }

func (c *fakeChild) Terminate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminated++
	return c.termErr
}

func (c *fakeChild) Release(wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released++
	return nil
}

func (c *fakeChild) counts() (terminated, released int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminated, c.released
}

// fakeSpawner hands out fakeChild values and runs onSpawn for each one
type fakeSpawner struct {
	mu       sync.Mutex
	pid      process.ProcessID
	err      error
	termErr  error
	children []*fakeChild
	onSpawn  func(child *fakeChild)
}

func (s *fakeSpawner) Spawn(command string, show bool) (Child, error) {
	s.mu.Lock()
	child := &fakeChild{pid: s.pid, termErr: s.termErr}
	s.children = append(s.children, child)
	err := s.err
	onSpawn := s.onSpawn
	s.mu.Unlock()

	if onSpawn != nil {
		onSpawn(child)
	}
	return child, err
}

func (s *fakeSpawner) last() *fakeChild {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.children) == 0 {
		return nil
	}
	return s.children[len(s.children)-1]
}

// fakeWaiter blocks until exit is closed
type fakeWaiter struct {
	exit chan struct{}
	err  error
}

func newFakeWaiter() *fakeWaiter {
	return &fakeWaiter{exit: make(chan struct{})}
}

func (w *fakeWaiter) WaitForExit(pid process.ProcessID) error {
	if w.err != nil {
		return w.err
	}
	<-w.exit
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Resolve.TimeoutMS = 500
	cfg.Resolve.IntervalMS = 5
	cfg.Embed.ReassertIntervalMS = 5
	cfg.Embed.ReassertDurationMS = 30
	cfg.Sync.TickIntervalMS = 2
	return cfg
}
