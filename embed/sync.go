package embed

import (
	"sync/atomic"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/window"
)

// Synchronizer mirrors the host's geometry and visibility onto the embedded
// window. All of its state belongs to the goroutine calling Tick.
type Synchronizer struct {
	placer   window.Placer
	host     window.Handle
	embedded window.Handle
	radius   int32
	rounded  bool
	log      *logger.Logger

	wasMinimized      bool
	fullscreenApplied bool
	maskApplied       bool
	last              window.Rect
}

func NewSynchronizer(placer window.Placer, host, embedded window.Handle, radius int32, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		placer:   placer,
		host:     host,
		embedded: embedded,
		radius:   radius,
		rounded:  placer.SupportsCornerMask(),
		log:      log,
	}
}

// Run calls Tick every interval while running is set
func (s *Synchronizer) Run(running *atomic.Bool, interval time.Duration) {
	for running.Load() {
		s.Tick()
		time.Sleep(interval)
	}
	s.log.Debugln("Synchronizer for", s.embedded, "stopped")
}

// Tick observes the host once and brings the embedded window in line with it.
// Errors are logged and leave the state as it was.
func (s *Synchronizer) Tick() {
	hostState, err := s.placer.Placement(s.host)
	if err != nil {
		s.log.Debugln("Host placement:", err)
		return
	}

	if hostState == window.ShowMinimized {
		if !s.wasMinimized {
			s.placer.Show(s.embedded, window.SW_HIDE)
			s.wasMinimized = true
			s.log.Debugln("Host minimized, hiding", s.embedded)
		}
		return
	}

	childState, err := s.placer.Placement(s.embedded)
	if err != nil {
		s.log.Debugln("Embedded placement:", err)
	}
	if s.wasMinimized || childState == window.ShowMinimized {
		s.placer.Show(s.embedded, window.SW_RESTORE)
		s.wasMinimized = false
		s.log.Debugln("Restoring", s.embedded)
	}

	client, err := s.placer.ClientRect(s.host)
	if err != nil {
		s.log.Debugln("Host client rect:", err)
		return
	}

	s.place(client)
	s.syncFullscreen()

	changed := client != s.last
	if changed {
		s.last = client
		s.place(client)
		s.log.Debugln("Host client area now", client)
	}

	s.syncMask(client, hostState, changed)
}

// place fills the host client area with the embedded window and raises it above the host's content
func (s *Synchronizer) place(client window.Rect) {
	target := window.Rect{Right: client.Width(), Bottom: client.Height()}

	if err := s.placer.Move(s.embedded, target, true); err != nil {
		s.log.Debugln("Move", s.embedded, err)
	}
	if err := s.placer.SetPos(s.embedded, window.HWND_TOPMOST, target, window.SWP_SHOWWINDOW); err != nil {
		s.log.Debugln("SetPos", s.embedded, err)
	}
}

// syncFullscreen grows the host over its monitor's work area while the embedded window is maximized
func (s *Synchronizer) syncFullscreen() {
	zoomed := s.placer.IsZoomed(s.embedded)

	switch {
	case zoomed && !s.fullscreenApplied:
		area, err := s.placer.MonitorWorkArea(s.host)
		if err != nil {
			s.log.Debugln("Monitor work area:", err)
			return
		}
		if err := s.placer.SetPos(s.host, 0, area, window.SWP_NOZORDER|window.SWP_NOACTIVATE); err != nil {
			s.log.Debugln("Growing host", s.host, err)
			return
		}
		s.fullscreenApplied = true
		s.log.Infoln("Embedded window maximized, host grown to", area)

	case !zoomed && s.fullscreenApplied:
		s.placer.Show(s.host, window.SW_RESTORE)
		s.fullscreenApplied = false
		s.log.Infoln("Embedded window left maximize, host restored")
	}
}

// syncMask keeps the bottom corners of the embedded window rounded to match
// the host frame on systems that round frames, and drops the mask while the
// host is maximized and its frame is square.
func (s *Synchronizer) syncMask(client window.Rect, hostState window.ShowState, changed bool) {
	if !s.rounded {
		return
	}

	if hostState == window.ShowMaximized {
		if s.maskApplied {
			if err := s.placer.SetCornerMask(s.embedded, nil); err != nil {
				s.log.Debugln("Clearing corner mask:", err)
				return
			}
			s.maskApplied = false
		}
		return
	}

	if s.maskApplied && !changed {
		return
	}

	mask := window.BottomRoundedMask(client, s.radius)
	if err := s.placer.SetCornerMask(s.embedded, &mask); err != nil {
		s.log.Debugln("Applying corner mask:", err)
		return
	}
	s.maskApplied = true
}

// State reports the synchronizer's view of the world, for diagnostics and tests
func (s *Synchronizer) State() (hostMinimized, fullscreen, masked bool, last window.Rect) {
	return s.wasMinimized, s.fullscreenApplied, s.maskApplied, s.last
}
