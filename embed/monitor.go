package embed

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/process"
)

// Monitor waits for the process that started us to exit
type Monitor struct {
	procs      *process.Finder
	waiter     Waiter
	self       process.ProcessID
	onHostExit func(parent process.ProcessID)
	log        *logger.Logger
}

func NewMonitor(procs *process.Finder, waiter Waiter, self process.ProcessID, onHostExit func(parent process.ProcessID), log *logger.Logger) *Monitor {
	return &Monitor{
		procs:      procs,
		waiter:     waiter,
		self:       self,
		onHostExit: onHostExit,
		log:        log,
	}
}

// Watch blocks until the parent of self exits and then calls onHostExit. If the
// parent cannot be found or opened it logs and returns without ever firing;
// the error wraps process.ErrParentUnavailable.
func (m *Monitor) Watch() error {
	parent, err := m.procs.ParentOf(m.self)
	if err != nil {
		err = fmt.Errorf("%w: resolving parent of %d: %v", process.ErrParentUnavailable, m.self, err)
		m.log.Warn("Watchdog disabled:", err)
		return err
	}

	m.log.Infoln("Watching host process", parent)
	if err := m.waiter.WaitForExit(parent); err != nil {
		m.log.Warn("Watchdog disabled:", err)
		return err
	}

	m.log.Infoln("Host process", parent, "exited")
	m.onHostExit(parent)
	return nil
}
