//go:build windows

package embed

import (
	"os"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/config"
	"winembed/process"
	"winembed/process_windows"
	"winembed/window"
	"winembed/window_windows"
)

// NewWindows creates an engine backed by the live desktop
func NewWindows(hostPID process.ProcessID, command string, cfg config.Config) (*Engine, error) {
	return New(hostPID, command, cfg, WindowsDeps())
}

// WindowsDeps wires the Win32 implementations of everything an Engine needs
func WindowsDeps() Deps {
	return Deps{
		Desktop:   window_windows.NewDesktop(),
		Processes: process_windows.NewFinder(),
		Spawner:   windowsSpawner{process_windows.NewSpawner()},
		Waiter:    process_windows.NewWaiter(),
		Procedure: func(i *window.Interceptor) uintptr {
			return window_windows.NewWindowProc(i)
		},
		Self: process.ProcessID(os.Getpid()),
		Exit: os.Exit,
	}
}

// HostPIDByTitle returns the process owning the visible top-level window titled title
func HostPIDByTitle(title string) (process.ProcessID, error) {
	desktop := window_windows.NewDesktop()
	r := NewResolver(desktop, process_windows.NewFinder(), logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "host-lookup")))

	h, err := r.FindByTitle(title)
	if err != nil {
		return 0, err
	}
	return desktop.WindowProcessID(h), nil
}

type windowsSpawner struct {
	spawner *process_windows.WindowsSpawner
}

func (s windowsSpawner) Spawn(command string, show bool) (Child, error) {
	child, err := s.spawner.Spawn(command, show)
	if child == nil {
		return nil, err
	}
	return child, err
}
