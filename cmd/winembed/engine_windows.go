package main

import (
	"errors"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"winembed/config"
	"winembed/embed"
	"winembed/process"
)

var procGetConsoleTitleW = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleTitleW")

func newEngine(hostPID process.ProcessID, command string, cfg config.Config) (*embed.Engine, error) {
	return embed.NewWindows(hostPID, command, cfg)
}

// findHost returns the owner of the first visible window whose title contains
// title. Without a title it uses the last path element of this console's
// title, which is how terminals usually name their window.
func findHost(title string) (process.ProcessID, error) {
	if title == "" {
		title = consoleTitle()
	}
	if title == "" {
		return 0, errors.New("no -host-title given and the console has no title")
	}
	return embed.HostPIDByTitle(title)
}

func consoleTitle() string {
	buf := make([]uint16, 1024)
	n, _, _ := procGetConsoleTitleW.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 || int(n) > len(buf) {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:n]))
}
