//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"winembed/process"
)

// WindowsSnapshotter implements process.Snapshotter with Toolhelp32 snapshots
type WindowsSnapshotter struct{}

// NewSnapshotter creates a new WindowsSnapshotter
func NewSnapshotter() process.Snapshotter {
	return &WindowsSnapshotter{}
}

// NewFinder creates a process.Finder backed by Toolhelp32 snapshots
func NewFinder() *process.Finder {
	return process.NewFinder(NewSnapshotter())
}

func (s *WindowsSnapshotter) Processes() ([]process.ProcessInfo, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer windows.CloseHandle(snap)

	var results []process.ProcessInfo

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err = windows.Process32First(snap, &pe); err == nil; err = windows.Process32Next(snap, &pe) {
		results = append(results, process.ProcessInfo{
			PID:     process.ProcessID(pe.ProcessID),
			PPID:    process.ProcessID(pe.ParentProcessID),
			Name:    windows.UTF16ToString(pe.ExeFile[:]),
			Threads: int(pe.Threads),
		})
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return results, fmt.Errorf("Process32Next failed: %w", err)
	}

	return results, nil
}

func (s *WindowsSnapshotter) Threads() ([]process.ThreadInfo, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer windows.CloseHandle(snap)

	var results []process.ThreadInfo

	var te windows.ThreadEntry32
	te.Size = uint32(unsafe.Sizeof(te))
	for err = windows.Thread32First(snap, &te); err == nil; err = windows.Thread32Next(snap, &te) {
		results = append(results, process.ThreadInfo{
			TID:      process.ThreadID(te.ThreadID),
			OwnerPID: process.ProcessID(te.OwnerProcessID),
		})
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return results, fmt.Errorf("Thread32Next failed: %w", err)
	}

	return results, nil
}
