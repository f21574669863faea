//go:build linux

// Package process_linux reads process snapshots from /proc. The engine only
// embeds on Windows; this package runs the shared process tree code against a
// live system so it is tested outside Windows too.
package process_linux

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"winembed/process"
)

// LinuxSnapshotter implements process.Snapshotter by walking /proc
type LinuxSnapshotter struct {
	// Root is the procfs mount point, /proc when empty
	Root string
}

// NewSnapshotter creates a new LinuxSnapshotter
func NewSnapshotter() process.Snapshotter {
	return &LinuxSnapshotter{}
}

// NewFinder creates a process.Finder backed by /proc
func NewFinder() *process.Finder {
	return process.NewFinder(NewSnapshotter())
}

func (s *LinuxSnapshotter) root() string {
	if s.Root == "" {
		return "/proc"
	}
	return s.Root
}

func (s *LinuxSnapshotter) pids() ([]process.ProcessID, error) {
	entries, err := os.ReadDir(s.root())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.root(), err)
	}

	var pids []process.ProcessID
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, process.ProcessID(pid))
	}
	return pids, nil
}

func (s *LinuxSnapshotter) Processes() ([]process.ProcessInfo, error) {
	pids, err := s.pids()
	if err != nil {
		return nil, err
	}

	results := make([]process.ProcessInfo, 0, len(pids))
	for _, pid := range pids {
		info, err := s.readStatus(pid)
		if err != nil {
			// exited while we were reading
			continue
		}
		results = append(results, info)
	}
	return results, nil
}

func (s *LinuxSnapshotter) Threads() ([]process.ThreadInfo, error) {
	pids, err := s.pids()
	if err != nil {
		return nil, err
	}

	var results []process.ThreadInfo
	for _, pid := range pids {
		entries, err := os.ReadDir(filepath.Join(s.root(), strconv.Itoa(int(pid)), "task"))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			tid, err := strconv.ParseUint(entry.Name(), 10, 32)
			if err != nil {
				continue
			}
			results = append(results, process.ThreadInfo{TID: process.ThreadID(tid), OwnerPID: pid})
		}
	}
	return results, nil
}

// readStatus parses the Name, PPid and Threads fields of /proc/<pid>/status
func (s *LinuxSnapshotter) readStatus(pid process.ProcessID) (process.ProcessInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.root(), strconv.Itoa(int(pid)), "status"))
	if err != nil {
		return process.ProcessInfo{}, err
	}

	info := process.ProcessInfo{PID: pid}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			info.Name = value
		case "PPid":
			if ppid, err := strconv.Atoi(value); err == nil {
				info.PPID = process.ProcessID(ppid)
			}
		case "Threads":
			if threads, err := strconv.Atoi(value); err == nil {
				info.Threads = threads
			}
		}
	}
	return info, nil
}
