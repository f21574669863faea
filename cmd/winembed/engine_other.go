//go:build !windows

package main

import (
	"errors"

	"winembed/config"
	"winembed/embed"
	"winembed/process"
)

var errUnsupported = errors.New("window embedding is only available on Windows")

func newEngine(hostPID process.ProcessID, command string, cfg config.Config) (*embed.Engine, error) {
	return nil, errUnsupported
}

func findHost(title string) (process.ProcessID, error) {
	return 0, errUnsupported
}
