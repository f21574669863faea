package embed

import (
	"errors"
	"testing"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winembed/process"
)

func TestWatch_FiresWhenParentExits(t *testing.T) {
	snap := &fakeSnapshot{}
	snap.addProcess(5, 1)
	snap.addProcess(10, 5)

	waiter := newFakeWaiter()
	fired := make(chan process.ProcessID, 1)

	m := NewMonitor(process.NewFinder(snap), waiter, 10, func(parent process.ProcessID) {
		fired <- parent
	}, logger.NewLogger("monitor-test"))

	done := make(chan error, 1)
	go func() { done <- m.Watch() }()

	select {
	case <-fired:
		t.Fatal("fired before the parent exited")
	case <-time.After(20 * time.Millisecond):
	}

	close(waiter.exit)

	select {
	case parent := <-fired:
		assert.Equal(t, process.ProcessID(5), parent)
	case <-time.After(time.Second):
		t.Fatal("watchdog did not fire")
	}
	require.NoError(t, <-done)
}

func TestWatch_UnknownParent(t *testing.T) {
	snap := &fakeSnapshot{}
	snap.addProcess(5, 1)

	called := false
	m := NewMonitor(process.NewFinder(snap), newFakeWaiter(), 10, func(process.ProcessID) {
		called = true
	}, logger.NewLogger("monitor-test"))

	err := m.Watch()
	assert.ErrorIs(t, err, process.ErrParentUnavailable)
	assert.False(t, called)
}

func TestWatch_ParentCannotBeOpened(t *testing.T) {
	snap := &fakeSnapshot{}
	snap.addProcess(10, 5)

	waiter := newFakeWaiter()
	waiter.err = errors.Join(process.ErrParentUnavailable, errors.New("access denied"))

	called := false
	m := NewMonitor(process.NewFinder(snap), waiter, 10, func(process.ProcessID) {
		called = true
	}, logger.NewLogger("monitor-test"))

	err := m.Watch()
	assert.ErrorIs(t, err, process.ErrParentUnavailable)
	assert.False(t, called)
}
