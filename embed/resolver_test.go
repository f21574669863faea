package embed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winembed/process"
	"winembed/window"
)

func newTestResolver(d *fakeDesktop, snap *fakeSnapshot) *Resolver {
	return NewResolver(d, process.NewFinder(snap), logger.NewLogger("resolver-test"))
}

func TestResolve_DescendantWindow(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x10, &fakeWindow{pid: 50, visible: true})
	d.add(0x20, &fakeWindow{pid: 101, visible: false})
	d.add(0x30, &fakeWindow{pid: 101, visible: true})
	d.add(0x40, &fakeWindow{pid: 100, visible: true})

	snap := &fakeSnapshot{}
	snap.addProcess(50, 1)
	snap.addProcess(100, 1)
	snap.addProcess(101, 100)

	r := newTestResolver(d, snap)

	// launcher stub 100 hands off to helper 101; first visible match in z-order wins
	h, err := r.Resolve(context.Background(), 100, time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x30), h)
}

func TestResolve_WaitsForLateWindow(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x30, &fakeWindow{pid: 100, visible: true, since: 3})

	snap := &fakeSnapshot{}
	snap.addProcess(100, 1)

	r := newTestResolver(d, snap)

	h, err := r.Resolve(context.Background(), 100, time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x30), h)
	assert.Equal(t, 4, d.topLevelCalls)
}

func TestResolve_ThreadWindowFallback(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x10, &fakeWindow{pid: 50, visible: true})
	d.windows[0x77] = &fakeWindow{pid: 100, visible: true}
	d.threads[9] = []window.Handle{0x77}

	snap := &fakeSnapshot{
		threads: []process.ThreadInfo{
			{TID: 8, OwnerPID: 50},
			{TID: 9, OwnerPID: 100},
		},
	}
	snap.addProcess(50, 1)
	snap.addProcess(100, 1)

	r := newTestResolver(d, snap)

	h, err := r.Resolve(context.Background(), 100, time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x77), h)
}

func TestResolve_TimeoutIsNotFound(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x10, &fakeWindow{pid: 50, visible: true})

	snap := &fakeSnapshot{}
	snap.addProcess(100, 1)

	r := newTestResolver(d, snap)

	timeout := 60 * time.Millisecond
	interval := 10 * time.Millisecond

	start := time.Now()
	_, err := r.Resolve(context.Background(), 100, timeout, interval)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, window.ErrNotFound))
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+interval+100*time.Millisecond)
}

func TestResolve_ContextCancelled(t *testing.T) {
	d := newFakeDesktop()
	snap := &fakeSnapshot{}

	r := newTestResolver(d, snap)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := r.Resolve(ctx, 100, 10*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_SnapshotFailureStillSearchesRoot(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x30, &fakeWindow{pid: 100, visible: true})

	snap := &fakeSnapshot{err: errors.New("snapshot denied")}

	r := newTestResolver(d, snap)

	h, err := r.Resolve(context.Background(), 100, time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x30), h)
}

func TestResolve_EnumerationErrorsCountAsMisses(t *testing.T) {
	d := newFakeDesktop()
	d.topLevelErr = errors.New("desktop locked")
	d.threadEnumErrs[9] = errors.New("thread gone")

	snap := &fakeSnapshot{threads: []process.ThreadInfo{{TID: 9, OwnerPID: 100}}}
	snap.addProcess(100, 1)

	r := newTestResolver(d, snap)

	_, err := r.Resolve(context.Background(), 100, 30*time.Millisecond, 5*time.Millisecond)
	assert.ErrorIs(t, err, window.ErrNotFound)
}

func TestFindByProcess(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x10, &fakeWindow{pid: 5, visible: false})
	d.add(0x11, &fakeWindow{pid: 5, visible: true})
	d.add(0x20, &fakeWindow{pid: 6, visible: true})

	r := newTestResolver(d, &fakeSnapshot{})

	h, err := r.FindByProcess(5)
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x11), h)

	_, err = r.FindByProcess(7)
	assert.ErrorIs(t, err, window.ErrNotFound)
}

func TestFindByTitle(t *testing.T) {
	d := newFakeDesktop()
	d.add(0x10, &fakeWindow{pid: 5, visible: true, title: "winembed"})
	d.add(0x20, &fakeWindow{pid: 6, visible: true, title: "winembed.exe"})

	r := newTestResolver(d, &fakeSnapshot{})

	h, err := r.FindByTitle("winembed.exe")
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x20), h)

	_, err = r.FindByTitle("missing")
	assert.ErrorIs(t, err, window.ErrNotFound)
}
