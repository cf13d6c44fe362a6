package notifier_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"panaderia/internal/notifier"

	"github.com/stretchr/testify/assert"
)

func TestDispatchRunsJobsAsynchronously(t *testing.T) {
	d := notifier.NewDispatcher(2, 8)
	defer d.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	d.Dispatch(func() error {
		close(started)
		<-release
		return nil
	})

	// Dispatch must have returned already even though the job is blocked.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("job never started")
	}
	close(release)
}

func TestCloseDrainsQueuedJobs(t *testing.T) {
	d := notifier.NewDispatcher(3, 32)

	var done int64
	for i := 0; i < 20; i++ {
		d.Dispatch(func() error {
			atomic.AddInt64(&done, 1)
			return nil
		})
	}
	d.Close()
	assert.Equal(t, int64(20), atomic.LoadInt64(&done))
}

func TestJobErrorsAndPanicsAreContained(t *testing.T) {
	d := notifier.NewDispatcher(1, 8)

	var after int64
	d.Dispatch(func() error { return errors.New("smtp: connection refused") })
	d.Dispatch(func() error { panic("template blew up") })
	d.Dispatch(func() error {
		atomic.AddInt64(&after, 1)
		return nil
	})
	d.Close()

	// The worker survived the failing jobs and processed the last one.
	assert.Equal(t, int64(1), atomic.LoadInt64(&after))
}

func TestDispatchDropsWhenQueueSaturated(t *testing.T) {
	d := notifier.NewDispatcher(1, 1)

	var mu sync.Mutex
	ran := 0
	block := make(chan struct{})

	// Occupy the single worker, then fill the queue.
	d.Dispatch(func() error {
		<-block
		return nil
	})
	time.Sleep(10 * time.Millisecond) // let the worker pick the blocker up
	for i := 0; i < 5; i++ {
		d.Dispatch(func() error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
	}
	close(block)
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, ran, 1)
	assert.Less(t, ran, 5, "overflow jobs are dropped, not queued unboundedly")
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	d := notifier.NewDispatcher(1, 4)
	d.Close()

	// Must not panic on the closed channel.
	d.Dispatch(func() error { return nil })
	d.Close() // double close is safe too
}
