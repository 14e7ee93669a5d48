package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botcoin/internal/lock"
	"botcoin/internal/metrics"
)

type blockingCycler struct {
	running    atomic.Int32
	maxRunning atomic.Int32
	calls      atomic.Int32
	release    chan struct{}
}

func (b *blockingCycler) RunCycle(ctx context.Context) (Report, error) {
	b.calls.Add(1)
	n := b.running.Add(1)
	defer b.running.Add(-1)
	for {
		m := b.maxRunning.Load()
		if n <= m || b.maxRunning.CompareAndSwap(m, n) {
			break
		}
	}
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return Report{}, nil
}

type countingLocker struct {
	lock.Locker
	denied atomic.Int32
}

func (c *countingLocker) TryLock(ctx context.Context) (bool, error) {
	ok, err := c.Locker.TryLock(ctx)
	if err == nil && !ok {
		c.denied.Add(1)
	}
	return ok, err
}

func TestSchedulerSkipsWhileCycleInFlight(t *testing.T) {
	cycler := &blockingCycler{release: make(chan struct{})}
	locker := &countingLocker{Locker: lock.NewMemory()}
	s := NewScheduler(cycler, locker, metrics.New(), 5*time.Millisecond, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return locker.denied.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), cycler.calls.Load())

	close(cycler.release)
	require.Eventually(t, func() bool { return cycler.calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int32(1), cycler.maxRunning.Load())
	assert.Zero(t, cycler.running.Load())
}

func TestSchedulerWaitsForInFlightCycle(t *testing.T) {
	cycler := &blockingCycler{release: make(chan struct{})}
	s := NewScheduler(cycler, lock.NewMemory(), metrics.New(), time.Hour, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return cycler.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.Zero(t, cycler.running.Load())
}
