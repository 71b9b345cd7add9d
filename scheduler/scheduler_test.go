package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleFiresOnQueue(t *testing.T) {
	q := NewQueue()
	var ran int32
	q.Schedule(10*time.Millisecond, func() {
		atomic.StoreInt32(&ran, 1)
	})

	require.Eventually(t, func() bool {
		return q.RunOne()
	}, time.Second, time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestCancelBeforeFirePreventsHandler(t *testing.T) {
	q := NewQueue()
	var ran int32
	e := q.Schedule(20*time.Millisecond, func() {
		atomic.StoreInt32(&ran, 1)
	})
	require.True(t, e.Cancel())

	time.Sleep(40 * time.Millisecond)
	require.False(t, q.RunOne())
	require.Equal(t, int32(0), atomic.LoadInt32(&ran))
}

func TestCancelAfterPostDequeues(t *testing.T) {
	q := NewQueue()
	var ran int32
	e := q.Schedule(5*time.Millisecond, func() {
		atomic.StoreInt32(&ran, 1)
	})

	require.Eventually(t, func() bool {
		q.mu.Lock()
		posted := len(q.pending) > 0
		q.mu.Unlock()
		return posted
	}, time.Second, time.Millisecond)

	require.True(t, e.Cancel())
	require.False(t, q.RunOne())
	require.Equal(t, int32(0), atomic.LoadInt32(&ran))
}

func TestRescheduleDelaysFire(t *testing.T) {
	q := NewQueue()
	start := time.Now()
	var firedAt time.Time
	e := q.Schedule(10*time.Millisecond, func() {
		firedAt = time.Now()
	})
	e.Reschedule(60 * time.Millisecond)

	require.Eventually(t, func() bool {
		return q.RunOne()
	}, time.Second, time.Millisecond)
	require.GreaterOrEqual(t, firedAt.Sub(start), 50*time.Millisecond)
}

func TestRunDrainsUntilStopped(t *testing.T) {
	q := NewQueue()
	var count int32
	for i := 0; i < 3; i++ {
		q.Schedule(time.Millisecond, func() {
			atomic.AddInt32(&count, 1)
		})
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		q.Run(stop)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&count) == 3
	}, time.Second, time.Millisecond)

	close(stop)
	<-done
}
