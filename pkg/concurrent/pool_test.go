package concurrent

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryTask(t *testing.T) {
	p := NewPool(4, 8)
	p.Spawn(2)

	var done atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Schedule(func() {
			done.Add(1)
		}))
	}
	p.Close()
	assert.Equal(t, int64(100), done.Load())
}

func TestPoolScheduleTimeout(t *testing.T) {
	p := NewPool(1, 0)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, p.ScheduleTimeout(time.Second, func() {
		close(started)
		<-release
	}))
	<-started

	// the only goroutine is busy and there is no queue
	err := p.ScheduleTimeout(10*time.Millisecond, func() {})
	assert.ErrorIs(t, err, ErrScheduleTimeout)

	close(release)
	p.Close()
}

func TestPoolScheduleAfterClose(t *testing.T) {
	p := NewPool(2, 4)
	p.Spawn(1)
	p.Close()

	ran := false
	assert.ErrorIs(t, p.Schedule(func() { ran = true }), ErrPoolClosed)
	assert.ErrorIs(t, p.ScheduleTimeout(time.Second, func() { ran = true }), ErrPoolClosed)
	assert.False(t, ran)

	// closing twice is fine
	p.Close()
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 10)
	wp.Start(func(job int) int {
		return job * job
	})

	go func() {
		for i := 1; i <= 10; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()

	sum := 0
	for res := range wp.CollectResults() {
		sum += res
	}
	assert.Equal(t, 385, sum)
}
