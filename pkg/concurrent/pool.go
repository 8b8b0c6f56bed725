package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool is closed")
)

// Pool bounded set of goroutines that run scheduled tasks.
// at most size goroutines run at once, queue buffers tasks waiting for a free goroutine.
type Pool struct {
	sem   chan struct{}
	work  chan func()
	done  chan struct{}
	wg    sync.WaitGroup
	close sync.Once
}

func NewPool(size, queue int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queue < 0 {
		queue = 0
	}
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn starts n goroutines ahead of the first Schedule. n is capped at the pool size.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n && i < cap(p.sem); i++ {
		p.sem <- struct{}{}
		p.wg.Add(1)
		go p.worker(nil)
	}
}

// Schedule blocks until task is queued or handed to a goroutine. returns ErrPoolClosed after Close.
func (p *Pool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout like Schedule, but gives up after timeout with ErrScheduleTimeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return p.schedule(task, timer.C)
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.done:
		return ErrPoolClosed
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		p.wg.Add(1)
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() {
		<-p.sem
		p.wg.Done()
	}()

	if task != nil {
		task()
	}
	for {
		select {
		case task := <-p.work:
			task()
		case <-p.done:
			p.drain()
			return
		}
	}
}

// drain runs tasks queued before Close.
func (p *Pool) drain() {
	for {
		select {
		case task := <-p.work:
			task()
		default:
			return
		}
	}
}

// Close stops accepting tasks and waits for running and queued tasks to finish.
func (p *Pool) Close() {
	p.close.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}
