// Package scheduler implements the two-stage timer-then-queue design
// spec §4.6 calls for: a timer fires on its own goroutine but only
// posts a queue entry, and callbacks run serialized on whatever
// goroutine drains the Queue (the single cooperative event-loop
// thread described in spec §5). This keeps retransmission and
// observe-notification callbacks off the Go runtime's timer goroutine
// and on the same thread as every other core callback.
package scheduler

import (
	"sync"
	"time"
)

// Event is a scheduled callback: a timer entry and, once the timer
// fires, a queue entry awaiting a drain of its Queue.
type Event struct {
	mu       sync.Mutex
	queue    *Queue
	timer    *time.Timer
	handler  func()
	posted   bool
	canceled bool
	fired    bool
}

// Queue is the single-threaded event queue scheduled callbacks are
// posted onto. Run drains it on the calling goroutine until stop is
// closed, invoking each posted handler in arrival order — this is
// where "processing" (as opposed to the transport's synchronous
// "pre-processing") happens, per spec §4.4.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []*Event
	closed  bool
}

// NewQueue constructs an empty, ready-to-run Queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Schedule installs a timer that, after d, posts handler onto q. The
// returned Event can be rescheduled or canceled before it fires.
func (q *Queue) Schedule(d time.Duration, handler func()) *Event {
	e := &Event{queue: q, handler: handler}
	e.timer = time.AfterFunc(d, e.fire)
	return e
}

func (e *Event) fire() {
	e.mu.Lock()
	if e.canceled {
		e.mu.Unlock()
		return
	}
	e.fired = true
	e.posted = true
	e.mu.Unlock()
	e.queue.post(e)
}

// Reschedule adjusts the timer to fire after d from now, without
// disturbing the handler. It is a no-op once the event has already
// fired and been posted or canceled.
func (e *Event) Reschedule(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.canceled || e.fired {
		return
	}
	e.timer.Reset(d)
}

// Cancel removes the timer; if the timer had already fired and the
// queue entry was posted but not yet drained, Cancel also dequeues it.
// Cancel returns false if the handler had already started running (or
// finished) on the queue's drain goroutine — at that point it is too
// late to suppress the callback.
func (e *Event) Cancel() bool {
	e.mu.Lock()
	e.canceled = true
	e.timer.Stop()
	wasPosted := e.posted
	e.mu.Unlock()

	if wasPosted {
		return e.queue.remove(e)
	}
	return true
}

// post appends e to the queue's pending list and wakes one drainer.
func (q *Queue) post(e *Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.pending = append(q.pending, e)
	q.cond.Signal()
}

// remove drops e from the pending list if it is still there, before
// its handler has run. Returns true if e was found and removed.
func (q *Queue) remove(e *Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, pe := range q.pending {
		if pe == e {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Run drains posted events on the calling goroutine, invoking each
// handler in arrival order, until stop is closed. Handlers run
// strictly sequentially: this is the single cooperative event-loop
// thread spec §5 describes.
func (q *Queue) Run(stop <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		<-stop
		q.mu.Lock()
		q.closed = true
		q.cond.Broadcast()
		q.mu.Unlock()
		close(done)
	}()

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed && len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		e := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		e.handler()
	}
}

// RunOne drains and runs at most one pending event without blocking;
// it reports whether an event was run. Useful for tests and for hosts
// that want to pump the queue from their own loop instead of calling
// Run.
func (q *Queue) RunOne() bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	e := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	e.handler()
	return true
}
