// Package dispatch provides the serial callback queue every completion is delivered on.
package dispatch

import (
	"sync"

	"github.com/timmy/photorama/internal/logger"
)

// Queue runs submitted funcs one at a time, in submission order, on a
// single goroutine. It plays the role of a UI main queue: state touched
// only from queued funcs needs no further locking.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	done chan struct{}
	log  *logger.Logger
}

// NewQueue starts a Queue. Call Close to stop it.
func NewQueue(log *logger.Logger) *Queue {
	if log == nil {
		log = logger.GetDefault()
	}
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  log.WithField(logger.FieldComponent, "dispatch"),
	}
	go q.loop()
	return q
}

// Dispatch enqueues fn. It never blocks and never runs fn on the caller's
// goroutine. It returns false if the queue is closed and fn was dropped.
func (q *Queue) Dispatch(fn func()) bool {
	if fn == nil {
		return true
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Close stops accepting work, runs everything already queued and waits
// for the loop to exit. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) loop() {
	defer close(q.done)
	for range q.wake {
		for {
			q.mu.Lock()
			if len(q.pending) == 0 {
				closed := q.closed
				q.mu.Unlock()
				if closed {
					return
				}
				break
			}
			fn := q.pending[0]
			q.pending[0] = nil
			q.pending = q.pending[1:]
			q.mu.Unlock()

			q.run(fn)
		}
	}
}

func (q *Queue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Errorf("Recovered panic in queued callback: %v", r)
		}
	}()
	fn()
}
