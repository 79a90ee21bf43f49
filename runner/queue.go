package runner

import "sync"

// HostQueue marshals callbacks from worker goroutines back onto the host's
// single-threaded event loop. Workers Push from any goroutine; the host
// calls Drain from its loop tick and runs everything pending in FIFO order.
type HostQueue struct {
	mu  sync.Mutex
	fns []func()
}

// NewHostQueue creates an empty queue.
func NewHostQueue() *HostQueue {
	return &HostQueue{}
}

// Push enqueues a callback for the next Drain.
func (q *HostQueue) Push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// Drain runs every pending callback on the calling goroutine, in the order
// they were pushed. Callbacks pushed while draining run on the next Drain.
func (q *HostQueue) Drain() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports the number of pending callbacks.
func (q *HostQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}
