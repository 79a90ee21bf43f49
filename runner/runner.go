// Package runner executes one potentially multi-minute provider call on a
// background goroutine while the host stays on its single-threaded event
// loop. Results and status strings travel back through a HostQueue the host
// drains on its tick.
//
// Cancellation is cooperative. A cancel observed before the network call
// starts aborts the job without any call being issued; a cancel that
// arrives after the call has returned does not discard the finished result.
// Starting a new job supersedes the previous one: the old job is cancelled
// and its late result, if any, is dropped instead of delivered.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/scenebrush/scenebrush/core"
)

// ErrCancelled reports a job aborted before its network call began.
var ErrCancelled = errors.New("job cancelled")

// State is a job's lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Job is one background execution. Its state moves monotonically from
// RUNNING to exactly one terminal state.
type Job struct {
	// ID uniquely identifies the job across the session.
	ID string

	state     atomic.Int32
	cancelled atomic.Bool
}

func newJob() *Job {
	j := &Job{ID: uuid.NewString()}
	j.state.Store(int32(StateRunning))
	return j
}

// State returns the job's current state.
func (j *Job) State() State {
	return State(j.state.Load())
}

// Cancel requests cooperative cancellation. Safe from any goroutine; the
// worker observes the flag at its next checkpoint.
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// Cancelled reports whether cancellation was requested.
func (j *Job) Cancelled() bool {
	return j.cancelled.Load()
}

func (j *Job) finish(s State) {
	j.state.Store(int32(s))
}

// Task is the blocking work a job runs, typically one dispatch call.
type Task func(ctx context.Context) (*core.ImageResult, error)

// DeliverFunc receives the final result on the host loop. Exactly one of
// the arguments is non-nil.
type DeliverFunc func(res *core.ImageResult, err error)

// Coordinator owns the single background slot. At most one job is RUNNING
// at a time; starting a new one supersedes the old.
type Coordinator struct {
	queue  *HostQueue
	logger core.Logger

	mu      sync.Mutex
	current *Job
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the debug logger.
func WithLogger(l core.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCoordinator creates a coordinator delivering onto the given queue.
func NewCoordinator(queue *HostQueue, opts ...Option) *Coordinator {
	c := &Coordinator{queue: queue, logger: core.NopLogger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches a job. Any still-running previous job is cancelled and
// its eventual result dropped; only the newest job may deliver.
func (c *Coordinator) Start(ctx context.Context, task Task, deliver DeliverFunc) *Job {
	c.mu.Lock()
	if c.current != nil && c.current.State() == StateRunning {
		c.logger.Printf("runner: superseding job %s", c.current.ID)
		c.current.Cancel()
	}
	job := newJob()
	c.current = job
	c.mu.Unlock()

	go c.work(ctx, job, task, deliver)
	return job
}

// Current returns the most recently started job, or nil.
func (c *Coordinator) Current() *Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Post queues an arbitrary callback onto the host loop. Dispatch status
// strings travel through here so they render on the host thread.
func (c *Coordinator) Post(fn func()) {
	c.queue.Push(fn)
}

func (c *Coordinator) work(ctx context.Context, job *Job, task Task, deliver DeliverFunc) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("job panicked: %v", r)
			c.logger.Printf("runner: job %s: %v", job.ID, err)
			job.finish(StateFailed)
			if c.isCurrent(job) {
				c.queue.Push(func() { deliver(nil, err) })
			}
		}
	}()

	// Checkpoint before the network call: a cancel seen here means no call
	// is issued at all.
	if job.Cancelled() {
		c.logger.Printf("runner: job %s cancelled before dispatch", job.ID)
		job.finish(StateCancelled)
		if c.isCurrent(job) {
			c.queue.Push(func() { deliver(nil, ErrCancelled) })
		}
		return
	}

	res, err := task(ctx)

	// The call has returned. A cancel flag set while it ran no longer
	// matters; only supersession drops the result now.
	if !c.isCurrent(job) {
		c.logger.Printf("runner: job %s superseded, dropping result", job.ID)
		job.finish(StateCancelled)
		return
	}

	if err != nil {
		job.finish(StateFailed)
	} else {
		job.finish(StateSucceeded)
	}
	c.queue.Push(func() { deliver(res, err) })
}

func (c *Coordinator) isCurrent(job *Job) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == job
}
