package timer

import (
	"context"
	"errors"
)

var ErrLoopClosed = errors.New("timer: loop closed")

// Loop is a serial executor. Every job posted to it runs on the goroutine
// calling Run or Drain.
type Loop struct {
	jobs chan func()
	done chan struct{}
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		jobs: make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

// Post queues job. It drops the job once the loop is closed.
func (l *Loop) Post(job func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.jobs <- job:
	case <-l.done:
	}
}

// Run executes jobs until ctx is cancelled or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-l.done:
			return ErrLoopClosed
		default:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrLoopClosed
		case job := <-l.jobs:
			job()
		}
	}
}

// Drain runs every queued job without blocking and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case job := <-l.jobs:
			job()
			n++
		default:
			return n
		}
	}
}

// Close stops Run and makes further posts no-ops. Safe to call once.
func (l *Loop) Close() {
	close(l.done)
}
