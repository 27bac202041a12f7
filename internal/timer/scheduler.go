package timer

import (
	"sync/atomic"
	"time"
)

// Scheduler turns delays into jobs posted to an event loop.
type Scheduler struct {
	clock Clock
	post  func(job func())
}

// NewScheduler creates a Scheduler firing on clock and delivering jobs via post.
func NewScheduler(clock Clock, post func(job func())) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{clock: clock, post: post}
}

// Handle identifies one scheduled job.
type Handle struct {
	timer     Timer
	cancelled atomic.Bool
	ran       atomic.Bool
}

// Schedule runs job on the owning loop after d.
func (s *Scheduler) Schedule(d time.Duration, job func()) *Handle {
	h := &Handle{}
	h.timer = s.clock.AfterFunc(d, func() {
		s.post(func() {
			if h.cancelled.Load() {
				return
			}
			h.ran.Store(true)
			job()
		})
	})
	return h
}

// Cancel prevents the job from running. It reports whether this call
// stopped a job that had not run yet.
func (h *Handle) Cancel() bool {
	if h == nil || h.ran.Load() {
		return false
	}
	if h.cancelled.Swap(true) {
		return false
	}
	h.timer.Stop()
	return true
}
