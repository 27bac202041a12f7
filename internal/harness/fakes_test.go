package harness_test

import (
	"time"

	"github.com/san-kum/algviz/internal/harness"
)

type fakeModule struct {
	resets, nexts, prevs, draws int
	nextErr                     error
	selfRendering               bool
}

func (m *fakeModule) Reset() error { m.resets++; return nil }
func (m *fakeModule) Prev() error  { m.prevs++; return nil }
func (m *fakeModule) Draw() error  { m.draws++; return nil }

func (m *fakeModule) Next() error {
	m.nexts++
	return m.nextErr
}

func (m *fakeModule) SelfRendering() bool { return m.selfRendering }

type fakeJob struct {
	sched     *fakeScheduler
	job       func()
	cancelled bool
	fired     bool
}

func (j *fakeJob) Cancel() bool {
	if j.cancelled || j.fired {
		return false
	}
	j.cancelled = true
	j.sched.cancels++
	return true
}

// fakeScheduler records every schedule call and fires jobs on demand.
type fakeScheduler struct {
	delays  []time.Duration
	jobs    []*fakeJob
	cancels int
}

func (s *fakeScheduler) Schedule(d time.Duration, job func()) harness.Cancelable {
	j := &fakeJob{sched: s, job: job}
	s.delays = append(s.delays, d)
	s.jobs = append(s.jobs, j)
	return j
}

// live returns the number of jobs neither fired nor cancelled.
func (s *fakeScheduler) live() int {
	n := 0
	for _, j := range s.jobs {
		if !j.cancelled && !j.fired {
			n++
		}
	}
	return n
}

// fire runs the oldest live job and reports whether there was one.
func (s *fakeScheduler) fire() bool {
	for _, j := range s.jobs {
		if !j.cancelled && !j.fired {
			j.fired = true
			j.job()
			return true
		}
	}
	return false
}
