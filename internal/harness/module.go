package harness

import (
	"errors"
	"time"

	"github.com/san-kum/algviz/internal/timer"
)

var (
	ErrAlreadyLoaded = errors.New("harness: module already loaded")
	ErrNotLoaded     = errors.New("harness: module not loaded")
)

// Module is the step-through computation driven by the harness.
type Module interface {
	// Reset rebuilds the module state from the current parameters.
	Reset() error
	// Next advances one step, clamped at the last one.
	Next() error
	// Prev rewinds one step, clamped at the first one.
	Prev() error
	// Draw renders the current state.
	Draw() error
}

// SelfRendering is implemented by modules whose steps already redraw, so
// the controller skips the explicit Draw after them.
type SelfRendering interface {
	SelfRendering() bool
}

// Cancelable is a pending scheduled job.
type Cancelable interface {
	Cancel() bool
}

// Scheduler arms one-shot jobs. Jobs must run on the controller's loop.
type Scheduler interface {
	Schedule(d time.Duration, job func()) Cancelable
}

// TimerScheduler adapts a timer.Scheduler to the harness.
func TimerScheduler(s *timer.Scheduler) Scheduler {
	return timerScheduler{s: s}
}

type timerScheduler struct {
	s *timer.Scheduler
}

func (t timerScheduler) Schedule(d time.Duration, job func()) Cancelable {
	return t.s.Schedule(d, job)
}

// DelaySource is the UI control holding the autoplay delay in seconds.
type DelaySource interface {
	Delay() float64
	SetDelay(seconds float64)
}

// Delay is an in-memory DelaySource.
type Delay struct {
	seconds float64
}

func NewDelay(seconds float64) *Delay {
	return &Delay{seconds: seconds}
}

func (d *Delay) Delay() float64 { return d.seconds }

func (d *Delay) SetDelay(seconds float64) { d.seconds = seconds }
