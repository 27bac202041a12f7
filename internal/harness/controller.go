package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/algviz/internal/logger"
)

// SpeedFactor is applied to the delay by one faster/slower action.
const SpeedFactor = 1.5

// Controller is the single owner of the harness state: the module handle,
// the play flag, the pending autoplay firing and the delay control.
// Pending is non-nil exactly while a firing is scheduled.
type Controller struct {
	ctx     context.Context
	module  Module
	sched   Scheduler
	delay   DelaySource
	playing bool
	pending Cancelable
	loadErr error
	lastErr error
}

func NewController(ctx context.Context, sched Scheduler, delay DelaySource) *Controller {
	return &Controller{
		ctx:   logger.WithName(ctx, "harness"),
		sched: sched,
		delay: delay,
	}
}

// Attach binds a load result. On success the module is reset once to
// produce the first frame. On failure the error is logged and the
// controller stays inert.
func (c *Controller) Attach(res LoadResult) error {
	if c.module != nil {
		return ErrAlreadyLoaded
	}
	if res.Err != nil || res.Module == nil {
		err := res.Err
		if err == nil {
			err = ErrNotLoaded
		}
		c.loadErr = err
		logger.ErrorKV(c.ctx, "module load failed", "error", err)
		return err
	}

	c.module = res.Module
	c.loadErr = nil
	logger.DebugKV(c.ctx, "module loaded")
	return c.run("reset", c.module.Reset)
}

func (c *Controller) Loaded() bool { return c.module != nil }

// LoadErr returns the initializer error, if loading failed.
func (c *Controller) LoadErr() error { return c.loadErr }

// Err returns the error of the last module call, nil if it succeeded.
func (c *Controller) Err() error { return c.lastErr }

func (c *Controller) Playing() bool { return c.playing }

// Pending reports whether an autoplay firing is scheduled.
func (c *Controller) Pending() bool { return c.pending != nil }

func (c *Controller) Delay() float64 { return c.delay.Delay() }

// ParamChanged cancels any pending firing and resets the module. The play
// flag is left as it was.
func (c *Controller) ParamChanged() error {
	if c.module == nil {
		return nil
	}
	c.cancel()
	return c.run("reset", c.module.Reset)
}

func (c *Controller) Next() error {
	if c.module == nil {
		return nil
	}
	return c.run("next", c.module.Next)
}

func (c *Controller) Prev() error {
	if c.module == nil {
		return nil
	}
	return c.run("prev", c.module.Prev)
}

// Faster shortens the delay. A pending firing keeps its old deadline.
func (c *Controller) Faster() {
	if c.module == nil {
		return
	}
	c.delay.SetDelay(c.delay.Delay() / SpeedFactor)
}

// Slower lengthens the delay. A pending firing keeps its old deadline.
func (c *Controller) Slower() {
	if c.module == nil {
		return
	}
	c.delay.SetDelay(c.delay.Delay() * SpeedFactor)
}

// PausePlay toggles autoplay.
func (c *Controller) PausePlay() {
	if c.module == nil {
		return
	}
	if c.playing {
		c.playing = false
		c.cancel()
		logger.DebugKV(c.ctx, "paused")
		return
	}
	c.playing = true
	c.arm()
	logger.DebugKV(c.ctx, "playing", "delay", c.delay.Delay())
}

// Dispatch performs a.
func (c *Controller) Dispatch(a Action) error {
	switch a {
	case ActionPrev:
		return c.Prev()
	case ActionNext:
		return c.Next()
	case ActionFaster:
		c.Faster()
	case ActionSlower:
		c.Slower()
	case ActionPausePlay:
		c.PausePlay()
	}
	return nil
}

// HandleKey runs the action bound to key. handled is false for keys outside
// the table, whose default handling the caller should keep.
func (c *Controller) HandleKey(key string) (handled bool, err error) {
	a, ok := ActionForKey(key)
	if !ok {
		return false, nil
	}
	return true, c.Dispatch(a)
}

// HandleKeyCode is HandleKey for DOM key codes.
func (c *Controller) HandleKeyCode(code int) (handled bool, err error) {
	a, ok := ActionForKeyCode(code)
	if !ok {
		return false, nil
	}
	return true, c.Dispatch(a)
}

func (c *Controller) arm() {
	d := time.Duration(c.delay.Delay() * float64(time.Second))
	c.pending = c.sched.Schedule(d, c.fire)
}

func (c *Controller) cancel() {
	if c.pending == nil {
		return
	}
	c.pending.Cancel()
	c.pending = nil
}

// fire is the autoplay job. A failing step ends autoplay without
// rescheduling.
func (c *Controller) fire() {
	c.pending = nil
	if !c.playing || c.module == nil {
		return
	}
	if err := c.run("next", c.module.Next); err != nil {
		logger.ErrorKV(c.ctx, "autoplay stopped", "error", err)
		return
	}
	c.arm()
}

// run calls op and, unless the module renders on its own, Draw.
func (c *Controller) run(name string, op func() error) error {
	c.lastErr = nil
	if err := op(); err != nil {
		c.lastErr = fmt.Errorf("%s: %w", name, err)
		return c.lastErr
	}
	if sr, ok := c.module.(SelfRendering); ok && sr.SelfRendering() {
		return nil
	}
	if err := c.module.Draw(); err != nil {
		c.lastErr = fmt.Errorf("draw: %w", err)
		return c.lastErr
	}
	return nil
}
