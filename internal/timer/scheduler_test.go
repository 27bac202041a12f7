package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestScheduler() (*FakeClock, *Loop, *Scheduler) {
	clock := NewFakeClock(time.Unix(0, 0))
	loop := NewLoop(16)
	return clock, loop, NewScheduler(clock, loop.Post)
}

func TestScheduleRunsOnLoop(t *testing.T) {
	clock, loop, s := newTestScheduler()

	ran := 0
	s.Schedule(time.Second, func() { ran++ })

	clock.Advance(500 * time.Millisecond)
	require.Equal(t, 0, loop.Drain())

	clock.Advance(500 * time.Millisecond)
	require.Equal(t, 0, ran, "job must wait for the loop")
	require.Equal(t, 1, loop.Drain())
	require.Equal(t, 1, ran)
}

func TestCancelBeforeFire(t *testing.T) {
	clock, loop, s := newTestScheduler()

	ran := false
	h := s.Schedule(time.Second, func() { ran = true })
	require.True(t, h.Cancel())
	require.False(t, h.Cancel(), "second cancel is a no-op")

	clock.Advance(2 * time.Second)
	loop.Drain()
	require.False(t, ran)
	require.Equal(t, 0, clock.Pending())
}

func TestCancelAfterFireBeforeRun(t *testing.T) {
	clock, loop, s := newTestScheduler()

	ran := false
	h := s.Schedule(time.Second, func() { ran = true })
	clock.Advance(time.Second)

	// The clock fired and the job sits in the loop queue.
	require.True(t, h.Cancel())
	loop.Drain()
	require.False(t, ran)
}

func TestCancelAfterRun(t *testing.T) {
	clock, loop, s := newTestScheduler()

	h := s.Schedule(time.Second, func() {})
	clock.Advance(time.Second)
	loop.Drain()

	require.False(t, h.Cancel())

	var nilHandle *Handle
	require.False(t, nilHandle.Cancel())
}

func TestFakeClockFiresInOrder(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	var order []int
	clock.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	clock.AfterFunc(time.Second, func() {
		order = append(order, 1)
		clock.AfterFunc(time.Second, func() { order = append(order, 2) })
	})

	clock.Advance(5 * time.Second)
	require.Equal(t, []int{1, 2, 3}, order)
	require.Equal(t, time.Unix(5, 0), clock.Now())
}

func TestLoopRunStops(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	ran := make(chan struct{})
	loop.Post(func() { close(ran) })
	<-ran

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	loop.Close()
	loop.Post(func() { t.Error("posted after close") })
	require.True(t, errors.Is(loop.Run(context.Background()), ErrLoopClosed))
}
