package viz

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
)

type testRig struct {
	clock *timer.FakeClock
	jobs  []func()
	model Model
}

func newRig(t *testing.T, opts Options) *testRig {
	t.Helper()
	r := &testRig{clock: timer.NewFakeClock(time.Unix(0, 0))}
	sched := timer.NewScheduler(r.clock, func(job func()) { r.jobs = append(r.jobs, job) })
	r.model = NewModel(context.Background(), opts, harness.TimerScheduler(sched))
	return r
}

func (r *testRig) send(msg tea.Msg) tea.Cmd {
	m, cmd := r.model.Update(msg)
	r.model = m.(Model)
	return cmd
}

func (r *testRig) load(t *testing.T) {
	t.Helper()
	msg := r.model.Init()()
	require.IsType(t, loadedMsg{}, msg)
	r.send(msg)
}

// deliver forwards queued scheduler jobs as the program would.
func (r *testRig) deliver() {
	jobs := r.jobs
	r.jobs = nil
	for _, job := range jobs {
		r.send(jobMsg(job))
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func bwtOptions() Options {
	return Options{
		Params: stepper.Params{Algorithm: "bwt", Input: "banana", Query: "ana"},
		Delay:  1,
		Theme:  "classic",
	}
}

func TestModelLoadsAndDrawsFirstFrame(t *testing.T) {
	r := newRig(t, bwtOptions())
	require.Equal(t, "loading...\n", r.model.View())

	r.load(t)
	require.True(t, r.model.Controller().Loaded())
	require.Equal(t, 1, r.model.Screen().frames)
	require.Equal(t, 0, r.model.Screen().state.Index)
	require.Contains(t, r.model.View(), "PAUSED")
}

func TestModelSecondInitDoesNothing(t *testing.T) {
	r := newRig(t, bwtOptions())
	r.load(t)
	require.Nil(t, r.model.Init()())
}

func TestModelStepsWithKeys(t *testing.T) {
	r := newRig(t, bwtOptions())
	r.load(t)

	r.send(key("right"))
	r.send(key("right"))
	require.Equal(t, 2, r.model.Screen().state.Index)
	r.send(key("left"))
	require.Equal(t, 1, r.model.Screen().state.Index)

	r.send(key("x"))
	require.Equal(t, 1, r.model.Screen().state.Index)
}

func TestModelAutoplay(t *testing.T) {
	r := newRig(t, bwtOptions())
	r.load(t)

	r.send(key("p"))
	require.True(t, r.model.Controller().Playing())
	require.Equal(t, 1, r.clock.Pending())

	r.clock.Advance(time.Second)
	r.deliver()
	require.Equal(t, 1, r.model.Screen().state.Index)
	require.Contains(t, r.model.View(), "PLAYING")

	r.send(key("s"))
	require.InDelta(t, 1.5, r.model.Controller().Delay(), 1e-9)

	r.clock.Advance(time.Second)
	r.deliver()
	require.Equal(t, 2, r.model.Screen().state.Index)

	r.clock.Advance(time.Second)
	r.deliver()
	require.Equal(t, 2, r.model.Screen().state.Index)
	r.clock.Advance(500 * time.Millisecond)
	r.deliver()
	require.Equal(t, 3, r.model.Screen().state.Index)

	r.send(key("enter"))
	require.False(t, r.model.Controller().Playing())
	require.Equal(t, 0, r.clock.Pending())
}

func TestModelResetAndSwitchAlgorithm(t *testing.T) {
	r := newRig(t, bwtOptions())
	r.load(t)
	r.send(key("right"))

	r.send(key("r"))
	require.Equal(t, 0, r.model.Screen().state.Index)
	require.Equal(t, "bwt", r.model.Screen().state.Algorithm)

	r.send(key("a"))
	require.Equal(t, "suffix-array", r.model.Screen().state.Algorithm)
	require.Contains(t, r.model.View(), "SUFFIX-ARRAY")
}

func TestModelThemeAndQuit(t *testing.T) {
	r := newRig(t, bwtOptions())
	r.load(t)

	r.send(key("t"))
	require.Equal(t, "cyberpunk", r.model.theme.Name)

	cmd := r.send(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelLoadFailureIsInert(t *testing.T) {
	opts := bwtOptions()
	opts.Params.Algorithm = "heapsort"
	r := newRig(t, opts)
	r.load(t)

	require.False(t, r.model.Controller().Loaded())
	require.ErrorIs(t, r.model.Controller().LoadErr(), stepper.ErrUnknownAlgorithm)
	require.Contains(t, r.model.View(), "module failed to load")

	r.send(key("right"))
	r.send(key("p"))
	r.send(key("a"))
	require.False(t, r.model.Controller().Playing())
	require.Equal(t, 0, r.clock.Pending())
	require.Equal(t, 0, r.model.Screen().frames)
}
