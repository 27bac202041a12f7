package stepper

import (
	"errors"
	"fmt"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
)

var (
	ErrUnknownAlgorithm = errors.New("stepper: unknown algorithm")
	ErrNotReset         = errors.New("stepper: reset has not run")
)

// Params are the user-editable inputs of a run.
type Params struct {
	Algorithm string
	Input     string
	Query     string
}

// ParamSource returns the parameters current at Reset time.
type ParamSource interface {
	Params() Params
}

// ParamsFunc adapts a function to ParamSource.
type ParamsFunc func() Params

func (f ParamsFunc) Params() Params { return f() }

// Static is a mutable in-memory ParamSource.
type Static struct {
	p Params
}

func NewStatic(p Params) *Static { return &Static{p: p} }

func (s *Static) Params() Params           { return s.p }
func (s *Static) SetAlgorithm(name string) { s.p.Algorithm = name }
func (s *Static) SetInput(text string)     { s.p.Input = text }
func (s *Static) SetQuery(q string)        { s.p.Query = q }

// Target is where frames go. Frame returns a cleared canvas sized in grid
// cells, Present shows whatever was drawn on it.
type Target interface {
	Frame(w, h int) canvas.Canvas
	Present(st State) error
}

// State summarizes the current position for status lines.
type State struct {
	Algorithm   string
	Index       int
	Count       int
	Description string
	Forward     bool
}

func (s State) String() string {
	return fmt.Sprintf("%s %d/%d: %s", s.Algorithm, s.Index+1, s.Count, s.Description)
}

type Stepper struct {
	registry *alg.Registry
	params   ParamSource
	target   Target

	viz     alg.Viz
	name    string
	index   int
	forward bool
}

func New(registry *alg.Registry, params ParamSource, target Target) *Stepper {
	if registry == nil {
		registry = alg.NewRegistry()
	}
	return &Stepper{
		registry: registry,
		params:   params,
		target:   target,
		forward:  true,
	}
}

// Reset rebuilds the visualization from the current parameters and rewinds
// to the first state.
func (s *Stepper) Reset() error {
	p := s.params.Params()
	viz, err := s.registry.New(p.Algorithm, p.Input, p.Query)
	if err != nil {
		if errors.Is(err, alg.ErrUnknownAlgorithm) {
			return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Algorithm)
		}
		return err
	}
	s.viz = viz
	s.name = p.Algorithm
	s.index = 0
	s.forward = true
	return nil
}

func (s *Stepper) Next() error {
	if s.viz == nil {
		return ErrNotReset
	}
	s.forward = true
	if s.index+1 < s.viz.NumStates() {
		s.index++
	}
	return nil
}

func (s *Stepper) Prev() error {
	if s.viz == nil {
		return ErrNotReset
	}
	s.forward = false
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Draw renders the current state. Frames the algorithm declines to
// present are skipped in the direction of the last step until a
// presentable frame or either end is reached.
func (s *Stepper) Draw() error {
	if s.viz == nil {
		return ErrNotReset
	}
	w, h := s.viz.CanvasSize()
	c := s.target.Frame(w, h)
	for !s.viz.Draw(s.index, c) {
		if !s.advance() {
			break
		}
	}
	return s.target.Present(s.State())
}

func (s *Stepper) advance() bool {
	if s.forward {
		if s.index+1 >= s.viz.NumStates() {
			return false
		}
		s.index++
		return true
	}
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

func (s *Stepper) State() State {
	if s.viz == nil {
		return State{Algorithm: s.name, Forward: s.forward}
	}
	return State{
		Algorithm:   s.viz.Name(),
		Index:       s.index,
		Count:       s.viz.NumStates(),
		Description: s.viz.Describe(s.index),
		Forward:     s.forward,
	}
}

// Viz returns the visualization built by the last Reset.
func (s *Stepper) Viz() alg.Viz { return s.viz }
