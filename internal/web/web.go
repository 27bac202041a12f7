// Package web holds the browser front-end's page logic that does not need
// the DOM: reading parameters from form controls, keeping the autoplay delay
// and sizing the drawing surface. cmd/algviz-wasm backs the interfaces with
// syscall/js values.
package web

import (
	"context"
	"strconv"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
)

// DefaultAlgorithm is used when the page has no algorithm control.
const DefaultAlgorithm = "suffix-array"

// Field is a text control.
type Field interface {
	Value() string
	SetValue(v string)
}

// Surface is a drawing element sized in pixels.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Canvas() canvas.Canvas
}

// Controls reads the stepper parameters from the page. Query and Algorithm
// may be nil when the page does not offer them.
type Controls struct {
	Input     Field
	Query     Field
	Algorithm Field
}

func (c Controls) Params() stepper.Params {
	p := stepper.Params{Algorithm: DefaultAlgorithm, Query: alg.DefaultQuery}
	if c.Input != nil {
		p.Input = c.Input.Value()
	}
	if c.Query != nil {
		p.Query = c.Query.Value()
	}
	if c.Algorithm != nil {
		if name := c.Algorithm.Value(); name != "" {
			p.Algorithm = name
		}
	}
	return p
}

// Delay keeps the autoplay delay at full precision and shows it rounded in
// a field. An edit of the field replaces the stored value.
type Delay struct {
	field   Field
	seconds float64
	shown   string
}

func NewDelay(field Field) *Delay {
	d := &Delay{field: field, seconds: 1}
	if s, ok := parseSeconds(field.Value()); ok {
		d.seconds = s
	}
	d.shown = field.Value()
	return d
}

func parseSeconds(v string) (float64, bool) {
	s, err := strconv.ParseFloat(v, 64)
	if err != nil || s <= 0 {
		return 0, false
	}
	return s, true
}

func (d *Delay) Delay() float64 {
	if v := d.field.Value(); v != d.shown {
		d.shown = v
		if s, ok := parseSeconds(v); ok {
			d.seconds = s
		}
	}
	return d.seconds
}

func (d *Delay) SetDelay(seconds float64) {
	d.seconds = seconds
	d.shown = strconv.FormatFloat(seconds, 'f', 3, 64)
	d.field.SetValue(d.shown)
}

// Target presents stepper frames on a Surface. Frame sizes arrive in grid
// cells and the surface is resized in pixels.
type Target struct {
	ctx     context.Context
	surface Surface
	state   stepper.State
}

func NewTarget(ctx context.Context, surface Surface) *Target {
	return &Target{ctx: ctx, surface: surface}
}

func (t *Target) Frame(w, h int) canvas.Canvas {
	pw, ph := canvas.PixelSize(w, h)
	if cw, ch := t.surface.Size(); cw != pw || ch != ph {
		t.surface.Resize(pw, ph)
	}
	c := t.surface.Canvas()
	canvas.DrawBackground(c)
	return c
}

func (t *Target) Present(st stepper.State) error {
	t.state = st
	logger.DebugKV(t.ctx, "frame", "state", st.String())
	return nil
}

// State returns the last presented state.
func (t *Target) State() stepper.State { return t.state }
