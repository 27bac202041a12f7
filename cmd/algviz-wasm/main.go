//go:build js && wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
	"github.com/san-kum/algviz/internal/web"
)

var errMissingElement = errors.New("wasm: missing element")

// htmlCanvas draws onto a 2d rendering context.
type htmlCanvas struct {
	element js.Value
	ctx     js.Value
}

func rgb(c canvas.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (h *htmlCanvas) FillBackground(c canvas.Color) {
	h.ctx.Call("clearRect", 0, 0, h.element.Get("width"), h.element.Get("height"))
}

func (h *htmlCanvas) FillRect(x, y, w, ht int, c canvas.Color) {
	h.ctx.Set("fillStyle", rgb(c))
	h.ctx.Call("fillRect", x, y, w, ht)
}

func (h *htmlCanvas) DrawRect(x, y, w, ht int, c canvas.Color) {
	h.ctx.Call("beginPath")
	h.ctx.Set("strokeStyle", rgb(c))
	h.ctx.Call("strokeRect", x, y, w, ht)
}

var textAlign = map[canvas.HAlign]string{
	canvas.AlignLeft:   "left",
	canvas.AlignCenter: "center",
	canvas.AlignRight:  "right",
}

var textBaseline = map[canvas.VAlign]string{
	canvas.AlignTop:    "top",
	canvas.AlignMiddle: "middle",
	canvas.AlignBottom: "bottom",
}

func (h *htmlCanvas) WriteText(x, y int, ha canvas.HAlign, va canvas.VAlign, text string) {
	h.ctx.Set("fillStyle", rgb(canvas.Black))
	h.ctx.Set("font", "20px Arial")
	h.ctx.Set("textBaseline", textBaseline[va])
	h.ctx.Set("textAlign", textAlign[ha])
	h.ctx.Call("fillText", text, x, y)
}

// jsField is a form control's value.
type jsField struct{ el js.Value }

func (f jsField) Value() string     { return f.el.Get("value").String() }
func (f jsField) SetValue(v string) { f.el.Set("value", v) }

// jsSurface is a <canvas> element.
type jsSurface struct{ el js.Value }

func (s jsSurface) Size() (int, int) {
	return s.el.Get("width").Int(), s.el.Get("height").Int()
}

func (s jsSurface) Resize(w, h int) {
	s.el.Set("width", w)
	s.el.Set("height", h)
}

func (s jsSurface) Canvas() canvas.Canvas {
	return &htmlCanvas{element: s.el, ctx: s.el.Call("getContext", "2d")}
}

// page holds the bound DOM elements.
type page struct {
	drawing   js.Value
	delay     js.Value
	input     js.Value
	query     js.Value
	algorithm js.Value
	buttons   map[string]js.Value
}

func lookup(doc js.Value, ids ...string) (js.Value, bool) {
	for _, id := range ids {
		if el := doc.Call("getElementById", id); el.Truthy() {
			return el, true
		}
	}
	return js.Null(), false
}

func bind(doc js.Value) (*page, error) {
	p := &page{buttons: map[string]js.Value{}}
	var ok bool
	if p.drawing, ok = lookup(doc, "drawing", "canvas"); !ok {
		return nil, fmt.Errorf("%w: drawing", errMissingElement)
	}
	for id, dst := range map[string]*js.Value{"delay": &p.delay, "string": &p.input} {
		if *dst, ok = lookup(doc, id); !ok {
			return nil, fmt.Errorf("%w: %s", errMissingElement, id)
		}
	}
	for _, id := range []string{"prev", "next", "faster", "slower", "pauseplay"} {
		el, ok := lookup(doc, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errMissingElement, id)
		}
		p.buttons[id] = el
	}
	// query and algorithm are optional controls.
	p.query, _ = lookup(doc, "query")
	p.algorithm, _ = lookup(doc, "algorithm")
	return p, nil
}

func (p *page) controls() web.Controls {
	c := web.Controls{Input: jsField{p.input}}
	if p.query.Truthy() {
		c.Query = jsField{p.query}
	}
	if p.algorithm.Truthy() {
		c.Algorithm = jsField{p.algorithm}
	}
	return c
}

func main() {
	ctx := logger.WithName(context.Background(), "wasm")
	doc := js.Global().Get("document")

	pg, err := bind(doc)
	if err != nil {
		logger.ErrorKV(ctx, "startup aborted", "error", err)
		panic(err)
	}

	loop := timer.NewLoop(64)
	sched := timer.NewScheduler(timer.SystemClock, loop.Post)
	ctrl := harness.NewController(ctx, harness.TimerScheduler(sched), web.NewDelay(jsField{pg.delay}))
	module := stepper.New(alg.NewRegistry(), pg.controls(), web.NewTarget(ctx, jsSurface{pg.drawing}))

	report := func(name string, err error) {
		if err != nil {
			logger.ErrorKV(ctx, name+" failed", "error", err)
		}
	}

	on := func(el js.Value, event string, f func()) {
		el.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
			loop.Post(f)
			return nil
		}))
	}

	for _, el := range []js.Value{pg.input, pg.query, pg.algorithm} {
		if el.Truthy() {
			on(el, "change", func() { report("reset", ctrl.ParamChanged()) })
		}
	}
	buttons := map[string]harness.Action{
		"prev":      harness.ActionPrev,
		"next":      harness.ActionNext,
		"faster":    harness.ActionFaster,
		"slower":    harness.ActionSlower,
		"pauseplay": harness.ActionPausePlay,
	}
	for id, action := range buttons {
		on(pg.buttons[id], "click", func() { report(action.String(), ctrl.Dispatch(action)) })
	}

	doc.Set("onkeydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		code := e.Get("keyCode").Int()
		if _, ok := harness.ActionForKeyCode(code); !ok {
			return true
		}
		e.Call("preventDefault")
		loop.Post(func() {
			_, err := ctrl.HandleKeyCode(code)
			report("key", err)
		})
		return false
	}))

	exports := js.Global().Get("Object").New()
	for name, op := range map[string]func() error{
		"reset": ctrl.ParamChanged,
		"next":  ctrl.Next,
		"prev":  ctrl.Prev,
		"draw":  module.Draw,
	} {
		exports.Set(name, js.FuncOf(func(this js.Value, args []js.Value) any {
			loop.Post(func() { report(name, op()) })
			return nil
		}))
	}
	js.Global().Set("algviz", exports)

	(&harness.Loader{}).Load(ctx, func(context.Context) (harness.Module, error) {
		return module, nil
	}, func(r harness.LoadResult) {
		loop.Post(func() { report("load", ctrl.Attach(r)) })
	})

	if err := loop.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "event loop stopped", "error", err)
	}
}
