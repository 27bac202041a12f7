package gui

import (
	"context"
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
)

const (
	margin    = 20
	statusH   = 60
	minWidth  = 640
	minHeight = 360
)

var (
	ColStatus = rl.NewColor(30, 30, 30, 255)
	ColText   = rl.NewColor(220, 220, 220, 255)
	ColDim    = rl.NewColor(120, 120, 120, 255)
	ColPlay   = rl.NewColor(0, 200, 120, 255)
	ColPause  = rl.NewColor(255, 170, 0, 255)
	ColError  = rl.NewColor(255, 68, 68, 255)
)

// Options configure a window session.
type Options struct {
	Params stepper.Params
	Delay  float64
}

// keyNames maps polled raylib keys to harness key names.
var keyNames = []struct {
	key  int32
	name string
}{
	{rl.KeyLeft, "left"},
	{rl.KeyBackspace, "backspace"},
	{rl.KeyRight, "right"},
	{rl.KeySpace, " "},
	{rl.KeyUp, "up"},
	{rl.KeyF, "f"},
	{rl.KeyKpAdd, "+"},
	{rl.KeyEqual, "+"},
	{rl.KeyDown, "down"},
	{rl.KeyS, "s"},
	{rl.KeyMinus, "-"},
	{rl.KeyKpSubtract, "-"},
	{rl.KeyEnter, "enter"},
	{rl.KeyP, "p"},
}

// screen records frames so they can be replayed every raylib frame.
type screen struct {
	rec    *canvas.Recorder
	w, h   int
	state  stepper.State
	resize bool
}

func (s *screen) Frame(w, h int) canvas.Canvas {
	if w != s.w || h != s.h {
		s.w, s.h, s.resize = w, h, true
	}
	s.rec = canvas.NewRecorder()
	return s.rec
}

func (s *screen) Present(st stepper.State) error {
	s.state = st
	return nil
}

type App struct {
	ctx      context.Context
	loop     *timer.Loop
	ctrl     *harness.Controller
	params   *stepper.Static
	registry *alg.Registry
	screen   *screen
	font     rl.Font
	quit     bool
}

// NewApp wires the controller to a loop drained once per frame.
func NewApp(ctx context.Context, opts Options) *App {
	loop := timer.NewLoop(64)
	registry := alg.NewRegistry()
	params := stepper.NewStatic(opts.Params)
	scr := &screen{}
	sched := timer.NewScheduler(timer.SystemClock, loop.Post)
	delay := opts.Delay
	if delay <= 0 {
		delay = 1
	}

	ctx = logger.WithName(ctx, "gui")
	return &App{
		ctx:      ctx,
		loop:     loop,
		ctrl:     harness.NewController(ctx, harness.TimerScheduler(sched), harness.NewDelay(delay)),
		params:   params,
		registry: registry,
		screen:   scr,
	}
}

func (a *App) load(loader *harness.Loader) {
	module := stepper.New(a.registry, a.params, a.screen)
	loader.Load(a.ctx, func(context.Context) (harness.Module, error) {
		name := a.params.Params().Algorithm
		if !slices.Contains(a.registry.Names(), name) {
			return nil, fmt.Errorf("%w: %q", stepper.ErrUnknownAlgorithm, name)
		}
		return module, nil
	}, func(r harness.LoadResult) {
		a.loop.Post(func() { _ = a.ctrl.Attach(r) })
	})
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, opts Options) error {
	rl.InitWindow(minWidth, minHeight, "algviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	app := NewApp(ctx, opts)
	defer app.loop.Close()
	app.font = rl.GetFontDefault()
	app.load(&harness.Loader{})
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		if a.ctx.Err() != nil {
			return
		}
		a.loop.Drain()
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}

	var err error
	switch {
	case rl.IsKeyPressed(rl.KeyR):
		err = a.ctrl.ParamChanged()
	case rl.IsKeyPressed(rl.KeyA) && a.ctrl.Loaded():
		a.params.SetAlgorithm(a.registry.Next(a.params.Params().Algorithm))
		err = a.ctrl.ParamChanged()
	}
	for _, k := range keyNames {
		if rl.IsKeyPressed(k.key) {
			if _, kerr := a.ctrl.HandleKey(k.name); kerr != nil {
				err = kerr
			}
		}
	}
	if err != nil {
		logger.WarnKV(a.ctx, "step failed", "error", err)
	}

	if a.screen.resize {
		w, h := canvas.PixelSize(a.screen.w, a.screen.h)
		rl.SetWindowSize(max(w+2*margin, minWidth), max(h+2*margin+statusH, minHeight))
		a.screen.resize = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(toRL(canvas.Background))
	if err := a.ctrl.LoadErr(); err != nil {
		rl.DrawTextEx(a.font, "module failed to load: "+err.Error(), rl.NewVector2(margin, margin), fontSize, 1, ColError)
		return
	}
	if a.screen.rec == nil {
		rl.DrawTextEx(a.font, "loading...", rl.NewVector2(margin, margin), fontSize, 1, ColDim)
		return
	}

	a.screen.rec.Replay(&Canvas{Font: a.font, OX: margin, OY: margin})
	a.drawStatus()
}

func (a *App) drawStatus() {
	w := int32(rl.GetScreenWidth())
	y := int32(rl.GetScreenHeight()) - statusH
	rl.DrawRectangle(0, y, w, statusH, ColStatus)

	st := a.screen.state
	mode, col := "PAUSED", ColPause
	if a.ctrl.Playing() {
		mode, col = "PLAYING", ColPlay
	}
	line := fmt.Sprintf("%s  %d/%d  delay %.3fs", st.Algorithm, st.Index+1, st.Count, a.ctrl.Delay())
	rl.DrawTextEx(a.font, mode, rl.NewVector2(margin, float32(y+8)), fontSize, 1, col)
	rl.DrawTextEx(a.font, line, rl.NewVector2(margin+110, float32(y+8)), fontSize, 1, ColText)

	desc := st.Description
	if err := a.ctrl.Err(); err != nil {
		desc = err.Error()
	}
	rl.DrawTextEx(a.font, desc, rl.NewVector2(margin, float32(y+32)), fontSize-4, 1, ColDim)
}
