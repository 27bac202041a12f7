// Package repl is a line-oriented front-end: commands read with readline
// are posted to the same loop that runs autoplay firings.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/chzyer/readline"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
	"github.com/san-kum/algviz/internal/viz"
)

var (
	ErrUnknownCommand  = errors.New("repl: unknown command")
	ErrMissingArgument = errors.New("repl: missing argument")
)

const help = `commands:
  next, n          step forward
  prev, p          step back
  play             toggle autoplay
  faster, slower   change the autoplay delay
  reset            rebuild from the current parameters
  string <s>       set the input text
  query <q>        set the search pattern
  alg <name>       switch algorithm
  help             this text
  quit             leave`

// Options configure a REPL session.
type Options struct {
	Params stepper.Params
	Delay  float64
}

// printer presents frames as plain text.
type printer struct {
	screen *viz.Screen
	out    io.Writer
}

func (p *printer) Frame(w, h int) canvas.Canvas { return p.screen.Frame(w, h) }

func (p *printer) Present(st stepper.State) error {
	if err := p.screen.Present(st); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "%s%s\n", p.screen.Canvas().String(), st)
	return err
}

type Session struct {
	ctx      context.Context
	ctrl     *harness.Controller
	params   *stepper.Static
	registry *alg.Registry
	module   *stepper.Stepper
	out      io.Writer
}

func NewSession(ctx context.Context, opts Options, sched harness.Scheduler, out io.Writer) *Session {
	registry := alg.NewRegistry()
	params := stepper.NewStatic(opts.Params)
	delay := opts.Delay
	if delay <= 0 {
		delay = 1
	}
	ctx = logger.WithName(ctx, "repl")
	return &Session{
		ctx:      ctx,
		ctrl:     harness.NewController(ctx, sched, harness.NewDelay(delay)),
		params:   params,
		registry: registry,
		module:   stepper.New(registry, params, &printer{screen: viz.NewScreen(), out: out}),
		out:      out,
	}
}

// Load starts the module loader; post must run the attach on the loop.
func (s *Session) Load(loader *harness.Loader, post func(func())) {
	loader.Load(s.ctx, func(context.Context) (harness.Module, error) {
		name := s.params.Params().Algorithm
		if !slices.Contains(s.registry.Names(), name) {
			return nil, fmt.Errorf("%w: %q", stepper.ErrUnknownAlgorithm, name)
		}
		return s.module, nil
	}, func(r harness.LoadResult) {
		post(func() {
			if err := s.ctrl.Attach(r); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		})
	})
}

func (s *Session) Controller() *harness.Controller { return s.ctrl }

// Exec runs one command line. quit is true when the session should end.
func (s *Session) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	arg := strings.Join(args, " ")

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, help)
		return false, nil
	case "next", "n":
		return false, s.ctrl.Next()
	case "prev", "p":
		return false, s.ctrl.Prev()
	case "play", "pause":
		s.ctrl.PausePlay()
		fmt.Fprintf(s.out, "playing: %v\n", s.ctrl.Playing())
		return false, nil
	case "faster":
		s.ctrl.Faster()
		fmt.Fprintf(s.out, "delay: %.3fs\n", s.ctrl.Delay())
		return false, nil
	case "slower":
		s.ctrl.Slower()
		fmt.Fprintf(s.out, "delay: %.3fs\n", s.ctrl.Delay())
		return false, nil
	case "reset":
		return false, s.ctrl.ParamChanged()
	case "string", "query", "alg":
		if arg == "" {
			return false, fmt.Errorf("%w: %s", ErrMissingArgument, cmd)
		}
		return false, s.setParam(cmd, arg)
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

func (s *Session) setParam(name, val string) error {
	switch name {
	case "string":
		s.params.SetInput(val)
	case "query":
		s.params.SetQuery(val)
	case "alg":
		if !slices.Contains(s.registry.Names(), val) {
			return fmt.Errorf("%w: %q", stepper.ErrUnknownAlgorithm, val)
		}
		s.params.SetAlgorithm(val)
	}
	return s.ctrl.ParamChanged()
}

func completer(algorithms []string) *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("play"),
		readline.PcItem("faster"),
		readline.PcItem("slower"),
		readline.PcItem("reset"),
		readline.PcItem("string"),
		readline.PcItem("query"),
		readline.PcItem("alg", readline.PcItemDynamic(func(string) []string {
			return algorithms
		})),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run reads commands until quit, EOF or ctx is done.
func Run(ctx context.Context, opts Options) error {
	loop := timer.NewLoop(16)
	defer loop.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       ">> ",
		AutoComplete: completer(alg.NewRegistry().Names()),
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	sched := timer.NewScheduler(timer.SystemClock, loop.Post)
	s := NewSession(ctx, opts, harness.TimerScheduler(sched), rl.Stdout())
	s.Load(&harness.Loader{}, loop.Post)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		for {
			line, err := rl.Readline()
			if err != nil {
				return
			}
			done := make(chan bool, 1)
			loop.Post(func() {
				quit, err := s.Exec(line)
				if err != nil {
					fmt.Fprintf(s.out, "error: %v\n", err)
				}
				done <- quit
			})
			select {
			case quit := <-done:
				if quit {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
