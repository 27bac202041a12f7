package viz

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// jobMsg carries a scheduler firing into the program's event loop.
type jobMsg func()

// loadedMsg carries the loader result into the event loop.
type loadedMsg harness.LoadResult

// Options configure a live session.
type Options struct {
	Params stepper.Params
	Delay  float64
	Theme  string
}

// Screen is the stepper target drawing onto a terminal canvas.
type Screen struct {
	canvas *Canvas
	state  stepper.State
	frames int
}

func NewScreen() *Screen {
	return &Screen{canvas: NewCanvas(0, 0)}
}

func (s *Screen) Frame(w, h int) canvas.Canvas {
	if s.canvas.Width != w*cellChars || s.canvas.Height != h {
		s.canvas.Resize(w, h)
	} else {
		s.canvas.FillBackground(canvas.Background)
	}
	return s.canvas
}

func (s *Screen) Present(st stepper.State) error {
	s.state = st
	s.frames++
	return nil
}

// Canvas returns the last presented frame.
func (s *Screen) Canvas() *Canvas { return s.canvas }

// Model is the live stepping view. All controller calls happen in Update.
type Model struct {
	ctx      context.Context
	ctrl     *harness.Controller
	loader   *harness.Loader
	init     harness.InitFunc
	params   *stepper.Static
	registry *alg.Registry
	screen   *Screen
	theme    Theme
	width    int
	showHelp bool
}

// NewModel builds a live view whose autoplay timer runs on sched. sched
// must deliver its jobs back to the program as messages (see Run).
func NewModel(ctx context.Context, opts Options, sched harness.Scheduler) Model {
	registry := alg.NewRegistry()
	params := stepper.NewStatic(opts.Params)
	screen := NewScreen()
	module := stepper.New(registry, params, screen)
	delay := opts.Delay
	if delay <= 0 {
		delay = 1
	}

	ctx = logger.WithName(ctx, "tui")
	return Model{
		ctx:      ctx,
		ctrl:     harness.NewController(ctx, sched, harness.NewDelay(delay)),
		loader:   &harness.Loader{},
		registry: registry,
		params:   params,
		screen:   screen,
		theme:    GetTheme(opts.Theme),
		width:    80,
		init: func(context.Context) (harness.Module, error) {
			name := params.Params().Algorithm
			if !slices.Contains(registry.Names(), name) {
				return nil, fmt.Errorf("%w: %q", stepper.ErrUnknownAlgorithm, name)
			}
			return module, nil
		},
	}
}

// Init starts the module loader.
func (m Model) Init() tea.Cmd {
	loader, init, ctx := m.loader, m.init, m.ctx
	return func() tea.Msg {
		done := make(chan harness.LoadResult, 1)
		if !loader.Load(ctx, init, func(r harness.LoadResult) { done <- r }) {
			return nil
		}
		return loadedMsg(<-done)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if err := m.ctrl.Attach(harness.LoadResult(msg)); err != nil && msg.Err == nil {
			logger.ErrorKV(m.ctx, "initial reset failed", "error", err)
		}
	case jobMsg:
		msg()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		err = m.ctrl.ParamChanged()
	case "a":
		if m.ctrl.Loaded() {
			m.params.SetAlgorithm(m.registry.Next(m.params.Params().Algorithm))
			err = m.ctrl.ParamChanged()
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	default:
		_, err = m.ctrl.HandleKey(key)
	}
	if err != nil {
		logger.WarnKV(m.ctx, "step failed", "key", msg.String(), "error", err)
	}
	return m, nil
}

// Controller exposes the harness controller, mainly for tests.
func (m Model) Controller() *harness.Controller { return m.ctrl }

// Screen returns the frame target.
func (m Model) Screen() *Screen { return m.screen }

func (m Model) View() string {
	t := m.theme
	var s strings.Builder

	if err := m.ctrl.LoadErr(); err != nil {
		s.WriteString(errorText(t, "module failed to load") + "\n")
		s.WriteString(mutedText(t, err.Error()) + "\n")
		s.WriteString(helpStyle.Render("q quit") + "\n")
		return s.String()
	}
	if !m.ctrl.Loaded() {
		return "loading...\n"
	}

	st := m.screen.state
	title := strings.ToUpper(st.Algorithm)
	s.WriteString(headerStyle.Render(GradientText(title, t.Primary, t.Secondary)) + "\n")
	s.WriteString(canvasStyle.Render(m.screen.canvas.Render(t)) + "\n")

	status := statusText(t, m.ctrl.Playing())
	p := m.params.Params()
	s.WriteString(labelStyle.Render("state") + valueText(t, fmt.Sprintf("%d/%d", st.Index+1, st.Count)) + "  " + status + "\n")
	s.WriteString(labelStyle.Render("delay") + valueText(t, fmt.Sprintf("%.3fs", m.ctrl.Delay())) + "\n")
	s.WriteString(labelStyle.Render("input") + mutedText(t, p.Input) + "\n")
	if st.Algorithm != "suffix-array" {
		s.WriteString(labelStyle.Render("query") + mutedText(t, p.Query) + "\n")
	}
	if st.Count > 0 {
		s.WriteString(ProgressBar(float64(st.Index+1)/float64(st.Count), 40, t) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Render(st.Description) + "\n")
	if err := m.ctrl.Err(); err != nil {
		s.WriteString(errorText(t, err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(Separator(min(m.width, 60), t) + "\n")
		s.WriteString(helpStyle.Render(strings.Join([]string{
			"←/backspace prev    →/space next",
			"↑/f/+ faster        ↓/s/- slower",
			"enter/p play-pause  r reset",
			"a next algorithm    t theme",
			"q quit",
		}, "\n")) + "\n")
	} else {
		s.WriteString(helpStyle.Render("? help  q quit") + "\n")
	}
	return s.String()
}

// Run starts a live session on the terminal. Autoplay firings are sent to
// the program as messages so the controller only ever runs in Update.
func Run(ctx context.Context, opts Options) error {
	var p *tea.Program
	sched := timer.NewScheduler(timer.SystemClock, func(job func()) { p.Send(jobMsg(job)) })
	m := NewModel(ctx, opts, harness.TimerScheduler(sched))
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
