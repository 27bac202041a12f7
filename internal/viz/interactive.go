package viz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/config"
	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/timer"
)

var algInfo = map[string]string{
	"suffix-array": "induced sorting of L-type suffixes",
	"bwt":          "burrows-wheeler transform and backward search",
	"bibwt":        "bidirectional bwt, query grown from its middle",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

var fieldNames = []string{"algorithm", "input", "query", "delay"}

type menuEntry struct {
	algorithm, preset string
}

// model is the preset picker wrapping the live view.
type model struct {
	ctx           context.Context
	sched         harness.Scheduler
	state, cursor int
	entries       []menuEntry
	cfg           config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	width, height int
	live          Model
}

func NewInteractiveApp(ctx context.Context, base *config.Config, sched harness.Scheduler) *model {
	var entries []menuEntry
	for _, name := range config.Algorithms() {
		for _, p := range config.ListPresets(name) {
			entries = append(entries, menuEntry{algorithm: name, preset: p})
		}
	}
	return &model{
		ctx:     ctx,
		sched:   sched,
		state:   stateMenu,
		entries: entries,
		cfg:     *base,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height, m.live.width = msg.Width, msg.Height, msg.Width
		return m, nil
	default:
		if m.state == stateLive {
			newLive, cmd := m.live.Update(msg)
			m.live = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateLive:
		newLive, cmd := m.live.Update(msg)
		m.live = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		e := m.entries[m.cursor]
		m.cfg.Apply(config.GetPreset(e.algorithm, e.preset))
		m.state, m.fieldCursor = stateConfig, 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.setField(fieldNames[m.fieldCursor], m.editBuf)
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.editBuf += string(msg.Runes)
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fieldNames)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		name := fieldNames[m.fieldCursor]
		if name == "algorithm" {
			m.cfg.Algorithm = alg.NewRegistry().Next(m.cfg.Algorithm)
			return m, nil
		}
		m.editing, m.editBuf = true, m.field(name)
	case "left", "h":
		if fieldNames[m.fieldCursor] == "delay" && m.cfg.Delay > 0.1 {
			m.cfg.Delay -= 0.1
		}
	case "right", "l":
		if fieldNames[m.fieldCursor] == "delay" {
			m.cfg.Delay += 0.1
		}
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m model) field(name string) string {
	switch name {
	case "algorithm":
		return m.cfg.Algorithm
	case "input":
		return m.cfg.Input
	case "query":
		return m.cfg.Query
	case "delay":
		return strconv.FormatFloat(m.cfg.Delay, 'f', 2, 64)
	}
	return ""
}

func (m *model) setField(name, val string) {
	switch name {
	case "input":
		m.cfg.Input = val
	case "query":
		m.cfg.Query = val
	case "delay":
		if d, err := strconv.ParseFloat(val, 64); err == nil && d > 0 {
			m.cfg.Delay = d
		}
	}
}

func (m *model) start() tea.Cmd {
	m.live = NewModel(m.ctx, Options{
		Params: stepper.Params{Algorithm: m.cfg.Algorithm, Input: m.cfg.Input, Query: m.cfg.Query},
		Delay:  m.cfg.Delay,
		Theme:  m.cfg.Theme,
	}, m.sched)
	m.live.width = m.width
	m.state = stateLive
	return m.live.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return ""
}

var (
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeName = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	activeDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleName   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	hintKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	hintText   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(hintKey.Render(pairs[i]) + hintText.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("ALGVIZ") + "\n    " + subStyle.Render("step-through string algorithms") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		p := config.GetPreset(e.algorithm, e.preset)
		desc := p.Input
		if p.Query != "" {
			desc += " / " + p.Query
		}
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}
		label := fmt.Sprintf("%-26s", e.algorithm+"/"+e.preset)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorMark.Render("▸"), activeName.Render(label), activeDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleName.Render("  "+label), idleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.cfg.Algorithm)) + "\n    " + subStyle.Render(algInfo[m.cfg.Algorithm]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range fieldNames {
		val := m.field(name)
		if m.editing && i == m.fieldCursor {
			val = m.editBuf + "_"
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorMark.Render("▸"), activeName.Render(fmt.Sprintf("%-10s", name)), activeDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleName.Render(fmt.Sprintf("  %-10s", name)), idleDesc.Render(val)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "select", "enter", "edit", "h/l", "delay", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset picker and then the live view.
func RunInteractive(ctx context.Context, base *config.Config) error {
	var p *tea.Program
	sched := timer.NewScheduler(timer.SystemClock, func(job func()) { p.Send(jobMsg(job)) })
	p = tea.NewProgram(NewInteractiveApp(ctx, base, harness.TimerScheduler(sched)), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
