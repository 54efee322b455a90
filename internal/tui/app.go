// Package tui is the interactive front-end: pick a preset or type an
// equation, tune the run parameters, and inspect the resulting table and
// plots without leaving the terminal.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davigp/odelab/internal/config"
	"github.com/davigp/odelab/internal/render"
	"github.com/davigp/odelab/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateMenu state = iota
	stateFunction
	stateConfig
	stateResults
)

const customEntry = "custom equation"

var methods = []sim.Method{sim.MethodEuler, sim.MethodHeun, sim.MethodBoth}

type model struct {
	state  state
	runner *sim.Runner

	cursor  int
	entries []string

	funcBuf string
	funcErr string

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	method      sim.Method
	iterations  int

	running  bool
	result   *sim.Result
	showPlot bool

	width  int
	height int
}

type resultMsg struct{ res *sim.Result }

func NewApp(runner *sim.Runner) *model {
	entries := append(config.ListPresets(), customEntry)
	return &model{
		state:   stateMenu,
		runner:  runner,
		entries: entries,
		params: map[string]float64{
			"x0": 0, "y0": 1, "x_end": 1, "h": 0.1,
		},
		paramNames: []string{"x0", "y0", "x_end", "h", "iterations", "method"},
		method:     sim.MethodBoth,
		iterations: config.DefaultIterations,
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		m.running = false
		m.result = msg.res
		m.state = stateResults
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateFunction:
		return m.functionKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateResults:
		return m.resultsKey(msg)
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
		name := m.entries[m.cursor]
		if name == customEntry {
			m.funcBuf = ""
			m.funcErr = ""
			m.state = stateFunction
			return m, nil
		}
		cfg := config.GetPreset(name)
		m.funcBuf = cfg.Function
		m.params["x0"] = cfg.X0
		m.params["y0"] = cfg.Y0
		m.params["x_end"] = cfg.XEnd
		m.params["h"] = cfg.H
		m.iterations = cfg.Iterations
		if method, err := sim.ParseMethod(cfg.Method); err == nil {
			m.method = method
		}
		m.paramCursor = 0
		m.state = stateConfig
	}
	return m, nil
}

func (m model) functionKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
	case "enter":
		if _, err := m.runner.Compile(m.funcBuf); err != nil {
			m.funcErr = err.Error()
			return m, nil
		}
		m.funcErr = ""
		m.paramCursor = 0
		m.state = stateConfig
	case "backspace":
		if len(m.funcBuf) > 0 {
			m.funcBuf = m.funcBuf[:len(m.funcBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.funcBuf += msg.String()
		}
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := m.paramNames[m.paramCursor]

	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[name] = val
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if name != "method" && name != "iterations" {
			m.editing = true
			m.editBuf = strconv.FormatFloat(m.params[name], 'g', -1, 64)
		}
	case "left", "h":
		m.adjust(name, -1)
	case "right", "l":
		m.adjust(name, +1)
	case "s":
		if m.running {
			return m, nil
		}
		m.running = true
		return m, m.runCmd()
	}
	return m, nil
}

func (m *model) adjust(name string, dir int) {
	switch name {
	case "method":
		for i, method := range methods {
			if method == m.method {
				m.method = methods[(i+len(methods)+dir)%len(methods)]
				return
			}
		}
	case "iterations":
		m.iterations += dir
		if m.iterations < 1 {
			m.iterations = 1
		}
	case "h":
		m.params["h"] += 0.01 * float64(dir)
		if m.params["h"] < 0.01 {
			m.params["h"] = 0.01
		}
	default:
		m.params[name] += 0.1 * float64(dir)
	}
}

func (m model) resultsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "c":
		m.state = stateConfig
		return m, tea.ClearScreen
	case "m":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "p", "tab":
		m.showPlot = !m.showPlot
		return m, tea.ClearScreen
	case "r":
		m.running = true
		return m, m.runCmd()
	}
	return m, nil
}

func (m model) runCmd() tea.Cmd {
	p := sim.Params{
		Source:     m.funcBuf,
		X0:         m.params["x0"],
		Y0:         m.params["y0"],
		H:          m.params["h"],
		XEnd:       m.params["x_end"],
		Method:     m.method,
		Iterations: m.iterations,
	}
	runner := m.runner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return resultMsg{res: runner.Run(ctx, p)}
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateFunction:
		return m.viewFunction()
	case stateConfig:
		return m.viewConfig()
	case stateResults:
		return m.viewResults()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("o d e l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.entries {
		desc := ""
		if cfg := config.GetPreset(name); cfg != nil {
			desc = "y' = " + cfg.Function
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   q quit") + "\n")

	return b.String()
}

func (m model) viewFunction() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("y' = f(x, y)") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")
	b.WriteString("      " + white.Render("y' = ") + magenta.Render(m.funcBuf+"▋") + "\n")
	if m.funcErr != "" {
		b.WriteString("\n      " + red.Render(m.funcErr) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      variables x, y  functions sin cos tan exp log sqrt  constants pi e") + "\n")
	b.WriteString(dim.Render("      enter accept   esc back") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("y' = "+m.funcBuf) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	for i, name := range m.paramNames {
		var val string
		switch name {
		case "method":
			val = fmt.Sprintf("%8s", string(m.method))
		case "iterations":
			val = fmt.Sprintf("%8d", m.iterations)
		default:
			val = fmt.Sprintf("%8.3f", m.params[name])
		}
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if m.running {
		b.WriteString("      " + green.Render("solving...") + "\n")
	}
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s solve  esc back") + "\n")

	return b.String()
}

func (m model) viewResults() string {
	if m.result == nil {
		return "\n      " + dim.Render("no results yet") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.result.Err != "" {
		b.WriteString("      " + red.Render(m.result.Err) + "\n\n")
		b.WriteString(dim.Render("      esc back   m menu   q quit") + "\n")
		return b.String()
	}

	var body strings.Builder
	render.Summary(&body, m.result)
	if m.showPlot {
		render.Curves(&body, m.result)
		if m.result.HasExact() {
			render.Errors(&body, m.result)
		}
	} else {
		render.Table(&body, m.result, 6)
	}

	for _, line := range strings.Split(strings.TrimRight(body.String(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	view := "table"
	if m.showPlot {
		view = "plot"
	}
	b.WriteString("\n" + dim.Render(fmt.Sprintf("  p toggle %s  r rerun  c params  m menu  q quit", view)) + "\n")

	return b.String()
}

// Run starts the interactive session and blocks until the user quits.
func Run(runner *sim.Runner) error {
	p := tea.NewProgram(NewApp(runner), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
