package main

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/config"
	"github.com/wippyai/slang-bridge/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	cfg      *config.Config
	global   *slang.GlobalSession
	session  *slang.Session
	targets  []*slang.TargetDesc
	modules  []*slang.Module
	entries  []entryInfo
	visible  []int
	filter   textinput.Model
	view     viewport.Model
	title    string
	selected int
	target   int
	width    int
	height   int
	state    modelState

	// mu serializes compiler calls made from commands.
	mu sync.Mutex
}

type entryInfo struct {
	module *slang.Module
	name   string
	stage  string
	index  int
}

type modelState int

const (
	stateSelectEntry modelState = iota
	stateShowCode
)

func newInteractiveModel(cfg *config.Config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{
		cfg:    cfg,
		filter: ti,
		view:   viewport.New(80, 20),
		state:  stateSelectEntry,
	}
}

type loadedMsg struct {
	err     error
	global  *slang.GlobalSession
	session *slang.Session
	targets []*slang.TargetDesc
	modules []*slang.Module
	entries []entryInfo
}

type codeMsg struct {
	err   error
	title string
	body  string
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *interactiveModel) load() tea.Msg {
	g, err := slang.NewGlobalSession()
	if err != nil {
		return loadedMsg{err: err}
	}
	desc, err := m.cfg.SessionDesc(g)
	if err != nil {
		g.Release()
		return loadedMsg{err: err}
	}
	s, err := g.CreateSession(desc)
	if err != nil {
		g.Release()
		return loadedMsg{err: err}
	}

	msg := loadedMsg{global: g, session: s, targets: desc.Targets}
	for _, mc := range m.cfg.Modules {
		mod, err := s.LoadModule(mc.Name)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.modules = append(msg.modules, mod)
		for i := range mod.EntryPointCount() {
			ep, err := mod.EntryPointByIndex(i)
			if err != nil {
				continue
			}
			msg.entries = append(msg.entries, entryInfo{
				module: mod,
				name:   entryName(ep),
				stage:  stageOf(ep),
				index:  i,
			})
			ep.Release()
		}
	}
	return msg
}

// stageOf reads an entry point's stage from its own layout.
func stageOf(ep *slang.EntryPoint) string {
	layout, err := ep.Layout(0)
	if err != nil {
		return ""
	}
	for e := range layout.EntryPoints() {
		if e != nil {
			return e.Stage().String()
		}
	}
	return ""
}

func (m *interactiveModel) close() {
	for _, mod := range m.modules {
		mod.Release()
	}
	m.modules = nil
	if m.session != nil {
		m.session.Release()
		m.session = nil
	}
	if m.global != nil {
		m.global.Release()
		m.global = nil
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(1, msg.Height-6)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.close()
			return m, tea.Quit

		case "q":
			if m.state == stateShowCode {
				m.close()
				return m, tea.Quit
			}

		case "up":
			if m.state == stateSelectEntry && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateSelectEntry && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "tab":
			if len(m.targets) > 0 {
				m.target = (m.target + 1) % len(m.targets)
			}
			if m.state == stateShowCode {
				return m, m.compileSelected
			}
			return m, nil

		case "enter":
			if m.state == stateSelectEntry && len(m.visible) > 0 {
				return m, m.compileSelected
			}

		case "ctrl+r":
			if m.state == stateSelectEntry && len(m.visible) > 0 {
				return m, m.reflectSelected
			}

		case "esc":
			if m.state == stateShowCode {
				m.state = stateSelectEntry
				m.err = nil
				return m, nil
			}
		}

	case loadedMsg:
		m.global, m.session, m.targets, m.modules = msg.global, msg.session, msg.targets, msg.modules
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()

	case codeMsg:
		m.err = msg.err
		m.title = msg.title
		m.view.SetContent(msg.body)
		m.view.GotoTop()
		m.state = stateShowCode
		return m, nil
	}

	switch m.state {
	case stateSelectEntry:
		var cmd tea.Cmd
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.applyFilter()
		}
		return m, cmd
	case stateShowCode:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.module.Name()+" "+e.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = min(m.selected, max(0, len(m.visible)-1))
}

func (m *interactiveModel) current() entryInfo {
	return m.entries[m.visible[m.selected]]
}

// compileSelected links the selected entry point and renders its code for
// the current target.
func (m *interactiveModel) compileSelected() tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.current()
	target := m.targets[m.target]
	title := fmt.Sprintf("%s/%s [%s]", e.module.Name(), e.name, target.Format)

	linked, err := m.link(e)
	if err != nil {
		return codeMsg{err: err, title: title}
	}
	defer linked.Release()

	code, err := linked.EntryPointCode(0, m.target)
	if err != nil {
		return codeMsg{err: err, title: title}
	}
	defer code.Release()
	return codeMsg{title: title, body: renderCode(code.Bytes())}
}

func (m *interactiveModel) reflectSelected() tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.current()
	title := fmt.Sprintf("%s/%s reflection", e.module.Name(), e.name)

	linked, err := m.link(e)
	if err != nil {
		return codeMsg{err: err, title: title}
	}
	defer linked.Release()

	layout, err := linked.Layout(m.target)
	if err != nil {
		return codeMsg{err: err, title: title}
	}
	data, err := reflectionJSON(layout)
	if err != nil {
		return codeMsg{err: err, title: title}
	}
	return codeMsg{title: title, body: string(data)}
}

func (m *interactiveModel) link(e entryInfo) (*slang.ComponentType, error) {
	ep, err := e.module.EntryPointByIndex(e.index)
	if err != nil {
		return nil, err
	}
	defer ep.Release()

	composite, err := m.session.CreateCompositeComponentType(e.module, ep)
	if err != nil {
		return nil, err
	}
	defer composite.Release()
	return composite.Link()
}

// renderCode returns text output as is and a hex dump for binary output.
func renderCode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return fmt.Sprintf("%d bytes\n\n%s", len(data), hex.Dump(data))
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowCode {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}

	if m.session == nil {
		return "Loading modules..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Slang"))
	b.WriteString(" ")
	if len(m.targets) > 0 {
		b.WriteString(stageStyle.Render(m.targets[m.target].Format.String()))
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEntry:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no entry points"))
			b.WriteString("\n")
		}
		for i, idx := range m.visible {
			e := m.entries[idx]
			line := e.module.Name() + "/" + e.name
			if e.stage != "" {
				line += " " + stageStyle.Render("["+e.stage+"]")
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + entryStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • type to filter • tab target • enter compile • ctrl+r reflect • ctrl+c quit"))

	case stateShowCode:
		b.WriteString(entryStyle.Render(m.title))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(errorText(m.err)))
		} else {
			b.WriteString(m.view.View())
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • tab next target • esc back • q quit"))
	}

	return b.String()
}

func errorText(err error) string {
	var de *errors.DiagnosticError
	if errors.As(err, &de) && de.HasDiagnostics() {
		if text, terr := de.Text(); terr == nil {
			return fmt.Sprintf("[%s] %s\n%s", de.Phase, de.Code.String(), text)
		}
	}
	return "Error: " + err.Error()
}

func runInteractive(cfg *config.Config) error {
	m := newInteractiveModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.close()
	return err
}
