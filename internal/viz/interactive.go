package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/hadron/internal/scenes"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// picker lets the user choose a scene, edit its params and launch it.
type picker struct {
	registry      *scenes.Registry
	state, cursor int
	names         []string
	selected      string
	params        scenes.Params
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	dt            float64
	seed          int64
	live          Model
}

func NewInteractiveApp(r *scenes.Registry, dt float64, seed int64) *picker {
	return &picker{
		registry: r,
		state:    stateMenu,
		names:    r.List(),
		dt:       dt,
		seed:     seed,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.names) == 0 {
			return m, nil
		}
		m.selected = m.names[m.cursor]
		m.state, m.paramCursor = stateConfig, 0
		m.params = m.registry.Defaults(m.selected)
		m.paramNames = m.paramNames[:0]
		for k := range m.params {
			m.paramNames = append(m.paramNames, k)
		}
		sort.Strings(m.paramNames)
	}
	return m, nil
}

func (m picker) configKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.params[m.paramNames[m.paramCursor]] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	if len(m.paramNames) == 0 {
		if msg.String() == "s" {
			return m.start()
		}
		if msg.String() == "q" || msg.String() == "esc" {
			m.state = stateMenu
		}
		return m, nil
	}

	key := m.paramNames[m.paramCursor]
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.params[key])
	case "left", "h":
		m.params[key] /= 1.1
	case "right", "l":
		m.params[key] *= 1.1
	case "s":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (picker, tea.Cmd) {
	name, seed := m.selected, m.seed
	rebuild := func(p scenes.Params) (*scenes.Scene, error) {
		return m.registry.Get(name, p, seed)
	}
	s, err := rebuild(m.params)
	if err != nil {
		return m, tea.Quit
	}
	m.live = NewModel(s, m.dt, rebuild)
	m.state = stateSim
	return m, m.live.Init()
}

func (m picker) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func hint(st styles, key, what string) string {
	return st.active.Render(key) + st.subtle.Render(" "+what+"  ")
}

func (m picker) viewMenu() string {
	st := stylesFor(ActivePalette())
	var b strings.Builder
	pal := ActivePalette()
	b.WriteString("\n\n    " + GradientText("HADRON", pal.Link, pal.Particle) + "\n")
	b.WriteString("    " + st.subtle.Render("particle physics playground") + "\n")
	b.WriteString("    " + st.subtle.Render(Separator(25)) + "\n\n")

	for i, name := range m.names {
		desc := m.registry.Description(name)
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.title.Render("▸"), st.selected.Render(fmt.Sprintf("%-12s", name)), st.active.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", st.subtle.Render(fmt.Sprintf("  %-12s", name)), st.subtle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hint(st, "j/k", "navigate") + hint(st, "enter", "select") + hint(st, "q", "quit") + "\n")
	return b.String()
}

func (m picker) viewConfig() string {
	st := stylesFor(ActivePalette())
	var b strings.Builder
	b.WriteString("\n\n    " + st.title.Render(strings.ToUpper(m.selected)) + "\n")
	b.WriteString("    " + st.subtle.Render(m.registry.Description(m.selected)) + "\n")
	b.WriteString("    " + st.subtle.Render(Separator(25)) + "\n\n")

	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%10.4g", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", st.title.Render("▸"), st.selected.Render(fmt.Sprintf("%-12s", name)), st.active.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", st.subtle.Render(fmt.Sprintf("  %-12s", name)), st.subtle.Render(valStr)))
		}
	}
	b.WriteString("\n    " + hint(st, "j/k", "select") + hint(st, "h/l", "adjust") + hint(st, "enter", "edit") + hint(st, "s", "start") + hint(st, "esc", "back") + "\n")
	return b.String()
}

func RunInteractive(r *scenes.Registry, dt float64, seed int64) error {
	_, err := tea.NewProgram(NewInteractiveApp(r, dt, seed), tea.WithAltScreen()).Run()
	return err
}

// RunLive opens the live view straight on one scene.
func RunLive(s *scenes.Scene, dt float64, rebuild Rebuilder) error {
	_, err := tea.NewProgram(NewModel(s, dt, rebuild), tea.WithAltScreen()).Run()
	return err
}
