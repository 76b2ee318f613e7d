package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/joltbridge/physics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	layerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type action struct {
	name        string
	placeholder string
	run         func(ctx context.Context, s *scene, arg string) (string, error)
}

var actions = []action{
	{"add body", "layer", addAction},
	{"remove body", "body id", removeAction},
	{"step", "count", stepAction},
	{"list bodies", "", listAction},
}

func addAction(ctx context.Context, s *scene, arg string) (string, error) {
	layer, err := parseLayer(arg)
	if err != nil {
		return "", err
	}
	id, err := s.add(ctx, layer)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("body %d: %s", id, layerName(layer)), nil
}

func removeAction(ctx context.Context, s *scene, arg string) (string, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 32)
	if err != nil {
		return "", fmt.Errorf("bad body id %q", arg)
	}
	if err := s.remove(ctx, physics.BodyID(id)); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed body %d", id), nil
}

func stepAction(ctx context.Context, s *scene, arg string) (string, error) {
	count := 1
	if arg = strings.TrimSpace(arg); arg != "" {
		var err error
		if count, err = strconv.Atoi(arg); err != nil || count < 1 {
			return "", fmt.Errorf("bad step count %q", arg)
		}
	}
	var total uint32
	for range count {
		n, err := s.step(ctx)
		if err != nil {
			return "", err
		}
		total += n
	}
	return fmt.Sprintf("%d steps, %d contacts", count, total), nil
}

func listAction(ctx context.Context, s *scene, _ string) (string, error) {
	bodies, err := s.bodies(ctx)
	if err != nil {
		return "", err
	}
	if len(bodies) == 0 {
		return "no bodies", nil
	}
	lines := make([]string, len(bodies))
	for i, b := range bodies {
		lines[i] = fmt.Sprintf("%d: %s", b.id, layerStyle.Render(layerName(b.layer)))
	}
	return strings.Join(lines, "\n"), nil
}

type modelState int

const (
	stateSelectAction modelState = iota
	stateInputArg
	stateShowResult
)

type interactiveModel struct {
	err      error
	scene    *scene
	settings physics.PhysicsSettings
	result   string
	events   []string
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(settings physics.PhysicsSettings) *interactiveModel {
	return &interactiveModel{
		settings: settings,
		state:    stateSelectAction,
	}
}

type loadedMsg struct {
	err   error
	scene *scene
}

type actionResultMsg struct {
	err    error
	result string
	events []string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadScene
}

func (m *interactiveModel) loadScene() tea.Msg {
	s, err := newScene(context.Background(), m.settings)
	return loadedMsg{scene: s, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.state != stateInputArg {
				return m, m.quit()
			}

		case "up", "k":
			if m.state == stateSelectAction && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectAction && m.selected < len(actions)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectAction:
				if actions[m.selected].placeholder == "" {
					return m, m.runAction("")
				}
				m.prepareInput()
				m.state = stateInputArg
				return m, nil

			case stateInputArg:
				return m, m.runAction(m.input.Value())

			case stateShowResult:
				m.reset()
			}

		case "esc":
			if m.state != stateSelectAction {
				m.reset()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scene = msg.scene

	case actionResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.events = msg.events
		m.state = stateShowResult
	}

	if m.state == stateInputArg {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.scene != nil {
		m.scene.close()
		m.scene = nil
	}
	return tea.Quit
}

func (m *interactiveModel) reset() {
	m.state = stateSelectAction
	m.result = ""
	m.events = nil
	m.err = nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = actions[m.selected].placeholder
	ti.Prompt = actions[m.selected].placeholder + ": "
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

// runAction runs on the update loop; the scene is not safe for concurrent
// use and View reads it.
func (m *interactiveModel) runAction(arg string) tea.Cmd {
	var msg actionResultMsg
	if m.scene == nil {
		msg.err = fmt.Errorf("scene not loaded")
	} else {
		msg.result, msg.err = actions[m.selected].run(context.Background(), m.scene, arg)
		msg.events = m.scene.drain()
	}
	return func() tea.Msg { return msg }
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.scene == nil {
		return "Creating physics system..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Physics Scene"))
	fmt.Fprintf(&b, " %d/%d bodies\n\n", len(m.scene.ids), m.settings.MaxBodies)

	switch m.state {
	case stateSelectAction:
		b.WriteString("Select an action:\n\n")
		for i, a := range actions {
			line := m.formatAction(a)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputArg:
		a := actions[m.selected]
		fmt.Fprintf(&b, "Running %s\n\n", actionStyle.Render(a.name))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if a.placeholder == "layer" {
			b.WriteString(layerStyle.Render("static dynamic player ally enemy sensor target hit"))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("enter run • esc back"))

	case stateShowResult:
		fmt.Fprintf(&b, "Result of %s:\n\n", actionStyle.Render(actions[m.selected].name))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n")
		for _, e := range m.events {
			b.WriteString("\n  ")
			b.WriteString(e)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatAction(a action) string {
	if a.placeholder == "" {
		return actionStyle.Render(a.name)
	}
	return actionStyle.Render(a.name) + " <" + layerStyle.Render(a.placeholder) + ">"
}

func runInteractive(settings physics.PhysicsSettings) error {
	p := tea.NewProgram(newInteractiveModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
