package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tapcalc/internal/calcclient"
	"github.com/muurk/tapcalc/internal/controller"
	"github.com/muurk/tapcalc/internal/display"
)

// Messages for async operations
type evalDoneMsg struct {
	done controller.Completion
}

type expireMsg struct {
	ticket display.Ticket
}

// Model is the keypad application
type Model struct {
	ctrl     *controller.Controller
	ctx      context.Context
	endpoint string

	// focused keypad button
	row, col int

	frame   display.Frame
	lastErr string

	keys    keyMap
	Help    help.Model
	Spinner spinner.Model

	Width  int
	Height int

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// Option configures a Model
type Option func(*Model)

// WithEndpoint sets the endpoint shown in the status line
func WithEndpoint(url string) Option {
	return func(m *Model) {
		m.endpoint = url
	}
}

// WithContext sets the context evaluations run under
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New creates the keypad model around a controller. Focus starts on "=".
func New(ctrl *controller.Controller, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		ctrl:    ctrl,
		ctx:     context.Background(),
		row:     len(Keypad) - 1,
		col:     len(Keypad[len(Keypad)-1]) - 1,
		frame:   ctrl.Frame(),
		keys:    newKeyMap(),
		Help:    help.New(),
		Spinner: s,
		Width:   DisplayWidth,
		tick:    tea.Tick,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Focused returns the label of the focused keypad button
func (m Model) Focused() string {
	return Keypad[m.row][m.col]
}

// Frame returns the last rendered display frame
func (m Model) Frame() display.Frame {
	return m.frame
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case evalDoneMsg:
		m.frame = m.ctrl.Complete(msg.done)
		m.lastErr = ""
		if msg.done.Failed() {
			m.lastErr = calcclient.ShortMessage(msg.done.Err)
		}
		return m, m.scheduleEffects()

	case expireMsg:
		m.frame = m.ctrl.Expire(msg.ticket)
		return m, nil

	case spinner.TickMsg:
		// stop ticking once nothing is in flight
		if m.ctrl.State() != controller.StateRequesting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Press):
		return m.press(m.Focused())
	case key.Matches(msg, m.keys.Up):
		m.row = (m.row + len(Keypad) - 1) % len(Keypad)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.row = (m.row + 1) % len(Keypad)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.col = (m.col + len(Keypad[m.row]) - 1) % len(Keypad[m.row])
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.col = (m.col + 1) % len(Keypad[m.row])
		return m, nil
	}

	if label, ok := labelFor(msg); ok {
		return m.press(label)
	}
	return m, nil
}

// press hands a label to the controller and schedules what follows: the
// evaluation for equals and a timer per started effect
func (m Model) press(label string) (tea.Model, tea.Cmd) {
	frame, req := m.ctrl.Press(label)
	m.frame = frame

	cmds := []tea.Cmd{m.scheduleEffects()}
	if req != nil {
		cmds = append(cmds, m.evaluate(req), m.Spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// evaluate runs the request off the event loop
func (m Model) evaluate(req *controller.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return evalDoneMsg{done: ctrl.Run(ctx, req)}
	}
}

func (m Model) scheduleEffects() tea.Cmd {
	tickets := m.ctrl.TakeTickets()
	if len(tickets) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tickets))
	for _, t := range tickets {
		cmds = append(cmds, m.tick(t.Duration, func(time.Time) tea.Msg {
			return expireMsg{ticket: t}
		}))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	title := TitleStyle.Render(AppName) + " " + VersionStyle.Render(AppVersion())

	rows := make([]string, 0, len(Keypad))
	for r, labels := range Keypad {
		buttons := make([]string, 0, len(labels))
		for c, label := range labels {
			btn := buttonStyle(label, r == m.row && c == m.col).Render(label)
			if c > 0 {
				btn = lipgloss.NewStyle().MarginLeft(ButtonGap).Render(btn)
			}
			buttons = append(buttons, btn)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	sections := []string{
		title,
		display.View(m.frame, DisplayWidth),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		StatusStyle.Render(m.status()),
		HelpStyle.Render(m.Help.View(m.keys)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) status() string {
	switch {
	case m.ctrl.State() == controller.StateRequesting:
		return m.Spinner.View() + " evaluating…"
	case m.lastErr != "":
		return m.lastErr
	case m.endpoint != "":
		return "→ " + m.endpoint
	default:
		return ""
	}
}
