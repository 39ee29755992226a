package kiosk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("28")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("101")).
			Padding(1, 2)
)

type rosterMsg struct {
	employees []Employee
	err       error
}

type clockResultMsg struct {
	result ClockResult
	err    error
}

type flashExpiredMsg struct {
	seq int
}

type refreshTickMsg struct{}

// Model is the bubbletea model of the terminal. All screen state lives in
// state; the model only adds I/O and the PIN field widget.
type Model struct {
	client  *Client
	cfg     *Config
	state   State
	input   textinput.Model
	loadErr error
	width   int
	height  int
}

func NewModel(client *Client, cfg *Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "PIN"
	ti.CharLimit = maxPINLength
	ti.Width = maxPINLength + 2
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &Model{
		client: client,
		cfg:    cfg,
		state:  NewState(),
		input:  ti,
	}
}

// State returns the current view state.
func (m *Model) State() State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadRoster, m.scheduleRefresh())
}

func (m *Model) loadRoster() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout.Duration)
	defer cancel()

	employees, err := m.client.ListEmployees(ctx)
	return rosterMsg{employees: employees, err: err}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	if m.cfg.RefreshInterval.Duration <= 0 {
		return nil
	}
	return tea.Tick(m.cfg.RefreshInterval.Duration, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case rosterMsg:
		m.loadErr = msg.err
		if msg.err != nil {
			return m, nil
		}
		return m, m.apply(Action{Kind: ActionRosterLoaded, Employees: msg.employees})

	case refreshTickMsg:
		return m, tea.Batch(m.loadRoster, m.scheduleRefresh())

	case clockResultMsg:
		return m, m.handleClockResult(msg)

	case flashExpiredMsg:
		return m, m.apply(Action{Kind: ActionFlashExpired, FlashSeq: msg.seq})

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	switch m.state.View {
	case ViewSelect:
		switch key {
		case "up", "k":
			return m.apply(Action{Kind: ActionCursorUp})
		case "down", "j":
			return m.apply(Action{Kind: ActionCursorDown})
		case "enter":
			return m.apply(Action{Kind: ActionSelect})
		case "r":
			return m.loadRoster
		}

	case ViewPIN:
		switch key {
		case "esc":
			return m.apply(Action{Kind: ActionCancel})
		case "backspace":
			return m.apply(Action{Kind: ActionBackspace})
		case "i", "enter":
			return m.apply(Action{Kind: ActionSubmit, Type: "IN"})
		case "o":
			return m.apply(Action{Kind: ActionSubmit, Type: "OUT"})
		}
		if msg.Type == tea.KeyRunes {
			var cmd tea.Cmd
			for _, r := range msg.Runes {
				cmd = m.apply(Action{Kind: ActionDigit, Digit: r})
			}
			return cmd
		}
	}

	return nil
}

func (m *Model) handleClockResult(msg clockResultMsg) tea.Cmd {
	switch {
	case msg.err == nil:
		text := msg.result.Message
		if text == "" {
			text = SuccessMessage(msg.result.Type, msg.result.EmployeeName)
		}
		return m.apply(Action{Kind: ActionClockSucceeded, Message: text})

	case errors.Is(msg.err, ErrInvalidPIN):
		return m.apply(Action{Kind: ActionClockFailed, Failure: FailureInvalidPIN})

	case errors.Is(msg.err, ErrEmployeeNotFound):
		return tea.Batch(
			m.apply(Action{Kind: ActionClockFailed, Failure: FailureConnection}),
			m.loadRoster,
		)

	default:
		return m.apply(Action{Kind: ActionClockFailed, Failure: FailureConnection})
	}
}

// apply advances the state and turns the returned effect into a command.
func (m *Model) apply(action Action) tea.Cmd {
	var effect Effect
	m.state, effect = m.state.Apply(action)
	m.input.SetValue(m.state.PIN)
	if m.state.View == ViewPIN {
		m.input.Focus()
	} else {
		m.input.Blur()
	}

	switch effect.Kind {
	case EffectClock:
		return m.clock(effect)
	case EffectExpireFlash:
		seq := effect.FlashSeq
		return tea.Tick(m.cfg.FlashDuration.Duration, func(time.Time) tea.Msg {
			return flashExpiredMsg{seq: seq}
		})
	}
	return nil
}

func (m *Model) clock(effect Effect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout.Duration)
		defer cancel()

		result, err := m.client.Clock(ctx, effect.EmployeeID, effect.PIN, effect.Type)
		return clockResultMsg{result: result, err: err}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	if flash := m.state.Flash; flash != nil {
		style := successStyle
		if flash.Kind == FlashError {
			style = errorStyle
		}
		b.WriteString(style.Render(flash.Text))
		b.WriteString("\n\n")
	}

	switch m.state.View {
	case ViewSelect:
		b.WriteString(m.viewSelect())
	case ViewPIN:
		b.WriteString(m.viewPIN())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m *Model) viewSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Select your name to clock in or out"))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Cannot load employees: %v", m.loadErr)))
		b.WriteString("\n")
	}

	if len(m.state.Employees) == 0 {
		b.WriteString(dimStyle.Render("No employees registered yet. Ask an administrator to add staff."))
	}

	for i, emp := range m.state.Employees {
		marker := "  "
		style := normalStyle
		if i == m.state.Cursor {
			marker = "> "
			style = selectedStyle
		}
		pinHint := "****"
		if !emp.HasPIN {
			pinHint = "no PIN"
		}
		b.WriteString(style.Render(marker + emp.Name))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(pinHint))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter select • r reload • ctrl+c quit"))
	return b.String()
}

func (m *Model) viewPIN() string {
	name := ""
	if m.state.Selected != nil {
		name = m.state.Selected.Name
	}

	body := titleStyle.Render(name) + "\n" +
		subtitleStyle.Render("Enter your PIN") + "\n" +
		m.input.View()

	if m.state.Busy {
		body += "\n\n" + dimStyle.Render("Sending...")
	}

	help := "i/enter clock IN • o clock OUT • esc back"
	if m.state.PIN == "" {
		help = "type your PIN • esc back"
	}

	return boxStyle.Render(body) + "\n" + helpStyle.Render(help)
}

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg *Config) error {
	client := NewClient(cfg.ServerURL, cfg.RequestTimeout.Duration)
	p := tea.NewProgram(NewModel(client, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
