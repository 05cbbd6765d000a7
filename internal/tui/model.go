package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusCached    = "cached"
	statusPending   = "pending"
)

// RunState represents one engine run vertex in the TUI.
type RunState struct {
	ID     string
	Name   string
	Status string // statusRunning, statusCompleted, statusFailed, statusCached, statusPending
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	cached    lipgloss.Style
	pending   lipgloss.Style
}

// Model is the Bubble Tea model for the TUI, managing engine runs and tape updates.
type Model struct {
	tape    TapeSource
	runs    []RunState
	width   int
	height  int
	spinner spinner.Model
	styles  styles
}

// NewModel creates a new TUI model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
			cached:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Blue
			pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case MsgTapeUpdate:
		return m.handleTapeUpdate(msg)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

// handleKeyMsg handles keyboard input messages.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	return m, nil
}

// handleWindowSizeMsg handles window resize messages.
func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

// handleSpinnerTick handles spinner animation tick messages.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleTapeUpdate handles tape update messages.
func (m *Model) handleTapeUpdate(msg MsgTapeUpdate) (tea.Model, tea.Cmd) {
	for _, v := range msg.Update.Vertexes {
		m.updateOrAddRun(v)
	}
	return m, WaitForTape(m.tape)
}

// updateOrAddRun updates an existing run or adds a new one.
func (m *Model) updateOrAddRun(v *progrock.Vertex) {
	for i, existing := range m.runs {
		if existing.ID == v.Id {
			m.runs[i].Status = runStatus(v)
			return
		}
	}
	m.runs = append(m.runs, RunState{
		ID:     v.Id,
		Name:   v.Name,
		Status: runStatus(v),
	})
}

// runStatus maps a progrock vertex onto a display status. A started but not
// completed vertex is running; a never-started one is still pending.
func runStatus(v *progrock.Vertex) string {
	switch {
	case v.Cached:
		return statusCached
	case v.Completed != nil && v.Error != nil:
		return statusFailed
	case v.Completed != nil:
		return statusCompleted
	case v.Started != nil:
		return statusRunning
	default:
		return statusPending
	}
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Determine start index to handle overflow
	start := 0
	if len(m.runs) > m.height && m.height > 0 {
		start = len(m.runs) - m.height
	}

	for i := start; i < len(m.runs); i++ {
		run := m.runs[i]
		var icon string
		var style lipgloss.Style
		switch run.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusCompleted:
			icon = "✓"
			style = m.styles.completed
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		case statusCached:
			icon = "≡"
			style = m.styles.cached
		default:
			icon = "•"
			style = m.styles.pending
		}

		line := fmt.Sprintf("%s %s\n", style.Render(icon), run.Name)
		s.WriteString(line)
	}

	return s.String()
}
