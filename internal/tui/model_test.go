//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// MockTapeSource is a mock implementation of TapeSource.
type MockTapeSource struct{}

func (m *MockTapeSource) Read() (*progrock.StatusUpdate, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

// scriptedTapeSource serves queued updates and then fails every further read.
type scriptedTapeSource struct {
	updates []*progrock.StatusUpdate
	err     error
}

func (s *scriptedTapeSource) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, s.err
	}
	next := s.updates[0]
	s.updates = s.updates[1:]
	return next, nil
}

func TestWaitForTape(t *testing.T) {
	update := &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "v1", Name: "ruff/current"}},
	}
	tape := &scriptedTapeSource{updates: []*progrock.StatusUpdate{update}, err: io.EOF}

	msg := WaitForTape(tape)()
	assert.Equal(t, MsgTapeUpdate{Update: update}, msg)

	// The drained tape ends the stream.
	assert.Equal(t, MsgTapeEnded{}, WaitForTape(tape)())
}

func TestWaitForTape_ReadErrorEndsStream(t *testing.T) {
	tape := &scriptedTapeSource{err: io.ErrClosedPipe}
	assert.Equal(t, MsgTapeEnded{}, WaitForTape(tape)())
}

func TestRunStatus(t *testing.T) {
	now := timestamppb.Now()

	tests := []struct {
		name   string
		vertex *progrock.Vertex
		want   string
	}{
		{"pending before start", &progrock.Vertex{}, statusPending},
		{"running once started", &progrock.Vertex{Started: now}, statusRunning},
		{"completed without error", &progrock.Vertex{Started: now, Completed: now}, statusCompleted},
		{"failed on error", &progrock.Vertex{Started: now, Completed: now, Error: strPtr("boom")}, statusFailed},
		{"cached wins over everything", &progrock.Vertex{Started: now, Completed: now, Cached: true}, statusCached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runStatus(tt.vertex))
		})
	}
}

func TestModel_TapeUpdateAddsAndUpdatesRuns(t *testing.T) {
	m := NewModel(&MockTapeSource{})

	_, cmd := m.handleTapeUpdate(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "v1", Name: "ruff/current", Started: timestamppb.Now()},
		},
	}})
	assert.NotNil(t, cmd, "model keeps reading the tape")

	assert.Len(t, m.runs, 1)
	assert.Equal(t, statusRunning, m.runs[0].Status)

	// A second update for the same vertex updates in place.
	m.handleTapeUpdate(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "v1", Name: "ruff/current", Started: timestamppb.Now(), Completed: timestamppb.Now()},
		},
	}})
	assert.Len(t, m.runs, 1)
	assert.Equal(t, statusCompleted, m.runs[0].Status)
}

func TestModel_TapeEndedQuits(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	_, cmd := m.Update(MsgTapeEnded{})
	assert.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewRendersIcons(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	m.runs = []RunState{
		{ID: "1", Name: "ruff/current", Status: statusCompleted},
		{ID: "2", Name: "mypy/current", Status: statusFailed},
		{ID: "3", Name: "mypy/full", Status: statusCached},
		{ID: "4", Name: "bandit/current", Status: statusPending},
	}

	view := m.View()
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "✗")
	assert.Contains(t, view, "≡")
	assert.Contains(t, view, "•")
	assert.Contains(t, view, "ruff/current")
}

func TestModel_ViewWindowsOnOverflow(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	m.height = 2
	m.runs = []RunState{
		{ID: "1", Name: "first", Status: statusCompleted},
		{ID: "2", Name: "second", Status: statusCompleted},
		{ID: "3", Name: "third", Status: statusCompleted},
	}

	view := m.View()
	assert.NotContains(t, view, "first")
	assert.Contains(t, view, "second")
	assert.Contains(t, view, "third")
	assert.Equal(t, 2, strings.Count(view, "\n"))
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
}
