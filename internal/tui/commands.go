// Package tui provides a terminal user interface for visualizing audit progress.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource is an interface for reading progrock updates.
// Since *progrock.Tape does not implement Read(), we define this interface
// for the caller to provide a valid source (e.g. a tape reader wrapper).
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from the
// tape. A read error means the feed is closed, so the stream ends.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}
