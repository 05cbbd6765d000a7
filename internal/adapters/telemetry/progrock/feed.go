package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

const feedBuffer = 512

// Feed is a progrock.Writer that hands status updates to a reader, typically
// the TUI. Updates are dropped once the buffer is full so a slow or absent
// reader never blocks the audit.
type Feed struct {
	ch chan *progrock.StatusUpdate

	mu     sync.Mutex
	closed bool
}

// NewFeed creates a new Feed.
func NewFeed() *Feed {
	return &Feed{ch: make(chan *progrock.StatusUpdate, feedBuffer)}
}

// WriteStatus buffers one update for the reader.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	select {
	case f.ch <- update:
	default:
	}
	return nil
}

// Read blocks until the next update is available. It returns io.EOF once the
// feed is closed and drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-f.ch
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

// Close ends the stream. Subsequent writes are discarded.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.ch)
	return nil
}
