package progrock

import (
	"fmt"

	"github.com/vito/progrock"
	"go.trai.ch/sift/internal/core/ports"
)

var _ ports.Span = (*Span)(nil)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write streams progress output onto the vertex's stdout log.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// RecordError marks the span as failed. The error is reported when the span
// ends.
func (s *Span) RecordError(err error) {
	s.err = err
	_, _ = fmt.Fprintln(s.vertex.Stderr(), err.Error())
}

// SetAttribute records a key-value pair on the vertex log.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}

// End completes the vertex, failed when an error was recorded.
func (s *Span) End() {
	s.vertex.Done(s.err)
}
