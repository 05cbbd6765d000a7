// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/sift/internal/core/ports"
)

var _ ports.Tracer = (*Tracer)(nil)

// Tracer implements ports.Tracer on a progrock recorder. Every span becomes
// a vertex; the feed can be consumed live by the TUI.
type Tracer struct {
	feed *Feed
	rec  *progrock.Recorder
}

// New creates a Tracer recording onto a fresh feed.
func New() *Tracer {
	feed := NewFeed()
	return &Tracer{
		feed: feed,
		rec:  progrock.NewRecorder(feed),
	}
}

// Feed returns the update stream for rendering.
func (t *Tracer) Feed() *Feed {
	return t.feed
}

// Start begins a vertex named after the span.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := ports.SpanConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	vertex := t.rec.Vertex(digest.FromString(name), name)
	if cfg.Cached {
		vertex.Cached()
	}
	return ctx, &Span{vertex: vertex}
}

// EmitPlan records the planned runs as vertices so the renderer can show the
// full plan before anything executes.
func (t *Tracer) EmitPlan(_ context.Context, runNames []string) {
	for _, name := range runNames {
		t.rec.Vertex(digest.FromString(name), name)
	}
}

// Close flushes the recorder and ends the feed.
func (t *Tracer) Close() error {
	return t.feed.Close()
}
