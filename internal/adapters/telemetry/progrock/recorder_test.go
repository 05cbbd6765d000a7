package progrock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upstream "github.com/vito/progrock"
	"go.trai.ch/sift/internal/adapters/telemetry/progrock"
	"go.trai.ch/sift/internal/core/ports"
)

// drainVertices closes the tracer and collects the final state of every
// vertex that crossed the feed, keyed by name.
func drainVertices(t *testing.T, tracer *progrock.Tracer) map[string]*upstream.Vertex {
	t.Helper()
	require.NoError(t, tracer.Close())

	vertices := map[string]*upstream.Vertex{}
	for {
		update, err := tracer.Feed().Read()
		if errors.Is(err, io.EOF) {
			return vertices
		}
		require.NoError(t, err)
		for _, vertex := range update.Vertexes {
			vertices[vertex.Name] = vertex
		}
	}
}

func TestTracer_SpanLifecycle(t *testing.T) {
	t.Parallel()

	tracer := progrock.New()
	_, span := tracer.Start(context.Background(), "ruff/current")
	_, err := span.Write([]byte("3 diagnostics\n"))
	require.NoError(t, err)
	span.SetAttribute("diagnostics", 3)
	span.End()

	vertices := drainVertices(t, tracer)
	vertex, ok := vertices["ruff/current"]
	require.True(t, ok)
	assert.NotNil(t, vertex.Started)
	assert.NotNil(t, vertex.Completed)
	assert.Nil(t, vertex.Error)
}

func TestTracer_CachedSpan(t *testing.T) {
	t.Parallel()

	tracer := progrock.New()
	_, span := tracer.Start(context.Background(), "mypy/full", ports.WithCached())
	span.End()

	vertices := drainVertices(t, tracer)
	vertex, ok := vertices["mypy/full"]
	require.True(t, ok)
	assert.True(t, vertex.Cached)
}

func TestTracer_RecordErrorFailsVertex(t *testing.T) {
	t.Parallel()

	tracer := progrock.New()
	_, span := tracer.Start(context.Background(), "mypy/current")
	span.RecordError(errors.New("engine exploded"))
	span.End()

	vertices := drainVertices(t, tracer)
	vertex, ok := vertices["mypy/current"]
	require.True(t, ok)
	require.NotNil(t, vertex.Error)
	assert.Contains(t, *vertex.Error, "engine exploded")
}

func TestTracer_EmitPlan(t *testing.T) {
	t.Parallel()

	tracer := progrock.New()
	tracer.EmitPlan(context.Background(), []string{"ruff/current", "mypy/current"})

	vertices := drainVertices(t, tracer)
	assert.Contains(t, vertices, "ruff/current")
	assert.Contains(t, vertices, "mypy/current")
}
