package ports

import (
	"context"
	"io"
)

// Telemetry records deployment steps as vertexes for progress reporting.
type Telemetry interface {
	// Record starts recording a new vertex and returns a context carrying
	// it, so collaborators further down can stream output into it.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded step.
type Vertex interface {
	// Stdout returns a writer capturing the step's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the step's error output.
	Stderr() io.Writer

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)

	// Cached marks the vertex as satisfied without doing any work.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying the given vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexKey{}).(Vertex)
	return v
}
