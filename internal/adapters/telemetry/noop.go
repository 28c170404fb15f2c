// Package telemetry provides the no-op telemetry implementation.
package telemetry

import (
	"context"
	"io"

	"github.com/toolcube/toolcube/internal/core/ports"
)

// Noop is a ports.Telemetry implementation that records nothing.
type Noop struct{}

// NewNoop creates a new Noop telemetry recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns the context unchanged and a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error { return nil }

// NoopVertex is a ports.Vertex that discards all output.
type NoopVertex struct{}

// Stdout returns a writer that discards everything.
func (v *NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns a writer that discards everything.
func (v *NoopVertex) Stderr() io.Writer { return io.Discard }

// Complete does nothing.
func (v *NoopVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoopVertex) Cached() {}
