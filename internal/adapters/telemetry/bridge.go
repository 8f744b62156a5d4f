package telemetry

import (
	"context"

	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Bridge implements sdktrace.SpanProcessor, surfacing failed operations
// through the logger. Successful spans pass silently.
type Bridge struct {
	log ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(log ports.Logger) *Bridge {
	return &Bridge{log: log}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports failed spans with their duration.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil {
		return
	}
	if s.Status().Code != codes.Error {
		return
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "operation failed"
	}

	b.log.Warn("operation failed",
		"op", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()).String(),
		"reason", desc,
	)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
