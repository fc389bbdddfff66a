package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared by spans and metrics.
const (
	AttrRunID        = "labelcrew.run.id"
	AttrLabelName    = "labelcrew.label.name"
	AttrAgentID      = "labelcrew.agent.id"
	AttrDocumentKind = "labelcrew.document.kind"
	AttrErrorType    = "labelcrew.error.type"
)

// InstrumentationName names the tracer and meter used by the generator.
const InstrumentationName = "github.com/ShayCichocki/labelcrew/generate"

// DocumentMetrics counts document outcomes. A nil *DocumentMetrics
// records nothing.
type DocumentMetrics struct {
	written metric.Int64Counter
	failed  metric.Int64Counter
}

// NewDocumentMetrics creates the document counters on meter.
func NewDocumentMetrics(meter metric.Meter) (*DocumentMetrics, error) {
	written, err := meter.Int64Counter(
		"labelcrew.documents.written",
		metric.WithDescription("Documents persisted, by agent and kind"),
	)
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter(
		"labelcrew.documents.failed",
		metric.WithDescription("Documents that failed to render or write, by agent, kind and error type"),
	)
	if err != nil {
		return nil, err
	}
	return &DocumentMetrics{written: written, failed: failed}, nil
}

// RecordWritten counts one persisted document.
func (m *DocumentMetrics) RecordWritten(ctx context.Context, agentID, kind string) {
	if m == nil {
		return
	}
	m.written.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAgentID, agentID),
		attribute.String(AttrDocumentKind, kind),
	))
}

// RecordFailed counts one failed document. errorType is "render", "write"
// or "canceled".
func (m *DocumentMetrics) RecordFailed(ctx context.Context, agentID, kind, errorType string) {
	if m == nil {
		return
	}
	m.failed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAgentID, agentID),
		attribute.String(AttrDocumentKind, kind),
		attribute.String(AttrErrorType, errorType),
	))
}
