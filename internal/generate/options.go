package generate

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/ShayCichocki/labelcrew/internal/events"
	"github.com/ShayCichocki/labelcrew/internal/logging"
	"github.com/ShayCichocki/labelcrew/internal/render"
	"github.com/ShayCichocki/labelcrew/internal/state"
	"github.com/ShayCichocki/labelcrew/internal/telemetry"
)

// Option configures a Generator. Use With* functions to create Options.
type Option func(*options)

type options struct {
	workers      int
	renderer     *render.Renderer
	templatesDir string
	openClawDir  string
	emitter      *events.Emitter
	logger       *logging.DebugLogger
	recorder     state.Recorder
	tracer       trace.Tracer
	metrics      *telemetry.DocumentMetrics
}

// WithWorkers sets how many agents are processed concurrently. Values
// below one mean one.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRenderer sets a prebuilt renderer. It takes precedence over
// WithTemplatesDir.
func WithRenderer(r *render.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithTemplatesDir sets the directory holding template overrides.
func WithTemplatesDir(dir string) Option {
	return func(o *options) { o.templatesDir = dir }
}

// WithOpenClawDir mirrors every persona document to
// <dir>/workspace-<agent-id>/SOUL.md.
func WithOpenClawDir(dir string) Option {
	return func(o *options) { o.openClawDir = dir }
}

// WithEmitter sets the progress event sink.
func WithEmitter(e *events.Emitter) Option {
	return func(o *options) { o.emitter = e }
}

// WithLogger sets the debug logger.
func WithLogger(l *logging.DebugLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder records every finished run.
func WithRecorder(r state.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithTracer sets the tracer used for run, agent and document spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics sets the document counters.
func WithMetrics(m *telemetry.DocumentMetrics) Option {
	return func(o *options) { o.metrics = m }
}
