// Package generate runs a full generation: it loads a label config, walks
// the roster in registry order and produces every document for every
// enabled agent.
//
// A failure rendering or writing one document is recorded on that agent
// and never stops the others. Only an invalid label config aborts a run,
// and it does so before anything is written.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ShayCichocki/labelcrew/internal/events"
	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/internal/logging"
	"github.com/ShayCichocki/labelcrew/internal/output"
	"github.com/ShayCichocki/labelcrew/internal/render"
	"github.com/ShayCichocki/labelcrew/internal/roster"
	"github.com/ShayCichocki/labelcrew/internal/telemetry"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// Generator produces agent documents. A Generator may run many times; runs
// share nothing but the options.
type Generator struct {
	opts options
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(telemetry.InstrumentationName)
	}
	return &Generator{opts: o}
}

// run holds the per-run state shared by the workers. Everything in it is
// read-only once the workers start.
type run struct {
	id       string
	cfg      *label.Config
	renderer *render.Renderer
	root     string
	log      *logging.DebugLogger
}

// Generate loads configPath and writes every document under outputRoot.
//
// A *label.ConfigError, a read failure or unusable templates are returned
// as the error and nothing is written. Otherwise the returned manifest
// carries every per-document outcome and the error is nil; callers check
// Manifest.Success.
func (g *Generator) Generate(ctx context.Context, configPath, outputRoot string) (*Manifest, error) {
	started := time.Now()

	cfg, err := label.Load(configPath)
	if err != nil {
		return nil, err
	}

	renderer := g.opts.renderer
	if renderer == nil {
		renderer, err = render.New(g.opts.templatesDir, roster.IDs())
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
	}

	r := &run{
		id:       uuid.New().String()[:8],
		cfg:      cfg,
		renderer: renderer,
		root:     outputRoot,
	}
	r.log = g.opts.logger.WithRun(r.id)

	ctx, span := g.opts.tracer.Start(ctx, "generate", trace.WithAttributes(
		attribute.String(telemetry.AttrRunID, r.id),
		attribute.String(telemetry.AttrLabelName, cfg.Name()),
	))
	defer span.End()

	r.log.Log("[generate] label %q from %s into %s", cfg.Name(), configPath, outputRoot)

	defs := roster.All()
	g.opts.emitter.Emit(events.Event{Type: events.RunStarted, RunID: r.id, Total: len(defs)})

	m := &Manifest{
		RunID:        r.id,
		Label:        cfg.Name(),
		ConfigPath:   configPath,
		ConfigDigest: cfg.Digest(),
		OutputRoot:   outputRoot,
		Agents:       g.processAll(ctx, r, defs),
		StartedAt:    started,
	}

	if err := ctx.Err(); err != nil {
		m.Errors = append(m.Errors, canceled(err))
	} else {
		m.Artifacts, m.Errors = g.writeArtifacts(r, defs)
	}
	m.FinishedAt = time.Now()

	if !m.Success() {
		span.SetStatus(codes.Error, "generation recorded errors")
	}
	g.record(m)
	g.opts.emitter.Emit(events.Event{Type: events.RunFinished, RunID: r.id, Success: m.Success()})
	r.log.Log("[generate] finished: success=%v written=%d", m.Success(), m.Written())
	return m, nil
}

// processAll runs every agent across the worker pool. Results are slotted
// by index so the manifest keeps registry order.
func (g *Generator) processAll(ctx context.Context, r *run, defs []models.AgentDefinition) []AgentResult {
	results := make([]AgentResult, len(defs))
	sem := make(chan struct{}, g.opts.workers)
	var wg sync.WaitGroup

	for i, def := range defs {
		if !r.cfg.Enabled(def.ID) {
			results[i] = g.skip(r, def)
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i] = canceledAgent(def, ctx.Err())
			continue
		}
		// A slot and cancellation can be ready together.
		if err := ctx.Err(); err != nil {
			<-sem
			results[i] = canceledAgent(def, err)
			continue
		}

		wg.Add(1)
		go func(i int, def models.AgentDefinition) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = g.processAgent(ctx, r, def)
		}(i, def)
	}

	wg.Wait()
	return results
}

func (g *Generator) skip(r *run, def models.AgentDefinition) AgentResult {
	r.log.Log("[generate] %s disabled, skipping", def.ID)
	g.opts.emitter.Emit(events.Event{Type: events.AgentSkipped, RunID: r.id, AgentID: string(def.ID)})
	return AgentResult{ID: string(def.ID), Name: def.Name, Skipped: true}
}

func (g *Generator) processAgent(ctx context.Context, r *run, def models.AgentDefinition) AgentResult {
	id := string(def.ID)
	res := AgentResult{ID: id, Name: def.Name}
	if o, ok := r.cfg.Override(def.ID); ok {
		def = roster.Apply(def, o)
		res.Name = def.Name
	}

	ctx, span := g.opts.tracer.Start(ctx, "agent", trace.WithAttributes(
		attribute.String(telemetry.AttrAgentID, id),
	))
	defer span.End()

	g.opts.emitter.Emit(events.Event{Type: events.AgentStarted, RunID: r.id, AgentID: id})
	rctx := render.NewContext(def, r.cfg)

	for _, kind := range models.DocumentKinds {
		doc, text, err := g.processDocument(ctx, r, rctx, kind)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Documents = append(res.Documents, doc)

		if kind == models.DocumentPersona && g.opts.openClawDir != "" {
			path, err := g.mirror(r, id, text)
			if err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
			res.MirrorPath = path
		}
	}

	if len(res.Errors) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d document(s) failed", len(res.Errors)))
	}
	g.opts.emitter.Emit(events.Event{Type: events.AgentFinished, RunID: r.id, AgentID: id, Success: res.OK()})
	return res
}

func (g *Generator) processDocument(ctx context.Context, r *run, rctx render.Context, kind models.DocumentKind) (DocumentResult, string, error) {
	ctx, span := g.opts.tracer.Start(ctx, "document", trace.WithAttributes(
		attribute.String(telemetry.AttrAgentID, rctx.AgentID),
		attribute.String(telemetry.AttrDocumentKind, string(kind)),
	))
	defer span.End()

	fail := func(errorType string, err error) (DocumentResult, string, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorType)
		g.opts.metrics.RecordFailed(ctx, rctx.AgentID, string(kind), errorType)
		r.log.Log("[generate] %s/%s failed: %v", rctx.AgentID, kind, err)
		g.opts.emitter.Emit(events.Event{
			Type: events.DocumentFailed, RunID: r.id, AgentID: rctx.AgentID, Kind: string(kind), Error: err,
		})
		return DocumentResult{}, "", err
	}

	text, err := r.renderer.Render(kind, rctx)
	if err != nil {
		return fail("render", err)
	}
	path, err := output.Write(rctx.AgentID, kind, text, r.root)
	if err != nil {
		return fail("write", err)
	}

	g.opts.metrics.RecordWritten(ctx, rctx.AgentID, string(kind))
	r.log.Log("[generate] %s/%s -> %s", rctx.AgentID, kind, path)
	g.opts.emitter.Emit(events.Event{
		Type: events.DocumentWritten, RunID: r.id, AgentID: rctx.AgentID, Kind: string(kind), Path: path,
	})
	return DocumentResult{
		Kind:     kind,
		Path:     path,
		Digest:   output.Digest(text),
		Template: r.renderer.Source(rctx.AgentID, kind),
	}, text, nil
}

// mirror writes the persona text into the OpenClaw workspace layout.
func (g *Generator) mirror(r *run, agentID, text string) (string, error) {
	dst := filepath.Join(g.opts.openClawDir, "workspace-"+agentID, models.DocumentPersona.FileName())
	if err := output.WriteFile(dst, []byte(text)); err != nil {
		var ioErr *output.IOError
		if errors.As(err, &ioErr) {
			ioErr.Agent = agentID
			ioErr.Kind = models.DocumentPersona
		}
		return "", err
	}
	r.log.Log("[generate] %s mirrored to %s", agentID, dst)
	return dst, nil
}

func (g *Generator) record(m *Manifest) {
	if g.opts.recorder == nil {
		return
	}
	if err := g.opts.recorder.RecordRun(m.Run()); err != nil {
		log.Printf("[generate] WARNING: failed to record run %s: %v", m.RunID, err)
	}
}

func canceled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}

func canceledAgent(def models.AgentDefinition, cause error) AgentResult {
	return AgentResult{
		ID:     string(def.ID),
		Name:   def.Name,
		Errors: []error{canceled(cause)},
	}
}

// errorKind returns the document kind an error was recorded for, if any.
func errorKind(err error) string {
	var renderErr *render.RenderError
	if errors.As(err, &renderErr) {
		return string(renderErr.Kind)
	}
	var ioErr *output.IOError
	if errors.As(err, &ioErr) {
		return string(ioErr.Kind)
	}
	return ""
}
