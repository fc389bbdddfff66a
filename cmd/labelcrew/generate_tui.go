package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ShayCichocki/labelcrew/internal/events"
	"github.com/ShayCichocki/labelcrew/internal/generate"
	"github.com/ShayCichocki/labelcrew/internal/roster"
	"github.com/ShayCichocki/labelcrew/internal/tui"
)

type generateResult struct {
	manifest *generate.Manifest
	err      error
}

// runGenerateTUI runs one generation with the progress view attached.
// Quitting the view cancels the run.
func runGenerateTUI(ctx context.Context, env *runEnv, flags runFlags) (*generate.Manifest, error) {
	// Suppress log output while TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	emitter := events.NewEmitter(100)
	program, _ := tui.NewProgressProgram(roster.IDs())

	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		tui.Forward(program, emitter.Events())
	}()

	genDone := make(chan generateResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				genDone <- generateResult{err: fmt.Errorf("PANIC in generator: %v", r)}
			}
		}()
		m, err := env.generator(generate.WithEmitter(emitter)).Generate(ctx, flags.configPath, flags.outputDir)
		genDone <- generateResult{manifest: m, err: err}
	}()

	tuiDone := make(chan error, 1)
	go func() {
		_, err := program.Run()
		tuiDone <- err
	}()

	var res generateResult
	select {
	case res = <-genDone:
	case err := <-tuiDone:
		// The view was closed before the run finished.
		cancel()
		res = <-genDone
		emitter.Close()
		<-forwarded
		if err != nil {
			return res.manifest, fmt.Errorf("progress view: %w", err)
		}
		return res.manifest, res.err
	}

	emitter.Close()
	<-forwarded

	done := tui.DoneMsg{}
	switch {
	case res.err != nil:
		done.Message = res.err.Error()
	case res.manifest.Success():
		done.Success = true
	default:
		done.Message = fmt.Sprintf("%d error(s)", len(res.manifest.AllErrors()))
	}
	program.Send(done)
	<-tuiDone

	return res.manifest, res.err
}
