// Package tui provides the terminal progress view for labelcrew's generate command.
//
// The view is read-only. It shows one row per agent with a spinner while the
// agent's documents are being produced, the number of documents written, and
// the first error recorded for the agent. Users can quit with 'q' or Ctrl+C;
// the program also exits on its own once the run has finished.
//
// Usage:
//
//	program, app := tui.NewProgressProgram(roster.IDs())
//	go tui.Forward(program, emitter.Events())
//
//	// after Generate returns
//	program.Send(tui.DoneMsg{Success: manifest.Success()})
package tui
