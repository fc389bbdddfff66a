package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/labelcrew/internal/events"
)

// documentsPerAgent is the number of documents each enabled agent produces.
const documentsPerAgent = 3

// EventMsg wraps a generator event for the TUI.
type EventMsg struct {
	Event events.Event
}

// DoneMsg signals that the generate call has returned.
type DoneMsg struct {
	Success bool
	Message string
}

// ProgressApp is the bubbletea model for generate --tui.
type ProgressApp struct {
	order  []string
	agents map[string]*AgentCardData

	runID    string
	finished int

	spinner spinner.Model
	header  *Header
	card    *AgentCard

	width    int
	done     bool
	success  bool
	message  string
	quitting bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	hintStyle    lipgloss.Style
}

// NewProgressApp creates a model with one pending row per agent id.
func NewProgressApp(agentIDs []string) *ProgressApp {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	a := &ProgressApp{
		order:   make([]string, 0, len(agentIDs)),
		agents:  make(map[string]*AgentCardData, len(agentIDs)),
		spinner: s,
		header:  NewHeader(),
		card:    NewAgentCard(),

		successStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
	for _, id := range agentIDs {
		a.row(id)
	}
	return a
}

// NewProgressProgram creates a bubbletea program around a ProgressApp.
func NewProgressProgram(agentIDs []string) (*tea.Program, *ProgressApp) {
	app := NewProgressApp(agentIDs)
	return tea.NewProgram(app), app
}

// Forward sends every event from ch to the program until ch is closed.
func Forward(program *tea.Program, ch <-chan events.Event) {
	for event := range ch {
		program.Send(EventMsg{Event: event})
	}
}

// Init implements tea.Model.
func (a *ProgressApp) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update implements tea.Model.
func (a *ProgressApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.header.SetWidth(msg.Width)
		a.card.SetWidth(msg.Width)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case EventMsg:
		a.handleEvent(msg.Event)

	case DoneMsg:
		a.done = true
		a.success = msg.Success
		a.message = msg.Message
		return a, tea.Quit
	}

	return a, nil
}

func (a *ProgressApp) handleEvent(e events.Event) {
	switch e.Type {
	case events.RunStarted:
		a.runID = e.RunID
	case events.AgentStarted:
		a.row(e.AgentID).Status = StatusRunning
	case events.DocumentWritten:
		a.row(e.AgentID).Written++
	case events.DocumentFailed:
		r := a.row(e.AgentID)
		r.Failed++
		if r.Error == "" && e.Error != nil {
			r.Error = e.Error.Error()
		}
	case events.AgentSkipped:
		a.row(e.AgentID).Status = StatusSkipped
		a.finished++
	case events.AgentFinished:
		r := a.row(e.AgentID)
		if e.Success {
			r.Status = StatusDone
		} else {
			r.Status = StatusFailed
			if r.Error == "" && e.Error != nil {
				r.Error = e.Error.Error()
			}
		}
		a.finished++
	case events.RunFinished:
		if !e.Success && e.Error != nil && a.message == "" {
			a.message = e.Error.Error()
		}
	}
}

// row returns the row for id, appending one for agents not known up front.
func (a *ProgressApp) row(id string) *AgentCardData {
	if r, ok := a.agents[id]; ok {
		return r
	}
	r := &AgentCardData{ID: id, Status: StatusPending}
	a.agents[id] = r
	a.order = append(a.order, id)
	return r
}

// Agent returns a copy of the row for id.
func (a *ProgressApp) Agent(id string) (AgentCardData, bool) {
	r, ok := a.agents[id]
	if !ok {
		return AgentCardData{}, false
	}
	return *r, true
}

// Done reports whether the run has finished.
func (a *ProgressApp) Done() bool {
	return a.done
}

// View implements tea.Model.
func (a *ProgressApp) View() string {
	if a.quitting && !a.done {
		return "Interrupted.\n"
	}

	var b strings.Builder
	b.WriteString(a.header.View(a.runID, a.finished, len(a.order)))
	b.WriteString("\n")

	spin := a.spinner.View()
	for _, id := range a.order {
		b.WriteString(a.card.View(*a.agents[id], spin))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case a.done && a.success:
		b.WriteString(a.successStyle.Render("All documents written"))
	case a.done:
		msg := "Generation finished with errors"
		if a.message != "" {
			msg += ": " + a.message
		}
		b.WriteString(a.errorStyle.Render(msg))
	default:
		b.WriteString(a.hintStyle.Render("q: quit"))
	}
	b.WriteString("\n")

	return b.String()
}
