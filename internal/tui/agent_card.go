package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AgentStatus is the display state of one agent row.
type AgentStatus string

const (
	StatusPending AgentStatus = "pending"
	StatusRunning AgentStatus = "running"
	StatusDone    AgentStatus = "done"
	StatusFailed  AgentStatus = "failed"
	StatusSkipped AgentStatus = "skipped"
)

// AgentCardData contains the data needed to render an agent row.
type AgentCardData struct {
	// ID is the agent's identifier.
	ID string
	// Status is the agent's current status.
	Status AgentStatus
	// Written is the number of documents persisted for the agent.
	Written int
	// Failed is the number of documents that failed.
	Failed int
	// Error is the first error message recorded for the agent.
	Error string
}

// AgentCard renders a single agent as a one-line card.
type AgentCard struct {
	width int

	idStyle       lipgloss.Style
	statusRunning lipgloss.Style
	statusDone    lipgloss.Style
	statusFailed  lipgloss.Style
	statusPending lipgloss.Style
	statusSkipped lipgloss.Style
	labelStyle    lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewAgentCard creates a new AgentCard instance.
func NewAgentCard() *AgentCard {
	return &AgentCard{
		width: 80,

		idStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Width(18),

		statusRunning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green

		statusDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")), // Dark green

		statusFailed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red

		statusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray

		statusSkipped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange

		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Italic(true),
	}
}

// SetWidth updates the card width.
func (c *AgentCard) SetWidth(width int) {
	c.width = width
}

// View renders the card. spin is the current spinner frame, shown for
// running agents.
func (c *AgentCard) View(data AgentCardData, spin string) string {
	var b strings.Builder

	b.WriteString(c.statusIcon(data.Status, spin))
	b.WriteString(" ")
	b.WriteString(c.idStyle.Render(data.ID))
	b.WriteString(c.statusStyle(data.Status).Render(fmt.Sprintf("%-8s", data.Status)))
	b.WriteString(" ")
	b.WriteString(c.labelStyle.Render(fmt.Sprintf("%d/%d docs", data.Written, documentsPerAgent)))

	if data.Error != "" {
		msg := data.Error
		if limit := c.width - 44; limit > 3 && len(msg) > limit {
			msg = msg[:limit-3] + "..."
		}
		b.WriteString("  ")
		b.WriteString(c.errorStyle.Render(msg))
	}

	return b.String()
}

func (c *AgentCard) statusIcon(s AgentStatus, spin string) string {
	switch s {
	case StatusRunning:
		return spin
	case StatusDone:
		return c.statusDone.Render("✓")
	case StatusFailed:
		return c.statusFailed.Render("✗")
	case StatusSkipped:
		return c.statusSkipped.Render("-")
	default:
		return c.statusPending.Render("·")
	}
}

func (c *AgentCard) statusStyle(s AgentStatus) lipgloss.Style {
	switch s {
	case StatusRunning:
		return c.statusRunning
	case StatusDone:
		return c.statusDone
	case StatusFailed:
		return c.statusFailed
	case StatusSkipped:
		return c.statusSkipped
	default:
		return c.statusPending
	}
}
