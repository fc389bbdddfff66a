package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the title bar with the run id and overall progress.
type Header struct {
	width int

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
}

// NewHeader creates a new Header.
func NewHeader() *Header {
	return &Header{
		width: 80,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFC857")),

		metaStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View(runID string, finished, total int) string {
	title := h.titleStyle.Render("labelcrew")
	meta := fmt.Sprintf("%d/%d agents", finished, total)
	if runID != "" {
		meta = fmt.Sprintf("run %s  %s", runID, meta)
	}

	return lipgloss.NewStyle().
		Width(h.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("238")).
		Render(title + "  " + h.metaStyle.Render(meta))
}
