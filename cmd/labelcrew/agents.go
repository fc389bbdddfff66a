package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/internal/roster"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

var (
	agentsFormat     string
	agentsConfigPath string
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent roster",
	Long: `Agents prints the six agent definitions in registry order.

With --config, per-agent overrides from the label config are applied and
disabled agents are left out, showing exactly what generate would use.

Formats: table (default), yaml, json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := roster.All()
		if agentsConfigPath != "" {
			cfg, err := label.Load(agentsConfigPath)
			if err != nil {
				return err
			}
			defs = applyOverrides(cfg, defs)
		}
		return writeAgents(os.Stdout, agentsFormat, defs)
	},
}

func init() {
	agentsCmd.Flags().StringVarP(&agentsFormat, "format", "f", "table", "Output format: table, yaml or json")
	agentsCmd.Flags().StringVarP(&agentsConfigPath, "config", "c", "", "Apply overrides from this label config")
}

// applyOverrides merges each enabled agent's override and drops disabled ones.
func applyOverrides(cfg *label.Config, defs []models.AgentDefinition) []models.AgentDefinition {
	out := make([]models.AgentDefinition, 0, len(defs))
	for _, def := range defs {
		if !cfg.Enabled(def.ID) {
			continue
		}
		if o, ok := cfg.Override(def.ID); ok {
			def = roster.Apply(def, o)
		}
		out = append(out, def)
	}
	return out
}

func writeAgents(w io.Writer, format string, defs []models.AgentDefinition) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		data, err := json.MarshalIndent(defs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table":
		_, err := fmt.Fprintln(w, agentsTable(defs))
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
	}
}

func agentsTable(defs []models.AgentDefinition) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	leadStyle := cellStyle.Foreground(lipgloss.Color("205"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("ID", "NAME", "CODENAME", "TIER", "PORTABILITY", "STATUS", "MODEL", "TOOLS")

	for _, d := range defs {
		t.Row(string(d.ID), d.Name, d.Codename, string(d.Tier), string(d.Portability), string(d.Status), d.Model, strings.Join(d.Tools, ", "))
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row >= 0 && row < len(defs) && col == 3 && defs[row].Tier == models.TierLead:
			return leadStyle
		default:
			return cellStyle
		}
	})

	return t.Render()
}
