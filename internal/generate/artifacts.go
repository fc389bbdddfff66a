package generate

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ShayCichocki/labelcrew/internal/output"
	"github.com/ShayCichocki/labelcrew/internal/roster"
	"github.com/ShayCichocki/labelcrew/internal/version"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// Run-level artifact file names, written at the output root.
const (
	RegistryFile = "agents.json"
	CommandsFile = "telegram_commands.txt"
)

// Registry is the content of agents.json. It carries no timestamp so that
// identical inputs produce identical bytes.
type Registry struct {
	Label       string                   `json:"label"`
	Distributor string                   `json:"distributor"`
	Generator   string                   `json:"generator"`
	Agents      []models.AgentDefinition `json:"agents"`
}

// enabledDefinitions returns the enabled agents with overrides applied, in
// registry order.
func enabledDefinitions(r *run, defs []models.AgentDefinition) []models.AgentDefinition {
	var out []models.AgentDefinition
	for _, def := range defs {
		if !r.cfg.Enabled(def.ID) {
			continue
		}
		if o, ok := r.cfg.Override(def.ID); ok {
			def = roster.Apply(def, o)
		}
		out = append(out, def)
	}
	return out
}

// BuildRegistry returns the agents.json document.
func BuildRegistry(labelName, distributor string, defs []models.AgentDefinition) ([]byte, error) {
	reg := Registry{
		Label:       labelName,
		Distributor: distributor,
		Generator:   version.UserAgent(),
		Agents:      defs,
	}
	if reg.Agents == nil {
		reg.Agents = []models.AgentDefinition{}
	}
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return append(data, '\n'), nil
}

// BuildCommandList returns the BotFather command list: one
// "name - description" line per command name, sorted by name. When two
// agents expose the same name the first in registry order wins.
func BuildCommandList(defs []models.AgentDefinition) []byte {
	seen := make(map[string]bool)
	var lines []string
	for _, def := range defs {
		for _, c := range def.Commands {
			name := c.Name()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			lines = append(lines, name+" - "+strings.TrimSpace(c.Description))
		}
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// writeArtifacts writes the run-level files. Each failure is recorded and
// does not prevent the other artifact.
func (g *Generator) writeArtifacts(r *run, defs []models.AgentDefinition) ([]Artifact, []error) {
	enabled := enabledDefinitions(r, defs)

	var artifacts []Artifact
	var errs []error
	write := func(name string, data []byte) {
		path := filepath.Join(r.root, name)
		if err := output.WriteFile(path, data); err != nil {
			r.log.Log("[generate] %s failed: %v", name, err)
			errs = append(errs, err)
			return
		}
		artifacts = append(artifacts, Artifact{Name: name, Path: path, Digest: output.Digest(string(data))})
		r.log.Log("[generate] %s -> %s", name, path)
	}

	registry, err := BuildRegistry(r.cfg.Name(), r.cfg.Distributor(), enabled)
	if err != nil {
		errs = append(errs, err)
	} else {
		write(RegistryFile, registry)
	}
	write(CommandsFile, BuildCommandList(enabled))

	return artifacts, errs
}
