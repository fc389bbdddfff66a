package models

import "strings"

// Role identifies one of the fixed agent roles. The value doubles as the
// agent's identifier and output directory name.
type Role string

const (
	// RoleDirector coordinates the team (NEXUS).
	RoleDirector Role = "director"
	// RoleRoyalty calculates quarterly royalties.
	RoleRoyalty Role = "royalty-engine"
	// RoleContracts manages artist contracts and splits.
	RoleContracts Role = "contract-mgr"
	// RoleReleases runs the release pipeline.
	RoleReleases Role = "release-pipe"
	// RoleAnalytics analyses streams and revenue.
	RoleAnalytics Role = "analytics-ai"
	// RoleDevOps keeps the infrastructure running.
	RoleDevOps Role = "devops-bot"
)

// Roles lists every role in registry order.
var Roles = []Role{
	RoleDirector,
	RoleRoyalty,
	RoleContracts,
	RoleReleases,
	RoleAnalytics,
	RoleDevOps,
}

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole normalizes a user supplied identifier ("Royalty_Engine",
// "royalty-engine") and returns the matching role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	return r, r.Valid()
}

// Command is a chat command exposed by an agent.
type Command struct {
	// Command is the full invocation, e.g. "/split ARTIST 80".
	Command string `json:"command" yaml:"command"`
	// Description is a short human description.
	Description string `json:"description" yaml:"description"`
	// AdminOnly restricts the command to label administrators.
	AdminOnly bool `json:"admin_only" yaml:"admin_only"`
}

// Name returns the bare command name without the slash or arguments.
func (c Command) Name() string {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], "/")
}

// AgentDefinition describes a fixed agent role.
type AgentDefinition struct {
	// ID is the unique, stable identifier of the agent.
	ID Role `json:"id" yaml:"id"`
	// Name is the persona's human name.
	Name string `json:"name" yaml:"name"`
	// Codename is the upper-case callsign used between agents.
	Codename string `json:"codename" yaml:"codename"`
	// RoleTitle is the human role label.
	RoleTitle string `json:"role" yaml:"role"`
	// Tier is the responsibility tier.
	Tier Tier `json:"tier" yaml:"tier"`
	// Portability classifies how the role carries across labels.
	Portability Portability `json:"portability" yaml:"portability"`
	// Status is shown in the identity document and registry.
	Status Status `json:"status" yaml:"status"`
	// Model is the model family the hosting runtime should use.
	Model string `json:"model" yaml:"model"`
	Avatar string `json:"avatar" yaml:"avatar"`
	// Specialty is the one-line area of responsibility.
	Specialty string `json:"specialty" yaml:"specialty"`
	// Description is a longer summary of what the agent does.
	Description string `json:"description" yaml:"description"`
	// Tools are the bound tool names, in order.
	Tools []string `json:"tools" yaml:"tools"`
	// Memory lists what the agent keeps in context.
	Memory []string `json:"memory" yaml:"memory"`
	// Commands are the chat commands the agent answers.
	Commands []Command `json:"commands" yaml:"commands"`
	// Credentials names the credential keys the agent's documents require.
	Credentials []string `json:"requires" yaml:"requires"`
}

// Clone returns a deep copy of the definition.
func (d AgentDefinition) Clone() AgentDefinition {
	out := d
	out.Tools = append([]string(nil), d.Tools...)
	out.Memory = append([]string(nil), d.Memory...)
	out.Commands = append([]Command(nil), d.Commands...)
	out.Credentials = append([]string(nil), d.Credentials...)
	return out
}

// AgentOverride is the optional per-agent layer a label config may apply
// over a static definition. Identity fields (ID, Codename, Tier,
// Portability, Status) cannot be overridden.
type AgentOverride struct {
	// Enabled is nil when the config does not mention it.
	Enabled     *bool
	Model       string
	DisplayName string
	ExtraTools  []string
}

// IsEnabled reports whether the override leaves the agent enabled.
func (o AgentOverride) IsEnabled() bool {
	return o.Enabled == nil || *o.Enabled
}
