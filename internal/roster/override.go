package roster

import "github.com/ShayCichocki/labelcrew/pkg/models"

// Apply merges an override over a definition and returns the result. The
// input definition is not modified.
func Apply(def models.AgentDefinition, o models.AgentOverride) models.AgentDefinition {
	out := def.Clone()
	if o.Model != "" {
		out.Model = o.Model
	}
	if o.DisplayName != "" {
		out.Name = o.DisplayName
	}
	for _, tool := range o.ExtraTools {
		if !contains(out.Tools, tool) {
			out.Tools = append(out.Tools, tool)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
