// Package roster holds the fixed team of agent roles every label gets.
//
// The roster is a property of the framework, not of a label: it is built
// once from a static table, is never mutated and never reads the label
// configuration. Label-specific data reaches the documents only through the
// render context.
package roster

import (
	"errors"
	"fmt"

	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// ErrUnknownAgent is matched by every LookupError.
var ErrUnknownAgent = errors.New("unknown agent")

// LookupError reports a reference to an agent id that is not registered.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownAgent, e.ID)
}

// Is makes errors.Is(err, ErrUnknownAgent) true.
func (e *LookupError) Is(target error) bool {
	return target == ErrUnknownAgent
}

// registry is indexed by role; order follows models.Roles.
var registry = buildRegistry()

func buildRegistry() map[models.Role]models.AgentDefinition {
	out := make(map[models.Role]models.AgentDefinition, len(definitions))
	for _, def := range definitions {
		if !def.ID.Valid() {
			panic(fmt.Sprintf("roster: definition with unregistered role %q", def.ID))
		}
		if _, dup := out[def.ID]; dup {
			panic(fmt.Sprintf("roster: duplicate definition for %q", def.ID))
		}
		if !def.Tier.Valid() || !def.Portability.Valid() || !def.Status.Valid() {
			panic(fmt.Sprintf("roster: %q has invalid tier, portability or status", def.ID))
		}
		out[def.ID] = def
	}
	if len(out) != len(models.Roles) {
		panic(fmt.Sprintf("roster: %d definitions for %d roles", len(out), len(models.Roles)))
	}
	return out
}

// All returns every agent definition in registry order. The returned
// definitions are copies.
func All() []models.AgentDefinition {
	out := make([]models.AgentDefinition, 0, len(models.Roles))
	for _, role := range models.Roles {
		out = append(out, registry[role].Clone())
	}
	return out
}

// Get returns the definition for id, or a *LookupError.
func Get(id string) (models.AgentDefinition, error) {
	def, ok := registry[models.Role(id)]
	if !ok {
		return models.AgentDefinition{}, &LookupError{ID: id}
	}
	return def.Clone(), nil
}

// IDs returns the registered identifiers in registry order.
func IDs() []string {
	out := make([]string, len(models.Roles))
	for i, role := range models.Roles {
		out[i] = string(role)
	}
	return out
}
