package render

import (
	"fmt"

	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// RenderError reports a document that could not be fully resolved.
type RenderError struct {
	Agent string
	Kind  models.DocumentKind
	// Key is the unresolved placeholder, e.g. "Label" or
	// "credentials.github". Empty when the failure is not about a key.
	Key string
	// Reason describes failures that are not about a key.
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("render %s/%s: unresolved placeholder %q", e.Agent, e.Kind, e.Key)
	case e.Err != nil:
		return fmt.Sprintf("render %s/%s: %s: %v", e.Agent, e.Kind, e.Reason, e.Err)
	default:
		return fmt.Sprintf("render %s/%s: %s", e.Agent, e.Kind, e.Reason)
	}
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
