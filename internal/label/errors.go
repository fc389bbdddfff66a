package label

import (
	"fmt"
	"strings"
)

// Problem is a single missing or malformed field.
type Problem struct {
	// Field is the dotted path of the field, e.g. "artists[2].split".
	Field string
	// Message says what is wrong.
	Message string
	// Line is the 1-based source line, or 0 when the field is absent.
	Line int
}

func (p Problem) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", p.Field, p.Message, p.Line)
	}
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// ConfigError reports every problem found in a label configuration.
// Validation never stops at the first problem.
type ConfigError struct {
	Path     string
	Problems []Problem
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	noun := "problems"
	if len(e.Problems) == 1 {
		noun = "problem"
	}
	fmt.Fprintf(&b, "invalid label config %s: %d %s", e.Path, len(e.Problems), noun)
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.String())
	}
	return b.String()
}

// Fields returns the field path of every problem, in report order.
func (e *ConfigError) Fields() []string {
	out := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		out[i] = p.Field
	}
	return out
}

// Has reports whether a problem was recorded for field.
func (e *ConfigError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}
