package models

// DocumentKind is one of the documents generated for every agent.
type DocumentKind string

const (
	// DocumentPersona is the primary behavior document read by the runtime.
	DocumentPersona DocumentKind = "persona"
	// DocumentIdentity is the short identity card for the chat surface.
	DocumentIdentity DocumentKind = "identity"
	// DocumentCommands is the chat command list.
	DocumentCommands DocumentKind = "commands"
)

// DocumentKinds lists every kind in generation order.
var DocumentKinds = []DocumentKind{DocumentPersona, DocumentIdentity, DocumentCommands}

// Valid returns true if the kind is a known value.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentPersona, DocumentIdentity, DocumentCommands:
		return true
	default:
		return false
	}
}

// FileName returns the stable file name of the document inside an agent
// directory.
func (k DocumentKind) FileName() string {
	switch k {
	case DocumentPersona:
		return "SOUL.md"
	case DocumentIdentity:
		return "IDENTITY.md"
	case DocumentCommands:
		return "COMMANDS.txt"
	default:
		return string(k) + ".txt"
	}
}

// Markdown reports whether the document is rendered as markdown.
func (k DocumentKind) Markdown() bool {
	return k == DocumentPersona || k == DocumentIdentity
}
