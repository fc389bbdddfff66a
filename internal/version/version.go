// Package version reports the labelcrew release, embedded at build time
// from the VERSION file.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the current version, or "dev" when VERSION is empty.
func Get() string {
	v := strings.TrimSpace(versionContent)
	if v == "" {
		return "dev"
	}
	return v
}

// UserAgent returns the generator identifier recorded in agents.json.
func UserAgent() string {
	return "labelcrew/" + Get()
}
