package label

import "strings"

// MaskSecret returns a credential value safe for display: the first and
// last four characters of long values, "***" for short ones.
func MaskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 12 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// UnresolvedCredentials returns the credential keys whose value is empty
// after ${VAR} expansion, sorted. Such keys count as present for rendering
// but will not work at runtime.
func (c *Config) UnresolvedCredentials() []string {
	var out []string
	for _, k := range c.CredentialNames() {
		if strings.TrimSpace(c.credentials[k]) == "" {
			out = append(out, k)
		}
	}
	return out
}
