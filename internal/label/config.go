// Package label loads and validates the configuration of a music label.
//
// A Config is immutable once built: all fields are unexported and every
// accessor returns a copy, so a generation run can share one Config across
// workers without synchronization.
package label

import (
	"sort"

	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// Artist is one entry of the label roster.
type Artist struct {
	Name string
	// Split is the artist's share in [0,1]; nil means the label default.
	Split          *float64
	Aliases        []string
	ContractStatus string
}

// Contracts holds optional contract metadata.
type Contracts struct {
	Storage      string
	DefaultSplit float64
	Currency     string
}

// Known values for enumerated fields, following the configurator defaults.
var (
	StorageTypes     = []string{"yandex_disk", "google_drive", "dropbox", "local"}
	HostingProviders = []string{"render", "railway", "fly_io", "vercel"}
)

const (
	defaultSplit    = 0.70
	defaultCurrency = "USD"
	defaultStorage  = "local"
)

// Config is a validated label configuration.
type Config struct {
	source      string
	digest      string
	name        string
	owner       string
	artists     []Artist
	distributor string
	credentials map[string]string
	contracts   Contracts
	hosting     string
	overrides   map[models.Role]models.AgentOverride
}

// Source returns the path the config was loaded from.
func (c *Config) Source() string { return c.source }

// Digest returns the content digest of the raw config file.
func (c *Config) Digest() string { return c.digest }

// Name returns the label name.
func (c *Config) Name() string { return c.name }

// Owner returns the label owner, if configured.
func (c *Config) Owner() string { return c.owner }

// Distributor returns the distributor identifier.
func (c *Config) Distributor() string { return c.distributor }

// Hosting returns the hosting provider, if configured.
func (c *Config) Hosting() string { return c.hosting }

// Contracts returns the contract metadata with defaults applied.
func (c *Config) Contracts() Contracts { return c.contracts }

// Artists returns a copy of the roster in config order.
func (c *Config) Artists() []Artist {
	out := make([]Artist, len(c.artists))
	for i, a := range c.artists {
		out[i] = a
		out[i].Aliases = append([]string(nil), a.Aliases...)
		if a.Split != nil {
			split := *a.Split
			out[i].Split = &split
		}
	}
	return out
}

// ArtistNames returns the artist names in config order.
func (c *Config) ArtistNames() []string {
	out := make([]string, len(c.artists))
	for i, a := range c.artists {
		out[i] = a.Name
	}
	return out
}

// EffectiveSplit returns the artist's split, falling back to the label
// default.
func (c *Config) EffectiveSplit(a Artist) float64 {
	if a.Split != nil {
		return *a.Split
	}
	return c.contracts.DefaultSplit
}

// Credential returns the secret configured under key.
func (c *Config) Credential(key string) (string, bool) {
	v, ok := c.credentials[key]
	return v, ok
}

// CredentialNames returns the configured credential keys, sorted.
func (c *Config) CredentialNames() []string {
	out := make([]string, 0, len(c.credentials))
	for k := range c.credentials {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Override returns the override configured for role, if any.
func (c *Config) Override(role models.Role) (models.AgentOverride, bool) {
	o, ok := c.overrides[role]
	if !ok {
		return models.AgentOverride{}, false
	}
	o.ExtraTools = append([]string(nil), o.ExtraTools...)
	if o.Enabled != nil {
		enabled := *o.Enabled
		o.Enabled = &enabled
	}
	return o, true
}

// Enabled reports whether role is enabled for this label.
func (c *Config) Enabled(role models.Role) bool {
	o, ok := c.overrides[role]
	return !ok || o.IsEnabled()
}
