package label

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShayCichocki/labelcrew/pkg/models"
)

func TestParse_Example(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://label@localhost/label")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Parse("example.yaml", []byte(ExampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Name() != "Next Up Records" {
		t.Errorf("expected label name 'Next Up Records', got %q", cfg.Name())
	}
	if cfg.Owner() != "Jane Doe" {
		t.Errorf("expected owner 'Jane Doe', got %q", cfg.Owner())
	}
	if cfg.Distributor() != "koala_music" {
		t.Errorf("expected distributor koala_music, got %q", cfg.Distributor())
	}
	if got := cfg.ArtistNames(); strings.Join(got, ",") != "Alpha,Beta,Gamma" {
		t.Errorf("expected artists in order, got %v", got)
	}
	if v, ok := cfg.Credential("postgresql"); !ok || v != "postgres://label@localhost/label" {
		t.Errorf("expected expanded postgresql credential, got %q (present=%v)", v, ok)
	}
	if len(cfg.CredentialNames()) != 6 {
		t.Errorf("expected 6 credentials, got %v", cfg.CredentialNames())
	}
	if cfg.Contracts().Storage != "yandex_disk" {
		t.Errorf("expected storage yandex_disk, got %q", cfg.Contracts().Storage)
	}
	if cfg.Hosting() != "render" {
		t.Errorf("expected hosting render, got %q", cfg.Hosting())
	}

	artists := cfg.Artists()
	if got := cfg.EffectiveSplit(artists[1]); got != 0.7 {
		t.Errorf("expected Beta to fall back to default split 0.7, got %v", got)
	}
	if got := cfg.EffectiveSplit(artists[0]); got != 0.8 {
		t.Errorf("expected Alpha split 0.8, got %v", got)
	}

	o, ok := cfg.Override(models.RoleReleases)
	if !ok {
		t.Fatal("expected override for release-pipe (underscore key)")
	}
	if !o.IsEnabled() {
		t.Error("expected release-pipe enabled")
	}
	if cfg.Digest() == "" {
		t.Error("expected config digest")
	}
}

func TestParse_MissingArtistsAndDistributor(t *testing.T) {
	data := `
label:
  name: Solo Label
credentials: {}
`
	_, err := Parse("cfg.yaml", []byte(data))
	if err == nil {
		t.Fatal("expected ConfigError")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if len(cfgErr.Problems) != 2 {
		t.Fatalf("expected exactly 2 problems, got %d: %v", len(cfgErr.Problems), cfgErr.Fields())
	}
	if !cfgErr.Has("artists") || !cfgErr.Has("distributor") {
		t.Errorf("expected problems for artists and distributor, got %v", cfgErr.Fields())
	}
	if !strings.Contains(err.Error(), "artists") || !strings.Contains(err.Error(), "distributor") {
		t.Errorf("expected message to name both fields, got %q", err.Error())
	}
}

func TestParse_EmptyFileReportsAllRequired(t *testing.T) {
	_, err := Parse("empty.yaml", []byte(""))

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	for _, field := range []string{"label.name", "artists", "distributor", "credentials"} {
		if !cfgErr.Has(field) {
			t.Errorf("expected problem for %s, got %v", field, cfgErr.Fields())
		}
	}
}

func TestParse_MalformedFields(t *testing.T) {
	data := `
label:
  name: ""
artists:
  - name: Alpha
    split: 1.5
  - split: 0.5
  - just-a-string
distributor: [a, b]
credentials:
  telegram: [not, a, string]
contracts:
  storage: floppy
  default_split: lots
hosting:
  provider: heroku
agents:
  marketing: {}
  director:
    enabled: maybe
    colour: red
`
	_, err := Parse("bad.yaml", []byte(data))

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}

	want := []string{
		"label.name",
		"artists[0].split",
		"artists[1].name",
		"artists[2]",
		"distributor",
		"credentials.telegram",
		"contracts.storage",
		"contracts.default_split",
		"hosting.provider",
		"agents.marketing",
		"agents.director.colour",
		"agents.director.enabled",
	}
	for _, field := range want {
		if !cfgErr.Has(field) {
			t.Errorf("expected problem for %s, got %v", field, cfgErr.Fields())
		}
	}
	if len(cfgErr.Problems) != len(want) {
		t.Errorf("expected %d problems, got %d: %v", len(want), len(cfgErr.Problems), cfgErr.Fields())
	}
	for _, p := range cfgErr.Problems {
		if p.Line == 0 {
			t.Errorf("expected a source line for %s", p.Field)
		}
	}
}

func TestParse_EmptyArtistList(t *testing.T) {
	data := `
label: {name: X}
artists: []
distributor: tunecore
credentials: {}
`
	_, err := Parse("cfg.yaml", []byte(data))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || !cfgErr.Has("artists") {
		t.Fatalf("expected artists problem, got %v", err)
	}
}

func TestParse_ScalarDistributorAndNumericArtist(t *testing.T) {
	data := `
label: {name: X}
artists:
  - name: 1999
distributor: distrokid
credentials: {}
`
	cfg, err := Parse("cfg.yaml", []byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Distributor() != "distrokid" {
		t.Errorf("expected distrokid, got %q", cfg.Distributor())
	}
	if cfg.ArtistNames()[0] != "1999" {
		t.Errorf("expected artist '1999', got %q", cfg.ArtistNames()[0])
	}
	if cfg.Contracts().Currency != "USD" || cfg.Contracts().DefaultSplit != 0.7 {
		t.Errorf("expected contract defaults, got %+v", cfg.Contracts())
	}
}

func TestParse_DisabledAgent(t *testing.T) {
	data := `
label: {name: X}
artists: [{name: A}]
distributor: cdbaby
credentials: {}
agents:
  analytics-ai:
    enabled: false
    extra_tools: [looker]
`
	cfg, err := Parse("cfg.yaml", []byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Enabled(models.RoleAnalytics) {
		t.Error("expected analytics-ai disabled")
	}
	if !cfg.Enabled(models.RoleDirector) {
		t.Error("expected director enabled by default")
	}
	o, _ := cfg.Override(models.RoleAnalytics)
	if len(o.ExtraTools) != 1 || o.ExtraTools[0] != "looker" {
		t.Errorf("expected extra tool looker, got %v", o.ExtraTools)
	}
}

func TestParse_LegacyContractsStorage(t *testing.T) {
	base := `
label: {name: X}
artists: [{name: A}]
distributor: cdbaby
credentials: {}
`
	tests := []struct {
		name    string
		extra   string
		want    string
		problem string
	}{
		{"legacy key only", "contracts_storage: {type: dropbox}\n", "dropbox", ""},
		{"new key wins", "contracts_storage: {type: dropbox}\ncontracts: {storage: google_drive}\n", "google_drive", ""},
		{"neither", "", "local", ""},
		{"unknown legacy value", "contracts_storage: {type: floppy}\n", "", "contracts_storage.type"},
		{"legacy scalar", "contracts_storage: dropbox\n", "", "contracts_storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("cfg.yaml", []byte(base+tt.extra))
			if tt.problem != "" {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected *ConfigError, got %v", err)
				}
				if !cfgErr.Has(tt.problem) {
					t.Errorf("expected problem for %s, got %v", tt.problem, cfgErr.Fields())
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := cfg.Contracts().Storage; got != tt.want {
				t.Errorf("expected storage %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	cfg, err := Parse("example.yaml", []byte(ExampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	artists := cfg.Artists()
	artists[0].Name = "tampered"
	*artists[0].Split = 0.1
	artists[0].Aliases[0] = "tampered"

	fresh := cfg.Artists()
	if fresh[0].Name != "Alpha" || *fresh[0].Split != 0.8 || fresh[0].Aliases[0] != "ALPHA" {
		t.Errorf("expected config to be unaffected by caller mutation, got %+v", fresh[0])
	}
}

func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "label.jsonc")
	content := `{
  // label identity
  "label": {"name": "Json Label"},
  "artists": [{"name": "A", "split": 0.5},],
  "distributor": {"name": "tunecore"},
  /* secrets */
  "credentials": {"telegram": "t"},
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name() != "Json Label" || cfg.Distributor() != "tunecore" {
		t.Errorf("unexpected config: %q / %q", cfg.Name(), cfg.Distributor())
	}
	if cfg.Source() != path {
		t.Errorf("expected source %q, got %q", path, cfg.Source())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		t.Error("expected a read error, not a ConfigError")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestConfigError_Message(t *testing.T) {
	e := &ConfigError{Path: "x.yaml", Problems: []Problem{{Field: "artists", Message: "required field is missing"}}}
	if got := e.Error(); got != "invalid label config x.yaml: 1 problem\n  - artists: required field is missing" {
		t.Errorf("unexpected message %q", got)
	}
}
