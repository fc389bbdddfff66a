// Package config handles configuration of the labelcrew tool itself.
// It supports XDG config paths, project-level overrides, and environment
// variables. Label configurations are a separate concern (see package
// label).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for labelcrew.
type Config struct {
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Templates TemplatesConfig `mapstructure:"templates"`
	History   HistoryConfig   `mapstructure:"history"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	OpenClaw  OpenClawConfig  `mapstructure:"openclaw"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// DefaultsConfig holds default values for generation runs.
type DefaultsConfig struct {
	// Config is the label config used when --config is not given.
	Config    string `mapstructure:"config"`
	OutputDir string `mapstructure:"output_dir"`
	Workers   int    `mapstructure:"workers"`
}

// TemplatesConfig points at template overrides.
type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path is the database file; empty means the XDG data directory.
	Path string `mapstructure:"path"`
	// Retention purges runs older than this after each run; zero keeps all.
	Retention time.Duration `mapstructure:"retention"`
}

// TelemetryConfig selects the OpenTelemetry exporter.
type TelemetryConfig struct {
	Exporter     string `mapstructure:"exporter"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// OpenClawConfig enables the OpenClaw workspace mirror.
type OpenClawConfig struct {
	Dir string `mapstructure:"dir"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

const (
	appName           = "labelcrew"
	projectConfigName = ".labelcrew.yaml"
	envPrefix         = "LABELCREW"
)

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (LABELCREW_DEFAULTS_WORKERS, ...)
// 2. Project config (.labelcrew.yaml in current directory or parent)
// 3. User config (~/.config/labelcrew/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	bindEnv(v)
	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific file over the
// defaults. Environment variables still apply.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)
	return unmarshal(v)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Templates.Dir = expandPath(cfg.Templates.Dir)
	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.OpenClaw.Dir = expandPath(cfg.OpenClaw.Dir)
	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveTo(cfg, GetUserConfigPath())
}

// SaveTo writes the configuration to path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("defaults.config", cfg.Defaults.Config)
	v.Set("defaults.output_dir", cfg.Defaults.OutputDir)
	v.Set("defaults.workers", cfg.Defaults.Workers)
	v.Set("templates.dir", cfg.Templates.Dir)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.retention", cfg.History.Retention.String())
	v.Set("telemetry.exporter", cfg.Telemetry.Exporter)
	v.Set("telemetry.otlp_endpoint", cfg.Telemetry.OTLPEndpoint)
	v.Set("telemetry.otlp_insecure", cfg.Telemetry.OTLPInsecure)
	v.Set("openclaw.dir", cfg.OpenClaw.Dir)
	v.Set("watch.debounce", cfg.Watch.Debounce.String())
	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it
// exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("defaults.config", d.Defaults.Config)
	v.SetDefault("defaults.output_dir", d.Defaults.OutputDir)
	v.SetDefault("defaults.workers", d.Defaults.Workers)
	v.SetDefault("templates.dir", d.Templates.Dir)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.retention", d.History.Retention.String())
	v.SetDefault("telemetry.exporter", d.Telemetry.Exporter)
	v.SetDefault("telemetry.otlp_endpoint", d.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.otlp_insecure", d.Telemetry.OTLPInsecure)
	v.SetDefault("openclaw.dir", d.OpenClaw.Dir)
	v.SetDefault("watch.debounce", d.Watch.Debounce.String())
}

// getUserConfigDir returns the XDG config directory for labelcrew.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// findProjectConfig searches for .labelcrew.yaml in the current directory
// and its parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		configPath := filepath.Join(cwd, projectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return ""
		}
		cwd = parent
	}
}

// expandPath expands ${VAR} references and a leading ~/.
func expandPath(s string) string {
	s = os.ExpandEnv(s)
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[2:])
		}
	}
	return s
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Config:    "label.yaml",
			OutputDir: "./generated",
			Workers:   1,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			Exporter: "none",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}
