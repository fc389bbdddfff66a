package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Keys returns every configuration key in display order.
func Keys() []string {
	return []string{
		"defaults.config",
		"defaults.output_dir",
		"defaults.workers",
		"templates.dir",
		"history.enabled",
		"history.path",
		"history.retention",
		"telemetry.exporter",
		"telemetry.otlp_endpoint",
		"telemetry.otlp_insecure",
		"openclaw.dir",
		"watch.debounce",
	}
}

// Exporters lists the accepted telemetry.exporter values.
var Exporters = []string{"none", "stdout", "otlp"}

// Get returns the value of a dot-notation key as a string.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "defaults.config":
		return c.Defaults.Config, nil
	case "defaults.output_dir":
		return c.Defaults.OutputDir, nil
	case "defaults.workers":
		return strconv.Itoa(c.Defaults.Workers), nil
	case "templates.dir":
		return c.Templates.Dir, nil
	case "history.enabled":
		return strconv.FormatBool(c.History.Enabled), nil
	case "history.path":
		return c.History.Path, nil
	case "history.retention":
		return c.History.Retention.String(), nil
	case "telemetry.exporter":
		return c.Telemetry.Exporter, nil
	case "telemetry.otlp_endpoint":
		return c.Telemetry.OTLPEndpoint, nil
	case "telemetry.otlp_insecure":
		return strconv.FormatBool(c.Telemetry.OTLPInsecure), nil
	case "openclaw.dir":
		return c.OpenClaw.Dir, nil
	case "watch.debounce":
		return c.Watch.Debounce.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set parses value and assigns it to a dot-notation key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "defaults.config":
		c.Defaults.Config = value
	case "defaults.output_dir":
		c.Defaults.OutputDir = value
	case "defaults.workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for defaults.workers: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("invalid value for defaults.workers: must be at least 1")
		}
		c.Defaults.Workers = n
	case "templates.dir":
		c.Templates.Dir = value
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for history.enabled: %w", err)
		}
		c.History.Enabled = b
	case "history.path":
		c.History.Path = value
	case "history.retention":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for history.retention: %w", err)
		}
		c.History.Retention = d
	case "telemetry.exporter":
		if !contains(Exporters, value) {
			return fmt.Errorf("invalid value for telemetry.exporter: choose from %s", strings.Join(Exporters, ", "))
		}
		c.Telemetry.Exporter = value
	case "telemetry.otlp_endpoint":
		c.Telemetry.OTLPEndpoint = value
	case "telemetry.otlp_insecure":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for telemetry.otlp_insecure: %w", err)
		}
		c.Telemetry.OTLPInsecure = b
	case "openclaw.dir":
		c.OpenClaw.Dir = value
	case "watch.debounce":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for watch.debounce: %w", err)
		}
		c.Watch.Debounce = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
