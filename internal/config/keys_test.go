package config

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"defaults.config", "labels/main.yaml"},
		{"defaults.output_dir", "out"},
		{"defaults.workers", "6"},
		{"templates.dir", "tmpl"},
		{"history.enabled", "false"},
		{"history.path", "/tmp/h.db"},
		{"history.retention", "24h0m0s"},
		{"telemetry.exporter", "stdout"},
		{"telemetry.otlp_endpoint", "collector:4317"},
		{"telemetry.otlp_insecure", "true"},
		{"openclaw.dir", "/srv/openclaw"},
		{"watch.debounce", "1s"},
	}

	cfg := Default()
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("expected %q, got %q", tt.value, got)
			}
		})
	}
	if len(tests) != len(Keys()) {
		t.Errorf("expected a case per key, have %d of %d", len(tests), len(Keys()))
	}
	if cfg.History.Retention != 24*time.Hour {
		t.Errorf("expected retention 24h, got %v", cfg.History.Retention)
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"defaults.workers", "many"},
		{"defaults.workers", "0"},
		{"history.enabled", "maybe"},
		{"history.retention", "forever"},
		{"telemetry.exporter", "zipkin"},
		{"watch.debounce", "soon"},
		{"unknown.key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			if err := Default().Set(tt.key, tt.value); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Default().Get("anthropic.api_key"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeys_CaseInsensitive(t *testing.T) {
	cfg := Default()
	if err := cfg.Set("Defaults.Workers", "2"); err != nil {
		t.Fatal(err)
	}
	if v, _ := cfg.Get("DEFAULTS.WORKERS"); v != "2" {
		t.Errorf("expected 2, got %q", v)
	}
}
