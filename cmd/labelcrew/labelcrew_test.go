package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/labelcrew/internal/config"
	"github.com/ShayCichocki/labelcrew/internal/digest"
	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/internal/roster"
	"github.com/ShayCichocki/labelcrew/internal/state"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

func TestRunFlagsResolve(t *testing.T) {
	cfg := config.Default()
	cfg.Templates.Dir = "/srv/templates"
	cfg.OpenClaw.Dir = "/srv/openclaw"
	cfg.Defaults.Workers = 4

	tests := []struct {
		name     string
		flags    runFlags
		expected runFlags
	}{
		{
			name:  "empty flags take config values",
			flags: runFlags{},
			expected: runFlags{
				configPath:   "label.yaml",
				outputDir:    "./generated",
				templatesDir: "/srv/templates",
				openClawDir:  "/srv/openclaw",
				workers:      4,
			},
		},
		{
			name: "flags win over config",
			flags: runFlags{
				configPath:   "other.yaml",
				outputDir:    "out",
				templatesDir: "tmpl",
				openClawDir:  "oc",
				workers:      2,
				noHistory:    true,
			},
			expected: runFlags{
				configPath:   "other.yaml",
				outputDir:    "out",
				templatesDir: "tmpl",
				openClawDir:  "oc",
				workers:      2,
				noHistory:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flags.resolve(cfg); got != tt.expected {
				t.Errorf("resolve() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestRunFlagsResolve_HistoryDisabledByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.History.Enabled = false
	cfg.Defaults.Workers = 0

	got := runFlags{}.resolve(cfg)
	if !got.noHistory {
		t.Error("expected history.enabled=false to imply --no-history")
	}
	if got.workers != 1 {
		t.Errorf("expected workers to fall back to 1, got %d", got.workers)
	}
}

func TestWriteAgents_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAgents(&buf, "yaml", roster.All()); err != nil {
		t.Fatalf("writeAgents failed: %v", err)
	}

	var defs []models.AgentDefinition
	if err := yaml.Unmarshal(buf.Bytes(), &defs); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, buf.String())
	}
	if len(defs) != 6 {
		t.Fatalf("expected 6 agents, got %d", len(defs))
	}
	if defs[0].ID != models.RoleDirector || defs[1].Codename != "ROYALTY-ENGINE" {
		t.Errorf("unexpected order: %s, %s", defs[0].ID, defs[1].Codename)
	}
}

func TestWriteAgents_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAgents(&buf, "JSON", roster.All()); err != nil {
		t.Fatalf("writeAgents failed: %v", err)
	}

	var defs []models.AgentDefinition
	if err := json.Unmarshal(buf.Bytes(), &defs); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(defs) != 6 || defs[5].ID != models.RoleDevOps {
		t.Errorf("unexpected agents %+v", defs)
	}
}

func TestWriteAgents_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAgents(&buf, "table", roster.All()); err != nil {
		t.Fatalf("writeAgents failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID", "CODENAME", "director", "NEXUS", "royalty-engine", "specialist"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestWriteAgents_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAgents(&buf, "xml", roster.All()); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestApplyOverrides(t *testing.T) {
	data := label.ExampleYAML + `  devops_bot:
    enabled: false
  royalty_engine:
    display_name: Rita Ray
`
	cfg, err := label.Parse("label.yaml", []byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	defs := applyOverrides(cfg, roster.All())
	if len(defs) != 5 {
		t.Fatalf("expected disabled agent dropped, got %d agents", len(defs))
	}
	for _, d := range defs {
		if d.ID == models.RoleDevOps {
			t.Error("expected devops-bot to be left out")
		}
	}
	if defs[0].Model != "opus" {
		t.Errorf("expected director model override, got %q", defs[0].Model)
	}
	if defs[1].Name != "Rita Ray" {
		t.Errorf("expected display name override, got %q", defs[1].Name)
	}
}

func TestWriteExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels", "label.yaml")

	created, err := writeExampleConfig(path)
	if err != nil {
		t.Fatalf("writeExampleConfig failed: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}
	if _, err := label.Load(path); err != nil {
		t.Errorf("expected example config to be valid, got %v", err)
	}

	if err := os.WriteFile(path, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}
	created, err = writeExampleConfig(path)
	if err != nil {
		t.Fatalf("second writeExampleConfig failed: %v", err)
	}
	if created {
		t.Error("expected existing file to be left alone")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "mine" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestRunEnv_GenerateRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "label.yaml")
	if err := os.WriteFile(configPath, []byte(label.ExampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.History.Retention = time.Hour
	flags := runFlags{configPath: configPath, outputDir: filepath.Join(dir, "out")}.resolve(cfg)

	env := newRunEnv(cfg, flags)
	defer env.Close()
	if env.history == nil {
		t.Fatal("expected history database to be opened")
	}

	m, err := env.generator().Generate(context.Background(), flags.configPath, flags.outputDir)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !m.Success() {
		t.Fatalf("expected success, got errors %v", m.AllErrors())
	}
	env.purge()

	runs, err := env.history.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != m.RunID {
		t.Fatalf("expected run %s recorded, got %+v", m.RunID, runs)
	}

	run, err := env.history.GetRun(m.RunID)
	if err != nil || run == nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	var buf bytes.Buffer
	printRun(&buf, run)
	if !strings.Contains(buf.String(), "director") || !strings.Contains(buf.String(), "(run)") {
		t.Errorf("unexpected run output:\n%s", buf.String())
	}
	short := digest.Short(run.Documents[0].Digest)
	if len(short) != 12 || !strings.Contains(buf.String(), short+"  ") {
		t.Errorf("expected shortened digest %q in output:\n%s", short, buf.String())
	}
	if strings.Contains(buf.String(), run.Documents[0].Digest) {
		t.Error("expected full digest not to be printed")
	}
}

func TestRunEnv_NoHistory(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	env := newRunEnv(cfg, runFlags{noHistory: true}.resolve(cfg))
	defer env.Close()

	if env.history != nil {
		t.Error("expected no history database with --no-history")
	}
	if _, err := os.Stat(cfg.History.Path); !os.IsNotExist(err) {
		t.Error("expected history database not to be created")
	}
}

func TestPrintRuns(t *testing.T) {
	started := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	runs := []state.Run{
		{ID: "abcd1234", Label: "Next Up Records", Success: true, StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond)},
		{ID: "ef567890", Label: "Other", StartedAt: started, FinishedAt: started},
	}

	var buf bytes.Buffer
	printRuns(&buf, runs)
	out := buf.String()
	for _, want := range []string{"RUN", "abcd1234", "Next Up Records", "1.5s", "failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
