package state

import (
	"strings"
	"testing"
	"time"
)

func sampleRun(id string, started time.Time, success bool) *Run {
	return &Run{
		ID:           id,
		Label:        "Next Up Records",
		ConfigPath:   "label.yaml",
		OutputRoot:   "generated",
		ConfigDigest: "abc123",
		Success:      success,
		StartedAt:    started,
		FinishedAt:   started.Add(250 * time.Millisecond),
		Documents: []Document{
			{AgentID: "director", Kind: "persona", Path: "generated/director/SOUL.md", Digest: "d1"},
			{AgentID: "director", Kind: "identity", Error: "render director/identity: malformed markdown"},
			{Kind: "agents.json", Path: "generated/agents.json", Digest: "d2"},
		},
	}
}

func TestRecordAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := db.RecordRun(sampleRun("a1b2c3d4", started, false)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	got, err := db.GetRun("a1b2c3d4")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}
	if got.Label != "Next Up Records" || got.Success {
		t.Errorf("unexpected run %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected started_at %v, got %v", started, got.StartedAt)
	}
	if got.Duration() != 250*time.Millisecond {
		t.Errorf("expected duration 250ms, got %v", got.Duration())
	}
	if len(got.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(got.Documents))
	}
	if got.Documents[0].Path != "generated/director/SOUL.md" || got.Documents[0].Error != "" {
		t.Errorf("unexpected first document %+v", got.Documents[0])
	}
	if got.Documents[1].Path != "" || !strings.Contains(got.Documents[1].Error, "malformed") {
		t.Errorf("unexpected second document %+v", got.Documents[1])
	}
	if got.Documents[2].AgentID != "" || got.Documents[2].Kind != "agents.json" {
		t.Errorf("unexpected run-level document %+v", got.Documents[2])
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetRun("missing")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestGetRun_Prefix(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	for _, id := range []string{"abc11111", "abc22222", "ffff0000"} {
		if err := db.RecordRun(sampleRun(id, now, true)); err != nil {
			t.Fatalf("RecordRun %s: %v", id, err)
		}
	}

	got, err := db.GetRun("ffff")
	if err != nil || got == nil || got.ID != "ffff0000" {
		t.Errorf("expected ffff0000, got %+v, %v", got, err)
	}

	if _, err := db.GetRun("abc"); err == nil {
		t.Error("expected ambiguous prefix error")
	}

	got, err = db.GetRun("abc11111")
	if err != nil || got == nil || got.ID != "abc11111" {
		t.Errorf("expected exact match, got %+v, %v", got, err)
	}

	got, err = db.GetRun("%")
	if err != nil || got != nil {
		t.Errorf("expected wildcard to match nothing, got %+v, %v", got, err)
	}
}

func TestRecordRun_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	run := sampleRun("dup00000", time.Now(), true)

	if err := db.RecordRun(run); err != nil {
		t.Fatalf("first RecordRun failed: %v", err)
	}
	if err := db.RecordRun(run); err == nil {
		t.Error("expected error recording a duplicate run id")
	}
}

func TestRecordRun_MissingID(t *testing.T) {
	db := setupTestDB(t)
	if err := db.RecordRun(&Run{}); err == nil {
		t.Error("expected error for run without id")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run00001", "run00002", "run00003"} {
		if err := db.RecordRun(sampleRun(id, base.Add(time.Duration(i)*time.Hour), i%2 == 0)); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run00003" || runs[1].ID != "run00002" {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
	if !runs[0].Success || runs[1].Success {
		t.Errorf("unexpected success flags %v, %v", runs[0].Success, runs[1].Success)
	}
	if runs[0].Documents != nil {
		t.Error("expected ListRuns to omit documents")
	}

	all, err := db.ListRuns(0)
	if err != nil || len(all) != 3 {
		t.Errorf("expected 3 runs, got %d, %v", len(all), err)
	}
}

func TestListRuns_KeepsTimestamps(t *testing.T) {
	db := setupTestDB(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := db.RecordRun(sampleRun("ts000001", started, true)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if !runs[0].StartedAt.Equal(started) {
		t.Errorf("expected started_at %v, got %v", started, runs[0].StartedAt)
	}
	if runs[0].Duration() != 250*time.Millisecond {
		t.Errorf("expected duration 250ms, got %v", runs[0].Duration())
	}
}

func TestListRuns_DatetimeColumns(t *testing.T) {
	db := setupTestDB(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Databases created before the columns became TEXT.
	if _, err := db.Exec(`DROP TABLE documents`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`DROP TABLE runs`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
		CREATE TABLE runs (
			id TEXT PRIMARY KEY, label TEXT NOT NULL, config_path TEXT NOT NULL,
			output_root TEXT NOT NULL, config_digest TEXT NOT NULL,
			success INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL, finished_at DATETIME NOT NULL
		)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
		INSERT INTO runs (id, label, config_path, output_root, config_digest, success, started_at, finished_at)
		VALUES ('legacy01', 'Next Up Records', 'label.yaml', 'generated', 'abc', 1, ?, ?)
	`, formatTime(started), formatTime(started.Add(time.Second))); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].StartedAt.Equal(started) || runs[0].Duration() != time.Second {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestTimeColumn_Scan(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		src     any
		wantErr bool
	}{
		{"fixed width text", formatTime(want), false},
		{"rfc3339 text", "2026-03-01T12:00:00Z", false},
		{"bytes", []byte(formatTime(want)), false},
		{"driver time", want.In(time.FixedZone("X", 3600)), false},
		{"garbage", "yesterday", true},
		{"wrong type", int64(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c timeColumn
			err := c.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if !c.t.Equal(want) {
				t.Errorf("expected %v, got %v", want, c.t)
			}
		})
	}
}

func TestPurgeOldRuns(t *testing.T) {
	db := setupTestDB(t)
	if err := db.RecordRun(sampleRun("old00000", time.Now().Add(-48*time.Hour), true)); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordRun(sampleRun("new00000", time.Now(), true)); err != nil {
		t.Fatal(err)
	}

	n, err := db.PurgeOldRuns(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldRuns failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged run, got %d", n)
	}

	var docs int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents WHERE run_id = ?", "old00000").Scan(&docs); err != nil {
		t.Fatal(err)
	}
	if docs != 0 {
		t.Errorf("expected documents of purged run to be deleted, got %d", docs)
	}
}
