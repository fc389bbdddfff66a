package state

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Run is one recorded generation run.
type Run struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	ConfigPath   string     `json:"config_path"`
	OutputRoot   string     `json:"output_root"`
	ConfigDigest string     `json:"config_digest"`
	Success      bool       `json:"success"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
	Documents    []Document `json:"documents,omitempty"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Document is the outcome of one document in a run. Exactly one of Path
// and Error is set. Run-level failures use an empty AgentID.
type Document struct {
	AgentID string `json:"agent_id"`
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Digest  string `json:"digest,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RecordRun stores r and its documents in one transaction.
func (db *DB) RecordRun(r *Run) error {
	if r.ID == "" {
		return fmt.Errorf("record run: missing id")
	}
	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (id, label, config_path, output_root, config_digest, success, started_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.Label, r.ConfigPath, r.OutputRoot, r.ConfigDigest, r.Success,
			formatTime(r.StartedAt), formatTime(r.FinishedAt))
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}

		for i, d := range r.Documents {
			_, err := tx.Exec(`
				INSERT INTO documents (run_id, seq, agent_id, kind, path, digest, error)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, r.ID, i, d.AgentID, d.Kind, nullString(d.Path), nullString(d.Digest), nullString(d.Error))
			if err != nil {
				return fmt.Errorf("record document %s/%s: %w", d.AgentID, d.Kind, err)
			}
		}
		return nil
	})
}

// ListRuns returns the most recent runs first, without documents. A
// non-positive limit returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, label, config_path, output_root, config_digest, success, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run with its documents. id may be a unique prefix.
// Returns nil, nil if no run matches.
func (db *DB) GetRun(id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	rows, err := db.Query(`
		SELECT id, label, config_path, output_root, config_digest, success, started_at, finished_at
		FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id = ? DESC LIMIT 2
	`, id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	var matches []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("get run: %w", err)
		}
		matches = append(matches, r)
	}
	rows.Close()

	switch {
	case len(matches) == 0:
		return nil, nil
	case len(matches) > 1 && matches[0].ID != id:
		return nil, fmt.Errorf("get run: prefix %q is ambiguous", id)
	}
	run := matches[0]

	docs, err := db.documents(run.ID)
	if err != nil {
		return nil, err
	}
	run.Documents = docs
	return run, nil
}

func (db *DB) documents(runID string) ([]Document, error) {
	rows, err := db.Query(`
		SELECT agent_id, kind, path, digest, error
		FROM documents WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var path, digest, errText sql.NullString
		if err := rows.Scan(&d.AgentID, &d.Kind, &path, &digest, &errText); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Path, d.Digest, d.Error = path.String, digest.String, errText.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var startedAt, finishedAt timeColumn
	if err := s.Scan(&r.ID, &r.Label, &r.ConfigPath, &r.OutputRoot, &r.ConfigDigest, &r.Success, &startedAt, &finishedAt); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.StartedAt, r.FinishedAt = startedAt.t, finishedAt.t
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards for use with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
