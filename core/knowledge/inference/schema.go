package inference

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Schema creates the tables used by RuleStore and InferenceLog.
const Schema = `
CREATE TABLE IF NOT EXISTS swrl_rules (
	name TEXT PRIMARY KEY,
	purpose TEXT NOT NULL DEFAULT 'reasoning',
	severity TEXT NOT NULL DEFAULT '',
	rule_text TEXT NOT NULL,
	rule_json TEXT NOT NULL,
	enabled INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK (enabled IN (0, 1))
);

CREATE TABLE IF NOT EXISTS inference_runs (
	run_id TEXT PRIMARY KEY,
	ontology TEXT NOT NULL,
	started_at TEXT NOT NULL,
	inferences INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inference_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	rule_name TEXT NOT NULL,
	axiom_kind TEXT NOT NULL,
	axiom TEXT NOT NULL,
	derived_at TEXT NOT NULL,
	UNIQUE (run_id, axiom)
);

CREATE INDEX IF NOT EXISTS idx_inference_log_axiom ON inference_log(axiom);
CREATE INDEX IF NOT EXISTS idx_inference_log_rule ON inference_log(rule_name);
`

// OpenDB opens the SQLite database at path, creating its directory and the
// schema when needed. ":memory:" opens a private in-memory database.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
