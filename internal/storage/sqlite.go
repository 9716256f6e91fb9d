package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("run not found")

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id            TEXT PRIMARY KEY,
  started_at    TEXT,          -- RFC3339Nano
  sources       TEXT,          -- JSON array
  ir_version    TEXT,
  files         INTEGER NOT NULL DEFAULT 0,
  rules_enabled INTEGER NOT NULL DEFAULT 0,
  rules_total   INTEGER NOT NULL DEFAULT 0,
  run_json      TEXT NOT NULL  -- run without candidate rows
);

CREATE TABLE IF NOT EXISTS candidates (
  run_id      TEXT NOT NULL,
  rule_id     TEXT NOT NULL,
  idx         INTEGER NOT NULL,
  config_json TEXT NOT NULL,
  specificity INTEGER NOT NULL,
  evaluated   INTEGER NOT NULL,
  findings    INTEGER NOT NULL,
  PRIMARY KEY (run_id, rule_id, idx),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_candidates_rule ON candidates(rule_id);
`)
	return err
}

// SaveRun upserts a run and (re)writes its candidate rows.
func (db *DB) SaveRun(run *ir.Run) error {
	head := *run
	head.Candidates = nil
	b, err := json.Marshal(head)
	if err != nil {
		return err
	}
	sources, err := json.Marshal(run.Sources)
	if err != nil {
		return err
	}
	ts := run.StartedAt.UTC().Format(time.RFC3339Nano)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, sources, ir_version, files, rules_enabled, rules_total, run_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, sources=excluded.sources,
           ir_version=excluded.ir_version, files=excluded.files, rules_enabled=excluded.rules_enabled,
           rules_total=excluded.rules_total, run_json=excluded.run_json`,
		run.ID, ts, string(sources), run.IRVersion,
		run.Summary.Files, run.Summary.RulesEnabled, run.Summary.RulesTotal, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM candidates WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if len(run.Candidates) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO candidates
			(run_id, rule_id, idx, config_json, specificity, evaluated, findings)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range run.Candidates {
			cfg, err := json.Marshal(c.Config)
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(
				run.ID,
				c.RuleID,
				c.Index,
				string(cfg),
				c.Specificity,
				c.Evaluated,
				c.Findings,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadRun returns the full run, candidate rows included.
func (db *DB) LoadRun(id string) (ir.Run, error) {
	var s string
	row := db.conn.QueryRow(`SELECT run_json FROM runs WHERE id = ?`, id)
	if err := row.Scan(&s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Run{}, ErrNotFound
		}
		return ir.Run{}, err
	}
	var run ir.Run
	if err := json.Unmarshal([]byte(s), &run); err != nil {
		return ir.Run{}, err
	}
	cands, err := db.ListCandidates(id, "")
	if err != nil {
		return ir.Run{}, err
	}
	run.Candidates = cands
	return run, nil
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (ir.Run, error) {
	var id string
	err := db.conn.QueryRow(`SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, ErrNotFound
	}
	if err != nil {
		return ir.Run{}, err
	}
	return db.LoadRun(id)
}
