package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// ListRuns returns a lightweight list of runs, newest first.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT id, started_at, sources, ir_version, files, rules_enabled, rules_total
		  FROM runs
		 ORDER BY started_at DESC, id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr, sources string
		if err := rows.Scan(&rr.ID, &startedAtStr, &sources, &rr.IRVersion, &rr.Files, &rr.RulesEnabled, &rr.RulesTotal); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		if err := json.Unmarshal([]byte(sources), &rr.Sources); err != nil {
			return nil, fmt.Errorf("run %s: sources: %w", rr.ID, err)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListCandidates returns the candidate rows of a run, optionally for one
// rule, ordered by rule then candidate index.
func (db *DB) ListCandidates(runID, ruleID string) ([]ir.CandidateRow, error) {
	const q = `
		SELECT rule_id, idx, config_json, specificity, evaluated, findings
		  FROM candidates
		 WHERE run_id = ?
		   AND (? = '' OR rule_id = ?)
		 ORDER BY rule_id, idx`
	rows, err := db.conn.Query(q, runID, ruleID, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.CandidateRow
	for rows.Next() {
		var c ir.CandidateRow
		var cfg string
		if err := rows.Scan(&c.RuleID, &c.Index, &cfg, &c.Specificity, &c.Evaluated, &c.Findings); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cfg), &c.Config); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
