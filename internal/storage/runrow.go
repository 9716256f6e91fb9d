package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Sources      []string  `json:"sources,omitempty"`
	IRVersion    string    `json:"ir_version,omitempty"`
	Files        int       `json:"files"`
	RulesEnabled int       `json:"rules_enabled"`
	RulesTotal   int       `json:"rules_total"`
}
