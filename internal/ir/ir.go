package ir

import (
	"sort"
	"time"
)

const Version = "1.0"

// Run is one persisted synthesis run.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Sources   []string  `json:"sources,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Summary    Summary        `json:"summary"`
	Config     FinalConfig    `json:"config"`
	Candidates []CandidateRow `json:"candidates,omitempty"`
}

// Summary describes the outcome of one synthesis pass.
type Summary struct {
	Files             int      `json:"files"`
	Rounds            int      `json:"rounds"`
	RulesTotal        int      `json:"rules_total"`
	RulesEnabled      int      `json:"rules_enabled"`
	EvaluatorFailures int      `json:"evaluator_failures,omitempty"`
	Unconfigured      []string `json:"unconfigured,omitempty"` // rules with no zero-finding candidate
}

// CandidateRow is the flattened view of one evaluated candidate.
type CandidateRow struct {
	RuleID      string `json:"rule_id"`
	Index       int    `json:"index"`
	Config      Config `json:"config"`
	Specificity int    `json:"specificity"`
	Evaluated   bool   `json:"evaluated"`
	Findings    int    `json:"findings"`
}

// SourceUnit is one collected input file.
type SourceUnit struct {
	Filename string   `json:"filename"`
	Text     string   `json:"-"`
	Lines    []string `json:"-"`
}

type Finding struct {
	RuleID   string `json:"rule_id"`
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

// RuleSet maps rule ids to one configuration each.
type RuleSet map[string]Config

// IDs returns the rule ids in lexical order.
func (rs RuleSet) IDs() []string {
	out := make([]string, 0, len(rs))
	for id := range rs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns a shallow copy; Config values are immutable.
func (rs RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(rs))
	for id, c := range rs {
		out[id] = c
	}
	return out
}

// Overlay copies every entry of src into rs, replacing existing keys.
func (rs RuleSet) Overlay(src RuleSet) RuleSet {
	for id, c := range src {
		rs[id] = c
	}
	return rs
}

// FinalConfig is the emitted configuration.
type FinalConfig struct {
	Extends string  `json:"extends,omitempty" yaml:"extends,omitempty"`
	Rules   RuleSet `json:"rules" yaml:"rules"`
}

// EnabledCount counts rules whose severity is not off.
func (fc FinalConfig) EnabledCount() int {
	n := 0
	for _, c := range fc.Rules {
		if c.Severity.On() {
			n++
		}
	}
	return n
}
