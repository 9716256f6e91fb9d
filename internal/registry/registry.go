// Package registry holds per-rule candidate configurations and their finding
// counters.
//
// Every transform returns a new, independent Registry. The two exceptions
// are BuildRounds, which marks placed candidates as evaluated, and AddFindings,
// which the evaluation pass uses to accumulate counts in place. A Registry is
// not safe for concurrent mutation; callers serialise AddFindings.
package registry

import (
	"sort"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// Candidate is one rule configuration with its finding counter. The counter
// is undefined until Evaluated is set. Index is the candidate's position in
// the expanded list, which is also the round that evaluates it; it survives
// every transform.
type Candidate struct {
	Index       int
	Config      ir.Config
	Specificity int
	Evaluated   bool
	Findings    int
}

type Registry struct {
	rules map[string][]Candidate
}

// New builds a registry from ordered per-rule configurations.
func New(configs map[string][]ir.Config) *Registry {
	r := &Registry{rules: make(map[string][]Candidate, len(configs))}
	for id, cs := range configs {
		cands := make([]Candidate, 0, len(cs))
		for i, c := range cs {
			cands = append(cands, Candidate{Index: i, Config: c, Specificity: c.Specificity()})
		}
		r.rules[id] = cands
	}
	return r
}

// RuleIDs returns rule ids in lexical order.
func (r *Registry) RuleIDs() []string {
	out := make([]string, 0, len(r.rules))
	for id := range r.rules {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int { return len(r.rules) }

// Candidates returns a copy of the candidates of one rule.
func (r *Registry) Candidates(id string) []Candidate {
	return append([]Candidate(nil), r.rules[id]...)
}

func (r *Registry) Clone() *Registry {
	return r.filter(func(Candidate) bool { return true }, false)
}

// filter copies r keeping candidates for which keep returns true. With
// dropEmpty, rules left without candidates are removed.
func (r *Registry) filter(keep func(Candidate) bool, dropEmpty bool) *Registry {
	out := &Registry{rules: make(map[string][]Candidate, len(r.rules))}
	for id, cands := range r.rules {
		kept := make([]Candidate, 0, len(cands))
		for _, c := range cands {
			if keep(c) {
				kept = append(kept, c)
			}
		}
		if dropEmpty && len(kept) == 0 {
			continue
		}
		out.rules[id] = kept
	}
	return out
}

// StripExtraConfigs keeps only candidates that were placed into a round.
func (r *Registry) StripExtraConfigs() *Registry {
	return r.filter(func(c Candidate) bool { return c.Evaluated }, false)
}

// StripFailingConfigs keeps only candidates with zero findings. Rules with
// no survivor are dropped: no safe configuration was found for them.
func (r *Registry) StripFailingConfigs() *Registry {
	return r.filter(func(c Candidate) bool { return c.Evaluated && c.Findings == 0 }, true)
}

// FilterBySpecificity keeps only candidates of specificity n.
func (r *Registry) FilterBySpecificity(n int) *Registry {
	return r.filter(func(c Candidate) bool { return c.Specificity == n }, false)
}

// RulesWithOneConfig lists rules that have exactly one candidate left.
func (r *Registry) RulesWithOneConfig() []string {
	var out []string
	for _, id := range r.RuleIDs() {
		if len(r.rules[id]) == 1 {
			out = append(out, id)
		}
	}
	return out
}

// CreateConfig maps every rule with exactly one candidate to that candidate.
func (r *Registry) CreateConfig() ir.RuleSet {
	out := ir.RuleSet{}
	for _, id := range r.RulesWithOneConfig() {
		out[id] = r.rules[id][0].Config
	}
	return out
}

// FailingRules lists rules that were evaluated but have no zero-finding
// candidate.
func (r *Registry) FailingRules() []string {
	var out []string
	for _, id := range r.RuleIDs() {
		evaluated, clean := false, false
		for _, c := range r.rules[id] {
			if !c.Evaluated {
				continue
			}
			evaluated = true
			if c.Findings == 0 {
				clean = true
				break
			}
		}
		if evaluated && !clean {
			out = append(out, id)
		}
	}
	return out
}

// AddFindings increments the counter of the index-th candidate of rule id.
// Only call it on the registry rounds were built from, where positions and
// Index coincide. It reports false when no such evaluated candidate exists.
func (r *Registry) AddFindings(id string, index, n int) bool {
	cands, ok := r.rules[id]
	if !ok || index < 0 || index >= len(cands) || !cands[index].Evaluated {
		return false
	}
	cands[index].Findings += n
	return true
}

// Rows flattens the registry for storage and reports.
func (r *Registry) Rows() []ir.CandidateRow {
	var out []ir.CandidateRow
	for _, id := range r.RuleIDs() {
		for _, c := range r.rules[id] {
			out = append(out, ir.CandidateRow{
				RuleID:      id,
				Index:       c.Index,
				Config:      c.Config,
				Specificity: c.Specificity,
				Evaluated:   c.Evaluated,
				Findings:    c.Findings,
			})
		}
	}
	return out
}
