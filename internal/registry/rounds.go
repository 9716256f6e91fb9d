package registry

import "github.com/codewithboateng/lintinfer/internal/ir"

// DefaultCeiling is the candidate count above which a rule only contributes
// its first two candidates plus non-object-valued ones to further rounds.
const DefaultCeiling = 17

// Round is one composite configuration: the Index-th candidate of every rule
// that has one.
type Round struct {
	Index int
	Rules ir.RuleSet
}

// BuildRounds composes the evaluation rounds and marks every placed candidate
// as evaluated with a zero counter. Candidates never placed stay undefined.
// Rounds that would be empty are skipped; Index always names the candidate
// position. A ceiling <= 0 selects DefaultCeiling.
func (r *Registry) BuildRounds(ceiling int) []Round {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	ids := r.RuleIDs()
	longest := 0
	for _, id := range ids {
		if n := len(r.rules[id]); n > longest {
			longest = n
		}
	}

	var rounds []Round
	for k := 0; k < longest; k++ {
		round := Round{Index: k, Rules: ir.RuleSet{}}
		for _, id := range ids {
			cands := r.rules[id]
			if k >= len(cands) || !participates(cands, k, ceiling) {
				continue
			}
			round.Rules[id] = cands[k].Config
			cands[k].Evaluated = true
			cands[k].Findings = 0
		}
		if len(round.Rules) > 0 {
			rounds = append(rounds, round)
		}
	}
	return rounds
}

func participates(cands []Candidate, k, ceiling int) bool {
	if len(cands) <= ceiling || k < 2 {
		return true
	}
	return !cands[k].Config.HasObject()
}
