package rules

import (
	"sort"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

// RecommendedName is the name of the built-in baseline.
const RecommendedName = "lintinfer:recommended"

var (
	registry  []Rule
	ruleIndex = map[string]int{} // normID(ruleID) -> index
)

// Register adds r; a later registration with the same id replaces it.
func Register(r Rule) {
	key := normID(r.ID)
	if idx, ok := ruleIndex[key]; ok {
		registry[idx] = r
		return
	}
	registry = append(registry, r)
	ruleIndex[key] = len(registry) - 1
}

// List returns enabled rules ordered by id.
func List() []Rule {
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		if rsettings.Disabled[normID(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by id if registered.
func Get(id string) (Rule, bool) {
	idx, ok := ruleIndex[normID(id)]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}

// Catalogue describes the option schema of every enabled rule.
func Catalogue() schema.Catalogue {
	out := schema.Catalogue{}
	for _, r := range List() {
		out[r.ID] = schema.Descriptor{Summary: r.Summary, Options: r.Options}
	}
	return out
}

// Recommended is the built-in baseline: every recommended rule at "error".
func Recommended() ir.RuleSet {
	out := ir.RuleSet{}
	for _, r := range List() {
		if r.Recommended {
			out[r.ID] = ir.NewConfig(ir.SeverityError)
		}
	}
	return out
}
