package synth

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/registry"
)

// Select picks one configuration per rule of an evaluated registry.
//
// Every rule starts as "off". Surviving candidates then overlay it, later
// layers winning: bare severity, specificity 3, specificity 2, and last any
// rule left with exactly one survivor. A specificity layer only claims rules
// that have exactly one survivor at that specificity.
func Select(evaluated *registry.Registry) ir.RuleSet {
	disabled := ir.RuleSet{}
	for _, id := range evaluated.RuleIDs() {
		disabled[id] = ir.NewConfig(ir.SeverityOff)
	}

	passing := evaluated.StripFailingConfigs()
	singleConfigs := passing.CreateConfig()
	specTwo := passing.FilterBySpecificity(2).CreateConfig()
	specThree := passing.FilterBySpecificity(3).CreateConfig()
	bare := passing.FilterBySpecificity(1).CreateConfig()

	return disabled.
		Overlay(bare).
		Overlay(specThree).
		Overlay(specTwo).
		Overlay(singleConfigs)
}
