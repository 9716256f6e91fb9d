package synth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// Baseline is a named recommended configuration.
type Baseline struct {
	Name  string     `yaml:"name" json:"name"`
	Rules ir.RuleSet `yaml:"rules" json:"rules"`
}

// LoadBaseline reads a YAML (or JSON) baseline file.
func LoadBaseline(path string) (Baseline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Baseline{}, fmt.Errorf("read baseline: %w", err)
	}
	var bl Baseline
	if err := yaml.Unmarshal(b, &bl); err != nil {
		return Baseline{}, fmt.Errorf("parse baseline: %w", err)
	}
	if bl.Name == "" {
		return Baseline{}, fmt.Errorf("baseline %s: missing name", path)
	}
	return bl, nil
}

// MergeIntoBaseline drops every rule whose selected configuration equals an
// enabled recommended one and records that the result extends the baseline.
func MergeIntoBaseline(selected ir.RuleSet, baseline Baseline) ir.FinalConfig {
	out := ir.FinalConfig{Rules: selected.Clone()}
	anyOn := false
	for id, rec := range baseline.Rules {
		if !rec.Severity.On() {
			continue
		}
		anyOn = true
		if cur, ok := out.Rules[id]; ok && cur.Equal(rec) {
			delete(out.Rules, id)
		}
	}
	if anyOn && baseline.Name != "" {
		out.Extends = baseline.Name
	}
	return out
}
