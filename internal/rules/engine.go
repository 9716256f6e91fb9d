package rules

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// Engine checks source units against rule sets using the registered rules.
// Each unit is parsed once; later calls reuse the result. Safe for
// concurrent use.
type Engine struct {
	rules map[string]Rule

	mu     sync.Mutex
	parsed map[string]parsedUnit // filename -> last parse
}

type parsedUnit struct {
	text string
	syn  *syntax
	err  error
}

// NewEngine snapshots the currently enabled rules.
func NewEngine() *Engine {
	e := &Engine{rules: map[string]Rule{}, parsed: map[string]parsedUnit{}}
	for _, r := range List() {
		e.rules[r.ID] = r
	}
	return e
}

// Verify runs every enabled rule of set against unit. Unknown rules,
// malformed options, undecodable input and syntax errors fail the whole
// call.
func (e *Engine) Verify(unit ir.SourceUnit, set ir.RuleSet) ([]ir.Finding, error) {
	if !utf8.ValidString(unit.Text) {
		return nil, fmt.Errorf("%s: not valid UTF-8", unit.Filename)
	}
	if unit.Lines == nil && unit.Text != "" {
		unit = ir.NewSourceUnit(unit.Filename, unit.Text)
	}
	syn, err := e.parse(unit)
	if err != nil {
		return nil, err
	}
	src := &Source{SourceUnit: &unit, syn: syn}

	var all []ir.Finding
	for _, id := range set.IDs() {
		cfg := set[id]
		if !cfg.Severity.On() {
			continue
		}
		rule, ok := e.rules[id]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		fs, err := rule.Check(src, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", id, err)
		}
		for k := range fs {
			if fs[k].RuleID == "" {
				fs[k].RuleID = id
			}
			if fs[k].Filename == "" {
				fs[k].Filename = unit.Filename
			}
		}
		all = append(all, fs...)
	}

	all, _ = ApplySuppressions(all, src)

	// Stable order for reproducible outputs
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Line == all[j].Line {
			return all[i].RuleID < all[j].RuleID
		}
		return all[i].Line < all[j].Line
	})
	return all, nil
}

func (e *Engine) parse(unit ir.SourceUnit) (*syntax, error) {
	e.mu.Lock()
	p, ok := e.parsed[unit.Filename]
	e.mu.Unlock()
	if ok && p.text == unit.Text {
		return p.syn, p.err
	}

	// parsed outside the lock; a racing duplicate parse yields the same result
	syn, err := analyze(context.Background(), unit)
	e.mu.Lock()
	e.parsed[unit.Filename] = parsedUnit{text: unit.Text, syn: syn, err: err}
	e.mu.Unlock()
	return syn, err
}
