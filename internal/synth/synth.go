// Package synth infers a rule configuration from a corpus of source files.
//
// Synthesize expands every rule schema into candidate configurations, packs
// them into rounds, evaluates each round against each file, eliminates
// candidates that produced findings and picks among the survivors by
// specificity: a uniquely decided rule wins outright, then specificity 2,
// then 3, then the bare severity, and anything left is turned off. The
// result is finally compacted against a recommended baseline.
package synth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/registry"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

// ErrNoSourceUnits is returned when there is nothing to evaluate.
var ErrNoSourceUnits = errors.New("no source files to evaluate")

// Evaluator checks one source unit against one composite rule set. A
// returned error marks that single call as failed.
type Evaluator interface {
	Verify(unit ir.SourceUnit, rules ir.RuleSet) ([]ir.Finding, error)
}

type EvaluatorFunc func(unit ir.SourceUnit, rules ir.RuleSet) ([]ir.Finding, error)

func (f EvaluatorFunc) Verify(unit ir.SourceUnit, rules ir.RuleSet) ([]ir.Finding, error) {
	return f(unit, rules)
}

// ProgressFunc receives the number of (file, round) units just completed.
type ProgressFunc func(completed int)

type options struct {
	progress ProgressFunc
	ceiling  int
	workers  int
	logger   *slog.Logger
}

type Option func(*options)

func WithProgress(fn ProgressFunc) Option { return func(o *options) { o.progress = fn } }

// WithCeiling sets the per-rule candidate count above which object-valued
// candidates past the second stop taking part in rounds.
func WithCeiling(n int) Option { return func(o *options) { o.ceiling = n } }

// WithWorkers evaluates up to n files concurrently. Totals do not depend on n.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// Result is the outcome of one synthesis.
type Result struct {
	Config    ir.FinalConfig
	Summary   ir.Summary
	Evaluated *registry.Registry // counters after the pass, before elimination
}

// Synthesize runs the whole pipeline. The only error it reports on its own
// is ErrNoSourceUnits; evaluator failures are logged and absorbed. A
// cancelled ctx aborts the pass and its partial counters are discarded.
func Synthesize(ctx context.Context, units []ir.SourceUnit, catalogue schema.Catalogue, ev Evaluator, baseline Baseline, opts ...Option) (*Result, error) {
	o := options{ceiling: registry.DefaultCeiling, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.workers < 1 {
		o.workers = 1
	}

	if len(units) == 0 {
		synthRunsTotal.WithLabelValues("no_input").Inc()
		return nil, ErrNoSourceUnits
	}
	start := time.Now()

	reg := registry.New(schema.ExpandCatalogue(catalogue))
	rounds := reg.BuildRounds(o.ceiling)
	o.logger.Debug("rounds built", "rules", reg.Len(), "rounds", len(rounds), "files", len(units))

	// Round indices address the unstripped candidate lists.
	failures, err := evaluate(ctx, reg, rounds, units, ev, &o)
	if err != nil {
		synthRunsTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}
	evaluated := reg.StripExtraConfigs()

	selected := Select(evaluated)
	final := MergeIntoBaseline(selected, baseline)

	summary := ir.Summary{
		Files:             len(units),
		Rounds:            len(rounds),
		RulesTotal:        len(selected),
		RulesEnabled:      ir.FinalConfig{Rules: selected}.EnabledCount(),
		EvaluatorFailures: failures,
		Unconfigured:      evaluated.FailingRules(),
	}
	synthRunsTotal.WithLabelValues("ok").Inc()
	synthDuration.Observe(time.Since(start).Seconds())
	o.logger.Info("synthesis complete",
		"files", summary.Files,
		"rounds", summary.Rounds,
		"enabled", summary.RulesEnabled,
		"total", summary.RulesTotal,
		"failures", failures,
	)
	return &Result{Config: final, Summary: summary, Evaluated: evaluated}, nil
}

// Workload is the number of (file, round) evaluations Synthesize performs
// for files units, i.e. the total a progress sink will eventually receive.
func Workload(files int, catalogue schema.Catalogue, ceiling int) int {
	rounds := registry.New(schema.ExpandCatalogue(catalogue)).BuildRounds(ceiling)
	return files * len(rounds)
}
