package synth

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/registry"
)

type tallyKey struct {
	rule  string
	index int
}

// evaluate runs every round against every file and adds each finding to the
// counter of the candidate that produced it. Files are independent: each
// worker tallies one file through all rounds, in round order, and merges its
// tally under mu. With one worker files are processed in input order.
func evaluate(ctx context.Context, reg *registry.Registry, rounds []registry.Round, units []ir.SourceUnit, ev Evaluator, o *options) (int, error) {
	var (
		mu       sync.Mutex
		failures int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for _, unit := range units {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			tally := map[tallyKey]int{}
			failed := 0
			for _, round := range rounds {
				if err := gctx.Err(); err != nil {
					return err
				}
				findings, err := ev.Verify(unit, round.Rules)
				if err != nil {
					evaluationsTotal.WithLabelValues("error").Inc()
					o.logger.Warn("evaluation failed; treating as no findings",
						"file", unit.Filename, "round", round.Index, "err", err)
					failed++
					continue
				}
				evaluationsTotal.WithLabelValues("ok").Inc()
				for _, f := range findings {
					if f.RuleID == "" {
						continue
					}
					if _, ok := round.Rules[f.RuleID]; !ok {
						continue
					}
					tally[tallyKey{rule: f.RuleID, index: round.Index}]++
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for k, n := range tally {
				reg.AddFindings(k.rule, k.index, n)
			}
			failures += failed
			if o.progress != nil {
				o.progress(len(rounds))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return failures, err
	}
	// the loop may have stopped early without any worker observing it
	if err := ctx.Err(); err != nil {
		return failures, err
	}
	return failures, nil
}
