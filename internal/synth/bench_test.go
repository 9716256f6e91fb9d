package synth

import (
	"context"
	"fmt"
	"testing"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/rules"
)

const benchSample = `const cfg = {
  name: 'bench',
  retries: 3
}

function run(x) {
  if (x === null) {
    return cfg
  }
  return x
}
`

func benchUnits(n int) []ir.SourceUnit {
	out := make([]ir.SourceUnit, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ir.NewSourceUnit(fmt.Sprintf("f%03d.js", i), benchSample))
	}
	return out
}

func TestWorkload_MatchesProgress(t *testing.T) {
	cat := rules.Catalogue()
	files := benchUnits(3)
	got := 0
	_, err := Synthesize(context.Background(), files, cat, rules.NewEngine(), Baseline{},
		WithLogger(quietLogger), WithProgress(func(n int) { got += n }))
	if err != nil {
		t.Fatal(err)
	}
	if want := Workload(len(files), cat, 0); got != want {
		t.Fatalf("progress total %d, Workload %d", got, want)
	}
}

func BenchmarkSynthesize_BuiltinRules(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			files := benchUnits(20)
			cat := rules.Catalogue()
			ev := rules.NewEngine()
			baseline := Baseline{Name: rules.RecommendedName, Rules: rules.Recommended()}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Synthesize(context.Background(), files, cat, ev, baseline,
					WithWorkers(workers), WithLogger(quietLogger)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
