package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "eqeqeq",
		Summary: "Require === and !== instead of == and !=.",
		Options: []schema.Option{schema.Enum("always", "smart")},
		Check:   checkEqeqeq,
	})
}

func checkEqeqeq(src *Source, opts []any) ([]ir.Finding, error) {
	mode, err := enumOpt(opts, 0, "always", "always", "smart")
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for _, eq := range src.syn.eqs {
		// smart allows null checks, typeof and literal-to-literal comparisons
		if mode == "smart" && eq.smartOK {
			continue
		}
		out = append(out, ir.Finding{
			RuleID:  "eqeqeq",
			Line:    eq.row + 1,
			Message: "Expected '" + eq.op + "=' and instead saw '" + eq.op + "'.",
		})
	}
	sortByLine(out)
	return out, nil
}
