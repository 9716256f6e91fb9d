package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "semi",
		Summary: "Require or disallow semicolons at the end of statements.",
		Options: []schema.Option{schema.Enum("always", "never")},
		Check:   checkSemi,
	})
}

func checkSemi(src *Source, opts []any) ([]ir.Finding, error) {
	mode, err := enumOpt(opts, 0, "always", "always", "never")
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for _, st := range src.syn.stmts {
		switch {
		case mode == "always" && !st.semi:
			out = append(out, ir.Finding{RuleID: "semi", Line: st.row + 1, Message: "Missing semicolon."})
		case mode == "never" && st.semi:
			out = append(out, ir.Finding{RuleID: "semi", Line: st.semiRow + 1, Message: "Extra semicolon."})
		}
	}
	sortByLine(out)
	return out, nil
}
