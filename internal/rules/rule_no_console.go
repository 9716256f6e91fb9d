package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
)

func init() {
	Register(Rule{
		ID:          "no-console",
		Summary:     "Disallow calls to console methods.",
		Recommended: true,
		Check:       nodeCheck("no-console", "Unexpected console statement.", func(s *syntax) []int { return s.consoles }),
	})
}

// nodeCheck reports one finding per row that rows picks from the tree.
// Such rules take no options.
func nodeCheck(id, msg string, rows func(*syntax) []int) func(*Source, []any) ([]ir.Finding, error) {
	return func(src *Source, _ []any) ([]ir.Finding, error) {
		var out []ir.Finding
		for _, r := range rows(src.syn) {
			out = append(out, ir.Finding{RuleID: id, Line: r + 1, Message: msg})
		}
		return out, nil
	}
}
