package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "comma-dangle",
		Summary: "Require or disallow trailing commas in bracketed lists.",
		Options: []schema.Option{schema.Enum("never", "always-multiline")},
		Check:   checkCommaDangle,
	})
}

func checkCommaDangle(src *Source, opts []any) ([]ir.Finding, error) {
	mode, err := enumOpt(opts, 0, "never", "never", "always-multiline")
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for _, l := range src.syn.lists {
		switch {
		case l.comma && (mode == "never" || !l.multiline):
			out = append(out, ir.Finding{RuleID: "comma-dangle", Line: l.commaRow + 1, Message: "Unexpected trailing comma."})
		case mode == "always-multiline" && l.multiline && !l.comma && !l.rest:
			out = append(out, ir.Finding{RuleID: "comma-dangle", Line: l.lastRow + 1, Message: "Missing trailing comma."})
		}
	}
	sortByLine(out)
	return out, nil
}
