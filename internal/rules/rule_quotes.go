package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "quotes",
		Summary: "Enforce a consistent quote character for string literals.",
		Options: []schema.Option{schema.Enum("double", "single", "backtick")},
		Check:   checkQuotes,
	})
}

var quoteChar = map[any]byte{"double": '"', "single": '\'', "backtick": '`'}

func checkQuotes(src *Source, opts []any) ([]ir.Finding, error) {
	style, err := enumOpt(opts, 0, "double", "double", "single", "backtick")
	if err != nil {
		return nil, err
	}
	want := quoteChar[style]

	var out []ir.Finding
	for _, lit := range src.syn.strs {
		switch {
		case lit.quote == want:
			continue
		case lit.quote == '`' && lit.needsTemplate:
			continue
		case want == '`' && lit.plainOnly:
			continue
		}
		out = append(out, ir.Finding{
			RuleID:  "quotes",
			Line:    lit.row + 1,
			Message: "Strings must use " + style.(string) + " quotes.",
		})
	}
	sortByLine(out)
	return out, nil
}
