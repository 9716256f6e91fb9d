package rules

import (
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "no-trailing-spaces",
		Summary: "Disallow trailing whitespace at the end of lines.",
		Options: []schema.Option{
			schema.Object(
				schema.BoolProperty("skipBlankLines"),
				schema.BoolProperty("ignoreComments"),
			),
		},
		Check: checkNoTrailingSpaces,
	})
}

func checkNoTrailingSpaces(src *Source, opts []any) ([]ir.Finding, error) {
	obj, err := objOpt(opts, 0)
	if err != nil {
		return nil, err
	}
	skipBlank, err := boolProp(obj, "skipBlankLines", false)
	if err != nil {
		return nil, err
	}
	ignoreComments, err := boolProp(obj, "ignoreComments", false)
	if err != nil {
		return nil, err
	}

	var out []ir.Finding
	for i, raw := range src.Lines {
		line := strings.TrimRight(raw, "\r")
		if line == strings.TrimRight(line, " \t") {
			continue
		}
		if src.syn.templateEOL[i] {
			continue // significant inside a template literal
		}
		if skipBlank && strings.TrimSpace(line) == "" {
			continue
		}
		if ignoreComments && src.syn.commentEOL[i] {
			continue
		}
		out = append(out, ir.Finding{RuleID: "no-trailing-spaces", Line: i + 1, Message: "Trailing spaces not allowed."})
	}
	return out, nil
}
