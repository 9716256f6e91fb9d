package rules

import (
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "no-tabs",
		Summary: "Disallow tab characters.",
		Options: []schema.Option{schema.Object(schema.BoolProperty("allowIndentationTabs"))},
		Check:   checkNoTabs,
	})
}

func checkNoTabs(src *Source, opts []any) ([]ir.Finding, error) {
	obj, err := objOpt(opts, 0)
	if err != nil {
		return nil, err
	}
	allowIndent, err := boolProp(obj, "allowIndentationTabs", false)
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for i, line := range src.Lines {
		rest := line
		if allowIndent {
			rest = strings.TrimLeft(line, "\t")
		}
		if strings.ContainsRune(rest, '\t') {
			out = append(out, ir.Finding{RuleID: "no-tabs", Line: i + 1, Message: "Unexpected tab character."})
		}
	}
	return out, nil
}
