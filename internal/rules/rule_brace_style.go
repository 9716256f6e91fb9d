package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "brace-style",
		Summary: "Enforce a consistent brace style for blocks.",
		Options: []schema.Option{
			schema.Enum("1tbs", "allman"),
			schema.Object(schema.BoolProperty("allowSingleLine")),
		},
		Check: checkBraceStyle,
	})
}

func checkBraceStyle(src *Source, opts []any) ([]ir.Finding, error) {
	style, err := enumOpt(opts, 0, "1tbs", "1tbs", "allman")
	if err != nil {
		return nil, err
	}
	obj, err := objOpt(opts, 1)
	if err != nil {
		return nil, err
	}
	allowSingle, err := boolProp(obj, "allowSingleLine", false)
	if err != nil {
		return nil, err
	}

	var out []ir.Finding
	add := func(r int, msg string) {
		out = append(out, ir.Finding{RuleID: "brace-style", Line: r + 1, Message: msg})
	}
	for _, b := range src.syn.blocks {
		single := allowSingle && b.open == b.close
		switch {
		case style == "1tbs" && b.before != b.open:
			add(b.open, "Opening curly brace does not appear on the same line as controlling statement.")
		case style == "allman" && b.before == b.open && !single:
			add(b.open, "Opening curly brace appears on the same line as controlling statement.")
		}
		if b.after == b.open && !single {
			add(b.open, "Statement inside of curly braces should be on next line.")
		}
		if b.lastInside == b.close && !single {
			add(b.close, "Closing curly brace should be on the same line as opening curly brace or on the line after the previous block.")
		}
	}
	for _, k := range src.syn.keywords {
		switch {
		case style == "1tbs" && k.close != k.keyword:
			add(k.close, "Closing curly brace does not appear on the same line as the subsequent block.")
		case style == "allman" && k.close == k.keyword:
			add(k.close, "Closing curly brace appears on the same line as the subsequent block.")
		}
	}
	sortByLine(out)
	return out, nil
}
