package rules

import (
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "eol-last",
		Summary: "Require or disallow a newline at the end of files.",
		Options: []schema.Option{schema.Enum("always", "never")},
		Check:   checkEOLLast,
	})
}

func checkEOLLast(src *Source, opts []any) ([]ir.Finding, error) {
	mode, err := enumOpt(opts, 0, "always", "always", "never")
	if err != nil {
		return nil, err
	}
	if src.Text == "" {
		return nil, nil
	}
	hasEOL := strings.HasSuffix(src.Text, "\n")
	line := len(src.Lines)
	switch {
	case mode == "always" && !hasEOL:
		return []ir.Finding{{RuleID: "eol-last", Line: line, Message: "Newline required at end of file but not found."}}, nil
	case mode == "never" && hasEOL:
		return []ir.Finding{{RuleID: "eol-last", Line: line, Message: "Newline not allowed at end of file."}}, nil
	}
	return nil, nil
}
