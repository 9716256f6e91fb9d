package rules

import (
	"fmt"
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "indent",
		Summary: "Enforce consistent indentation width or tabs.",
		Options: []schema.Option{schema.Enum(2, 4, "tab")},
		Check:   checkIndent,
	})
}

func checkIndent(src *Source, opts []any) ([]ir.Finding, error) {
	style, err := enumOpt(opts, 0, 4, 2, 4, "tab")
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for i, line := range src.Lines {
		// rows continuing a comment or a literal keep their own layout
		if strings.TrimSpace(line) == "" || src.syn.continued[i] {
			continue
		}
		ws := leadingWhitespace(line)
		if ws == "" {
			continue
		}
		var msg string
		if style == "tab" {
			if strings.ContainsRune(ws, ' ') {
				msg = "Expected indentation of tabs but found spaces."
			}
		} else {
			width := style.(int)
			switch {
			case strings.ContainsRune(ws, '\t'):
				msg = fmt.Sprintf("Expected indentation of %d spaces but found tabs.", width)
			case len(ws)%width != 0:
				msg = fmt.Sprintf("Expected indentation in multiples of %d spaces but found %d.", width, len(ws))
			}
		}
		if msg != "" {
			out = append(out, ir.Finding{RuleID: "indent", Line: i + 1, Message: msg})
		}
	}
	return out, nil
}
