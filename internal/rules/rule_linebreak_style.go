package rules

import (
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func init() {
	Register(Rule{
		ID:      "linebreak-style",
		Summary: "Enforce consistent linebreak style.",
		Options: []schema.Option{schema.Enum("unix", "windows")},
		Check:   checkLinebreakStyle,
	})
}

func checkLinebreakStyle(src *Source, opts []any) ([]ir.Finding, error) {
	style, err := enumOpt(opts, 0, "unix", "unix", "windows")
	if err != nil {
		return nil, err
	}
	var out []ir.Finding
	for i, line := range src.Lines {
		// the final line has no break unless the text ends with one
		if i == len(src.Lines)-1 && !strings.HasSuffix(src.Text, "\n") {
			break
		}
		crlf := strings.HasSuffix(line, "\r")
		switch {
		case style == "unix" && crlf:
			out = append(out, ir.Finding{RuleID: "linebreak-style", Line: i + 1, Message: "Expected linebreaks to be 'LF' but found 'CRLF'."})
		case style == "windows" && !crlf:
			out = append(out, ir.Finding{RuleID: "linebreak-style", Line: i + 1, Message: "Expected linebreaks to be 'CRLF' but found 'LF'."})
		}
	}
	return out, nil
}
