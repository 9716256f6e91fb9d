package rules

import (
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

const (
	disableLine     = "lintinfer-disable-line"
	disableNextLine = "lintinfer-disable-next-line"
)

// ApplySuppressions drops findings silenced by directive comments.
// "lintinfer-disable-line [rule ...]" covers the line the comment ends on and
// "lintinfer-disable-next-line [rule ...]" the line after it; without rule
// ids every rule is silenced. Returns (kept, suppressedCount).
func ApplySuppressions(in []ir.Finding, src *Source) ([]ir.Finding, int) {
	if len(in) == 0 {
		return in, 0
	}
	directives := map[int][]string{} // 1-based line -> rule ids ("*" = all)
	add := func(line int, ids []string) {
		if len(ids) == 0 {
			ids = []string{"*"}
		}
		directives[line] = append(directives[line], ids...)
	}
	for _, c := range src.syn.comments {
		if ids, ok := directive(c.text, disableNextLine); ok {
			add(c.endRow+2, ids)
			continue
		}
		if ids, ok := directive(c.text, disableLine); ok {
			add(c.endRow+1, ids)
		}
	}
	if len(directives) == 0 {
		return in, 0
	}

	var out []ir.Finding
	suppressed := 0
nextFinding:
	for _, f := range in {
		for _, id := range directives[f.Line] {
			if id == "*" || eqCI(id, f.RuleID) {
				suppressed++
				continue nextFinding
			}
		}
		out = append(out, f)
	}
	return out, suppressed
}

func directive(line, marker string) ([]string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return nil, false
	}
	rest := strings.TrimSpace(line[idx+len(marker):])
	rest = strings.TrimSuffix(rest, "*/")
	ids := strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	return ids, true
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
