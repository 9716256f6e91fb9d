package rules

import (
	"sort"
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// splitCode splits blanked text the way ir.NewSourceUnit splits raw text,
// dropping the '\r' of CRLF endings.
func splitCode(b []byte) []string {
	lines := strings.Split(string(b), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

func sortByLine(fs []ir.Finding) {
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Line < fs[j].Line })
}
