package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .off{color:#999} .pass{background:#eef9ee}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	s := run.Summary
	fmt.Fprintf(f, "<h1>lintinfer report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>%s</p>", html.EscapeString(SummaryLine(s)))
	fmt.Fprintf(f, "<p class='dim'>Rounds: %d &nbsp; Evaluator failures: %d &nbsp; Started: %s</p>",
		s.Rounds, s.EvaluatorFailures, html.EscapeString(run.StartedAt.UTC().Format("2006-01-02 15:04:05Z")))
	if len(run.Sources) > 0 {
		fmt.Fprint(f, "<p class='dim'>Sources:")
		for _, src := range run.Sources {
			fmt.Fprintf(f, " <span class='mono'>%s</span>", html.EscapeString(src))
		}
		fmt.Fprint(f, "</p>")
	}
	if run.Config.Extends != "" {
		fmt.Fprintf(f, "<p>Extends <span class='mono'>%s</span></p>", html.EscapeString(run.Config.Extends))
	}

	// Final configuration
	fmt.Fprint(f, "<h2>Configuration</h2>")
	if len(run.Config.Rules) == 0 {
		fmt.Fprint(f, "<p class='dim'>Every selected rule matches the baseline.</p>")
	} else {
		fmt.Fprint(f, "<table><tr><th>Rule</th><th>Configuration</th></tr>")
		for _, id := range run.Config.Rules.IDs() {
			cfg := run.Config.Rules[id]
			cls := ""
			if !cfg.Severity.On() {
				cls = " class='off'"
			}
			fmt.Fprintf(f, "<tr%s><td>%s</td><td class='mono'>%s</td></tr>", cls, html.EscapeString(id), html.EscapeString(cfg.String()))
		}
		fmt.Fprint(f, "</table>")
	}

	if len(s.Unconfigured) > 0 {
		fmt.Fprint(f, "<h2>Unconfigured</h2><p class='dim'>Every candidate reported findings; these rules are off.</p><ul>")
		for _, id := range s.Unconfigured {
			fmt.Fprintf(f, "<li class='mono'>%s</li>", html.EscapeString(id))
		}
		fmt.Fprint(f, "</ul>")
	}

	// Candidate counters
	if len(run.Candidates) > 0 {
		fmt.Fprint(f, "<h2>Candidates</h2><table><tr><th>Rule</th><th>#</th><th>Configuration</th><th>Specificity</th><th>Evaluated</th><th>Findings</th></tr>")
		for _, c := range run.Candidates {
			cls := ""
			if c.Evaluated && c.Findings == 0 {
				cls = " class='pass'"
			}
			fmt.Fprintf(f, "<tr%s><td>%s</td><td>%d</td><td class='mono'>%s</td><td>%d</td><td>%t</td><td>%d</td></tr>",
				cls,
				html.EscapeString(c.RuleID),
				c.Index,
				html.EscapeString(c.Config.String()),
				c.Specificity,
				c.Evaluated,
				c.Findings,
			)
		}
		fmt.Fprint(f, "</table>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}

// SummaryLine is the one-line outcome printed after a synthesis.
func SummaryLine(s ir.Summary) string {
	return fmt.Sprintf("Enabled %d out of %d rules based on %d files.", s.RulesEnabled, s.RulesTotal, s.Files)
}
