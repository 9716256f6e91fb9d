package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fuzz the collector with arbitrary file content to ensure we never panic
// and that lines round-trip.
func FuzzCollectNoPanic(f *testing.F) {
	seeds := []string{
		"const a = 1;\n",
		"a\r\nb\r\n",
		"",
		"\n\n\n",
		"no newline at end",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "fuzz.js"), data, 0o644); err != nil {
			t.Skipf("write failed: %v", err)
		}
		units, _ := Collect([]string{dir}, Options{Extensions: []string{".js"}})
		if len(units) != 1 {
			t.Fatalf("expected one unit, got %d", len(units))
		}
		u := units[0]
		joined := strings.Join(u.Lines, "\n")
		if len(u.Lines) > 0 && strings.HasSuffix(u.Text, "\n") {
			joined += "\n"
		}
		if joined != u.Text {
			t.Fatalf("lines do not rebuild text: %q vs %q", joined, u.Text)
		}
	})
}
