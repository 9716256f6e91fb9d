package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOpts = Options{
	Extensions: []string{".js", ".ts"},
	Ignore:     []string{"node_modules", ".git"},
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func names(t *testing.T, dir string, patterns []string, opts Options) []string {
	t.Helper()
	units, _ := Collect(patterns, opts)
	var out []string
	for _, u := range units {
		rel, err := filepath.Rel(dir, filepath.FromSlash(u.Filename))
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestCollect_Directory(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/a.js":                 "a;\n",
		"src/b.ts":                 "b;\n",
		"src/readme.md":            "# x\n",
		"src/lib/c.js":             "c;\n",
		"node_modules/dep/d.js":    "d;\n",
		"src/node_modules/e.js":    "e;\n",
		".git/hooks/pre-commit.js": "x;\n",
	})
	got := names(t, dir, []string{dir}, defaultOpts)
	assert.Equal(t, []string{"src/a.js", "src/b.ts", "src/lib/c.js"}, got)
}

func TestCollect_GlobsFilesAndDedupe(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":        "a;\n",
		"b.js":        "b;\n",
		"notes.txt":   "n\n",
		"deep/x/c.js": "c;\n",
		"deep/y.ts":   "y;\n",
	})
	j := func(p string) string { return filepath.Join(dir, p) }

	got := names(t, dir, []string{j("*.js"), j("a.js"), j("notes.txt")}, defaultOpts)
	assert.Equal(t, []string{"a.js", "b.js", "notes.txt"}, got, "explicit files bypass the extension filter")

	got = names(t, dir, []string{j("deep") + "/**/*.js"}, defaultOpts)
	assert.Equal(t, []string{"deep/x/c.js"}, got)
}

func TestCollect_Diagnostics(t *testing.T) {
	dir := writeTree(t, map[string]string{"big.js": "0123456789\n", "ok.js": "x\n"})
	units, diags := Collect([]string{dir, filepath.Join(dir, "missing.js"), filepath.Join(dir, "*.none")},
		Options{Extensions: []string{".js"}, MaxFileBytes: 5})
	require.Len(t, units, 1)
	assert.Equal(t, []string{"x"}, units[0].Lines)
	assert.Len(t, diags.Warnings, 3, "%v", diags.Warnings)

	units, diags = Collect(nil, defaultOpts)
	assert.Empty(t, units)
	assert.Equal(t, []string{"no source files matched"}, diags.Warnings)
}

func TestMatchTail(t *testing.T) {
	assert.True(t, matchTail("*.js", "a/b/c.js"))
	assert.True(t, matchTail("x/*.js", "a/x/c.js"))
	assert.False(t, matchTail("x/*.js", "a/y/c.js"))
	assert.False(t, matchTail("a/b/*.js", "c.js"))
}
