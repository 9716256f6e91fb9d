package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func checkLines(t *testing.T, filename, text, rule string, opts ...any) []int {
	t.Helper()
	src, err := Prepare(ir.NewSourceUnit(filename, text))
	require.NoError(t, err)
	r, ok := Get(rule)
	require.True(t, ok, "rule %s registered", rule)
	fs, err := r.Check(src, opts)
	require.NoError(t, err)
	return lines(fs)
}

func TestSyntax_LiteralsFromTree(t *testing.T) {
	// a quote inside a regex and a template spanning lines
	const src = "const re = /\"/;\nconst s = 'a';\nconst t = `one\ntwo 'x'`;\n"

	assert.Equal(t, []int{}, checkLines(t, "a.js", src, "semi", "always"))
	assert.Equal(t, []int{1, 2, 4}, checkLines(t, "a.js", src, "semi", "never"))
	assert.Equal(t, []int{}, checkLines(t, "a.js", src, "quotes", "single"))
	assert.Equal(t, []int{2}, checkLines(t, "a.js", src, "quotes", "double"))
	assert.Equal(t, []int{2}, checkLines(t, "a.js", src, "quotes", "backtick"))

	prepared, err := Prepare(ir.NewSourceUnit("a.js", src))
	require.NoError(t, err)
	code := prepared.CodeLines()
	require.Len(t, code, 4)
	assert.Equal(t, "const re = / /;", code[0])
	assert.Equal(t, "const s = ' ';", code[1])
	assert.Equal(t, "const t = `   ", code[2])
	assert.Equal(t, "       `;", code[3])
}

func TestSyntax_StatementsSpanningLines(t *testing.T) {
	const src = "const x = foo\n  .bar()\n  .baz();\nconst y = [1, 2]\n  .map((n) => n * 2)\n"

	assert.Equal(t, []int{5}, checkLines(t, "a.js", src, "semi", "always"))
	assert.Equal(t, []int{3}, checkLines(t, "a.js", src, "semi", "never"))
}

func TestSyntax_RulesReadTheTree(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		src   string
		rule  string
		opts  []any
		lines []int
	}{
		{"brace ignores object literals 1tbs", "a.js", "const o = {\n  a: 1,\n};\nfunction f()\n{\n  return o;\n}\n", "brace-style", []any{"1tbs"}, []int{5}},
		{"brace ignores object literals allman", "a.js", "const o = {\n  a: 1,\n};\nfunction f()\n{\n  return o;\n}\n", "brace-style", []any{"allman"}, []int{}},
		{"brace try catch", "a.js", "try {\n  a();\n}\ncatch (e) {\n  b();\n}\n", "brace-style", []any{"1tbs"}, []int{3}},

		{"comma single-line never", "a.js", "const a = [1, 2,];\nimport { x, y, } from 'm';\n", "comma-dangle", []any{"never"}, []int{1, 2}},
		{"comma single-line always-multiline", "a.js", "const a = [1, 2,];\nimport { x, y, } from 'm';\n", "comma-dangle", []any{"always-multiline"}, []int{1, 2}},
		{"comma rest element", "a.js", "const {\n  a,\n  ...rest\n} = obj;\n", "comma-dangle", []any{"always-multiline"}, []int{}},

		{"quotes backtick keeps plain positions", "a.js", "import a from 'a';\nconst o = { 'k': `v` };\n", "quotes", []any{"backtick"}, []int{}},
		{"quotes double flags keys and templates", "a.js", "import a from 'a';\nconst o = { 'k': `v` };\n", "quotes", []any{"double"}, []int{1, 2, 2}},
		{"quotes tagged template", "a.js", "const q = sql`select`;\n", "quotes", []any{"single"}, []int{}},

		{"eqeqeq smart", "a.js", "if (typeof a == 'string') {}\nif (1 == 1) {}\nif (a == b) {}\n", "eqeqeq", []any{"smart"}, []int{3}},
		{"eqeqeq always", "a.js", "if (typeof a == 'string') {}\nif (1 == 1) {}\nif (a == b) {}\n", "eqeqeq", []any{"always"}, []int{1, 2, 3}},

		{"console member access only", "a.js", "console.log(1); console.warn(2);\nconst s = `console.${k}`;\nlogger.console.log(3);\n", "no-console", nil, []int{1, 1}},

		{"trailing spaces inside template", "a.js", "const t = `a  \nb`;\n", "no-trailing-spaces", nil, []int{}},
		{"trailing spaces after code comment", "a.js", "x; // c  \n", "no-trailing-spaces", []any{map[string]any{"ignoreComments": true}}, []int{}},

		{"indent skips comment and template bodies", "a.js", "/*\n   * doc\n */\nconst t = `\n   odd\n`;\n", "indent", []any{2}, []int{}},

		{"typescript statements", "a.ts", "type A = { a: string }\nlet b: A = { a: 'x' }\n", "semi", []any{"always"}, []int{1, 2}},
		{"tsx attributes are not checked", "b.tsx", "const el = <div className=\"x\">{'y'}</div>;\n", "quotes", []any{"double"}, []int{1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lines, checkLines(t, tc.file, tc.src, tc.rule, tc.opts...))
		})
	}
}

func TestPrepare_SyntaxError(t *testing.T) {
	_, err := Prepare(ir.NewSourceUnit("bad.js", "ok();\nconst = ;\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.js:")
	assert.Contains(t, err.Error(), "syntax error")
}

func TestEngine_ParsesEachUnitOnce(t *testing.T) {
	e := NewEngine()
	unit := ir.NewSourceUnit("a.js", "let a = 1\n")
	set := ir.RuleSet{"semi": ir.NewConfig(ir.SeverityError, "always")}

	_, err := e.Verify(unit, set)
	require.NoError(t, err)
	first := e.parsed["a.js"].syn

	_, err = e.Verify(unit, set)
	require.NoError(t, err)
	assert.Same(t, first, e.parsed["a.js"].syn)
	assert.Len(t, e.parsed, 1)

	fs, err := e.Verify(ir.NewSourceUnit("a.js", "let a = 1;\n"), set)
	require.NoError(t, err)
	assert.Empty(t, fs, "changed text is parsed again")
	assert.NotSame(t, first, e.parsed["a.js"].syn)
}
