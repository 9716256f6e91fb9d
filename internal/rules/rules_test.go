package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func lines(fs []ir.Finding) []int {
	out := make([]int, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Line)
	}
	return out
}

func TestRules_Table(t *testing.T) {
	const (
		quotesSrc   = "const a = \"x\";\nconst b = 'y'; // it's fine\nconst t = `a ${b}`;\n"
		semiSrc     = "const a = 1;\nlet b = 2\nif (a) {\n  foo();\n}\n"
		indentSrc   = "function f() {\n  return 1;\n}\n"
		eqSrc       = "if (a == b) {}\nif (a === b) {}\nif (x != null) {}\n"
		commaSrc    = "const o = {\n  a: 1,\n  b: 2,\n};\nconst p = {\n  a: 1,\n  b: 2\n};\nif (x) {\n  y()\n}\n"
		oneTBSSrc   = "if (a) {\n  b();\n} else {\n  c();\n}\n"
		allmanSrc   = "if (a)\n{\n  b();\n}\nelse\n{\n  c();\n}\n"
		singleSrc   = "if (a) { b(); }\nconst o = { a: 1 };\n"
		trailingSrc = "a;  \n\n   \n// c \nb;\n"
		tabsSrc     = "\tfoo();\nbar();\t// x\n"
	)

	tests := []struct {
		name  string
		rule  string
		src   string
		opts  []any
		lines []int
	}{
		{"quotes double", "quotes", quotesSrc, []any{"double"}, []int{2}},
		{"quotes single", "quotes", quotesSrc, []any{"single"}, []int{1}},
		{"quotes backtick", "quotes", quotesSrc, []any{"backtick"}, []int{1, 2}},
		{"quotes default", "quotes", quotesSrc, nil, []int{2}},

		{"semi always", "semi", semiSrc, []any{"always"}, []int{2}},
		{"semi never", "semi", semiSrc, []any{"never"}, []int{1, 4}},

		{"indent 2", "indent", indentSrc, []any{2}, []int{}},
		{"indent 4", "indent", indentSrc, []any{4}, []int{2}},
		{"indent 4 decoded as float", "indent", indentSrc, []any{4.0}, []int{2}},
		{"indent tab", "indent", indentSrc, []any{"tab"}, []int{2}},
		{"indent tabs under spaces", "indent", "\tx();\n", []any{2}, []int{1}},

		{"eol-last always ok", "eol-last", "a\n", []any{"always"}, []int{}},
		{"eol-last never", "eol-last", "a\n", []any{"never"}, []int{1}},
		{"eol-last always missing", "eol-last", "a\nb", nil, []int{2}},

		{"linebreak unix", "linebreak-style", "a\r\nb\r\n", []any{"unix"}, []int{1, 2}},
		{"linebreak windows", "linebreak-style", "a\r\nb\r\n", []any{"windows"}, []int{}},
		{"linebreak windows last line", "linebreak-style", "a\nb", []any{"windows"}, []int{1}},

		{"eqeqeq always", "eqeqeq", eqSrc, []any{"always"}, []int{1, 3}},
		{"eqeqeq smart", "eqeqeq", eqSrc, []any{"smart"}, []int{1}},

		{"comma-dangle never", "comma-dangle", commaSrc, []any{"never"}, []int{3}},
		{"comma-dangle always-multiline", "comma-dangle", commaSrc, []any{"always-multiline"}, []int{7}},

		{"brace 1tbs on 1tbs", "brace-style", oneTBSSrc, []any{"1tbs"}, []int{}},
		{"brace allman on 1tbs", "brace-style", oneTBSSrc, []any{"allman"}, []int{1, 3, 3}},
		{"brace 1tbs on allman", "brace-style", allmanSrc, []any{"1tbs"}, []int{2, 4, 6}},
		{"brace allman on allman", "brace-style", allmanSrc, []any{"allman"}, []int{}},
		{"brace single line disallowed", "brace-style", singleSrc, []any{"1tbs", map[string]any{"allowSingleLine": false}}, []int{1, 1}},
		{"brace single line allowed", "brace-style", singleSrc, []any{"1tbs", map[string]any{"allowSingleLine": true}}, []int{}},

		{"trailing default", "no-trailing-spaces", trailingSrc, nil, []int{1, 3, 4}},
		{"trailing skip blank", "no-trailing-spaces", trailingSrc, []any{map[string]any{"skipBlankLines": true}}, []int{1, 4}},
		{"trailing ignore comments", "no-trailing-spaces", trailingSrc, []any{map[string]any{"ignoreComments": true}}, []int{1, 3}},
		{"trailing both", "no-trailing-spaces", trailingSrc, []any{map[string]any{"skipBlankLines": true, "ignoreComments": true}}, []int{1}},

		{"tabs default", "no-tabs", tabsSrc, nil, []int{1, 2}},
		{"tabs indentation allowed", "no-tabs", tabsSrc, []any{map[string]any{"allowIndentationTabs": true}}, []int{2}},

		{"console", "no-console", "console.log(1);\nconst s = 'console.log';\n// console.log\n", nil, []int{1}},
		{"var", "no-var", "var a = 1;\nlet b;\nconst variable = 2;\nfor (var i = 0;;) {}\n", nil, []int{1, 4}},
		{"debugger", "no-debugger", "debugger;\nconst debuggerMode = 1;\n", nil, []int{1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := Get(tc.rule)
			require.True(t, ok, "rule %s registered", tc.rule)
			src, err := Prepare(ir.NewSourceUnit("t.js", tc.src))
			require.NoError(t, err)
			fs, err := rule.Check(src, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.lines, lines(fs))
			for _, f := range fs {
				assert.Equal(t, tc.rule, f.RuleID)
				assert.NotEmpty(t, f.Message)
			}
		})
	}
}

func TestRules_RejectBadOptions(t *testing.T) {
	tests := []struct {
		rule string
		opts []any
	}{
		{"semi", []any{"sometimes"}},
		{"indent", []any{3}},
		{"brace-style", []any{"1tbs", "not-an-object"}},
		{"no-tabs", []any{map[string]any{"allowIndentationTabs": "yes"}}},
	}
	for _, tc := range tests {
		rule, ok := Get(tc.rule)
		require.True(t, ok)
		src, err := Prepare(ir.NewSourceUnit("t.js", "x\n"))
		require.NoError(t, err)
		if _, err := rule.Check(src, tc.opts); err == nil {
			t.Fatalf("%s %v: expected an option error", tc.rule, tc.opts)
		}
	}
}

func TestCatalogueAndRecommended(t *testing.T) {
	cat := Catalogue()
	for _, id := range []string{"quotes", "semi", "indent", "eol-last", "linebreak-style", "eqeqeq",
		"comma-dangle", "brace-style", "no-trailing-spaces", "no-tabs", "no-console", "no-var", "no-debugger"} {
		assert.Contains(t, cat, id)
	}
	assert.Equal(t, ir.RuleSet{
		"no-console":  ir.NewConfig(ir.SeverityError),
		"no-var":      ir.NewConfig(ir.SeverityError),
		"no-debugger": ir.NewConfig(ir.SeverityError),
	}, Recommended())
}

func TestSettings_Disabled(t *testing.T) {
	SetSettings(Settings{Disabled: map[string]bool{"No-Var": true}})
	defer SetSettings(Settings{})

	assert.NotContains(t, Catalogue(), "no-var")
	assert.NotContains(t, Recommended(), "no-var")
	_, ok := Get("no-var")
	assert.True(t, ok, "disabled rules stay registered")
}
