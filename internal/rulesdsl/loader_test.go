package rulesdsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

const samplePack = `
rules:
  - id: dsl-no-alert
    summary: Disallow alert().
    recommended: true
    pattern: '\balert\s*\('
    message: Unexpected alert.
    where:
      filename: '\.jsx?$'
  - id: dsl-arrow-spacing
    summary: Spacing around arrows.
    message: Bad arrow spacing.
    choices:
      - value: spaced
        pattern: '\S=>|=>\S'
        message: Expected spaces around '=>'.
      - value: tight
        pattern: '\s=>|=>\s'
`

func prepare(t *testing.T, filename, text string) *rules.Source {
	t.Helper()
	src, err := rules.Prepare(ir.NewSourceUnit(filename, text))
	require.NoError(t, err)
	return src
}

func TestLoadAndRegister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePack), 0o644))

	n, err := LoadAndRegister(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cat := rules.Catalogue()
	require.Contains(t, cat, "dsl-arrow-spacing")
	assert.Equal(t, []schema.Option{schema.Enum("spaced", "tight")}, cat["dsl-arrow-spacing"].Options)
	assert.Empty(t, cat["dsl-no-alert"].Options)
	assert.Contains(t, rules.Recommended(), "dsl-no-alert")

	alert, ok := rules.Get("dsl-no-alert")
	require.True(t, ok)
	unit := prepare(t, "a.js", "alert(1);\nconst s = 'alert(2)';\nconst re = /alert\\(/;\n")
	fs, err := alert.Check(unit, nil)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, 1, fs[0].Line)

	other := prepare(t, "a.ts", "alert(1);\n")
	fs, err = alert.Check(other, nil)
	require.NoError(t, err)
	assert.Empty(t, fs, "filename filter")

	arrows, ok := rules.Get("dsl-arrow-spacing")
	require.True(t, ok)
	src := prepare(t, "b.js", "const f = (a) => a;\nconst g = (b)=>b;\n")

	fs, err = arrows.Check(src, []any{"spaced"})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, 2, fs[0].Line)
	assert.Equal(t, "Expected spaces around '=>'.", fs[0].Message)

	fs, err = arrows.Check(src, []any{"tight"})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, 1, fs[0].Line)
	assert.Equal(t, "Bad arrow spacing.", fs[0].Message)

	fs, err = arrows.Check(src, nil)
	require.NoError(t, err)
	assert.Len(t, fs, 1, "defaults to the first choice")

	_, err = arrows.Check(src, []any{"loose"})
	assert.Error(t, err)
	_, err = alert.Check(unit, []any{"x"})
	assert.Error(t, err)
}

func TestRegisterPack_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing message": "rules:\n  - id: dsl-bad-1\n    pattern: x\n",
		"no pattern":      "rules:\n  - id: dsl-bad-2\n    message: m\n",
		"bad regex":       "rules:\n  - id: dsl-bad-3\n    message: m\n    pattern: '('\n",
		"dup choice": "rules:\n  - id: dsl-bad-4\n    message: m\n    choices:\n" +
			"      - {value: a, pattern: x}\n      - {value: a, pattern: y}\n",
		"not yaml": "rules: [",
	}
	for name, pack := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RegisterPack([]byte(pack))
			assert.Error(t, err)
		})
	}
	_, err := LoadAndRegister(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
