package rules_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/synth"
)

func TestEngine_Verify(t *testing.T) {
	e := rules.NewEngine()
	unit := ir.NewSourceUnit("a.js", "let b = 2\nconsole.log(b);\n")

	fs, err := e.Verify(unit, ir.RuleSet{
		"semi":       ir.NewConfig(ir.SeverityError, "always"),
		"no-console": ir.NewConfig(ir.SeverityOff),
	})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, ir.Finding{RuleID: "semi", Filename: "a.js", Line: 1, Message: "Missing semicolon."}, fs[0])
}

func TestEngine_VerifyFailures(t *testing.T) {
	e := rules.NewEngine()
	good := ir.NewSourceUnit("a.js", "x;\n")

	_, err := e.Verify(good, ir.RuleSet{"no-such-rule": ir.NewConfig(ir.SeverityError)})
	assert.ErrorContains(t, err, "unknown rule")

	_, err = e.Verify(good, ir.RuleSet{"semi": ir.NewConfig(ir.SeverityWarn, "sometimes")})
	assert.ErrorContains(t, err, "rule semi")

	_, err = e.Verify(ir.NewSourceUnit("bin.js", "\xff\xfe"), ir.RuleSet{"semi": ir.NewConfig(ir.SeverityError)})
	assert.ErrorContains(t, err, "UTF-8")

	_, err = e.Verify(ir.NewSourceUnit("broken.js", "if (\n"), ir.RuleSet{"semi": ir.NewConfig(ir.SeverityError)})
	assert.ErrorContains(t, err, "syntax error")
}

func TestEngine_Suppressions(t *testing.T) {
	src := "console.log(1); // lintinfer-disable-line no-console\n" +
		"console.log(2);\n" +
		"// lintinfer-disable-next-line\n" +
		"console.log(3)\n" +
		"console.log(4) // lintinfer-disable-line semi\n"
	e := rules.NewEngine()
	fs, err := e.Verify(ir.NewSourceUnit("s.js", src), ir.RuleSet{
		"no-console": ir.NewConfig(ir.SeverityError),
		"semi":       ir.NewConfig(ir.SeverityError, "always"),
	})
	require.NoError(t, err)

	var got []string
	for _, f := range fs {
		got = append(got, f.RuleID+"@"+string(rune('0'+f.Line)))
	}
	assert.Equal(t, []string{"no-console@2", "no-console@5"}, got)

	prepared, err := rules.Prepare(ir.NewSourceUnit("s.js", src))
	require.NoError(t, err)
	_, n := rules.ApplySuppressions([]ir.Finding{{RuleID: "semi", Line: 5}}, prepared)
	assert.Equal(t, 1, n)

	// only comments carry directives
	fs, err = e.Verify(ir.NewSourceUnit("q.js", "console.log('lintinfer-disable-line')\n"), ir.RuleSet{
		"no-console": ir.NewConfig(ir.SeverityError),
	})
	require.NoError(t, err)
	assert.Len(t, fs, 1)
}

// A corpus written in one consistent style should be inferred back.
func TestEngine_SynthesizeCorpus(t *testing.T) {
	files := []ir.SourceUnit{
		ir.NewSourceUnit("a.js", "const a = 'x'\nfunction f() {\n  return a\n}\n"),
		ir.NewSourceUnit("b.js", "let b = 'y'\nconsole.log(b)\n"),
	}
	baseline := synth.Baseline{Name: rules.RecommendedName, Rules: rules.Recommended()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := synth.Synthesize(context.Background(), files, rules.Catalogue(), rules.NewEngine(), baseline, synth.WithLogger(logger))
	require.NoError(t, err)
	got := res.Config.Rules

	assert.Equal(t, rules.RecommendedName, res.Config.Extends)
	assert.True(t, got["quotes"].Equal(ir.NewConfig(ir.SeverityError, "single")), got["quotes"].String())
	assert.True(t, got["semi"].Equal(ir.NewConfig(ir.SeverityError, "never")), got["semi"].String())
	assert.True(t, got["indent"].Equal(ir.NewConfig(ir.SeverityError, 2)), got["indent"].String())
	assert.True(t, got["eol-last"].Equal(ir.NewConfig(ir.SeverityError, "always")), got["eol-last"].String())
	assert.Equal(t, ir.SeverityOff, got["no-console"].Severity)
	assert.NotContains(t, got, "no-var", "matches the recommended baseline")
	assert.Zero(t, res.Summary.EvaluatorFailures)
	assert.Contains(t, res.Summary.Unconfigured, "no-console")
}
