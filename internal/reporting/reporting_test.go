package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func sampleConfig() ir.FinalConfig {
	return ir.FinalConfig{
		Extends: "lintinfer:recommended",
		Rules: ir.RuleSet{
			"semi":        ir.NewConfig(ir.SeverityError, "never"),
			"no-console":  ir.NewConfig(ir.SeverityOff),
			"brace-style": ir.NewConfig(ir.SeverityError, "1tbs", map[string]any{"allowSingleLine": true}),
		},
	}
}

func TestEncodeConfig_JSON(t *testing.T) {
	b, err := EncodeConfig(sampleConfig(), "json")
	require.NoError(t, err)
	want := `{
  "extends": "lintinfer:recommended",
  "rules": {
    "brace-style": [
      "error",
      "1tbs",
      {
        "allowSingleLine": true
      }
    ],
    "no-console": "off",
    "semi": [
      "error",
      "never"
    ]
  }
}
`
	assert.Equal(t, want, string(b))

	var back ir.FinalConfig
	require.NoError(t, json.Unmarshal(b, &back))
	for id, c := range sampleConfig().Rules {
		assert.True(t, back.Rules[id].Equal(c), id)
	}
}

func TestEncodeConfig_YAML(t *testing.T) {
	b, err := EncodeConfig(sampleConfig(), "yaml")
	require.NoError(t, err)
	out := string(b)
	assert.Regexp(t, `^extends: "?lintinfer:recommended"?\n`, out)
	assert.Contains(t, out, "  semi: [error, never]\n")
	assert.Contains(t, out, "  no-console: \"off\"\n")
	assert.Less(t, strings.Index(out, "brace-style"), strings.Index(out, "no-console"), "rules in id order")

	var back ir.FinalConfig
	require.NoError(t, yaml.Unmarshal(b, &back))
	for id, c := range sampleConfig().Rules {
		assert.True(t, back.Rules[id].Equal(c), "%s: %s", id, back.Rules[id])
	}

	_, err = EncodeConfig(sampleConfig(), "toml")
	assert.Error(t, err)
}

func TestWriteConfigAndReports(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", ".lintinfer.yaml")
	require.NoError(t, WriteConfig(cfgPath, "yaml", sampleConfig()))
	_, err := os.Stat(cfgPath)
	require.NoError(t, err)

	run := &ir.Run{
		ID:        "run-1",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Sources:   []string{"src/<a>"},
		Summary:   ir.Summary{Files: 3, RulesTotal: 3, RulesEnabled: 2, Unconfigured: []string{"no-console"}},
		Config:    sampleConfig(),
		Candidates: []ir.CandidateRow{
			{RuleID: "semi", Index: 2, Config: ir.NewConfig(ir.SeverityError, "never"), Specificity: 2, Evaluated: true},
		},
	}
	out := filepath.Join(dir, "reports")
	jp, err := WriteJSON(run.ID, out, run)
	require.NoError(t, err)
	assert.FileExists(t, jp)

	hp, err := WriteHTML(run.ID, out, run)
	require.NoError(t, err)
	b, err := os.ReadFile(hp)
	require.NoError(t, err)
	page := string(b)
	assert.Contains(t, page, "Enabled 2 out of 3 rules based on 3 files.")
	assert.Contains(t, page, "src/&lt;a&gt;")
	assert.Contains(t, page, "<li class='mono'>no-console</li>")
	assert.Contains(t, page, "class='pass'")
}

func TestDiffConfigs(t *testing.T) {
	base := &ir.Run{Summary: ir.Summary{RulesEnabled: 2}, Config: sampleConfig()}
	head := &ir.Run{
		Summary: ir.Summary{RulesEnabled: 2},
		Config: ir.FinalConfig{Rules: ir.RuleSet{
			"semi":       ir.NewConfig(ir.SeverityError, "always"),
			"no-console": ir.NewConfig(ir.SeverityOff),
			"quotes":     ir.NewConfig(ir.SeverityError, "single"),
		}},
	}
	d := DiffConfigs("a", "b", base, head)
	assert.Equal(t, DiffSummary{NewCount: 1, RemovedCount: 1, ChangedCount: 1}, d.Summary)
	assert.Equal(t, "quotes", d.New[0].RuleID)
	assert.Equal(t, "brace-style", d.Removed[0].RuleID)
	assert.Equal(t, "semi", d.Changed[0].RuleID)
	assert.False(t, d.Changed[0].SeverityChanged)
	require.NotNil(t, d.Extends)
	assert.Equal(t, "", d.Extends.Head)

	path, err := WriteDiffJSON("a", "b", t.TempDir(), base, head)
	require.NoError(t, err)
	assert.Equal(t, "diff_a__b.json", filepath.Base(path))
}
