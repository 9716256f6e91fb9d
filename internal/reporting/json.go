package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

func WriteJSON(runID, outDir string, run *ir.Run) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", err
	}
	return path, nil
}

// configFile is the YAML shape of a synthesized configuration.
type configFile struct {
	Extends string    `yaml:"extends,omitempty"`
	Rules   yaml.Node `yaml:"rules"`
}

// EncodeConfig renders cfg as "json" or "yaml" with rules in id order.
func EncodeConfig(cfg ir.FinalConfig, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return encodeConfigJSON(cfg)
	case "yaml", "yml":
		return encodeConfigYAML(cfg)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteConfig writes the final configuration file at path.
func WriteConfig(path, format string, cfg ir.FinalConfig) error {
	b, err := EncodeConfig(cfg, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

func encodeConfigJSON(cfg ir.FinalConfig) ([]byte, error) {
	// encoding/json sorts map keys, so rule order is stable.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeConfigYAML(cfg ir.FinalConfig) ([]byte, error) {
	rules := yaml.Node{Kind: yaml.MappingNode}
	for _, id := range cfg.Rules.IDs() {
		var v yaml.Node
		if err := v.Encode(cfg.Rules[id]); err != nil {
			return nil, fmt.Errorf("rule %s: %w", id, err)
		}
		if v.Kind == yaml.SequenceNode {
			v.Style = yaml.FlowStyle
		}
		rules.Content = append(rules.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id}, &v)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(configFile{Extends: cfg.Extends, Rules: rules}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
