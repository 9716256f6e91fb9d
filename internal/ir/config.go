package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// On reports whether the severity enables the rule.
func (s Severity) On() bool { return s == SeverityWarn || s == SeverityError }

// ParseSeverity accepts the string forms and the numeric 0/1/2 forms.
func ParseSeverity(v any) (Severity, error) {
	switch x := v.(type) {
	case string:
		switch Severity(strings.ToLower(strings.TrimSpace(x))) {
		case SeverityOff:
			return SeverityOff, nil
		case SeverityWarn:
			return SeverityWarn, nil
		case SeverityError:
			return SeverityError, nil
		}
	case int:
		return severityFromNumber(float64(x))
	case float64:
		return severityFromNumber(x)
	}
	return "", fmt.Errorf("invalid severity %v", v)
}

func severityFromNumber(n float64) (Severity, error) {
	switch n {
	case 0:
		return SeverityOff, nil
	case 1:
		return SeverityWarn, nil
	case 2:
		return SeverityError, nil
	}
	return "", fmt.Errorf("invalid severity %v", n)
}

// Config is one rule configuration: a severity optionally followed by
// positional option values (strings, numbers, booleans or objects).
// Values are treated as immutable once built.
type Config struct {
	Severity Severity
	Options  []any
}

func NewConfig(sev Severity, opts ...any) Config {
	return Config{Severity: sev, Options: opts}
}

// Specificity is the tuple length; 1 for a bare severity.
func (c Config) Specificity() int { return 1 + len(c.Options) }

// HasObject reports whether any option is object-valued.
func (c Config) HasObject() bool {
	for _, o := range c.Options {
		if _, ok := o.(map[string]any); ok {
			return true
		}
	}
	return false
}

// Values is the tuple form [severity, opts...].
func (c Config) Values() []any {
	out := make([]any, 0, len(c.Options)+1)
	out = append(out, string(c.Severity))
	return append(out, c.Options...)
}

// Equal compares two configurations structurally.
func (c Config) Equal(o Config) bool {
	a, errA := json.Marshal(c)
	b, errB := json.Marshal(o)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

func (c Config) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return string(c.Severity)
	}
	return string(b)
}

func (c Config) MarshalJSON() ([]byte, error) {
	if len(c.Options) == 0 {
		return json.Marshal(string(c.Severity))
	}
	return json.Marshal(c.Values())
}

func (c *Config) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	cfg, err := ConfigFromValue(v)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

func (c Config) MarshalYAML() (any, error) {
	if len(c.Options) == 0 {
		return string(c.Severity), nil
	}
	return c.Values(), nil
}

func (c *Config) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	cfg, err := ConfigFromValue(normalizeYAML(v))
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

// ConfigFromValue converts a decoded "error" / ["error", ...] value.
func ConfigFromValue(v any) (Config, error) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return Config{}, fmt.Errorf("empty rule configuration")
		}
		sev, err := ParseSeverity(x[0])
		if err != nil {
			return Config{}, err
		}
		var opts []any
		if len(x) > 1 {
			opts = append(opts, x[1:]...)
		}
		return Config{Severity: sev, Options: opts}, nil
	default:
		sev, err := ParseSeverity(v)
		if err != nil {
			return Config{}, err
		}
		return Config{Severity: sev}, nil
	}
}

// normalizeYAML turns yaml.v3 generic maps into map[string]any so that
// configurations decoded from YAML compare equal to JSON-decoded ones.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeYAML(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalizeYAML(e)
		}
		return x
	}
	return v
}
