package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID          string `yaml:"id"`
	Summary     string `yaml:"summary"`
	Recommended bool   `yaml:"recommended"`
	Pattern     string `yaml:"pattern"` // regex on code with literals and comments blanked
	Message     string `yaml:"message"`

	Where struct {
		Filename string `yaml:"filename"` // regex (case-insensitive)
	} `yaml:"where"`

	// Choices become the rule's single enum option; a chosen value swaps
	// in its own pattern.
	Choices []dslChoice `yaml:"choices"`
}

type dslChoice struct {
	Value   string `yaml:"value"`
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

type matcher struct {
	re  *regexp.Regexp
	msg string
}

type compiled struct {
	rule       dslRule
	reFilename *regexp.Regexp
	fallback   *matcher
	choices    map[string]matcher
}

// LoadAndRegister reads a YAML rule pack and registers every rule in it.
// Returns the number of rules registered.
func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rules pack: %w", err)
	}
	return RegisterPack(b)
}

// RegisterPack registers the rules of an in-memory pack.
func RegisterPack(b []byte) (int, error) {
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(*cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/message)")
	}
	if r.Pattern == "" && len(r.Choices) == 0 {
		return nil, fmt.Errorf("one of pattern or choices is required")
	}
	c := &compiled{rule: r, choices: map[string]matcher{}}
	if r.Where.Filename != "" {
		re, err := regexp.Compile("(?i)" + r.Where.Filename)
		if err != nil {
			return nil, fmt.Errorf("filename regex: %w", err)
		}
		c.reFilename = re
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		c.fallback = &matcher{re: re, msg: r.Message}
	}
	for _, ch := range r.Choices {
		if ch.Value == "" || ch.Pattern == "" {
			return nil, fmt.Errorf("choice needs value and pattern")
		}
		if _, dup := c.choices[ch.Value]; dup {
			return nil, fmt.Errorf("duplicate choice %q", ch.Value)
		}
		re, err := regexp.Compile(ch.Pattern)
		if err != nil {
			return nil, fmt.Errorf("choice %q: %w", ch.Value, err)
		}
		msg := ch.Message
		if msg == "" {
			msg = r.Message
		}
		c.choices[ch.Value] = matcher{re: re, msg: msg}
	}
	if c.fallback == nil {
		first := c.choices[r.Choices[0].Value]
		c.fallback = &first
	}
	return c, nil
}

func (c compiled) options() []schema.Option {
	if len(c.rule.Choices) == 0 {
		return nil
	}
	vals := make([]any, 0, len(c.rule.Choices))
	for _, ch := range c.rule.Choices {
		vals = append(vals, ch.Value)
	}
	return []schema.Option{schema.Enum(vals...)}
}

// pick resolves the matcher for the given options.
func (c compiled) pick(opts []any) (matcher, error) {
	if len(opts) == 0 {
		return *c.fallback, nil
	}
	if len(c.choices) == 0 {
		return matcher{}, fmt.Errorf("rule takes no options")
	}
	s, ok := opts[0].(string)
	if !ok {
		return matcher{}, fmt.Errorf("option 0: expected a string, got %T", opts[0])
	}
	m, ok := c.choices[s]
	if !ok {
		return matcher{}, fmt.Errorf("option 0: unexpected value %q", s)
	}
	return m, nil
}

func registerCompiled(c compiled) {
	rules.Register(rules.Rule{
		ID:          c.rule.ID,
		Summary:     c.rule.Summary,
		Recommended: c.rule.Recommended,
		Options:     c.options(),
		Check: func(src *rules.Source, opts []any) ([]ir.Finding, error) {
			m, err := c.pick(opts)
			if err != nil {
				return nil, err
			}
			if c.reFilename != nil && !c.reFilename.MatchString(src.Filename) {
				return nil, nil
			}
			var out []ir.Finding
			for i, code := range src.CodeLines() {
				if strings.TrimSpace(code) == "" {
					continue
				}
				if m.re.MatchString(code) {
					out = append(out, ir.Finding{RuleID: c.rule.ID, Line: i + 1, Message: m.msg})
				}
			}
			return out, nil
		},
	})
}
