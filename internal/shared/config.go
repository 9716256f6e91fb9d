package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./lintinfer.db"
	} `yaml:"database"`

	Analysis struct {
		Sources      []string `yaml:"sources"`        // files, directories or globs
		Extensions   []string `yaml:"extensions"`     // [".js", ".mjs", ...]
		Ignore       []string `yaml:"ignore"`         // directory names skipped while walking
		MaxFileBytes int64    `yaml:"max_file_bytes"` // larger files are skipped
		Workers      int      `yaml:"workers"`        // 1 = sequential
		RoundCeiling int      `yaml:"round_ceiling"`  // 17
		Catalogue    string   `yaml:"catalogue"`      // optional schema catalogue file
		Baseline     string   `yaml:"baseline"`       // optional baseline file; built-in recommended otherwise
		RulePacks    []string `yaml:"rule_packs"`     // YAML rule packs registered before synthesis
		Disabled     []string `yaml:"disabled_rules"` // rule ids left out of the catalogue
	} `yaml:"analysis"`

	Output struct {
		Path   string `yaml:"path"`   // ".lintinfer.json"
		Format string `yaml:"format"` // "json"|"yaml"
	} `yaml:"output"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`

	API struct {
		Addr           string   `yaml:"addr"`            // ":8080"
		AllowedOrigins []string `yaml:"allowed_origins"` // CORS allow-list; empty = same-origin only
	} `yaml:"api"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./lintinfer.db"
	c.Analysis.Extensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx"}
	c.Analysis.Ignore = []string{"node_modules", ".git", "dist", "vendor"}
	c.Analysis.MaxFileBytes = 1 << 20
	c.Analysis.Workers = 1
	c.Analysis.RoundCeiling = 17
	c.Output.Path = ".lintinfer.json"
	c.Output.Format = "json"
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	c.API.Addr = ":8080"
	return c
}

// LoadConfig reads path over the defaults and applies LINTINFER_* env
// overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("LINTINFER_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("LINTINFER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.Workers = n
		}
	}
	if v := os.Getenv("LINTINFER_ROUND_CEILING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.RoundCeiling = n
		}
	}
	if v := os.Getenv("LINTINFER_DISABLED_RULES"); v != "" {
		c.Analysis.Disabled = splitList(v)
	}
	if v := os.Getenv("LINTINFER_BASELINE"); v != "" {
		c.Analysis.Baseline = v
	}
	if v := os.Getenv("LINTINFER_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LINTINFER_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("LINTINFER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LINTINFER_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("LINTINFER_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("LINTINFER_ALLOWED_ORIGINS"); v != "" {
		c.API.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
