package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

type Options struct {
	Extensions   []string // lower-case, with dot; empty accepts every file
	Ignore       []string // directory names never descended into
	MaxFileBytes int64    // 0 = unlimited
}

// Collect resolves patterns (files, directories or globs, "**" allowed) to
// source units. Explicitly named files are read whatever their extension;
// files found by walking or globbing must match opts.Extensions. Units are
// deduplicated and sorted by filename.
func Collect(patterns []string, opts Options) ([]ir.SourceUnit, Diagnostics) {
	c := collector{opts: opts, seen: map[string]bool{}}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		c.pattern(p)
	}

	sort.Strings(c.files)
	var units []ir.SourceUnit
	for _, f := range c.files {
		u, err := c.read(f)
		if err != nil {
			c.warn("%s: %v", f, err)
			continue
		}
		units = append(units, u)
	}
	if len(units) == 0 {
		c.diags.Warnings = append(c.diags.Warnings, "no source files matched")
	}
	return units, c.diags
}

type collector struct {
	opts  Options
	seen  map[string]bool
	files []string
	diags Diagnostics
}

func (c *collector) warn(format string, args ...any) {
	c.diags.Warnings = append(c.diags.Warnings, fmt.Sprintf(format, args...))
}

func (c *collector) add(path string) {
	path = filepath.Clean(path)
	if c.seen[path] {
		return
	}
	c.seen[path] = true
	c.files = append(c.files, path)
}

func (c *collector) pattern(p string) {
	if fi, err := os.Stat(p); err == nil {
		if fi.IsDir() {
			c.walk(p, "")
		} else {
			c.add(p)
		}
		return
	}
	if !hasMeta(p) {
		c.warn("%s: no such file or directory", p)
		return
	}

	if i := strings.Index(p, "**"); i >= 0 {
		root := filepath.Clean(p[:i])
		if p[:i] == "" {
			root = "."
		}
		c.walk(root, strings.TrimLeft(p[i+2:], `/\`))
		return
	}

	matches, err := filepath.Glob(p)
	if err != nil {
		c.warn("%s: %v", p, err)
		return
	}
	if len(matches) == 0 {
		c.warn("%s: pattern matched nothing", p)
	}
	for _, m := range matches {
		fi, err := os.Stat(m)
		switch {
		case err != nil:
			continue
		case fi.IsDir():
			c.walk(m, "")
		case c.wanted(m):
			c.add(m)
		}
	}
}

// walk adds every wanted file under root; a non-empty tail pattern must
// also match the trailing path components.
func (c *collector) walk(root, tail string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			c.warn("%s: %v", p, err)
			return nil
		}
		if d.IsDir() {
			if p != root && c.ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.wanted(p) {
			return nil
		}
		if tail != "" && !matchTail(tail, p) {
			return nil
		}
		c.add(p)
		return nil
	})
	if err != nil {
		c.warn("%s: %v", root, err)
	}
}

func (c *collector) ignored(name string) bool {
	for _, ig := range c.opts.Ignore {
		if name == ig {
			return true
		}
	}
	return false
}

func (c *collector) wanted(p string) bool {
	if len(c.opts.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range c.opts.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (c *collector) read(path string) (ir.SourceUnit, error) {
	if c.opts.MaxFileBytes > 0 {
		fi, err := os.Stat(path)
		if err != nil {
			return ir.SourceUnit{}, err
		}
		if fi.Size() > c.opts.MaxFileBytes {
			return ir.SourceUnit{}, fmt.Errorf("skipped, %d bytes exceeds limit %d", fi.Size(), c.opts.MaxFileBytes)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ir.SourceUnit{}, err
	}
	return ir.NewSourceUnit(filepath.ToSlash(path), string(b)), nil
}

func hasMeta(p string) bool { return strings.ContainsAny(p, "*?[") }

// matchTail matches pattern against the last components of path, one
// component per pattern segment.
func matchTail(pattern, path string) bool {
	segs := strings.Split(filepath.ToSlash(pattern), "/")
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < len(segs) {
		return false
	}
	parts = parts[len(parts)-len(segs):]
	for i, s := range segs {
		ok, err := filepath.Match(s, parts[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}
