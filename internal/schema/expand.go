package schema

import "github.com/codewithboateng/lintinfer/internal/ir"

// Expand returns the ordered candidate configurations of one rule: a bare
// "error" severity first, then every option tuple prefixed with "error" in
// the order successive extension produces them.
func Expand(opts []Option) []ir.Config {
	var set [][]any

walk:
	for _, opt := range opts {
		switch o := opt.(type) {
		case EnumOption:
			set = extend(set, o.Values)
		case ObjectOption:
			objs := objectCombinations(o)
			if len(objs) == 0 {
				// later positional options are unreachable without this one
				break walk
			}
			set = extend(set, objs)
		case Unsupported:
		}
	}

	out := make([]ir.Config, 0, len(set)+1)
	out = append(out, ir.NewConfig(ir.SeverityError))
	for _, tuple := range set {
		out = append(out, ir.NewConfig(ir.SeverityError, tuple...))
	}
	return out
}

// extend cross-combines every existing tuple with every value. An empty set
// yields one singleton per value; no values leaves the set unchanged.
func extend(set [][]any, values []any) [][]any {
	if len(values) == 0 {
		return set
	}
	if len(set) == 0 {
		out := make([][]any, 0, len(values))
		for _, v := range values {
			out = append(out, []any{v})
		}
		return out
	}
	out := make([][]any, 0, len(set)*len(values))
	for _, tuple := range set {
		for _, v := range values {
			next := make([]any, 0, len(tuple)+1)
			next = append(next, tuple...)
			out = append(out, append(next, v))
		}
	}
	return out
}

// objectCombinations builds one object per simultaneous combination of the
// enumerable properties of o.
func objectCombinations(o ObjectOption) []any {
	var singles []map[string]any
	for _, p := range o.Properties {
		for _, v := range p.values() {
			singles = append(singles, map[string]any{p.Name: v})
		}
	}

	var combined []map[string]any
	for _, group := range groupByProperty(singles) {
		combined = combineProperties(combined, group)
	}

	out := make([]any, 0, len(combined))
	for _, obj := range combined {
		out = append(out, obj)
	}
	return out
}

// groupByProperty groups single-key objects by key, keeping first-seen order.
func groupByProperty(singles []map[string]any) [][]map[string]any {
	var order []string
	groups := map[string][]map[string]any{}
	for _, obj := range singles {
		for k := range obj {
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], obj)
		}
	}
	out := make([][]map[string]any, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k])
	}
	return out
}

func combineProperties(acc, group []map[string]any) []map[string]any {
	if len(acc) == 0 {
		return group
	}
	if len(group) == 0 {
		return acc
	}
	out := make([]map[string]any, 0, len(acc)*len(group))
	for _, a := range acc {
		for _, g := range group {
			m := make(map[string]any, len(a)+len(g))
			for k, v := range a {
				m[k] = v
			}
			for k, v := range g {
				m[k] = v
			}
			out = append(out, m)
		}
	}
	return out
}

// ExpandCatalogue expands every non-deprecated rule of c.
func ExpandCatalogue(c Catalogue) map[string][]ir.Config {
	out := make(map[string][]ir.Config, len(c))
	for id, d := range c {
		if d.Deprecated {
			continue
		}
		out[id] = Expand(d.Options)
	}
	return out
}
