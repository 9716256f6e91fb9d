package rules

import (
	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

// Rule is one lint rule that can be checked against a source unit.
type Rule struct {
	ID          string
	Summary     string
	Recommended bool            // part of the recommended baseline at "error"
	Options     []schema.Option // positional option schema
	// Check inspects the prepared unit under the given options. It returns an error
	// when the options do not fit the schema.
	Check func(src *Source, opts []any) ([]ir.Finding, error)
}
