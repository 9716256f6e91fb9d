package api

import (
	"net/http"

	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

// GET /api/v1/rules (catalogue of enabled rules; read-only)
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	type R struct {
		ID          string `json:"id"`
		Summary     string `json:"summary"`
		Recommended bool   `json:"recommended"`
		Options     []any  `json:"options"`
		Candidates  int    `json:"candidates"`
	}
	out := []R{}
	for _, rr := range rules.List() {
		out = append(out, R{
			ID:          rr.ID,
			Summary:     rr.Summary,
			Recommended: rr.Recommended,
			Options:     schema.Describe(rr.Options),
			Candidates:  len(schema.Expand(rr.Options)),
		})
	}
	// stable order already guaranteed by rules.List()
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}
