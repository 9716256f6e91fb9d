package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

type DiffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary DiffSummary   `json:"summary"`
	Extends *diffExtends  `json:"extends,omitempty"`
	New     []diffRule    `json:"new"`
	Removed []diffRule    `json:"removed"`
	Changed []diffChanged `json:"changed"`
}

type DiffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
	EnabledDelta int `json:"enabled_delta"`
}

type diffExtends struct {
	Base string `json:"base"`
	Head string `json:"head"`
}

type diffRule struct {
	RuleID string    `json:"rule_id"`
	Config ir.Config `json:"config"`
}

type diffChanged struct {
	RuleID string    `json:"rule_id"`
	Base   ir.Config `json:"base"`
	Head   ir.Config `json:"head"`
	// false when only the options differ
	SeverityChanged bool `json:"severity_changed"`
}

// DiffConfigs compares the emitted configurations of two runs by rule id.
func DiffConfigs(baseID, headID string, base, head *ir.Run) DiffPayload {
	bm, hm := base.Config.Rules, head.Config.Rules

	added := []diffRule{}
	removed := []diffRule{}
	changed := []diffChanged{}

	// additions & changes
	for id, hc := range hm {
		bc, ok := bm[id]
		if !ok {
			added = append(added, diffRule{RuleID: id, Config: hc})
			continue
		}
		if !bc.Equal(hc) {
			changed = append(changed, diffChanged{
				RuleID:          id,
				Base:            bc,
				Head:            hc,
				SeverityChanged: bc.Severity != hc.Severity,
			})
		}
	}
	// removals
	for id, bc := range bm {
		if _, ok := hm[id]; !ok {
			removed = append(removed, diffRule{RuleID: id, Config: bc})
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return added[i].RuleID < added[j].RuleID })
	sort.Slice(removed, func(i, j int) bool { return removed[i].RuleID < removed[j].RuleID })
	sort.Slice(changed, func(i, j int) bool { return changed[i].RuleID < changed[j].RuleID })

	p := DiffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: DiffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
			EnabledDelta: head.Summary.RulesEnabled - base.Summary.RulesEnabled,
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	if base.Config.Extends != head.Config.Extends {
		p.Extends = &diffExtends{Base: base.Config.Extends, Head: head.Config.Extends}
	}
	return p
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(DiffConfigs(baseID, headID, base, head), "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}
