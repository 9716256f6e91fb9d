package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/parser"
	"github.com/codewithboateng/lintinfer/internal/reporting"
	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/rulesdsl"
	"github.com/codewithboateng/lintinfer/internal/schema"
	"github.com/codewithboateng/lintinfer/internal/shared"
	"github.com/codewithboateng/lintinfer/internal/synth"
)

func initCmd(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	var paths, packs multiFlag
	fs.Var(&paths, "path", "File, directory or glob to learn from (repeatable)")
	fs.Var(&packs, "rules", "YAML rule pack to register (repeatable)")
	outPath := fs.String("out", "", "Where to write the synthesized configuration")
	format := fs.String("format", "", "Output format: json|yaml")
	dbPath := fs.String("db", "", "SQLite database path")
	ceiling := fs.Int("ceiling", 0, "Rules with more candidates only evaluate simple ones")
	workers := fs.Int("workers", 0, "Files evaluated in parallel")
	cataloguePath := fs.String("catalogue", "", "Option schema catalogue overriding built-in schemas")
	baselinePath := fs.String("baseline", "", "Baseline file (defaults to "+rules.RecommendedName+")")
	_ = fs.Parse(args)

	cfg := loadConfig("init", *configPath)

	// precedence: flags > env > config > defaults
	if len(paths) == 0 {
		paths = cfg.Analysis.Sources
	}
	packs = append(multiFlag(cfg.Analysis.RulePacks), packs...)
	if *format == "" {
		*format = cfg.Output.Format
	}
	if *outPath == "" {
		*outPath = cfg.Output.Path
		if strings.EqualFold(*format, "yaml") && filepath.Ext(*outPath) == ".json" {
			*outPath = strings.TrimSuffix(*outPath, ".json") + ".yaml"
		}
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *ceiling <= 0 {
		*ceiling = cfg.Analysis.RoundCeiling
	}
	if *workers <= 0 {
		*workers = cfg.Analysis.Workers
	}
	if *cataloguePath == "" {
		*cataloguePath = cfg.Analysis.Catalogue
	}
	if *baselinePath == "" {
		*baselinePath = cfg.Analysis.Baseline
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "init: --path (or analysis.sources in config) is required")
		os.Exit(2)
	}

	applyRuleSettings(cfg, packs)

	catalogue, err := buildCatalogue(*cataloguePath)
	if err != nil {
		slog.Error("catalogue error", "err", err)
		os.Exit(2)
	}
	baseline := synth.Baseline{Name: rules.RecommendedName, Rules: rules.Recommended()}
	if *baselinePath != "" {
		if baseline, err = synth.LoadBaseline(*baselinePath); err != nil {
			slog.Error("baseline error", "err", err)
			os.Exit(2)
		}
	}

	units, diags := parser.Collect(paths, parser.Options{
		Extensions:   cfg.Analysis.Extensions,
		Ignore:       cfg.Analysis.Ignore,
		MaxFileBytes: cfg.Analysis.MaxFileBytes,
	})
	if len(diags.Warnings) > 0 {
		slog.Warn("collect warnings", "warnings", diags.Warnings)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now().UTC()
	total := synth.Workload(len(units), catalogue, *ceiling)
	res, err := synth.Synthesize(ctx, units, catalogue, rules.NewEngine(), baseline,
		synth.WithCeiling(*ceiling),
		synth.WithWorkers(*workers),
		synth.WithProgress(shared.NewProgressLogger(total, slog.Default())),
	)
	switch {
	case errors.Is(err, synth.ErrNoSourceUnits):
		fmt.Fprintln(os.Stderr, "init: no source files found for", strings.Join(paths, " "))
		os.Exit(2)
	case err != nil:
		slog.Error("synthesis aborted", "err", err)
		os.Exit(1)
	}

	if err := reporting.WriteConfig(*outPath, *format, res.Config); err != nil {
		slog.Error("write config error", "err", err)
		os.Exit(1)
	}

	run := ir.Run{
		ID:         uuid.NewString(),
		StartedAt:  started,
		Sources:    paths,
		IRVersion:  ir.Version,
		Summary:    res.Summary,
		Config:     res.Config,
		Candidates: res.Evaluated.Rows(),
	}

	// Persist & report
	db := openDB(*dbPath)
	defer db.Close()
	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}
	jsonPath, err := reporting.WriteJSON(run.ID, cfg.Reporting.OutDir, &run)
	if err != nil {
		slog.Warn("json report not written", "err", err)
	}
	htmlPath, err := reporting.WriteHTML(run.ID, cfg.Reporting.OutDir, &run)
	if err != nil {
		slog.Warn("html report not written", "err", err)
	}
	slog.Info("init complete",
		"run", run.ID,
		"config", *outPath,
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	fmt.Println(reporting.SummaryLine(res.Summary))
	fmt.Printf("  Config: %s\n  Run: %s\n", *outPath, run.ID)
}

// applyRuleSettings disables configured rules and registers rule packs.
func applyRuleSettings(cfg shared.Config, packs []string) {
	disabled := map[string]bool{}
	for _, id := range cfg.Analysis.Disabled {
		disabled[id] = true
	}
	rules.SetSettings(rules.Settings{Disabled: disabled})

	for _, p := range packs {
		n, err := rulesdsl.LoadAndRegister(p)
		if err != nil {
			slog.Error("rule pack error", "pack", p, "err", err)
			os.Exit(2)
		}
		slog.Debug("rule pack registered", "pack", p, "rules", n)
	}
}

// buildCatalogue returns the engine's catalogue, with schemas from path
// replacing built-in ones. Entries for rules the engine cannot run are
// dropped, since every round containing them would fail.
func buildCatalogue(path string) (schema.Catalogue, error) {
	builtin := rules.Catalogue()
	if path == "" {
		return builtin, nil
	}
	extra, err := schema.LoadCatalogue(path)
	if err != nil {
		return nil, err
	}
	known := schema.Catalogue{}
	for _, id := range extra.IDs() {
		if _, ok := builtin[id]; !ok {
			slog.Warn("catalogue rule has no implementation, skipped", "rule", id)
			continue
		}
		known[id] = extra[id]
	}
	return builtin.Merge(known), nil
}
