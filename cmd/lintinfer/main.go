package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/codewithboateng/lintinfer/internal/ir"
	"github.com/codewithboateng/lintinfer/internal/reporting"
	"github.com/codewithboateng/lintinfer/internal/shared"
	"github.com/codewithboateng/lintinfer/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "init":
		initCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "rules":
		rulesCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "version":
		fmt.Println("lintinfer IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `lintinfer – infer a lint configuration from existing sources

Usage:
  lintinfer init    --path <file|dir|glob> [--path ...] [--out .lintinfer.json] [--format json|yaml]
                    [--db ./lintinfer.db] [--config ./lintinfer.yaml] [--ceiling 17] [--workers 1]
                    [--catalogue schemas.yaml] [--baseline baseline.yaml] [--rules pack.yaml ...]
  lintinfer report  --run <run-id> --out <reports-dir> [--db ./lintinfer.db] [--config ./lintinfer.yaml]
  lintinfer diff    --base <run-id> --head <run-id> --out <reports-dir> [--db ./lintinfer.db] [--config ./lintinfer.yaml]
  lintinfer rules   [--catalogue] [--rules pack.yaml ...] [--config ./lintinfer.yaml]
  lintinfer serve   [--addr :8080] [--db ./lintinfer.db] [--config ./lintinfer.yaml]
  lintinfer version
`)
}

// multiFlag collects a repeatable string flag; comma-separated values are split.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*m = append(*m, p)
		}
	}
	return nil
}

// loadConfig loads the config file and installs the logger; a broken
// config file is fatal.
func loadConfig(cmd, path string) shared.Config {
	cfg, err := shared.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(2)
	}
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
	return cfg
}

func openDB(path string) *storage.DB {
	db, err := storage.OpenSQLite(path)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	return db
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg := loadConfig("report", *configPath)
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db := openDB(*dbPath)
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "run", *runID, "err", err)
		os.Exit(1)
	}
	jsonPath, err := reporting.WriteJSON(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("write json report", "err", err)
		os.Exit(1)
	}
	htmlPath, err := reporting.WriteHTML(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("write html report", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg := loadConfig("diff", *configPath)
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db := openDB(*dbPath)
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("write diff", "err", err)
		os.Exit(1)
	}
	d := reporting.DiffConfigs(*base, *head, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n  new=%d removed=%d changed=%d\n", path, d.Summary.NewCount, d.Summary.RemovedCount, d.Summary.ChangedCount)
}
