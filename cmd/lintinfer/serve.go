package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codewithboateng/lintinfer/internal/api"
	"github.com/codewithboateng/lintinfer/internal/rules"
	"github.com/codewithboateng/lintinfer/internal/schema"
)

func rulesCmd(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	var packs multiFlag
	fs.Var(&packs, "rules", "YAML rule pack to register (repeatable)")
	showCatalogue := fs.Bool("catalogue", false, "Print option schemas as JSON")
	_ = fs.Parse(args)

	cfg := loadConfig("rules", *configPath)
	applyRuleSettings(cfg, append(multiFlag(cfg.Analysis.RulePacks), packs...))

	if *showCatalogue {
		out := map[string]any{}
		for _, r := range rules.List() {
			out[r.ID] = map[string]any{
				"summary":     r.Summary,
				"recommended": r.Recommended,
				"schema":      schema.Describe(r.Options),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"rules": out})
		return
	}
	for _, r := range rules.List() {
		mark := " "
		if r.Recommended {
			mark = "*"
		}
		fmt.Printf("%s %-22s %3d  %s\n", mark, r.ID, len(schema.Expand(r.Options)), r.Summary)
	}
	fmt.Printf("\n* part of %s\n", rules.RecommendedName)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg := loadConfig("serve", *configPath)
	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	applyRuleSettings(cfg, cfg.Analysis.RulePacks)

	db := openDB(*dbPath)
	defer db.Close()

	s := &api.Server{DB: db, Logger: slog.Default(), AllowedOrigins: cfg.API.AllowedOrigins}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "addr", *addr, "db", *dbPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("api server error", "err", err)
		os.Exit(1)
	}
}
