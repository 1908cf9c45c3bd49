// Command liftlog-mcp serves LiftLog history and statistics over the
// Model Context Protocol on stdio, sharing the store with the main server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/history"
	liftlogmcp "github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/templates"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Log to stderr: stdout carries the MCP protocol stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var kv store.KV
	switch cfg.Storage.Driver {
	case "postgres":
		kv, err = store.OpenPostgres(context.Background(), cfg.Storage.Postgres.DSN())
	case "memory":
		kv = store.NewMemory()
	default:
		kv, err = store.OpenSQLite(cfg.Storage.Path)
	}
	if err != nil {
		log.Error("failed to open store", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	hist := history.NewService(kv, log)
	repo := templates.NewRepository(kv, log)

	s := liftlogmcp.New(hist, repo, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
