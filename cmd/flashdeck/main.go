package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/conorfennell/flashdeck/internal/config"
	"github.com/conorfennell/flashdeck/internal/importer"
	"github.com/conorfennell/flashdeck/internal/storage"
	"github.com/conorfennell/flashdeck/internal/web"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("flashdeck", pflag.ExitOnError)
	configPath := flags.String("config", "flashdeck.yaml", "Path to the YAML config file")
	flags.String("db", "flashdeck.db", "Path to the SQLite database file")
	flags.String("listen", ":8383", "HTTP listen address")
	flags.String("repos", "repos", "Directory for cloned deck repositories")
	importSource := flags.String("import", "", "Deck directory or git URL to import, then exit")
	importCategory := flags.String("category", "", "Category name for imported cards")
	reset := flags.Bool("reset", false, "Drop and recreate all tables, then exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	if *reset {
		if err := db.Reset(); err != nil {
			slog.Error("failed to reset database", "error", err)
			os.Exit(1)
		}
		slog.Info("database reset")
		return
	}

	if *importSource != "" {
		if *importCategory == "" {
			slog.Error("--import requires --category")
			os.Exit(1)
		}
		summary, err := importer.Import(db, *importSource, *importCategory, cfg.ReposDir)
		if err != nil {
			slog.Error("import failed", "source", *importSource, "error", err)
			os.Exit(1)
		}
		for _, e := range summary.Errors {
			slog.Warn("import issue", "error", e)
		}
		return
	}

	srv, err := web.NewServer(db)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	slog.Info("listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
