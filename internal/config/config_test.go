package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "flashdeck.db", "")
	flags.String("listen", ":8383", "")
	flags.String("repos", "repos", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), flags)
	if err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	if cfg.DBPath != "flashdeck.db" {
		t.Errorf("Expected the default db path, got %q", cfg.DBPath)
	}
	if cfg.ListenAddr != ":8383" {
		t.Errorf("Expected the default listen address, got %q", cfg.ListenAddr)
	}
	if cfg.ReposDir != "repos" {
		t.Errorf("Expected the default repos dir, got %q", cfg.ReposDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashdeck.yaml")
	if err := os.WriteFile(path, []byte("db: /data/cards.db\nlisten: \":9000\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	if cfg.DBPath != "/data/cards.db" {
		t.Errorf("Expected the file to beat the flag default, got %q", cfg.DBPath)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("Expected the file listen address, got %q", cfg.ListenAddr)
	}
	if cfg.ReposDir != "repos" {
		t.Errorf("Expected the unset key to fall back to the flag default, got %q", cfg.ReposDir)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashdeck.yaml")
	if err := os.WriteFile(path, []byte("db: /data/cards.db\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("FLASHDECK_DB", "/env/cards.db")

	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	if cfg.DBPath != "/env/cards.db" {
		t.Errorf("Expected the environment to beat the file, got %q", cfg.DBPath)
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("FLASHDECK_LISTEN", ":7000")

	flags := newFlags()
	if err := flags.Parse([]string{"--listen", ":6000"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), flags)
	if err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":6000" {
		t.Errorf("Expected an explicit flag to beat the environment, got %q", cfg.ListenAddr)
	}
}

func TestLoadRejectsBlankValues(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse([]string{"--db", ""}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), flags); err == nil {
		t.Error("Expected an error for a blank db path")
	}
}
