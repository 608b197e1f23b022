package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rhymeserve.toml", `
[dictionary]
data_dir = "/var/lib/rhymeserve"

[search]
max_limit = 100
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dictionary.DataDir != "/var/lib/rhymeserve" {
		t.Errorf("data dir = %q", cfg.Dictionary.DataDir)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("max limit = %d", cfg.Search.MaxLimit)
	}
	// untouched keys keep defaults
	if cfg.Dictionary.ChunkSize != 10000 {
		t.Errorf("chunk size = %d", cfg.Dictionary.ChunkSize)
	}
	if cfg.Cache.SyllableEntries != 8192 {
		t.Errorf("syllable entries = %d", cfg.Cache.SyllableEntries)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.toml", "[dictionary\ndata_dir = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadWithPriority(t *testing.T) {
	dir := t.TempDir()
	explicit := writeFile(t, dir, "explicit.toml", "[search]\ndefault_limit = 7\n")
	envPath := writeFile(t, dir, "env.toml", "[search]\ndefault_limit = 8\n")

	t.Setenv(EnvConfigPath, envPath)

	cfg, path := LoadWithPriority(explicit)
	if path != explicit || cfg.Search.DefaultLimit != 7 {
		t.Errorf("explicit: path=%q limit=%d", path, cfg.Search.DefaultLimit)
	}

	cfg, path = LoadWithPriority("")
	if path != envPath || cfg.Search.DefaultLimit != 8 {
		t.Errorf("env: path=%q limit=%d", path, cfg.Search.DefaultLimit)
	}

	// A broken explicit file falls through to the env source.
	broken := writeFile(t, dir, "broken.toml", "not toml at all [")
	cfg, path = LoadWithPriority(broken)
	if path != envPath || cfg.Search.DefaultLimit != 8 {
		t.Errorf("fallthrough: path=%q limit=%d", path, cfg.Search.DefaultLimit)
	}

	t.Setenv(EnvConfigPath, "")
	cfg, path = LoadWithPriority("")
	if path != "" || cfg.Search.DefaultLimit != 50 {
		t.Errorf("defaults: path=%q limit=%d", path, cfg.Search.DefaultLimit)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Search.MaxLimit = 42
	cfg.Logging.Debug = true
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Search.MaxLimit != 42 || !loaded.Logging.Debug {
		t.Errorf("round trip = %+v", loaded)
	}
}
