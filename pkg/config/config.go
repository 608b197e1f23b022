/*
Package config manages TOML config for rhymeserve services.
*/
package config

import (
	"os"

	"github.com/bastiangx/rhymeserve/internal/utils"
	"github.com/charmbracelet/log"
)

// EnvConfigPath names the environment variable LoadWithPriority
// consults after the explicit path.
const EnvConfigPath = "RHYMESERVE_CONFIG"

// localConfigName is tried in the working directory last.
const localConfigName = "rhymeserve.toml"

// Config holds the entire config structure
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary"`
	Cache      CacheConfig      `toml:"cache"`
	Search     SearchConfig     `toml:"search"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DictionaryConfig holds data layout options.
type DictionaryConfig struct {
	DataDir   string `toml:"data_dir"`
	ChunkSize int    `toml:"chunk_size"`
}

// CacheConfig sizes the read-through caches.
type CacheConfig struct {
	SyllableEntries int `toml:"syllable_entries"`
	PatternEntries  int `toml:"pattern_entries"`
}

// SearchConfig holds query limit options.
type SearchConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// LoggingConfig holds logger options.
type LoggingConfig struct {
	Debug        bool `toml:"debug"`
	ReportCaller bool `toml:"report_caller"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			DataDir:   "data",
			ChunkSize: 10000,
		},
		Cache: CacheConfig{
			SyllableEntries: 8192,
			PatternEntries:  1024,
		},
		Search: SearchConfig{
			DefaultLimit: 50,
			MaxLimit:     500,
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file omits keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. $RHYMESERVE_CONFIG
// 3. ./rhymeserve.toml
// 4. Builtin defaults
// A source that is missing or fails to parse logs a warning and the
// next one is tried. The returned path is empty when defaults won.
func LoadWithPriority(explicit string) (*Config, string) {
	candidates := []string{explicit, os.Getenv(EnvConfigPath), localConfigName}
	for i, path := range candidates {
		if path == "" {
			continue
		}
		if !utils.FileExists(path) {
			// The cwd fallback is expected to be absent most of the time.
			if i < 2 {
				log.Warnf("Config file not found at %s. Trying next source...", path)
			}
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			log.Warnf("Failed to load config from %s: %v. Trying next source...", path, err)
			continue
		}
		log.Debugf("Loaded config from: %s", path)
		return cfg, path
	}
	return Default(), ""
}

// Save writes the config into a TOML file.
func Save(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}
