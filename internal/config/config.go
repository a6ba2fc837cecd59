// Package config loads engine-wide defaults (hash size, worker count) from a
// TOML file, the same shape a UCI front end would otherwise hardcode or
// derive from "setoption" commands before the first search.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config holds the tunables a JobRunner needs before its first Start call.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// EngineConfig mirrors the handful of UCI options this core actually
// consumes; option name parsing/escaping itself is a protocol concern, out
// of scope here.
type EngineConfig struct {
	HashSizeMB int `toml:"hash_size_mb"`
	Threads    int `toml:"threads"`
}

// Default returns the configuration a fresh engine starts with absent any
// file or "setoption" override.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			HashSizeMB: 64,
			Threads:    1,
		},
	}
}

// Load reads and decodes a TOML config file, filling in Default() for any
// field the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
