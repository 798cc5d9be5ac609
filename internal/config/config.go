// Package config loads the mimicdb CLI configuration.
//
// Precedence (highest to lowest): flags > environment variables > config
// file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all CLI configuration options.
type Config struct {
	Database      string `koanf:"database"`
	MigrationsDir string `koanf:"migrations_dir"`
	Output        string `koanf:"output"`
	Verbose       bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultDatabase      = ":memory:"
	DefaultMigrationsDir = "migrations"
	DefaultOutput        = "table"
)

// Config file names probed in the working directory.
const (
	ConfigFileName    = "mimicdb.yaml"
	ConfigFileNameAlt = "mimicdb.yml"
)

// findConfigFile picks the config file to read.
// Priority: explicit path > mimicdb.yaml > mimicdb.yml. Empty when none
// exists, which is not an error.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables and flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"database":       DefaultDatabase,
		"migrations_dir": DefaultMigrationsDir,
		"output":         DefaultOutput,
		"verbose":        false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment variables: MIMICDB_MIGRATIONS_DIR -> migrations_dir
	if err := k.Load(env.Provider("MIMICDB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MIMICDB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority; only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --db for brevity, the config key is database.
			if key == "db" {
				return "database", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
