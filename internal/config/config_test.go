package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, DefaultMigrationsDir, cfg.MigrationsDir)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimicdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database: test.db\nmigrations_dir: schema\nverbose: true\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "test.db", cfg.Database)
	assert.Equal(t, "schema", cfg.MigrationsDir)
	assert.True(t, cfg.Verbose)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimicdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: table\n"), 0o644))

	t.Setenv("MIMICDB_OUTPUT", "json")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("MIMICDB_DATABASE", "env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", DefaultDatabase, "")
	flags.String("output", DefaultOutput, "")
	require.NoError(t, flags.Parse([]string{"--db", "flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	// The changed flag wins; the unchanged one does not mask the env var.
	assert.Equal(t, "flag.db", cfg.Database)
	assert.Equal(t, DefaultOutput, cfg.Output)
}
