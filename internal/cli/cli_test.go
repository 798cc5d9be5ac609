package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns its
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestMigrateExecQueryFlow(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "app.db")

	migrations := filepath.Join(tmp, "migrations")
	require.NoError(t, os.Mkdir(migrations, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(migrations, "001_init.sql"),
		[]byte("CREATE TABLE items (id INTEGER PRIMARY KEY, label TEXT);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(migrations, "002_seed.sql"),
		[]byte("INSERT INTO items (label) VALUES ('widget');"), 0o644))

	out, err := runCommand(t, "migrate", migrations, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, dbPath)
	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	out, err = runCommand(t, "exec", "INSERT INTO items (label) VALUES ('gadget')", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows changed")

	out, err = runCommand(t, "query", "SELECT label FROM items ORDER BY id", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "widget")
	assert.Contains(t, out, "gadget")
	assert.Contains(t, out, "(2 rows)")
}

func TestQueryJSONOutput(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "app.db")

	_, err := runCommand(t, "exec", "CREATE TABLE t (v INTEGER); INSERT INTO t VALUES (5);", "--db", dbPath)
	require.NoError(t, err)

	out, err := runCommand(t, "query", "SELECT v FROM t", "--db", dbPath, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"rows_read": 1`)
	assert.Contains(t, out, `"v": 5`)
}

func TestMigrateRefusesMemoryTarget(t *testing.T) {
	_, err := runCommand(t, "migrate", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db")
}

func TestExecFailureNamesQuery(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	_, err := runCommand(t, "exec", "SELECT * FROM missing", "--db", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestDumpToFile(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "app.db")
	imagePath := filepath.Join(tmp, "image.db")

	_, err := runCommand(t, "exec", "CREATE TABLE t (v INTEGER)", "--db", dbPath)
	require.NoError(t, err)

	out, err := runCommand(t, "dump", "--db", dbPath, "--out", imagePath)
	require.NoError(t, err)
	assert.Contains(t, out, imagePath)

	info, err := os.Stat(imagePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
