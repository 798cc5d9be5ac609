package mimictest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvBindings(t *testing.T) {
	env := New(t)

	assert.Nil(t, env.Get("missing"))

	env.Bind("answer", 42)
	assert.Equal(t, 42, env.Get("answer"))

	env.Bind("answer", 43)
	assert.Equal(t, 43, env.Get("answer"))
}

func TestEnvLifecycle(t *testing.T) {
	outer := New(t)
	require.Same(t, outer, Current())

	t.Run("nested env shadows and restores", func(t *testing.T) {
		inner := New(t)
		assert.Same(t, inner, Current())
		assert.NotSame(t, outer, inner)
	})

	// The subtest's cleanup reinstalled the outer env.
	assert.Same(t, outer, Current())
}

func TestProvisionDatabase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"),
		[]byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_seed.sql"),
		[]byte("INSERT INTO notes (body) VALUES ('hello');"), 0o644))

	env := New(t)
	db := env.ProvisionDatabase(t, "DB", dir)
	require.NotNil(t, db)

	// The adapter is reachable both directly and through the binding,
	// which is how code under test picks it up.
	assert.Same(t, db, env.Get("DB"))

	stmt, err := db.Prepare(context.Background(), "SELECT count(*) AS n FROM notes")
	require.NoError(t, err)
	n, err := stmt.FirstColumn(context.Background(), "n")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
