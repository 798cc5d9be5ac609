package mimic

import (
	"context"
	"testing"

	"github.com/leapstack-labs/mimicdb/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testDB returns an in-memory database seeded with a small users table.
func testDB(t *testing.T) *Database {
	t.Helper()

	db, err := Open(":memory:", WithLogger(testutil.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(context.Background(), `
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INTEGER);
		INSERT INTO users (name, age) VALUES ('ada', 36), ('grace', 45), ('linus', 52);
	`)
	require.NoError(t, err)
	return db
}

// prepare compiles a statement and fails the test on error.
func prepare(t *testing.T, db *Database, query string) *Statement {
	t.Helper()

	stmt, err := db.Prepare(context.Background(), query)
	require.NoError(t, err)
	return stmt
}
