package mimic

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// migrationExt is the extension migration files must carry; anything else in
// the directory is ignored.
const migrationExt = ".sql"

// Bootstrap builds a fresh in-memory database and applies every .sql file in
// dir, sorted lexicographically by filename. Lexicographic order is the only
// ordering guarantee: name files so it matches the intended application
// order, e.g. with zero-padded numeric prefixes.
//
// The bootstrap is fail-fast. The first broken file aborts it with an error
// naming the file and wrapping the engine error, and no database is returned.
// No rollback is attempted; the partially migrated in-memory database is
// discarded.
func Bootstrap(ctx context.Context, dir string, opts ...Option) (*Database, error) {
	return BootstrapFS(ctx, os.DirFS(dir), ".", opts...)
}

// BootstrapFS is Bootstrap over an fs.FS, so migration files can ship with
// the test binary via go:embed.
func BootstrapFS(ctx context.Context, fsys fs.FS, dir string, opts ...Option) (*Database, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), migrationExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	db, err := Open(":memory:", opts...)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		text, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(text)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		if db.logger != nil {
			db.logger.Debug("applied migration", "file", name)
		}
	}
	return db, nil
}
