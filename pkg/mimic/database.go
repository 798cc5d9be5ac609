package mimic

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

// Database wraps a single embedded SQLite connection in the managed database
// service's client contract.
//
// All statements prepared from one Database share its connection. The engine
// serializes access internally, but overlapping writes from multiple
// goroutines are not supported; callers are expected to serialize access
// themselves, which single-threaded tests do implicitly.
type Database struct {
	db       *sql.DB
	path     string
	tempFile string
	logger   *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for debug output. Nothing is logged by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) { d.logger = logger }
}

// Open opens a database at the given file path. Use ":memory:" for an
// in-memory database.
func Open(path string, opts ...Option) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection only: pooled connections would each see a distinct
	// in-memory database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &Database{db: db, path: path}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// OpenBuffer opens a database from a serialized image, as produced by Dump.
// The backing file is owned by the returned Database and removed on Close.
func OpenBuffer(data []byte, opts ...Option) (*Database, error) {
	f, err := os.CreateTemp("", "mimicdb-*.db")
	if err != nil {
		return nil, fmt.Errorf("failed to create backing file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write backing file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to close backing file: %w", err)
	}

	d, err := Open(path, opts...)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	d.tempFile = path
	return d, nil
}

// WrapDB adopts an existing connection. The caller keeps responsibility for
// the connection's pool settings; Close still closes it.
func WrapDB(db *sql.DB, opts ...Option) *Database {
	d := &Database{db: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Close closes the engine connection and removes the temp backing file, if
// any.
func (d *Database) Close() error {
	if d.logger != nil {
		d.logger.Debug("closing database", "path", d.path)
	}
	err := d.db.Close()
	if d.tempFile != "" {
		if rmErr := os.Remove(d.tempFile); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// Prepare compiles the given SQL text and wraps it in a Statement. The text
// must be a single statement in the engine's dialect; compilation failures
// surface immediately, untranslated.
func (d *Database) Prepare(ctx context.Context, query string) (*Statement, error) {
	stmt, err := d.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		d.logger.Debug("prepared statement", "query", query)
	}
	return &Statement{db: d, stmt: stmt}, nil
}

// Batch executes the given statements sequentially, in order, each through
// its All path, and returns their envelopes index-aligned with the input.
// Mutation statements still receive an envelope, with empty results, since
// fetching all rows of a non-SELECT yields none.
//
// A nil entry or a statement prepared on a different Database aborts the
// batch with an error wrapping ErrNilStatement or ErrForeignStatement.
// Engine errors from individual statements propagate untranslated.
func (d *Database) Batch(ctx context.Context, stmts []*Statement) ([]*Result, error) {
	if d.logger != nil {
		d.logger.Debug("executing batch", "statements", len(stmts))
	}

	results := make([]*Result, 0, len(stmts))
	for i, stmt := range stmts {
		switch {
		case stmt == nil:
			return nil, fmt.Errorf("batch statement %d: %w", i, ErrNilStatement)
		case stmt.db != d:
			return nil, fmt.Errorf("batch statement %d: %w", i, ErrForeignStatement)
		}

		res, err := stmt.All(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Exec executes raw SQL text directly through the engine. Unlike Prepare the
// text may contain multiple semicolon-separated statements, executed in a
// single engine call. The envelope carries the total affected-row count and
// the elapsed wall-clock time in milliseconds. Failures wrap the engine
// error together with the offending query text.
func (d *Database) Exec(ctx context.Context, query string) (*Result, error) {
	start := time.Now()

	before, err := d.totalChanges(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to execute %q: %w", query, err)
	}

	after, err := d.totalChanges(ctx)
	if err != nil {
		return nil, err
	}

	res := newResult()
	res.Meta.Changes = after - before
	res.Meta.RowsWritten = after - before
	res.Meta.ChangedDB = after > before
	res.Meta.Duration = float64(time.Since(start).Microseconds()) / 1000
	return res, nil
}

// WithSession returns a session bound to this database. The constraint or
// bookmark argument exists only to satisfy the managed service's signature
// and is ignored; an embedded engine has no replicas to track.
func (d *Database) WithSession(_ ...string) *Session {
	return &Session{db: d}
}

// Dump serializes the entire database to a plain byte slice owned by the
// caller. OpenBuffer reconstructs an equivalent database from it.
func (d *Database) Dump(ctx context.Context) ([]byte, error) {
	if d.logger != nil {
		d.logger.Debug("serializing database", "path", d.path)
	}

	// VACUUM INTO refuses to overwrite, hence the unique target name.
	target := filepath.Join(os.TempDir(), fmt.Sprintf("mimicdb-dump-%s.db", uuid.NewString()))
	defer func() { _ = os.Remove(target) }()

	quoted := strings.ReplaceAll(target, "'", "''")
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", quoted)); err != nil {
		return nil, fmt.Errorf("failed to serialize database: %w", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read serialized database: %w", err)
	}
	return data, nil
}

// totalChanges reads the engine's cumulative changed-row counter.
func (d *Database) totalChanges(ctx context.Context) (int64, error) {
	var n int64
	if err := d.db.QueryRowContext(ctx, "SELECT total_changes()").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to read change counter: %w", err)
	}
	return n, nil
}
