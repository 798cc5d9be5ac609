package mimic

import (
	"context"
	"database/sql"
	"fmt"
)

// Statement wraps one compiled statement together with the values currently
// bound to it. Statements are created by Database.Prepare and share their
// database's single engine connection.
//
// Bound values apply to the next execution call only in the sense that each
// of First, FirstColumn, All, Run and Raw re-executes the statement with
// whatever was bound last; Bind replaces the values wholesale.
type Statement struct {
	db   *Database
	stmt *sql.Stmt
	args []any
}

// Bind replaces the statement's bound values with the given positional
// values, in call order, and returns the statement to allow chaining. Values
// are not validated against the statement text; arity and type mismatches
// surface when the engine executes.
func (s *Statement) Bind(values ...any) *Statement {
	s.args = values
	return s
}

// First executes the statement with the currently bound values and returns
// the first matching row, or nil if no row matched. Rows beyond the first are
// not read.
func (s *Statement) First(ctx context.Context) (Row, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRow(rows, cols)
}

// FirstColumn executes like First and returns the named column's value from
// the first matching row, type-erased. It returns nil if no row matched and
// an error if the row does not carry the column.
func (s *Statement) FirstColumn(ctx context.Context, column string) (any, error) {
	row, err := s.First(ctx)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	v, ok := row[column]
	if !ok {
		return nil, fmt.Errorf("no such column: %s", column)
	}
	return v, nil
}

// All executes the statement and returns every matching row, in the engine's
// natural order, wrapped in the service's result envelope. rows_read carries
// the row count; write metadata stays zeroed since All never mutates.
func (s *Statement) All(ctx context.Context) (*Result, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := newResult()
	for rows.Next() {
		row, err := scanRow(rows, cols)
		if err != nil {
			return nil, err
		}
		res.Results = append(res.Results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.Meta.RowsRead = int64(len(res.Results))
	return res, nil
}

// Run executes the statement for effect (INSERT, UPDATE, DELETE, DDL).
// rows_written and changes carry the affected-row count, last_row_id the
// engine's last inserted row identifier, changed_db is true iff any row
// changed, and results is empty.
func (s *Statement) Run(ctx context.Context) (*Result, error) {
	out, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}

	affected, err := out.RowsAffected()
	if err != nil {
		return nil, err
	}
	lastID, err := out.LastInsertId()
	if err != nil {
		return nil, err
	}

	res := newResult()
	res.Meta.RowsWritten = affected
	res.Meta.Changes = affected
	res.Meta.LastRowID = lastID
	res.Meta.ChangedDB = affected > 0
	return res, nil
}

// rawOptions configures Raw.
type rawOptions struct {
	columnNames bool
}

// RawOption configures a Raw call.
type RawOption func(*rawOptions)

// WithColumnNames makes Raw prepend the ordered column-name sequence as
// element 0 of its result.
func WithColumnNames() RawOption {
	return func(o *rawOptions) { o.columnNames = true }
}

// Raw executes the statement and returns rows as ordered value sequences
// instead of field-name mappings. With WithColumnNames the returned slice has
// length row count + 1 and its first element is the ordered column-name list;
// without it only the row sequences are returned. Callers distinguish the two
// shapes structurally, mirroring the managed service's raw-mode contract.
func (s *Statement) Raw(ctx context.Context, opts ...RawOption) ([][]any, error) {
	var o rawOptions
	for _, opt := range opts {
		opt(&o)
	}

	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any
	if o.columnNames {
		header := make([]any, len(cols))
		for i, col := range cols {
			header[i] = col
		}
		out = append(out, header)
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanRow scans the current row into a field-name-to-value mapping.
func scanRow(rows *sql.Rows, cols []string) (Row, error) {
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(cols))
	for i, col := range cols {
		row[col] = values[i]
	}
	return row, nil
}
