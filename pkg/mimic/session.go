package mimic

import "context"

// Session is the degenerate session object of the managed service contract.
// It forwards to its owning Database; a single embedded engine has no
// replication state to track.
type Session struct {
	db *Database
}

// Prepare forwards to the owning database.
func (s *Session) Prepare(ctx context.Context, query string) (*Statement, error) {
	return s.db.Prepare(ctx, query)
}

// Batch forwards to the owning database.
func (s *Session) Batch(ctx context.Context, stmts []*Statement) ([]*Result, error) {
	return s.db.Batch(ctx, stmts)
}

// Bookmark always returns nil: there is no replication checkpoint to report.
func (s *Session) Bookmark() *string {
	return nil
}
