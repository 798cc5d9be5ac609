package mimic

import "errors"

// Batch rejects statements it cannot execute instead of silently dropping
// them. These sentinels keep the two rejection causes distinguishable with
// errors.Is; engine-level errors are never translated and always surface as
// the driver reports them.
var (
	// ErrNilStatement reports a nil entry in a batch.
	ErrNilStatement = errors.New("nil statement")

	// ErrForeignStatement reports a batch entry prepared on a different
	// database.
	ErrForeignStatement = errors.New("statement prepared on a different database")
)
