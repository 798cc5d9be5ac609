package mimic

// Row is a single result row: an open field-name-to-value mapping. Values are
// the engine's native representations (int64, float64, string, []byte,
// time.Time or nil); stronger typing is left to the caller, see DecodeRow.
type Row map[string]any

// Meta is the execution metadata block of a Result. Field names and nesting
// are fixed by the managed service's wire contract.
//
// Duration and Changes are filled where the contract calls for them;
// SizeAfter is always zero since the adapter targets behavioral
// compatibility, not performance-model fidelity.
type Meta struct {
	Duration    float64 `json:"duration"`
	SizeAfter   int64   `json:"size_after"`
	RowsRead    int64   `json:"rows_read"`
	RowsWritten int64   `json:"rows_written"`
	LastRowID   int64   `json:"last_row_id"`
	ChangedDB   bool    `json:"changed_db"`
	Changes     int64   `json:"changes"`
}

// Result is the envelope the managed service returns for run, all, batch and
// exec calls. Results is ordered and never nil; it stays empty for mutations.
type Result struct {
	Success bool  `json:"success"`
	Meta    Meta  `json:"meta"`
	Results []Row `json:"results"`
}

// newResult returns a successful envelope with an empty, non-nil result set.
func newResult() *Result {
	return &Result{Success: true, Results: make([]Row, 0)}
}
