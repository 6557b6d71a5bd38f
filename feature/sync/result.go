package sync

// Result summarizes one full synchronization run. It is built fresh per
// invocation and returned to the caller; it is never persisted (the report
// archive stores a JSON copy out of band).
type Result struct {
	// Imported counts products created locally.
	Imported int `json:"imported"`
	// Updated counts products whose stored fields differed from upstream.
	Updated int `json:"updated"`
	// Skipped counts invalid records and unchanged no-ops.
	Skipped int `json:"skipped"`
	// Errors holds diagnostics in encounter order: a single phase error on
	// abort, or per-record validation messages otherwise.
	Errors []string `json:"errors"`
}

// NewResult creates an empty result. Errors is non-nil so the JSON form is
// always an array.
func NewResult() *Result {
	return &Result{Errors: []string{}}
}
