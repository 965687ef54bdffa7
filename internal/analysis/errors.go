package analysis

import "errors"

// Aggregations distinguish "there is nothing to show" from a real failure.
// Callers map these to a no-data placeholder; anything else is a bug.
var (
	// ErrColumnMissing means the source table never had the column the
	// aggregation needs. The feature is unavailable for this session.
	ErrColumnMissing = errors.New("required column missing from source")

	// ErrNoData means the column exists but validity filtering left no
	// usable rows.
	ErrNoData = errors.New("no usable rows after filtering")
)
