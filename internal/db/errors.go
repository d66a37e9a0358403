package db

import "errors"

// Domain-level database error sentinels.
var (
	// Contact errors
	ErrContactNotFound = errors.New("contact not found")

	// Export snapshot errors
	ErrSnapshotNotFound = errors.New("export snapshot not found")

	// Upload report errors
	ErrReportNotFound = errors.New("upload report not found")
)
