package manifest

import "github.com/cockroachdb/errors"

var (
	// ErrIncompatibleVersion is returned for manifests of an unknown format.
	ErrIncompatibleVersion = errors.New("manifest: incompatible format version")

	// ErrNotFound is returned when no manifest has been committed yet.
	ErrNotFound = errors.New("manifest: not found")
)
