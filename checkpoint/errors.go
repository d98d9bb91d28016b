package checkpoint

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/collections/internal/hash"
	"github.com/hupe1980/collections/internal/manifest"
)

var (
	// ErrNoCheckpoint is returned by Restore when the store holds no
	// committed checkpoint.
	ErrNoCheckpoint = errors.Mark(errors.New("checkpoint: no checkpoint committed"), manifest.ErrNotFound)

	// ErrChecksumMismatch is returned when a stored blob does not match
	// the checksum recorded in its manifest.
	ErrChecksumMismatch = errors.Mark(errors.New("checkpoint: checksum mismatch"), hash.ErrMismatch)

	// ErrDuplicateParticipant is returned when a name is registered twice.
	ErrDuplicateParticipant = errors.New("checkpoint: participant already registered")

	// ErrUnknownParticipant is returned for names that are not registered.
	ErrUnknownParticipant = errors.New("checkpoint: unknown participant")

	// ErrInvalidName is returned for participant names that cannot be used
	// as blob names.
	ErrInvalidName = errors.New("checkpoint: invalid participant name")
)

// ParticipantError reports which participant an operation failed on.
type ParticipantError struct {
	Name string
	Op   string
	Err  error
}

func (e *ParticipantError) Error() string {
	return "checkpoint: " + e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *ParticipantError) Unwrap() error { return e.Err }
