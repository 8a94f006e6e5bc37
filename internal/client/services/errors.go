package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChanges signals that an edit produced nothing to persist. It is
	// an informational outcome, not a failure: the caller skipped a
	// network call, it did not lose one.
	ErrNoChanges = errors.New("no changes")

	// ErrDefaultVehicle rejects deleting the current default vehicle while
	// other vehicles exist.
	ErrDefaultVehicle = errors.New("cannot delete the default vehicle while other vehicles exist")
)

// ValidationError names the specific field that failed the pre-submission
// gate. It is always surfaced before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
