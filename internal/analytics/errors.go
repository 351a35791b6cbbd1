package analytics

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("invalid workout record")

// ValidationError describes the first malformed value found in the input.
// Any ValidationError aborts the whole analytics computation.
type ValidationError struct {
	RecordID int
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	// record id is unknown when the input could not be decoded
	if e.RecordID < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("workout %d: %s", e.RecordID, e.Reason)
	}
	return fmt.Sprintf("workout %d: %s: %s", e.RecordID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
