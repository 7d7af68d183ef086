package loan

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("loan not found")

// ValidationError names the request field that failed a semantic check.
// Always recoverable: the caller fixes the field and resubmits.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IllegalTransitionError is returned when the state machine rejects a
// transition. Stored state is untouched; callers should re-fetch.
type IllegalTransitionError struct {
	LoanID string
	From   Status
	To     Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("loan %s: illegal transition %s -> %s", e.LoanID, e.From, e.To)
}

// PartialFailureError reports a committed approval whose follow-up schedule
// generation failed. The approval is NOT unwound; the loan sits in
// "approved" until the repair operation re-runs activation.
type PartialFailureError struct {
	LoanID string
	Stage  string
	Err    error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("loan %s: %s failed after approval was committed: %v", e.LoanID, e.Stage, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
