package attendance

import (
	"errors"
	"fmt"
)

// Error kinds. Every attendance error wraps exactly one of these, so callers
// can map with errors.Is(err, ErrConflict) and friends.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrDuplicateRecord = errors.New("attendance already exists for this employee and date")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Attendance domain errors
var (
	// Input errors
	ErrEmployeeIDRequired   = newError(ErrInvalidInput, "employee ID is required")
	ErrInvalidBreakDuration = newError(ErrInvalidInput, "invalid break duration")
	ErrCheckOutWithoutIn    = newError(ErrInvalidInput, "check-out time requires a check-in time")
	ErrStoreCodeRequired    = newError(ErrInvalidInput, "store code is required")
	ErrInvalidDateRange     = newError(ErrInvalidInput, "start date must not be after end date")
	ErrBreakBeforeCheckIn   = newError(ErrInvalidInput, "break must start after check-in")
	ErrBreakOverlap         = newError(ErrInvalidInput, "break must start after the previous break ended")

	// Lookup errors
	ErrAttendanceNotFound = newError(ErrNotFound, "attendance record not found")
	ErrNotCheckedIn       = newError(ErrNotFound, "no check-in record found for today")
	ErrEmployeeNotFound   = newError(ErrNotFound, "employee not found")
	ErrStoreNotFound      = newError(ErrNotFound, "store not found")

	// Authorization errors
	ErrStoreAccessDenied = newError(ErrForbidden, "not authorized for this store")
	ErrNoStoreAssigned   = newError(ErrForbidden, "no store assigned to this account")
	ErrClientOnly        = newError(ErrForbidden, "only clients can verify attendance")
	ErrEmployeeInactive  = newError(ErrForbidden, "employee is not active")
	ErrOwnRecordsOnly    = newError(ErrForbidden, "you can only manage your own attendance")
	ErrRoleNotPermitted  = newError(ErrForbidden, "role is not permitted to access attendance")

	// State machine errors
	ErrAlreadyCheckedIn   = newError(ErrConflict, "already checked in today")
	ErrAlreadyCompleted   = newError(ErrConflict, "already completed attendance for today")
	ErrAlreadyCheckedOut  = newError(ErrConflict, "already checked out for today")
	ErrBreakLimitExceeded = newError(ErrConflict, "break limit exceeded")
	ErrStaleRecord        = newError(ErrConflict, "attendance record was modified concurrently")
)

// BreakLimitError reports a break that would push the day's total over the cap.
type BreakLimitError struct {
	Remaining int
}

func (e *BreakLimitError) Error() string {
	return fmt.Sprintf("break limit exceeded: you can only take %d more minutes today", e.Remaining)
}

func (e *BreakLimitError) Unwrap() error { return ErrBreakLimitExceeded }

// KindOf returns the taxonomy kind err belongs to, or nil for errors from
// outside the attendance domain.
func KindOf(err error) error {
	for _, kind := range []error{ErrDuplicateRecord, ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
