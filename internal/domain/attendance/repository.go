package attendance

import (
	"context"
)

// AttendanceRepository is the only write path for attendance records.
// Implementations must enforce uniqueness of (employee, date) themselves.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrDuplicateRecord when the
	// employee already has a record for the date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when absent.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date CalendarDate) (*Attendance, error)

	// Update writes the patch fields. With ExpectedVersion set it returns
	// ErrStaleRecord if the stored version moved on.
	Update(ctx context.Context, id string, patch Patch) (Attendance, error)

	// List returns the filtered page and the total number of matches.
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// Summarize aggregates over every record matching the filter, ignoring pagination.
	Summarize(ctx context.Context, filter Filter) (Summary, error)
}
