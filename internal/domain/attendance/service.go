package attendance

import (
	"context"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
)

// AttendanceService covers reporting and record mutations. Every call is
// scoped by the caller identity.
type AttendanceService interface {
	// ListAttendance returns the records visible to the caller plus stats over them
	ListAttendance(ctx context.Context, caller user.Identity, filter ListAttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendanceByDate restricts the listing to one calendar day
	GetAttendanceByDate(ctx context.Context, caller user.Identity, date string, storeCode string) (ListAttendanceResponse, error)

	// GetAttendanceByStore restricts the listing to one store the caller may see
	GetAttendanceByStore(ctx context.Context, caller user.Identity, storeCode string, filter ListAttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendanceStats aggregates status counts
	GetAttendanceStats(ctx context.Context, caller user.Identity, filter StatsFilter) (StatsResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, caller user.Identity, id string) (AttendanceResponse, error)

	// MarkAttendance creates or merges the employee's record for the day
	MarkAttendance(ctx context.Context, caller user.Identity, req MarkAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance patches a record by ID for administrative correction
	UpdateAttendance(ctx context.Context, caller user.Identity, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// VerifyAttendance records a client's verification
	VerifyAttendance(ctx context.Context, caller user.Identity, req VerifyAttendanceRequest) (AttendanceResponse, error)
}

// SessionService drives the intraday check-in, break and check-out cycle.
type SessionService interface {
	CheckIn(ctx context.Context, caller user.Identity, req CheckInRequest) (CheckInResponse, error)
	StartBreak(ctx context.Context, caller user.Identity, req StartBreakRequest) (StartBreakResponse, error)
	EndBreak(ctx context.Context, caller user.Identity, req EndBreakRequest) (EndBreakResponse, error)
	CheckOut(ctx context.Context, caller user.Identity, req CheckOutRequest) (CheckOutResponse, error)
	GetTodayStatus(ctx context.Context, caller user.Identity, employeeID string) (TodayStatusResponse, error)
	GetEmployeeHistory(ctx context.Context, caller user.Identity, filter HistoryFilter) (EmployeeHistoryResponse, error)
}
