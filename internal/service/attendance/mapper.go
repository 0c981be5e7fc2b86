package attendance

import (
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
)

const missingClock = "--:--"

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func breaksOrEmpty(breaks []attendance.Break) []attendance.Break {
	if breaks == nil {
		return []attendance.Break{}
	}
	return breaks
}

func toAttendanceResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		StoreCode:           a.StoreCode,
		Date:                a.Date.String(),
		Status:              string(a.Status),
		CheckIn:             a.CheckIn,
		CheckOut:            a.CheckOut,
		Breaks:              breaksOrEmpty(a.Breaks),
		TotalBreakMinutes:   a.TotalBreakMinutes,
		TotalWorkingMinutes: a.TotalWorkingMinutes,
		VerifiedByClient:    a.VerifiedByClient,
		VerifiedAt:          timePtrToString(a.VerifiedAt),
		MarkedBy:            a.MarkedBy,
		Remarks:             a.Remarks,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
}

func toAttendanceResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toAttendanceResponse(r))
	}
	return out
}

func clockOrMissing(v *string) string {
	if v == nil || *v == "" {
		return missingClock
	}
	return *v
}

func toHistoryRecord(a attendance.Attendance) attendance.HistoryRecord {
	return attendance.HistoryRecord{
		ID:               a.ID,
		Date:             a.Date.Display(),
		DateISO:          a.Date.String(),
		CheckIn:          clockOrMissing(a.CheckIn),
		CheckOut:         clockOrMissing(a.CheckOut),
		Status:           string(a.Status),
		WorkingHours:     attendance.FormatMinutes(a.TotalWorkingMinutes),
		BreakTime:        attendance.FormatMinutes(a.TotalBreakMinutes),
		TotalBreaks:      len(a.Breaks),
		Breaks:           breaksOrEmpty(a.Breaks),
		Remarks:          a.Remarks,
		VerifiedByClient: a.VerifiedByClient,
		MarkedBy:         a.MarkedBy,
		Store:            a.StoreCode,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		if total > 0 {
			return 1
		}
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
