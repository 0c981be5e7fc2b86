// Package memory holds process-local repositories. They enforce the same
// uniqueness and versioning rules as the PostgreSQL ones.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type recordKey struct {
	employeeID string
	date       attendance.CalendarDate
}

type attendanceRepository struct {
	mu    sync.RWMutex
	byID  map[string]attendance.Attendance
	byKey map[recordKey]string
	now   func() time.Time
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		byID:  make(map[string]attendance.Attendance),
		byKey: make(map[recordKey]string),
		now:   time.Now,
	}
}

func clone(a attendance.Attendance) attendance.Attendance {
	out := a
	if a.CheckIn != nil {
		v := *a.CheckIn
		out.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := *a.CheckOut
		out.CheckOut = &v
	}
	if a.VerifiedAt != nil {
		v := *a.VerifiedAt
		out.VerifiedAt = &v
	}
	out.Breaks = append([]attendance.Break{}, a.Breaks...)
	return out
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{employeeID: newAttendance.EmployeeID, date: newAttendance.Date}
	if _, exists := r.byKey[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}

	now := r.now()
	rec := clone(newAttendance)
	rec.ID = id.String()
	rec.Version = 1
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.MarkedBy == "" {
		rec.MarkedBy = attendance.DefaultMarkedBy
	}

	r.byID[rec.ID] = rec
	r.byKey[key] = rec.ID
	return clone(rec), nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return clone(rec), nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date attendance.CalendarDate) (*attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[recordKey{employeeID: employeeID, date: date}]
	if !ok {
		return nil, nil
	}
	rec := clone(r.byID[id])
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, id string, patch attendance.Patch) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if patch.ExpectedVersion != nil && current.Version != *patch.ExpectedVersion {
		return attendance.Attendance{}, attendance.ErrStaleRecord
	}
	if patch.IsEmpty() {
		return clone(current), nil
	}

	updated := patch.Apply(clone(current))
	updated.Version = current.Version + 1
	updated.UpdatedAt = r.now()
	r.byID[id] = updated
	return clone(updated), nil
}

func matches(filter attendance.Filter, rec attendance.Attendance) bool {
	if !filter.Scope.Allows(rec.StoreCode) {
		return false
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && rec.EmployeeID != *filter.EmployeeID {
		return false
	}
	if filter.Status != nil && *filter.Status != "" && rec.Status != *filter.Status {
		return false
	}
	if filter.DateFrom != nil && rec.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && rec.Date.After(*filter.DateTo) {
		return false
	}
	return true
}

func (r *attendanceRepository) selectRecords(filter attendance.Filter) []attendance.Attendance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Attendance, 0)
	for _, rec := range r.byID {
		if matches(filter, rec) {
			out = append(out, clone(rec))
		}
	}
	return out
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	records := r.selectRecords(filter)
	asc := filter.SortOrder == attendance.SortAsc
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			if asc {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return strings.Compare(a.ID, b.ID) < 0
		}
		return strings.Compare(a.ID, b.ID) > 0
	})

	total := int64(len(records))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start >= len(records) {
			return []attendance.Attendance{}, total, nil
		}
		end := min(start+filter.Limit, len(records))
		records = records[start:end]
	}

	return records, total, nil
}

// Summarize implements attendance.AttendanceRepository.
func (r *attendanceRepository) Summarize(ctx context.Context, filter attendance.Filter) (attendance.Summary, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Summary{}, err
	}

	var s attendance.Summary
	for _, rec := range r.selectRecords(filter) {
		s.TotalDays++
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		}
		s.TotalWorkingMinutes += int64(rec.TotalWorkingMinutes)
		s.TotalBreakMinutes += int64(rec.TotalBreakMinutes)
	}
	return s, nil
}
