package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
)

// dateRange turns the optional date filters into an inclusive range. A single
// date takes precedence over start and end. Timestamps reduce to their day in loc.
func dateRange(loc *time.Location, date, start, end *string) (*attendance.CalendarDate, *attendance.CalendarDate, error) {
	parse := func(v *string) (*attendance.CalendarDate, error) {
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, nil
		}
		d, err := attendance.ParseDateInput(strings.TrimSpace(*v), loc)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	if day, err := parse(date); err != nil {
		return nil, nil, err
	} else if day != nil {
		return day, day, nil
	}

	from, err := parse(start)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(end)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, attendance.ErrInvalidDateRange
	}
	return from, to, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, caller user.Identity, filter attendance.ListAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	scope, err := ResolveStoreScope(caller, filter.StoreCode)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	from, to, err := dateRange(s.opts.Location, filter.Date, filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	query := attendance.Filter{
		Scope:     scope,
		DateFrom:  from,
		DateTo:    to,
		SortOrder: attendance.SortOrder(strings.ToLower(filter.SortOrder)),
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	if filter.EmployeeID != nil && strings.TrimSpace(*filter.EmployeeID) != "" {
		employeeID := strings.TrimSpace(*filter.EmployeeID)
		query.EmployeeID = &employeeID
	}
	if filter.Status != nil && *filter.Status != "" {
		status := attendance.Status(*filter.Status)
		query.Status = &status
	}

	records, total, err := s.List(ctx, query)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages(total, filter.Limit),
		Stats:       attendance.Stats(records),
		Attendances: toAttendanceResponses(records),
	}, nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, caller user.Identity, date string, storeCode string) (attendance.ListAttendanceResponse, error) {
	date = strings.TrimSpace(date)
	if _, err := attendance.ParseCalendarDate(date); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.ListAttendance(ctx, caller, attendance.ListAttendanceFilter{
		Date:      &date,
		StoreCode: storeCode,
	})
}

// GetAttendanceByStore implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByStore(ctx context.Context, caller user.Identity, storeCode string, filter attendance.ListAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	storeCode = strings.TrimSpace(storeCode)
	if storeCode == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrStoreCodeRequired
	}

	filter.StoreCode = storeCode
	return s.ListAttendance(ctx, caller, filter)
}

// GetAttendanceStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceStats(ctx context.Context, caller user.Identity, filter attendance.StatsFilter) (attendance.StatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StatsResponse{}, err
	}

	scope, err := ResolveStoreScope(caller, filter.StoreCode)
	if err != nil {
		return attendance.StatsResponse{}, err
	}

	from, to, err := dateRange(s.opts.Location, filter.Date, filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.StatsResponse{}, err
	}

	summary, err := s.Summarize(ctx, attendance.Filter{Scope: scope, DateFrom: from, DateTo: to})
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return attendance.StatsResponse{
		Total:   int(summary.TotalDays),
		Present: int(summary.PresentDays),
		Absent:  int(summary.AbsentDays),
		HalfDay: int(summary.HalfDays),
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, caller user.Identity, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := authorizeRecord(caller, rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(rec), nil
}
