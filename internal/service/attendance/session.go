package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
)

// loadToday reads the employee's record for today and checks the caller may
// act on it. A missing record is returned as nil.
func (s *SessionServiceImpl) loadToday(ctx context.Context, caller user.Identity, employeeID string) (*attendance.Attendance, attendance.CalendarDate, error) {
	today := s.today()

	if err := authorizeEmployee(caller, employeeID); err != nil {
		return nil, today, err
	}

	rec, err := s.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, today, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil {
		return nil, today, nil
	}
	if err := authorizeRecord(caller, *rec); err != nil {
		return nil, today, err
	}
	return rec, today, nil
}

// requireOpenSession enforces the checked-in state for breaks and check-out.
func requireOpenSession(rec *attendance.Attendance) error {
	switch rec.State() {
	case attendance.StateNotCheckedIn:
		return attendance.ErrNotCheckedIn
	case attendance.StateCheckedOut:
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}

// CheckIn implements attendance.SessionService.
func (s *SessionServiceImpl) CheckIn(ctx context.Context, caller user.Identity, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	emp, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !emp.Active {
		return attendance.CheckInResponse{}, attendance.ErrEmployeeInactive
	}
	if err := authorizeEmployee(caller, emp.ID); err != nil {
		return attendance.CheckInResponse{}, err
	}

	storeValue := strings.TrimSpace(string(req.StoreCode))
	if storeValue == "" {
		storeValue = strings.TrimSpace(emp.AssignedStore)
	}
	if storeValue == "" {
		return attendance.CheckInResponse{}, attendance.ErrStoreCodeRequired
	}
	st, err := s.findStore(ctx, storeValue)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if _, err := ResolveStoreScope(caller, st.Code); err != nil {
		return attendance.CheckInResponse{}, err
	}

	today := s.today()
	now := s.clock()
	actor := caller.ActorName()

	existing, err := s.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if existing == nil {
		_, err := s.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			StoreCode:  st.Code,
			Date:       today,
			Status:     attendance.StatusPresent,
			CheckIn:    &now,
			Breaks:     []attendance.Break{},
			MarkedBy:   actor,
		})
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
		if err != nil {
			return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	} else {
		// A manager may have marked the day before the employee arrived.
		_, err := s.casUpdate(ctx, *existing, func(current attendance.Attendance) (attendance.Patch, error) {
			switch current.State() {
			case attendance.StateCheckedOut:
				return attendance.Patch{}, attendance.ErrAlreadyCompleted
			case attendance.StateCheckedIn:
				return attendance.Patch{}, attendance.ErrAlreadyCheckedIn
			}
			status := attendance.StatusPresent
			return attendance.Patch{CheckIn: &now, Status: &status, MarkedBy: &actor}, nil
		})
		if errors.Is(err, attendance.ErrStaleRecord) {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
		if err != nil {
			return attendance.CheckInResponse{}, err
		}
	}

	return attendance.CheckInResponse{
		CheckIn: now,
		Date:    today.String(),
		Status:  attendance.StateCheckedIn,
	}, nil
}

// StartBreak implements attendance.SessionService. It only reports the start
// time; the break is recorded when it ends.
func (s *SessionServiceImpl) StartBreak(ctx context.Context, caller user.Identity, req attendance.StartBreakRequest) (attendance.StartBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StartBreakResponse{}, err
	}

	rec, _, err := s.loadToday(ctx, caller, req.EmployeeID)
	if err != nil {
		return attendance.StartBreakResponse{}, err
	}
	if rec == nil {
		return attendance.StartBreakResponse{}, attendance.ErrNotCheckedIn
	}
	if err := requireOpenSession(rec); err != nil {
		return attendance.StartBreakResponse{}, err
	}

	remaining := s.remainingBreak(rec.TotalBreakMinutes)
	if remaining <= 0 {
		return attendance.StartBreakResponse{}, &attendance.BreakLimitError{Remaining: 0}
	}

	return attendance.StartBreakResponse{
		BreakStartTime:     s.clock(),
		RemainingBreakTime: remaining,
		Status:             attendance.StateOnBreak,
	}, nil
}

// checkBreakOrder places a break on the shift's timeline, measured in minutes
// since check-in so shifts crossing midnight compare correctly. The break
// must start after check-in and no earlier than the previous break's end.
func checkBreakOrder(rec attendance.Attendance, start, end string) error {
	if rec.CheckIn == nil {
		return attendance.ErrNotCheckedIn
	}
	startAt, err := attendance.MinutesBetween(*rec.CheckIn, start)
	if err != nil {
		return err
	}
	endAt, err := attendance.MinutesBetween(*rec.CheckIn, end)
	if err != nil {
		return err
	}
	if startAt > endAt {
		return attendance.ErrBreakBeforeCheckIn
	}
	if n := len(rec.Breaks); n > 0 {
		prevEnd, err := attendance.MinutesBetween(*rec.CheckIn, rec.Breaks[n-1].EndTime)
		if err != nil {
			return err
		}
		if startAt < prevEnd {
			return attendance.ErrBreakOverlap
		}
	}
	return nil
}

// EndBreak implements attendance.SessionService.
func (s *SessionServiceImpl) EndBreak(ctx context.Context, caller user.Identity, req attendance.EndBreakRequest) (attendance.EndBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EndBreakResponse{}, err
	}

	rec, _, err := s.loadToday(ctx, caller, req.EmployeeID)
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}
	if rec == nil {
		return attendance.EndBreakResponse{}, attendance.ErrNotCheckedIn
	}
	if err := requireOpenSession(rec); err != nil {
		return attendance.EndBreakResponse{}, err
	}

	end := s.clock()
	duration, err := attendance.MinutesBetween(req.BreakStartTime, end)
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}
	if duration <= 0 {
		return attendance.EndBreakResponse{}, attendance.ErrInvalidBreakDuration
	}
	brk := attendance.Break{StartTime: req.BreakStartTime, EndTime: end, DurationMinutes: duration}

	updated, err := s.casUpdate(ctx, *rec, func(current attendance.Attendance) (attendance.Patch, error) {
		if err := requireOpenSession(&current); err != nil {
			return attendance.Patch{}, err
		}
		if err := checkBreakOrder(current, req.BreakStartTime, end); err != nil {
			return attendance.Patch{}, err
		}
		if current.TotalBreakMinutes+duration > s.opts.BreakCapMinutes {
			return attendance.Patch{}, &attendance.BreakLimitError{Remaining: s.remainingBreak(current.TotalBreakMinutes)}
		}

		breaks := append(append([]attendance.Break{}, current.Breaks...), brk)
		total := 0
		for _, b := range breaks {
			total += b.DurationMinutes
		}
		return attendance.Patch{Breaks: breaks, TotalBreakMinutes: &total}, nil
	})
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}

	return attendance.EndBreakResponse{
		BreakDuration:      duration,
		TotalBreakTime:     updated.TotalBreakMinutes,
		RemainingBreakTime: s.remainingBreak(updated.TotalBreakMinutes),
		Status:             "break_ended",
		Break:              brk,
	}, nil
}

// CheckOut implements attendance.SessionService.
func (s *SessionServiceImpl) CheckOut(ctx context.Context, caller user.Identity, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	rec, _, err := s.loadToday(ctx, caller, req.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}
	if rec == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if err := requireOpenSession(rec); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.clock()
	updated, err := s.casUpdate(ctx, *rec, func(current attendance.Attendance) (attendance.Patch, error) {
		if err := requireOpenSession(&current); err != nil {
			return attendance.Patch{}, err
		}
		working, err := attendance.WorkingMinutes(*current.CheckIn, now, current.TotalBreakMinutes)
		if err != nil {
			return attendance.Patch{}, err
		}
		return attendance.Patch{CheckOut: &now, TotalWorkingMinutes: &working}, nil
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return attendance.CheckOutResponse{
		CheckOut:         now,
		TotalWorkingTime: updated.TotalWorkingMinutes,
		TotalBreakTime:   updated.TotalBreakMinutes,
		Status:           attendance.StateCheckedOut,
	}, nil
}

// GetTodayStatus implements attendance.SessionService.
func (s *SessionServiceImpl) GetTodayStatus(ctx context.Context, caller user.Identity, employeeID string) (attendance.TodayStatusResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return attendance.TodayStatusResponse{}, attendance.ErrEmployeeIDRequired
	}

	rec, today, err := s.loadToday(ctx, caller, employeeID)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	if rec == nil {
		if err := s.authorizeEmployeeStore(ctx, caller, employeeID); err != nil {
			return attendance.TodayStatusResponse{}, err
		}
		return attendance.TodayStatusResponse{
			Status:             attendance.StateNotCheckedIn,
			Date:               today.String(),
			Breaks:             []attendance.Break{},
			RemainingBreakTime: s.opts.BreakCapMinutes,
		}, nil
	}

	return attendance.TodayStatusResponse{
		Status:             rec.State(),
		Date:               today.String(),
		CheckIn:            rec.CheckIn,
		CheckOut:           rec.CheckOut,
		Breaks:             breaksOrEmpty(rec.Breaks),
		TotalBreakTime:     rec.TotalBreakMinutes,
		TotalWorkingTime:   rec.TotalWorkingMinutes,
		RemainingBreakTime: s.remainingBreak(rec.TotalBreakMinutes),
	}, nil
}

// authorizeEmployeeStore checks the employee's assigned store against the
// caller's scope, for reads that have no record to check.
func (s *SessionServiceImpl) authorizeEmployeeStore(ctx context.Context, caller user.Identity, employeeID string) error {
	emp, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	scope, err := ResolveStoreScope(caller, "")
	if err != nil {
		return err
	}
	if !scope.Allows(emp.AssignedStore) {
		return attendance.ErrStoreAccessDenied
	}
	return nil
}

// GetEmployeeHistory implements attendance.SessionService.
func (s *SessionServiceImpl) GetEmployeeHistory(ctx context.Context, caller user.Identity, filter attendance.HistoryFilter) (attendance.EmployeeHistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}
	if err := authorizeEmployee(caller, filter.EmployeeID); err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}

	emp, err := s.findEmployee(ctx, filter.EmployeeID)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}

	scope, err := ResolveStoreScope(caller, "")
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}
	if !scope.Allows(emp.AssignedStore) {
		return attendance.EmployeeHistoryResponse{}, attendance.ErrStoreAccessDenied
	}

	from, to, err := dateRange(s.opts.Location, nil, filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}

	query := attendance.Filter{
		Scope:      scope,
		EmployeeID: &emp.ID,
		DateFrom:   from,
		DateTo:     to,
		SortOrder:  attendance.SortDesc,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}

	records, total, err := s.List(ctx, query)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	// The summary covers the whole range, not just the current page.
	query.Page, query.Limit = 0, 0
	summary, err := s.Summarize(ctx, query)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, fmt.Errorf("failed to summarize attendance history: %w", err)
	}

	history := make([]attendance.HistoryRecord, 0, len(records))
	for _, r := range records {
		history = append(history, toHistoryRecord(r))
	}

	var average int64
	if summary.PresentDays > 0 {
		average = summary.TotalWorkingMinutes / summary.PresentDays
	}

	pages := totalPages(total, filter.Limit)
	return attendance.EmployeeHistoryResponse{
		Employee: attendance.HistoryEmployee{
			ID:           emp.ID,
			Name:         emp.Name,
			EmployeeCode: emp.EmployeeCode,
			Department:   emp.Department,
		},
		Attendance: history,
		Summary: attendance.HistorySummary{
			TotalDays:             summary.TotalDays,
			PresentDays:           summary.PresentDays,
			TotalWorkingMinutes:   summary.TotalWorkingMinutes,
			TotalBreakMinutes:     summary.TotalBreakMinutes,
			AverageWorkingMinutes: average,
			TotalWorkingHours:     attendance.FormatMinutes(int(summary.TotalWorkingMinutes)),
			TotalBreakTime:        attendance.FormatMinutes(int(summary.TotalBreakMinutes)),
			AverageWorkingHours:   attendance.FormatMinutes(int(average)),
		},
		Pagination: attendance.Pagination{
			CurrentPage:    filter.Page,
			TotalPages:     pages,
			TotalRecords:   total,
			RecordsPerPage: filter.Limit,
			HasNextPage:    filter.Page < pages,
			HasPrevPage:    filter.Page > 1,
		},
	}, nil
}
