package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/store"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

// recomputeWorking returns the working minutes for the effective check-in and
// check-out, or nil when the day is still open. A check-out without a
// check-in is rejected.
func recomputeWorking(checkIn, checkOut *string, breakMinutes int) (*int, error) {
	if checkOut == nil {
		return nil, nil
	}
	if checkIn == nil {
		return nil, attendance.ErrCheckOutWithoutIn
	}
	working, err := attendance.WorkingMinutes(*checkIn, *checkOut, breakMinutes)
	if err != nil {
		return nil, err
	}
	return &working, nil
}

func coalesce(preferred, fallback *string) *string {
	if preferred != nil {
		return preferred
	}
	return fallback
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, caller user.Identity, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := attendance.ParseDateInput(strings.TrimSpace(req.Date), s.opts.Location)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var (
		emp employee.Employee
		st  store.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emp, err = s.findEmployee(gctx, req.EmployeeID)
		return err
	})
	g.Go(func() error {
		var err error
		st, err = s.findStore(gctx, req.StoreCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := ResolveStoreScope(caller, st.Code); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.Status(req.Status)
	actor := caller.ActorName()

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		existing, err := s.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
		}

		if existing == nil {
			working, err := recomputeWorking(req.CheckIn, req.CheckOut, 0)
			if err != nil {
				return attendance.AttendanceResponse{}, err
			}

			rec := attendance.Attendance{
				EmployeeID: emp.ID,
				StoreCode:  st.Code,
				Date:       date,
				Status:     status,
				CheckIn:    req.CheckIn,
				CheckOut:   req.CheckOut,
				Breaks:     []attendance.Break{},
				MarkedBy:   actor,
			}
			if working != nil {
				rec.TotalWorkingMinutes = *working
			}
			if req.Remarks != nil {
				rec.Remarks = *req.Remarks
			}

			created, err := s.Create(ctx, rec)
			if errors.Is(err, attendance.ErrDuplicateRecord) {
				// Lost the insert race; merge into the winner's record.
				continue
			}
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
			}
			return toAttendanceResponse(created), nil
		}

		if err := authorizeRecord(caller, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}

		updated, err := s.casUpdate(ctx, *existing, func(current attendance.Attendance) (attendance.Patch, error) {
			working, err := recomputeWorking(
				coalesce(req.CheckIn, current.CheckIn),
				coalesce(req.CheckOut, current.CheckOut),
				current.TotalBreakMinutes,
			)
			if err != nil {
				return attendance.Patch{}, err
			}
			return attendance.Patch{
				Status:              &status,
				CheckIn:             req.CheckIn,
				CheckOut:            req.CheckOut,
				Remarks:             req.Remarks,
				TotalWorkingMinutes: working,
				MarkedBy:            &actor,
			}, nil
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toAttendanceResponse(updated), nil
	}

	slog.Warn("mark attendance gave up after concurrent writes",
		"employee_id", emp.ID, "date", date.String())
	return attendance.AttendanceResponse{}, attendance.ErrStaleRecord
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, caller user.Identity, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.GetByID(ctx, strings.TrimSpace(req.ID))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := authorizeRecord(caller, rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	actor := caller.ActorName()
	updated, err := s.casUpdate(ctx, rec, func(current attendance.Attendance) (attendance.Patch, error) {
		working, err := recomputeWorking(
			coalesce(req.CheckIn, current.CheckIn),
			coalesce(req.CheckOut, current.CheckOut),
			current.TotalBreakMinutes,
		)
		if err != nil {
			return attendance.Patch{}, err
		}

		patch := attendance.Patch{
			CheckIn:             req.CheckIn,
			CheckOut:            req.CheckOut,
			Remarks:             req.Remarks,
			TotalWorkingMinutes: working,
			MarkedBy:            &actor,
		}
		if req.Status != nil {
			status := attendance.Status(*req.Status)
			patch.Status = &status
		}
		return patch, nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(updated), nil
}

// clientHoldsStore matches the record store against the caller's stores,
// first directly and then through the store directory for callers whose
// token carries internal store ids.
func (s *AttendanceServiceImpl) clientHoldsStore(ctx context.Context, caller user.Identity, storeCode string) (bool, error) {
	stores := clientStores(caller)
	for _, v := range stores {
		if strings.EqualFold(v, storeCode) {
			return true, nil
		}
	}

	for _, v := range stores {
		st, err := s.storeDir.FindByIDOrCode(ctx, v)
		if errors.Is(err, store.ErrStoreNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to resolve client store: %w", err)
		}
		if strings.EqualFold(st.Code, storeCode) {
			return true, nil
		}
	}
	return false, nil
}

// VerifyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) VerifyAttendance(ctx context.Context, caller user.Identity, req attendance.VerifyAttendanceRequest) (attendance.AttendanceResponse, error) {
	if !caller.Role.IsClient() {
		return attendance.AttendanceResponse{}, attendance.ErrClientOnly
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.GetByID(ctx, strings.TrimSpace(req.ID))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ok, err := s.clientHoldsStore(ctx, caller, rec.StoreCode)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrStoreAccessDenied
	}

	verified := *req.Verified
	updated, err := s.casUpdate(ctx, rec, func(current attendance.Attendance) (attendance.Patch, error) {
		patch := attendance.Patch{VerifiedByClient: &verified}
		if verified {
			now := s.opts.Now()
			patch.VerifiedAt = &now
		}
		if req.Remarks != nil && strings.TrimSpace(*req.Remarks) != "" {
			note := "Verification note: " + strings.TrimSpace(*req.Remarks)
			if current.Remarks != "" {
				note = current.Remarks + "\n" + note
			}
			patch.Remarks = &note
		}
		return patch, nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(updated), nil
}
