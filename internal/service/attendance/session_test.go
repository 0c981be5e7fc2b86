package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_FullDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.clock.Set(t, "09:00")
	in, err := f.session.CheckIn(ctx, housekeeperE1, attendance.CheckInRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", in.CheckIn)
	assert.Equal(t, testDay, in.Date)
	assert.Equal(t, attendance.StateCheckedIn, in.Status)

	f.clock.Set(t, "09:30")
	start, err := f.session.StartBreak(ctx, housekeeperE1, attendance.StartBreakRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, "09:30", start.BreakStartTime)
	assert.Equal(t, attendance.StateOnBreak, start.Status)
	assert.Equal(t, 60, start.RemainingBreakTime)

	f.clock.Set(t, "09:45")
	end, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: start.BreakStartTime})
	require.NoError(t, err)
	assert.Equal(t, 15, end.BreakDuration)
	assert.Equal(t, 15, end.TotalBreakTime)
	assert.Equal(t, 45, end.RemainingBreakTime)

	f.clock.Set(t, "17:30")
	out, err := f.session.CheckOut(ctx, housekeeperE1, attendance.CheckOutRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, "17:30", out.CheckOut)
	assert.Equal(t, 15, out.TotalBreakTime)
	assert.Equal(t, 495, out.TotalWorkingTime)
	assert.Equal(t, attendance.StateCheckedOut, out.Status)

	status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedOut, status.Status)
	assert.Equal(t, 495, status.TotalWorkingTime)
	require.Len(t, status.Breaks, 1)
	assert.Equal(t, attendance.Break{StartTime: "09:30", EndTime: "09:45", DurationMinutes: 15}, status.Breaks[0])
}

func TestSessionService_CheckIn_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.clock.Set(t, "09:00")
	_, err := f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E1"})
	require.NoError(t, err)

	_, err = f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.ErrorIs(t, err, attendance.ErrConflict)

	f.clock.Set(t, "17:00")
	_, err = f.session.CheckOut(ctx, adminCaller, attendance.CheckOutRequest{EmployeeID: "E1"})
	require.NoError(t, err)

	_, err = f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompleted)
}

func TestSessionService_CheckIn_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.clock.Set(t, "09:00")

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E1"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, attendance.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	_, total, err := f.repo.List(ctx, attendance.Filter{Scope: attendance.StoreScope{All: true}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSessionService_CheckIn_StoreResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("store code is matched case-insensitively", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E2", StoreCode: "s2"})
		require.NoError(t, err)

		d, _ := attendance.ParseCalendarDate(testDay)
		rec, err := f.repo.GetByEmployeeAndDate(ctx, "E2", d)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "S2", rec.StoreCode, "store code is canonicalised through the directory")
	})

	t.Run("falls back to assigned store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, siteManagerS1, attendance.CheckInRequest{EmployeeID: "E1"})
		require.NoError(t, err)
	})

	t.Run("site manager cannot check in at another store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, siteManagerS1, attendance.CheckInRequest{EmployeeID: "E2"})
		assert.ErrorIs(t, err, attendance.ErrForbidden)
	})

	t.Run("inactive employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "E9"})
		assert.ErrorIs(t, err, attendance.ErrEmployeeInactive)
		assert.ErrorIs(t, err, attendance.ErrForbidden)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, adminCaller, attendance.CheckInRequest{EmployeeID: "nobody"})
		assert.ErrorIs(t, err, attendance.ErrNotFound)
	})

	t.Run("worker cannot check in a colleague", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.CheckIn(ctx, housekeeperE1, attendance.CheckInRequest{EmployeeID: "E2"})
		assert.ErrorIs(t, err, attendance.ErrOwnRecordsOnly)
	})

	t.Run("worker without employee link", func(t *testing.T) {
		f := newFixture(t)
		unlinked := user.Identity{UserID: "u-hk", Name: "Hana", Role: user.RoleHousekeeper, AssignedStore: strPtr("S1")}
		_, err := f.session.CheckIn(ctx, unlinked, attendance.CheckInRequest{EmployeeID: "E1"})
		assert.ErrorIs(t, err, attendance.ErrOwnRecordsOnly)
		assert.ErrorIs(t, err, attendance.ErrForbidden)

		_, total, err := f.repo.List(ctx, attendance.Filter{Scope: attendance.StoreScope{All: true}})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestSessionService_CheckIn_IntoMarkedRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", Status: attendance.StatusAbsent, MarkedBy: "Sari Manager"})

	f.clock.Set(t, "10:15")
	res, err := f.session.CheckIn(ctx, housekeeperE1, attendance.CheckInRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, "10:15", res.CheckIn)

	status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, status.Status)
}

func TestSessionService_BreakLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, attendance.Attendance{
		EmployeeID:        "E1",
		StoreCode:         "S1",
		CheckIn:           strPtr("08:00"),
		Breaks:            []attendance.Break{{StartTime: "10:00", EndTime: "10:50", DurationMinutes: 50}},
		TotalBreakMinutes: 50,
	})

	f.clock.Set(t, "12:00")
	start, err := f.session.StartBreak(ctx, housekeeperE1, attendance.StartBreakRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, 10, start.RemainingBreakTime)

	f.clock.Set(t, "12:20")
	_, err = f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "12:00"})
	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrConflict)

	var limitErr *attendance.BreakLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 10, limitErr.Remaining)
	assert.Contains(t, err.Error(), "10 more minutes")

	status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
	require.NoError(t, err)
	assert.Equal(t, 50, status.TotalBreakTime)
	assert.Len(t, status.Breaks, 1)

	// Exactly filling the budget is allowed, after that no break can start.
	f.clock.Set(t, "12:10")
	end, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, 60, end.TotalBreakTime)
	assert.Equal(t, 0, end.RemainingBreakTime)

	_, err = f.session.StartBreak(ctx, housekeeperE1, attendance.StartBreakRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrBreakLimitExceeded)
}

func TestSessionService_EndBreak_InvalidDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("08:00")})

	f.clock.Set(t, "12:00")
	_, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "12:00"})
	assert.ErrorIs(t, err, attendance.ErrInvalidBreakDuration)
	assert.ErrorIs(t, err, attendance.ErrInvalidInput)
}

func TestSessionService_EndBreak_Ordering(t *testing.T) {
	ctx := context.Background()

	t.Run("before check-in", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("09:00")})

		f.clock.Set(t, "11:00")
		_, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "08:30"})
		assert.ErrorIs(t, err, attendance.ErrBreakBeforeCheckIn)
		assert.ErrorIs(t, err, attendance.ErrInvalidInput)
	})

	t.Run("overlaps previous break", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, attendance.Attendance{
			EmployeeID:        "E1",
			StoreCode:         "S1",
			CheckIn:           strPtr("09:00"),
			Breaks:            []attendance.Break{{StartTime: "10:00", EndTime: "10:30", DurationMinutes: 30}},
			TotalBreakMinutes: 30,
		})

		f.clock.Set(t, "11:00")
		_, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "10:15"})
		assert.ErrorIs(t, err, attendance.ErrBreakOverlap)
		assert.ErrorIs(t, err, attendance.ErrInvalidInput)

		// Starting right as the previous break ended is fine.
		end, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "10:30"})
		require.NoError(t, err)
		assert.Equal(t, 60, end.TotalBreakTime)
	})

	t.Run("shift across midnight", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("22:00")})

		f.clock.Set(t, "00:30")
		_, err := f.session.EndBreak(ctx, adminCaller, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "21:50"})
		assert.ErrorIs(t, err, attendance.ErrBreakBeforeCheckIn)

		end, err := f.session.EndBreak(ctx, adminCaller, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "23:50"})
		require.NoError(t, err)
		assert.Equal(t, 40, end.BreakDuration)
	})

	t.Run("duplicate tap", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("09:00")})

		f.clock.Set(t, "10:20")
		_, err := f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "10:00"})
		require.NoError(t, err)

		f.clock.Set(t, "10:21")
		_, err = f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: "10:00"})
		assert.ErrorIs(t, err, attendance.ErrBreakOverlap)

		status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
		require.NoError(t, err)
		assert.Equal(t, 20, status.TotalBreakTime)
		assert.Len(t, status.Breaks, 1)
	})
}

func TestSessionService_EndBreak_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("08:00")})
	f.clock.Set(t, "09:00")

	starts := []string{"08:05", "08:10", "08:15", "08:20", "08:25", "08:30", "08:35", "08:40"}
	errs := make([]error, len(starts))
	var wg sync.WaitGroup
	for i, start := range starts {
		wg.Add(1)
		go func(i int, start string) {
			defer wg.Done()
			_, errs[i] = f.session.EndBreak(ctx, housekeeperE1, attendance.EndBreakRequest{EmployeeID: "E1", BreakStartTime: start})
		}(i, start)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		lost := errors.Is(err, attendance.ErrBreakLimitExceeded) ||
			errors.Is(err, attendance.ErrStaleRecord) ||
			errors.Is(err, attendance.ErrInvalidInput)
		assert.True(t, lost, "unexpected error: %v", err)
	}
	// Every break ends at 09:00, so once one lands the rest overlap it.
	assert.Equal(t, 1, succeeded)

	d, err := attendance.ParseCalendarDate(testDay)
	require.NoError(t, err)
	rec, err := f.repo.GetByEmployeeAndDate(ctx, "E1", d)
	require.NoError(t, err)
	require.NotNil(t, rec)

	sum := 0
	for _, b := range rec.Breaks {
		sum += b.DurationMinutes
	}
	assert.Len(t, rec.Breaks, succeeded)
	assert.Equal(t, sum, rec.TotalBreakMinutes)
	assert.LessOrEqual(t, rec.TotalBreakMinutes, attendance.DefaultBreakCapMinutes)
}

func TestSessionService_GetTodayStatus_OutOfScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.session.GetTodayStatus(ctx, siteManagerS1, "E3")
	assert.ErrorIs(t, err, attendance.ErrStoreAccessDenied)
	assert.ErrorIs(t, err, attendance.ErrForbidden)

	status, err := f.session.GetTodayStatus(ctx, clientS1S3, "E3")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, status.Status)

	_, err = f.session.GetTodayStatus(ctx, adminCaller, "nobody")
	assert.ErrorIs(t, err, attendance.ErrNotFound)

	// A stored record outside the scope is refused as well.
	f.seed(t, attendance.Attendance{EmployeeID: "E3", StoreCode: "S3", CheckIn: strPtr("08:00")})
	_, err = f.session.GetTodayStatus(ctx, siteManagerS1, "E3")
	assert.ErrorIs(t, err, attendance.ErrStoreAccessDenied)
}

func TestSessionService_RequiresCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.session.StartBreak(ctx, housekeeperE1, attendance.StartBreakRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.ErrorIs(t, err, attendance.ErrNotFound)

	_, err = f.session.CheckOut(ctx, housekeeperE1, attendance.CheckOutRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, status.Status)
	assert.Equal(t, 60, status.RemainingBreakTime)
	assert.Empty(t, status.Breaks)
}

func TestSessionService_CheckOutTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.clock.Set(t, "09:00")
	_, err := f.session.CheckIn(ctx, housekeeperE1, attendance.CheckInRequest{EmployeeID: "E1"})
	require.NoError(t, err)

	f.clock.Set(t, "17:00")
	first, err := f.session.CheckOut(ctx, housekeeperE1, attendance.CheckOutRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, 480, first.TotalWorkingTime)

	f.clock.Set(t, "18:00")
	_, err = f.session.CheckOut(ctx, housekeeperE1, attendance.CheckOutRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	assert.ErrorIs(t, err, attendance.ErrConflict)

	status, err := f.session.GetTodayStatus(ctx, housekeeperE1, "E1")
	require.NoError(t, err)
	assert.Equal(t, 480, status.TotalWorkingTime)
	require.NotNil(t, status.CheckOut)
	assert.Equal(t, "17:00", *status.CheckOut)

	_, err = f.session.StartBreak(ctx, housekeeperE1, attendance.StartBreakRequest{EmployeeID: "E1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestSessionService_CheckOut_AcrossMidnight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", CheckIn: strPtr("22:00"), TotalBreakMinutes: 30})

	f.clock.Set(t, "06:00")
	out, err := f.session.CheckOut(ctx, adminCaller, attendance.CheckOutRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, 8*60-30, out.TotalWorkingTime)
}

func TestSessionService_EmployeeHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, rec := range []attendance.Attendance{
		{EmployeeID: "E1", StoreCode: "S1", Date: mustDate(t, "2024-01-01"), CheckIn: strPtr("09:00"), CheckOut: strPtr("17:00"), TotalWorkingMinutes: 450, TotalBreakMinutes: 30},
		{EmployeeID: "E1", StoreCode: "S1", Date: mustDate(t, "2024-01-02"), CheckIn: strPtr("09:00"), CheckOut: strPtr("18:00"), TotalWorkingMinutes: 510, TotalBreakMinutes: 30},
		{EmployeeID: "E1", StoreCode: "S1", Date: mustDate(t, "2024-01-03"), Status: attendance.StatusAbsent},
		{EmployeeID: "E1", StoreCode: "S2", Date: mustDate(t, "2024-01-04"), CheckIn: strPtr("09:00")},
	} {
		f.seed(t, rec)
	}

	res, err := f.session.GetEmployeeHistory(ctx, siteManagerS1, attendance.HistoryFilter{
		EmployeeID: "E1",
		StartDate:  strPtr("2024-01-01"),
		EndDate:    strPtr("2024-01-31"),
		Page:       1,
		Limit:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Eko Prasetyo", res.Employee.Name)
	assert.Equal(t, "EMP-001", res.Employee.EmployeeCode)

	// The S2 record is outside the site manager's store.
	require.Len(t, res.Attendance, 2)
	assert.Equal(t, "03/01/2024", res.Attendance[0].Date)
	assert.Equal(t, "--:--", res.Attendance[0].CheckIn)
	assert.Equal(t, "0:00", res.Attendance[0].WorkingHours)
	assert.Equal(t, "02/01/2024", res.Attendance[1].Date)
	assert.Equal(t, "8:30", res.Attendance[1].WorkingHours)

	// Summary spans the whole range, not the page.
	assert.Equal(t, int64(3), res.Summary.TotalDays)
	assert.Equal(t, int64(2), res.Summary.PresentDays)
	assert.Equal(t, int64(960), res.Summary.TotalWorkingMinutes)
	assert.Equal(t, int64(480), res.Summary.AverageWorkingMinutes)
	assert.Equal(t, "16:00", res.Summary.TotalWorkingHours)
	assert.Equal(t, "1:00", res.Summary.TotalBreakTime)

	assert.Equal(t, attendance.Pagination{
		CurrentPage:    1,
		TotalPages:     2,
		TotalRecords:   3,
		RecordsPerPage: 2,
		HasNextPage:    true,
		HasPrevPage:    false,
	}, res.Pagination)
}

func TestSessionService_EmployeeHistory_WorkerOwnOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.session.GetEmployeeHistory(ctx, housekeeperE1, attendance.HistoryFilter{EmployeeID: "E2"})
	assert.ErrorIs(t, err, attendance.ErrForbidden)

	_, err = f.session.GetEmployeeHistory(ctx, housekeeperE1, attendance.HistoryFilter{EmployeeID: "E1"})
	assert.NoError(t, err)
}

func TestSessionService_EmployeeHistory_OutOfScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, attendance.Attendance{EmployeeID: "E2", StoreCode: "S2", CheckIn: strPtr("09:00")})

	_, err := f.session.GetEmployeeHistory(ctx, siteManagerS1, attendance.HistoryFilter{EmployeeID: "E2"})
	assert.ErrorIs(t, err, attendance.ErrStoreAccessDenied)
	assert.ErrorIs(t, err, attendance.ErrForbidden)

	_, err = f.session.GetEmployeeHistory(ctx, clientS1S3, attendance.HistoryFilter{EmployeeID: "E2"})
	assert.ErrorIs(t, err, attendance.ErrStoreAccessDenied)

	res, err := f.session.GetEmployeeHistory(ctx, adminCaller, attendance.HistoryFilter{EmployeeID: "E2"})
	require.NoError(t, err)
	assert.Len(t, res.Attendance, 1)
}

func TestSessionService_EmployeeHistory_TimestampRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		f.seed(t, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", Date: mustDate(t, day), CheckIn: strPtr("09:00")})
	}

	res, err := f.session.GetEmployeeHistory(ctx, adminCaller, attendance.HistoryFilter{
		EmployeeID: "E1",
		StartDate:  strPtr("2024-01-09T10:00:00+07:00"),
		EndDate:    strPtr("2024-01-10"),
	})
	require.NoError(t, err)
	require.Len(t, res.Attendance, 2)
	assert.Equal(t, "2024-01-10", res.Attendance[0].DateISO)
	assert.Equal(t, "2024-01-09", res.Attendance[1].DateISO)
}

func mustDate(t *testing.T, s string) attendance.CalendarDate {
	t.Helper()
	d, err := attendance.ParseCalendarDate(s)
	require.NoError(t, err)
	return d
}
