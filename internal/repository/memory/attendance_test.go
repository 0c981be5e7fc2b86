package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) attendance.CalendarDate {
	t.Helper()
	d, err := attendance.ParseCalendarDate(s)
	require.NoError(t, err)
	return d
}

func TestAttendanceRepository_Create_RejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	rec := attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-01"), Status: attendance.StatusPresent}
	created, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, attendance.DefaultMarkedBy, created.MarkedBy)

	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	// Different day is a different key
	rec.Date = day(t, "2024-03-02")
	_, err = repo.Create(ctx, rec)
	assert.NoError(t, err)
}

func TestAttendanceRepository_Create_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	date := day(t, "2024-03-01")

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		wins, dups int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", Date: date})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, attendance.ErrDuplicateRecord):
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 19, dups)
}

func TestAttendanceRepository_Update_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	created, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-01")})
	require.NoError(t, err)

	checkIn := "09:00"
	v1 := 1
	updated, err := repo.Update(ctx, created.ID, attendance.Patch{CheckIn: &checkIn, ExpectedVersion: &v1})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	require.NotNil(t, updated.CheckIn)
	assert.Equal(t, "09:00", *updated.CheckIn)

	checkOut := "17:00"
	_, err = repo.Update(ctx, created.ID, attendance.Patch{CheckOut: &checkOut, ExpectedVersion: &v1})
	assert.ErrorIs(t, err, attendance.ErrStaleRecord)
	assert.ErrorIs(t, err, attendance.ErrConflict)

	_, err = repo.Update(ctx, "missing", attendance.Patch{CheckOut: &checkOut})
	assert.ErrorIs(t, err, attendance.ErrNotFound)
}

func TestAttendanceRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-01"),
		Breaks: []attendance.Break{{StartTime: "12:00", EndTime: "12:30", DurationMinutes: 30}},
	})
	require.NoError(t, err)

	created.Breaks[0].DurationMinutes = 99

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Breaks[0].DurationMinutes)
}

func TestAttendanceRepository_ListAndSummarize(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	seed := []attendance.Attendance{
		{EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-01"), Status: attendance.StatusPresent, TotalWorkingMinutes: 480, TotalBreakMinutes: 30},
		{EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-02"), Status: attendance.StatusAbsent},
		{EmployeeID: "E1", StoreCode: "S1", Date: day(t, "2024-03-03"), Status: attendance.StatusHalfDay, TotalWorkingMinutes: 240},
		{EmployeeID: "E2", StoreCode: "S2", Date: day(t, "2024-03-01"), Status: attendance.StatusPresent, TotalWorkingMinutes: 420},
	}
	for _, rec := range seed {
		_, err := repo.Create(ctx, rec)
		require.NoError(t, err)
	}

	t.Run("scope restricts stores case-insensitively", func(t *testing.T) {
		records, total, err := repo.List(ctx, attendance.Filter{Scope: attendance.StoreScope{Codes: []string{"s1"}}})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, records, 3)
		assert.Equal(t, "2024-03-03", records[0].Date.String())
	})

	t.Run("empty scope sees nothing", func(t *testing.T) {
		_, total, err := repo.List(ctx, attendance.Filter{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		records, total, err := repo.List(ctx, attendance.Filter{
			Scope:     attendance.StoreScope{All: true},
			SortOrder: attendance.SortAsc,
			Page:      2,
			Limit:     3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, records, 1)
		assert.Equal(t, "2024-03-03", records[0].Date.String())
	})

	t.Run("date range and summary", func(t *testing.T) {
		from, to := day(t, "2024-03-01"), day(t, "2024-03-02")
		employeeID := "E1"
		summary, err := repo.Summarize(ctx, attendance.Filter{
			Scope:      attendance.StoreScope{All: true},
			EmployeeID: &employeeID,
			DateFrom:   &from,
			DateTo:     &to,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.Summary{
			TotalDays:           2,
			PresentDays:         1,
			AbsentDays:          1,
			TotalWorkingMinutes: 480,
			TotalBreakMinutes:   30,
		}, summary)
	})
}
