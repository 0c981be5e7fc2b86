package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/store"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const testDay = "2024-01-10"

// testClock is a settable wall clock pinned to testDay in UTC.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t *testing.T, hhmm string) {
	t.Helper()
	tod, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Date(2024, time.January, 10, tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

type fixture struct {
	repo       attendance.AttendanceRepository
	employees  *memory.EmployeeDirectory
	stores     *memory.StoreDirectory
	clock      *testClock
	attendance attendance.AttendanceService
	session    attendance.SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{}
	clock.Set(t, "08:00")

	repo := memory.NewAttendanceRepository()
	employees := memory.NewEmployeeDirectory(
		employee.Employee{ID: "E1", EmployeeCode: "EMP-001", Name: "Eko Prasetyo", Department: "Housekeeping", AssignedStore: "S1", Active: true},
		employee.Employee{ID: "E2", EmployeeCode: "EMP-002", Name: "Dewi Lestari", Department: "Front Office", AssignedStore: "S2", Active: true},
		employee.Employee{ID: "E3", EmployeeCode: "EMP-003", Name: "Budi Santoso", Department: "Housekeeping", AssignedStore: "S3", Active: true},
		employee.Employee{ID: "E9", EmployeeCode: "EMP-009", Name: "Rina Wati", Department: "Housekeeping", AssignedStore: "S1", Active: false},
	)
	stores := memory.NewStoreDirectory(
		store.Store{ID: "st-1", Code: "S1", Name: "Central Mall"},
		store.Store{ID: "st-2", Code: "S2", Name: "Harbour Point"},
		store.Store{ID: "st-3", Code: "S3", Name: "Riverside"},
	)

	opts := Options{
		BreakCapMinutes: attendance.DefaultBreakCapMinutes,
		Location:        time.UTC,
		Now:             clock.Now,
	}

	return &fixture{
		repo:       repo,
		employees:  employees,
		stores:     stores,
		clock:      clock,
		attendance: NewAttendanceService(repo, employees, stores, opts),
		session:    NewSessionService(repo, employees, stores, opts),
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

var (
	adminCaller = user.Identity{UserID: "u-admin", Name: "Ayu Admin", Role: user.RoleAdmin}

	siteManagerS1 = user.Identity{UserID: "u-sm1", Name: "Sari Manager", Role: user.RoleSiteManager, AssignedStore: strPtr("S1")}

	clientS1S3 = user.Identity{UserID: "u-client", Name: "Client Co", Role: user.RoleClient, Stores: []string{"S1", "S3"}}

	housekeeperE1 = user.Identity{UserID: "u-e1", Name: "Eko Prasetyo", Role: user.RoleHousekeeper, EmployeeID: strPtr("E1"), AssignedStore: strPtr("S1")}
)

func (f *fixture) seed(t *testing.T, rec attendance.Attendance) attendance.Attendance {
	t.Helper()
	if rec.Date.IsZero() {
		d, err := attendance.ParseCalendarDate(testDay)
		require.NoError(t, err)
		rec.Date = d
	}
	if rec.Status == "" {
		rec.Status = attendance.StatusPresent
	}
	created, err := f.repo.Create(context.Background(), rec)
	require.NoError(t, err)
	return created
}
