package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/store"
)

// maxWriteAttempts bounds compare-and-swap retries on a contended record.
const maxWriteAttempts = 2

// Options tunes the attendance services. Zero values fall back to defaults.
type Options struct {
	BreakCapMinutes int
	Location        *time.Location
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BreakCapMinutes <= 0 {
		o.BreakCapMinutes = attendance.DefaultBreakCapMinutes
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// base carries the collaborators shared by the query, mutation and session services.
type base struct {
	attendance.AttendanceRepository
	employeeDir employee.Directory
	storeDir    store.Directory
	opts        Options
}

func newBase(
	attendanceRepo attendance.AttendanceRepository,
	employeeDir employee.Directory,
	storeDir store.Directory,
	opts Options,
) base {
	return base{
		AttendanceRepository: attendanceRepo,
		employeeDir:          employeeDir,
		storeDir:             storeDir,
		opts:                 opts.withDefaults(),
	}
}

// today is the current calendar day in the configured location.
func (b *base) today() attendance.CalendarDate {
	return attendance.NormalizeDate(b.opts.Now(), b.opts.Location)
}

// clock is the current wall-clock time as HH:MM.
func (b *base) clock() string {
	return attendance.ClockOf(b.opts.Now(), b.opts.Location)
}

func (b *base) remainingBreak(totalBreakMinutes int) int {
	return max(0, b.opts.BreakCapMinutes-totalBreakMinutes)
}

func (b *base) findEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := b.employeeDir.FindByID(ctx, id)
	if err != nil {
		return employee.Employee{}, lookupError(err)
	}
	return emp, nil
}

func (b *base) findStore(ctx context.Context, value string) (store.Store, error) {
	st, err := b.storeDir.FindByIDOrCode(ctx, value)
	if err != nil {
		return store.Store{}, lookupError(err)
	}
	return st, nil
}

// lookupError converts directory misses into attendance NotFound errors.
func lookupError(err error) error {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return attendance.ErrEmployeeNotFound
	case errors.Is(err, store.ErrStoreNotFound):
		return attendance.ErrStoreNotFound
	default:
		return fmt.Errorf("directory lookup failed: %w", err)
	}
}

// casUpdate applies the patch built from current as a compare-and-swap. When
// another writer got there first the record is re-read and build runs again,
// so build must re-check every state precondition.
func (b *base) casUpdate(
	ctx context.Context,
	current attendance.Attendance,
	build func(current attendance.Attendance) (attendance.Patch, error),
) (attendance.Attendance, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		if attempt > 0 {
			var err error
			current, err = b.GetByID(ctx, current.ID)
			if err != nil {
				return attendance.Attendance{}, err
			}
		}

		patch, err := build(current)
		if err != nil {
			return attendance.Attendance{}, err
		}
		version := current.Version
		patch.ExpectedVersion = &version

		updated, err := b.Update(ctx, current.ID, patch)
		if errors.Is(err, attendance.ErrStaleRecord) {
			continue
		}
		if err != nil {
			return attendance.Attendance{}, err
		}
		return updated, nil
	}
	return attendance.Attendance{}, attendance.ErrStaleRecord
}

type AttendanceServiceImpl struct {
	base
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeDir employee.Directory,
	storeDir store.Directory,
	opts Options,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{base: newBase(attendanceRepo, employeeDir, storeDir, opts)}
}

type SessionServiceImpl struct {
	base
}

func NewSessionService(
	attendanceRepo attendance.AttendanceRepository,
	employeeDir employee.Directory,
	storeDir store.Directory,
	opts Options,
) attendance.SessionService {
	return &SessionServiceImpl{base: newBase(attendanceRepo, employeeDir, storeDir, opts)}
}
