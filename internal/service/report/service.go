package report

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	attendancesvc "github.com/cmlabs-hris/facility-attendance-go/internal/service/attendance"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const (
	attendanceSheet = "Attendance"
	summarySheet    = "Summary"

	// lookupConcurrency caps parallel employee directory calls per export.
	lookupConcurrency = 8
)

var attendanceHeader = []interface{}{
	"Date", "Employee ID", "Employee Name", "Store", "Status",
	"Check In", "Check Out", "Breaks", "Break Time", "Working Time",
	"Verified", "Marked By", "Remarks",
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeDir    employee.Directory
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, employeeDir employee.Directory) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeDir:    employeeDir,
	}
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, caller user.Identity, filter report.ExportFilter) (report.AttendanceExport, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceExport{}, err
	}

	scope, err := attendancesvc.ResolveStoreScope(caller, filter.StoreCode)
	if err != nil {
		return report.AttendanceExport{}, err
	}

	from, err := attendance.ParseCalendarDate(filter.StartDate)
	if err != nil {
		return report.AttendanceExport{}, err
	}
	to, err := attendance.ParseCalendarDate(filter.EndDate)
	if err != nil {
		return report.AttendanceExport{}, err
	}

	query := attendance.Filter{Scope: scope, DateFrom: &from, DateTo: &to, SortOrder: attendance.SortAsc}

	records, _, err := s.attendanceRepo.List(ctx, query)
	if err != nil {
		return report.AttendanceExport{}, fmt.Errorf("failed to list attendance for export: %w", err)
	}
	summary, err := s.attendanceRepo.Summarize(ctx, query)
	if err != nil {
		return report.AttendanceExport{}, fmt.Errorf("failed to summarize attendance for export: %w", err)
	}

	names, err := s.employeeNames(ctx, records)
	if err != nil {
		return report.AttendanceExport{}, err
	}

	content, err := renderWorkbook(records, names, summary, from, to)
	if err != nil {
		return report.AttendanceExport{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.AttendanceExport{
		FileName:    fmt.Sprintf("attendance_%s_%s.xlsx", from, to),
		ContentType: report.ContentTypeXLSX,
		Records:     len(records),
		Content:     content,
	}, nil
}

// employeeNames resolves display names for every employee in records.
// Employees missing from the directory are left blank.
func (s *ReportServiceImpl) employeeNames(ctx context.Context, records []attendance.Attendance) (map[string]string, error) {
	ids := make(map[string]struct{})
	for _, r := range records {
		ids[r.EmployeeID] = struct{}{}
	}

	var (
		mu    sync.Mutex
		names = make(map[string]string, len(ids))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for id := range ids {
		id := id
		g.Go(func() error {
			emp, err := s.employeeDir.FindByID(gctx, id)
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to look up employee %s: %w", id, err)
			}
			mu.Lock()
			names[id] = emp.Name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

func clockCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func renderWorkbook(
	records []attendance.Attendance,
	names map[string]string,
	summary attendance.Summary,
	from, to attendance.CalendarDate,
) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), attendanceSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(attendanceSheet, "A1", &attendanceHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(attendanceSheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.Date.String(),
			r.EmployeeID,
			names[r.EmployeeID],
			r.StoreCode,
			string(r.Status),
			clockCell(r.CheckIn),
			clockCell(r.CheckOut),
			len(r.Breaks),
			attendance.FormatMinutes(r.TotalBreakMinutes),
			attendance.FormatMinutes(r.TotalWorkingMinutes),
			yesNo(r.VerifiedByClient),
			r.MarkedBy,
			r.Remarks,
		}
		if err := f.SetSheetRow(attendanceSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(attendanceSheet, "A", "M", 16); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Period", fmt.Sprintf("%s to %s", from, to)},
		{"Total Records", summary.TotalDays},
		{"Present", summary.PresentDays},
		{"Absent", summary.AbsentDays},
		{"Half Day", summary.HalfDays},
		{"Total Working Time", attendance.FormatMinutes(int(summary.TotalWorkingMinutes))},
		{"Total Break Time", attendance.FormatMinutes(int(summary.TotalBreakMinutes))},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
