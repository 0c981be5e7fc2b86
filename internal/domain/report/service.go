package report

import (
	"context"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// ExportAttendance renders the caller's visible records for the range as XLSX
	ExportAttendance(ctx context.Context, caller user.Identity, filter ExportFilter) (AttendanceExport, error)
}
