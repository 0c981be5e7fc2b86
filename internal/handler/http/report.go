package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance workbook export
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance handles GET /attendance/export
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := report.ExportFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		StoreCode: requestStoreCode(r),
	}

	export, err := h.reportService.ExportAttendance(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance export generated", "file", export.FileName, "records", export.Records, "role", caller.Role)
	response.File(w, export.FileName, export.ContentType, export.Content)
}
