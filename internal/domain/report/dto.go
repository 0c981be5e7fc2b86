package report

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/validator"
)

// MaxExportDays bounds the date range of a single export.
const MaxExportDays = 92

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ========================================
// ATTENDANCE EXPORT
// ========================================

type ExportFilter struct {
	StartDate string `json:"start_date" validate:"required,calendar_date"`
	EndDate   string `json:"end_date" validate:"required,calendar_date"`
	StoreCode string `json:"store_code,omitempty"`
}

func (f *ExportFilter) Validate() error {
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)
	if err := validator.Struct(f); err != nil {
		return err
	}

	start, _ := validator.IsValidDate(f.StartDate)
	end, _ := validator.IsValidDate(f.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxExportDays {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: fmt.Sprintf("export range must not exceed %d days", MaxExportDays),
		}}
	}
	return nil
}

// AttendanceExport is a rendered workbook ready to be streamed.
type AttendanceExport struct {
	FileName    string
	ContentType string
	Records     int
	Content     []byte
}
