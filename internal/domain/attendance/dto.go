package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE QUERY DTOs
// ========================================

type ListAttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StoreCode  string  `json:"store_code,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD or RFC3339
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD or RFC3339
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD or RFC3339
	Status     *string `json:"status,omitempty"`

	// Pagination, zero limit returns every match
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ListAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}
	if f.Limit > 0 && f.Page == 0 {
		f.Page = 1
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	errs = append(errs, validateDates(map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	})...)

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatsFilter struct {
	StoreCode string  `json:"store_code,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (f *StatsFilter) Validate() error {
	errs := validateDates(map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	})
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDates(fields map[string]*string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, name := range []string{"date", "start_date", "end_date"} {
		v, ok := fields[name]
		if !ok || v == nil || *v == "" {
			continue
		}
		if !validator.IsValidDateInput(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   name,
				Message: name + " must be a YYYY-MM-DD date or an RFC3339 timestamp",
			})
		}
	}
	return errs
}

type AttendanceResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	StoreCode           string  `json:"store_code"`
	Date                string  `json:"date"`
	Status              string  `json:"status"`
	CheckIn             *string `json:"check_in"`
	CheckOut            *string `json:"check_out"`
	Breaks              []Break `json:"breaks"`
	TotalBreakMinutes   int     `json:"total_break_minutes"`
	TotalWorkingMinutes int     `json:"total_working_minutes"`
	VerifiedByClient    bool    `json:"verified_by_client"`
	VerifiedAt          *string `json:"verified_at,omitempty"`
	MarkedBy            string  `json:"marked_by"`
	Remarks             string  `json:"remarks"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type StatsResponse struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"half_day"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page,omitempty"`
	Limit       int                  `json:"limit,omitempty"`
	TotalPages  int                  `json:"total_pages,omitempty"`
	Stats       StatsResponse        `json:"stats"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// ATTENDANCE MUTATION DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" validate:"notblank"`
	StoreCode  string  `json:"store_code" validate:"notblank"`
	Date       string  `json:"date" validate:"required,date_input"`
	Status     string  `json:"status" validate:"required,oneof=present absent halfDay"`
	CheckIn    *string `json:"check_in,omitempty" validate:"omitempty,hhmm"`
	CheckOut   *string `json:"check_out,omitempty" validate:"omitempty,hhmm"`
	Remarks    *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

func (r *MarkAttendanceRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.StoreCode = strings.TrimSpace(r.StoreCode)
	return validator.Struct(r)
}

// UpdateAttendanceRequest lets management correct a record after the fact.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=present absent halfDay"`
	CheckIn  *string `json:"check_in,omitempty" validate:"omitempty,hhmm"`
	CheckOut *string `json:"check_out,omitempty" validate:"omitempty,hhmm"`
	Remarks  *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Status == nil && r.CheckIn == nil && r.CheckOut == nil && r.Remarks == nil {
		return validator.ValidationErrors{{
			Field:   "body",
			Message: "at least one of status, check_in, check_out, remarks is required",
		}}
	}
	return nil
}

type VerifyAttendanceRequest struct {
	ID       string  `json:"-"`
	Verified *bool   `json:"verified,omitempty"`
	Remarks  *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

func (r *VerifyAttendanceRequest) Validate() error {
	if r.Verified == nil {
		v := true
		r.Verified = &v
	}
	return validator.Struct(r)
}

// ========================================
// SESSION DTOs
// ========================================

// StoreCodeInput accepts either "S1" or ["S1", ...] and keeps the first code.
type StoreCodeInput string

func (s *StoreCodeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var codes []string
		if err := json.Unmarshal(data, &codes); err != nil {
			return fmt.Errorf("store_code: %w", err)
		}
		if len(codes) > 0 {
			*s = StoreCodeInput(strings.TrimSpace(codes[0]))
		} else {
			*s = ""
		}
		return nil
	}
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("store_code: %w", err)
	}
	*s = StoreCodeInput(strings.TrimSpace(code))
	return nil
}

type CheckInRequest struct {
	EmployeeID string         `json:"employee_id" validate:"notblank"`
	StoreCode  StoreCodeInput `json:"store_code,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	return validator.Struct(r)
}

type StartBreakRequest struct {
	EmployeeID string `json:"employee_id" validate:"notblank"`
}

func (r *StartBreakRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	return validator.Struct(r)
}

type EndBreakRequest struct {
	EmployeeID     string `json:"employee_id" validate:"notblank"`
	BreakStartTime string `json:"break_start_time" validate:"required,hhmm"`
}

func (r *EndBreakRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	return validator.Struct(r)
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id" validate:"notblank"`
}

func (r *CheckOutRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	return validator.Struct(r)
}

type CheckInResponse struct {
	CheckIn string       `json:"check_in"`
	Date    string       `json:"date"`
	Status  SessionState `json:"status"`
}

type StartBreakResponse struct {
	BreakStartTime     string       `json:"break_start_time"`
	RemainingBreakTime int          `json:"remaining_break_time"`
	Status             SessionState `json:"status"`
}

type EndBreakResponse struct {
	BreakDuration      int    `json:"break_duration"`
	TotalBreakTime     int    `json:"total_break_time"`
	RemainingBreakTime int    `json:"remaining_break_time"`
	Status             string `json:"status"`
	Break              Break  `json:"break"`
}

type CheckOutResponse struct {
	CheckOut         string       `json:"check_out"`
	TotalWorkingTime int          `json:"total_working_time"`
	TotalBreakTime   int          `json:"total_break_time"`
	Status           SessionState `json:"status"`
}

type TodayStatusResponse struct {
	Status             SessionState `json:"status"`
	Date               string       `json:"date"`
	CheckIn            *string      `json:"check_in"`
	CheckOut           *string      `json:"check_out"`
	Breaks             []Break      `json:"breaks"`
	TotalBreakTime     int          `json:"total_break_time"`
	TotalWorkingTime   int          `json:"total_working_time"`
	RemainingBreakTime int          `json:"remaining_break_time"`
}

// ========================================
// EMPLOYEE HISTORY DTOs
// ========================================

type HistoryFilter struct {
	EmployeeID string  `json:"employee_id" validate:"notblank"`
	StartDate  *string `json:"start_date,omitempty" validate:"omitempty,date_input"`
	EndDate    *string `json:"end_date,omitempty" validate:"omitempty,date_input"`
	Page       int     `json:"page" validate:"min=0"`
	Limit      int     `json:"limit" validate:"min=0,max=100"`
}

func (f *HistoryFilter) Validate() error {
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	if err := validator.Struct(f); err != nil {
		return err
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	return nil
}

type HistoryEmployee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
}

type HistoryRecord struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"` // DD/MM/YYYY
	DateISO          string  `json:"date_iso"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Status           string  `json:"status"`
	WorkingHours     string  `json:"working_hours"` // H:MM
	BreakTime        string  `json:"break_time"`    // H:MM
	TotalBreaks      int     `json:"total_breaks"`
	Breaks           []Break `json:"breaks"`
	Remarks          string  `json:"remarks"`
	VerifiedByClient bool    `json:"verified_by_client"`
	MarkedBy         string  `json:"marked_by"`
	Store            string  `json:"store"`
	CreatedAt        string  `json:"created_at"`
}

type HistorySummary struct {
	TotalDays             int64  `json:"total_days"`
	PresentDays           int64  `json:"present_days"`
	TotalWorkingMinutes   int64  `json:"total_working_minutes"`
	TotalBreakMinutes     int64  `json:"total_break_minutes"`
	AverageWorkingMinutes int64  `json:"average_working_minutes"`
	TotalWorkingHours     string `json:"total_working_hours"`
	TotalBreakTime        string `json:"total_break_time"`
	AverageWorkingHours   string `json:"average_working_hours"`
}

type Pagination struct {
	CurrentPage    int   `json:"current_page"`
	TotalPages     int   `json:"total_pages"`
	TotalRecords   int64 `json:"total_records"`
	RecordsPerPage int   `json:"records_per_page"`
	HasNextPage    bool  `json:"has_next_page"`
	HasPrevPage    bool  `json:"has_prev_page"`
}

type EmployeeHistoryResponse struct {
	Employee   HistoryEmployee `json:"employee"`
	Attendance []HistoryRecord `json:"attendance"`
	Summary    HistorySummary  `json:"summary"`
	Pagination Pagination      `json:"pagination"`
}
