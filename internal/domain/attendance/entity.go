package attendance

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "halfDay"
)

var validStatuses = []string{string(StatusPresent), string(StatusAbsent), string(StatusHalfDay)}

// IsValid reports whether s is one of present, absent or halfDay.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// SessionState is derived from the day's record and never stored.
type SessionState string

const (
	StateNotCheckedIn SessionState = "not_checked_in"
	StateCheckedIn    SessionState = "checked_in"
	StateOnBreak      SessionState = "on_break"
	StateCheckedOut   SessionState = "checked_out"
)

// DefaultMarkedBy is recorded when the acting identity carries no name.
const DefaultMarkedBy = "System"

// DefaultBreakCapMinutes is the daily break budget per employee.
const DefaultBreakCapMinutes = 60

type Break struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Attendance struct {
	ID                  string
	EmployeeID          string
	StoreCode           string
	Date                CalendarDate
	Status              Status
	CheckIn             *string
	CheckOut            *string
	Breaks              []Break
	TotalBreakMinutes   int
	TotalWorkingMinutes int
	VerifiedByClient    bool
	VerifiedAt          *time.Time
	MarkedBy            string
	Remarks             string
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// State derives the session state from the presence of check-in and check-out.
func (a *Attendance) State() SessionState {
	if a == nil || a.CheckIn == nil {
		return StateNotCheckedIn
	}
	if a.CheckOut != nil {
		return StateCheckedOut
	}
	return StateCheckedIn
}

// Patch carries the fields an update overwrites. Nil fields are left untouched.
// ExpectedVersion turns the update into a compare-and-swap.
type Patch struct {
	StoreCode           *string
	Status              *Status
	CheckIn             *string
	CheckOut            *string
	Breaks              []Break
	TotalBreakMinutes   *int
	TotalWorkingMinutes *int
	VerifiedByClient    *bool
	VerifiedAt          *time.Time
	MarkedBy            *string
	Remarks             *string
	ExpectedVersion     *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.StoreCode == nil && p.Status == nil && p.CheckIn == nil && p.CheckOut == nil &&
		p.Breaks == nil && p.TotalBreakMinutes == nil && p.TotalWorkingMinutes == nil &&
		p.VerifiedByClient == nil && p.VerifiedAt == nil && p.MarkedBy == nil && p.Remarks == nil
}

// Apply returns a copy of a with the patch fields written over it.
func (p Patch) Apply(a Attendance) Attendance {
	if p.StoreCode != nil {
		a.StoreCode = *p.StoreCode
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CheckIn != nil {
		v := *p.CheckIn
		a.CheckIn = &v
	}
	if p.CheckOut != nil {
		v := *p.CheckOut
		a.CheckOut = &v
	}
	if p.Breaks != nil {
		a.Breaks = append([]Break(nil), p.Breaks...)
	}
	if p.TotalBreakMinutes != nil {
		a.TotalBreakMinutes = *p.TotalBreakMinutes
	}
	if p.TotalWorkingMinutes != nil {
		a.TotalWorkingMinutes = *p.TotalWorkingMinutes
	}
	if p.VerifiedByClient != nil {
		a.VerifiedByClient = *p.VerifiedByClient
	}
	if p.VerifiedAt != nil {
		v := *p.VerifiedAt
		a.VerifiedAt = &v
	}
	if p.MarkedBy != nil {
		a.MarkedBy = *p.MarkedBy
	}
	if p.Remarks != nil {
		a.Remarks = *p.Remarks
	}
	return a
}

// StoreScope is the set of stores a query may see. All wins over Codes.
type StoreScope struct {
	All   bool
	Codes []string
}

// Allows reports whether a record at storeCode is visible in the scope.
func (s StoreScope) Allows(storeCode string) bool {
	if s.All {
		return true
	}
	for _, code := range s.Codes {
		if strings.EqualFold(code, storeCode) {
			return true
		}
	}
	return false
}

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Filter selects records for List and Summarize. Zero Limit disables pagination.
type Filter struct {
	Scope      StoreScope
	EmployeeID *string
	Status     *Status
	DateFrom   *CalendarDate
	DateTo     *CalendarDate
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// Summary is an aggregate over a filtered record set.
type Summary struct {
	TotalDays           int64
	PresentDays         int64
	AbsentDays          int64
	HalfDays            int64
	TotalWorkingMinutes int64
	TotalBreakMinutes   int64
}

// Stats folds the status counts over records.
func Stats(records []Attendance) StatsResponse {
	stats := StatsResponse{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		case StatusHalfDay:
			stats.HalfDay++
		}
	}
	return stats
}
