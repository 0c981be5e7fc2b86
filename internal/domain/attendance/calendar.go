package attendance

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// CalendarDate is a day without time of day. It is the date half of the
// (employee, date) uniqueness key.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NormalizeDate resolves t in loc and drops the time of day, so the same
// local day always yields the same key regardless of the input offset.
func NormalizeDate(t time.Time, loc *time.Location) CalendarDate {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate parses YYYY-MM-DD.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	return DateOf(t), nil
}

// ParseDateInput accepts a YYYY-MM-DD day or an RFC3339 timestamp. A
// timestamp is reduced to its local day in loc.
func ParseDateInput(s string, loc *time.Location) (CalendarDate, error) {
	if d, err := ParseCalendarDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: date must be YYYY-MM-DD or an RFC3339 timestamp", ErrInvalidInput)
	}
	return NormalizeDate(t, loc), nil
}

// DateOf takes the year, month and day of t as they are, with no zone conversion.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns local midnight of the day in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// UTC returns the day as midnight UTC, the form stored in DATE columns.
func (d CalendarDate) UTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d CalendarDate) Before(o CalendarDate) bool {
	return d.UTC().Before(o.UTC())
}

func (d CalendarDate) After(o CalendarDate) bool {
	return d.UTC().After(o.UTC())
}

// AddDays moves the date by n days.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.UTC().AddDate(0, 0, n))
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display formats the date as DD/MM/YYYY.
func (d CalendarDate) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}
