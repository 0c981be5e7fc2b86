package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/validator"
)

const minutesPerDay = 24 * 60

// ParseClock returns the minutes since midnight of an HH:MM time.
func ParseClock(s string) (int, error) {
	if !validator.IsValidClock(s) {
		return 0, fmt.Errorf("%w: time %q must be in HH:MM format", ErrInvalidInput, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must be in HH:MM format", ErrInvalidInput, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockOf formats the wall-clock time of t in loc as HH:MM.
func ClockOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

// MinutesBetween returns the minutes from start to end. An end earlier than
// start is taken to be on the next day.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		e += minutesPerDay
	}
	return e - s, nil
}

// WorkingMinutes is (checkOut - checkIn) - breakMinutes, floored at zero.
func WorkingMinutes(checkIn, checkOut string, breakMinutes int) (int, error) {
	total, err := MinutesBetween(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return max(0, total-breakMinutes), nil
}

// FormatMinutes renders a duration in minutes as H:MM.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
