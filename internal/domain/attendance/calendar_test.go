package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// 20:30 UTC on the 9th is already the 10th in UTC+7.
	late := time.Date(2024, time.January, 9, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, CalendarDate{2024, time.January, 10}, NormalizeDate(late, jakarta))
	assert.Equal(t, CalendarDate{2024, time.January, 9}, NormalizeDate(late, time.UTC))

	// Every instant of the local day maps to the same key.
	morning := time.Date(2024, time.January, 10, 0, 0, 1, 0, jakarta)
	night := time.Date(2024, time.January, 10, 23, 59, 59, 0, jakarta)
	assert.Equal(t, NormalizeDate(morning, jakarta), NormalizeDate(night, jakarta))
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, "29/02/2024", d.Display())
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d.UTC())

	for _, bad := range []string{"2023-02-29", "29/02/2024", "2024-1-5", ""} {
		_, err := ParseCalendarDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestParseDateInput(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	day, err := ParseDateInput("2024-01-10", jakarta)
	require.NoError(t, err)
	stamp, err := ParseDateInput("2024-01-10T22:30:00+07:00", jakarta)
	require.NoError(t, err)
	assert.Equal(t, day, stamp)

	// 18:00 UTC on the 10th is the 11th in UTC+7.
	utc, err := ParseDateInput("2024-01-10T18:00:00Z", jakarta)
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, time.January, 11}, utc)

	_, err = ParseDateInput("2024-01-10 22:30", jakarta)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalendarDate_Ordering(t *testing.T) {
	d := CalendarDate{2024, time.December, 31}
	next := d.AddDays(1)

	assert.Equal(t, CalendarDate{2025, time.January, 1}, next)
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.False(t, d.After(d))
	assert.True(t, CalendarDate{}.IsZero())
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), d.Time(time.UTC))
}
