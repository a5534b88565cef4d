package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/report"
)

func TestParseDay(t *testing.T) {
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-05-10",
		" 2024-05-10 ",
		"2024-05-10T00:00:00Z",
		"2024-05-10T23:59:59.999Z",
		"2024-05-11T01:30:00+02:00",
	} {
		got, err := report.ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "10/05/2024", "2024-13-01", "2024-05-10 10:00"} {
		_, err := report.ParseDay(in)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err), in)
	}
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-05-10 03:00 in UTC+9 is 2024-05-09 18:00 UTC.
	from, until := report.DayWindow(time.Date(2024, 5, 10, 3, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), until)
}

func TestDayWindow_AdjacentDaysLeaveNoGap(t *testing.T) {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	from, until := report.DayWindow(day)
	nextFrom, nextUntil := report.DayWindow(day.AddDate(0, 0, 1))
	assert.Equal(t, until, nextFrom)

	// Sub-millisecond timestamps near midnight belong to exactly one day.
	cases := []struct {
		ts    time.Time
		today bool
	}{
		{day.Add(24*time.Hour - time.Millisecond), true},
		{day.Add(24*time.Hour - 500*time.Microsecond), true},
		{day.Add(24*time.Hour - time.Nanosecond), true},
		{day.Add(24 * time.Hour), false},
	}
	for _, c := range cases {
		inToday := !c.ts.Before(from) && c.ts.Before(until)
		inTomorrow := !c.ts.Before(nextFrom) && c.ts.Before(nextUntil)
		assert.Equal(t, c.today, inToday, "%s", c.ts.Format(time.RFC3339Nano))
		assert.Equal(t, !c.today, inTomorrow, "%s", c.ts.Format(time.RFC3339Nano))
	}
}
