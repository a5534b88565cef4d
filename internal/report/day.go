package report

import (
	"strings"
	"time"

	"jobmate/jobboard-service/internal/apperr"
)

const dayLayout = "2006-01-02"

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the start
// of that calendar day in UTC. Timestamps are converted to UTC first.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Invalid("date is required")
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, apperr.Invalid("date must be an ISO date, got %q", s)
		}
	}
	return StartOfDay(t), nil
}

// StartOfDay truncates t to 00:00:00 UTC of its UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the half-open range [from, until) covering day's UTC
// calendar day; until is the next midnight.
func DayWindow(day time.Time) (from, until time.Time) {
	from = StartOfDay(day)
	return from, from.Add(24 * time.Hour)
}
