// Package calendar centralizes business-date arithmetic. Every aging and status
// computation takes "today" from here, in the fixed business timezone.
package calendar

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	BusinessTimezone = "America/Sao_Paulo"
	DateLayout       = "2006-01-02"
	day              = 24 * time.Hour
)

var ErrInvalidDate = errors.New("invalid date")

var businessLocation = mustLoad(BusinessTimezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Location returns the business timezone.
func Location() *time.Location {
	return businessLocation
}

// Clock is the source of "now" for the domain.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used by tests and replays.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// TodayAtMidnight truncates now to local midnight in the business timezone,
// whatever the process timezone is.
func TodayAtMidnight(now time.Time) time.Time {
	return Midnight(now)
}

// Midnight returns the start of t's civil day in the business timezone.
func Midnight(t time.Time) time.Time {
	l := t.In(businessLocation)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, businessLocation)
}

// Date builds a civil date at business midnight.
func Date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, businessLocation)
}

// DaysBetween is floor((b - a) / 24h); negative when b is before a.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	n := d / day
	if d%day != 0 && d < 0 {
		n--
	}
	return int(n)
}

// CivilDaysBetween counts calendar days from a's business date to b's, ignoring
// historical DST shifts that make some local days 23 or 25 hours long.
func CivilDaysBetween(a, b time.Time) int {
	return DaysBetween(utcCivil(a), utcCivil(b))
}

func utcCivil(t time.Time) time.Time {
	l := t.In(businessLocation)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a plain YYYY-MM-DD date as business midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, s, businessLocation)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders t's business date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(businessLocation).Format(DateLayout)
}

// AddMonths moves t forward by n months keeping the day of month, clamped to
// the last day of shorter months (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	l := t.In(businessLocation)
	first := time.Date(l.Year(), l.Month()+time.Month(n), 1, 0, 0, 0, 0, businessLocation)
	last := first.AddDate(0, 1, -1).Day()
	d := l.Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, businessLocation)
}
