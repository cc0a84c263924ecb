// Package dates centralizes all calendar math for the moodwave backend.
// The product targets a single regional market, so every day boundary is
// computed against one fixed UTC offset rather than the server's local
// time or the request's origin. All components must go through this
// package for "what day is it" and month-range questions.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Zone is the canonical timezone for all day-boundary computations.
var Zone = time.FixedZone("UTC+7", 7*60*60)

// Layout is the canonical wire format for date-only values.
const Layout = "2006-01-02"

// ErrInvalidDate indicates a date string that is malformed or not a real
// calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Clock abstracts "now" so date-dependent logic can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the real wall clock.
var System Clock = systemClock{}

// Date is a date-only value pinned to midnight in Zone.
type Date struct {
	t time.Time
}

// New builds a Date from calendar components. Components are normalized
// the same way time.Date normalizes them, so callers validating user
// input should go through Parse instead.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, Zone)}
}

// FromTime truncates a moment in real time to its canonical day.
func FromTime(t time.Time) Date {
	y, m, d := t.In(Zone).Date()
	return New(y, m, d)
}

// Today returns the canonical current day.
func Today(clock Clock) Date {
	return FromTime(clock.Now())
}

// DaysAgo returns the canonical day n days before today.
func DaysAgo(clock Clock, n int) Date {
	return Today(clock).AddDays(-n)
}

// Parse converts a canonical YYYY-MM-DD string to a Date. Malformed
// strings, out-of-range months or days, and calendar-invalid combinations
// (2025-02-30) are rejected.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, s, Zone)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := FromTime(t)
	// time.Parse normalizes some out-of-range components instead of
	// failing; round-tripping catches anything that slipped through.
	if d.Format() != s {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Format renders the canonical YYYY-MM-DD string. Format(Parse(s)) == s
// for every valid input.
func (d Date) Format() string {
	return d.t.Format(Layout)
}

// Time returns the first instant of the day in Zone.
func (d Date) Time() time.Time {
	return d.t
}

// AddDays returns the date n calendar days later (or earlier for
// negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// DiffDays returns a minus b in whole calendar days. Both dates are
// midnights in the same fixed offset, so the division is exact.
func DiffDays(a, b Date) int {
	return int(a.t.Sub(b.t) / (24 * time.Hour))
}

// MonthStart returns the first instant of the given calendar month in
// Zone. Month must be 1-12.
func MonthStart(year int, month int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, Zone), nil
}

// MonthEnd returns the last instant of the given calendar month in Zone.
func MonthEnd(year int, month int) (time.Time, error) {
	start, err := MonthStart(year, month)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
}

// YearStart returns the first instant of the given calendar year in Zone.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, Zone)
}

// YearEnd returns the last instant of the given calendar year in Zone.
func YearEnd(year int) time.Time {
	return YearStart(year + 1).Add(-time.Nanosecond)
}

// Weekday is a Sunday-first day-of-week enumeration.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// String returns the canonical three-letter label (Sun..Sat).
func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return "Sun"
	}
	return weekdayLabels[w]
}

// Weekday returns the day of week for d.
func (d Date) Weekday() Weekday {
	return Weekday(d.t.Weekday())
}

// WeekdayLabels lists the seven canonical labels, Sunday first.
func WeekdayLabels() [7]string {
	return weekdayLabels
}
