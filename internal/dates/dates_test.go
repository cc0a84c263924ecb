package dates

import (
	"errors"
	"testing"
	"time"
)

// fixedClock returns a constant instant for deterministic tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"2025-01-01",
		"2025-02-28",
		"2024-02-29", // leap day
		"2025-11-09",
		"1999-12-31",
	}

	for _, s := range inputs {
		d, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", s, err)
			continue
		}
		if got := d.Format(); got != s {
			t.Errorf("Format(Parse(%q)) = %q, want %q", s, got, s)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	inputs := []string{
		"2025-02-30", // February has no day 30
		"2025-13-01", // month out of range
		"2025-00-10", // month zero
		"2025-04-31", // April has 30 days
		"2025-1-02",  // missing zero padding
		"2025/01/02", // wrong separator
		"01-02-2025", // wrong field order
		"20250102",   // no separators
		"",
		"not-a-date",
	}

	for _, s := range inputs {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) = nil error, want ErrInvalidDate", s)
		} else if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestTodayUsesFixedOffset(t *testing.T) {
	// 2025-11-09 18:30 UTC is already 2025-11-10 01:30 in UTC+7.
	clock := fixedClock{now: time.Date(2025, time.November, 9, 18, 30, 0, 0, time.UTC)}

	if got := Today(clock).Format(); got != "2025-11-10" {
		t.Errorf("Today() = %s, want 2025-11-10", got)
	}
}

func TestDaysAgo(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, Zone)}

	cases := []struct {
		n    int
		want string
	}{
		{0, "2025-03-10"},
		{1, "2025-03-09"},
		{10, "2025-02-28"}, // crosses a month boundary
		{14, "2025-02-24"},
	}

	for _, tc := range cases {
		if got := DaysAgo(clock, tc.n).Format(); got != tc.want {
			t.Errorf("DaysAgo(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	start, err := MonthStart(2025, 2)
	if err != nil {
		t.Fatalf("MonthStart(2025, 2) returned error: %v", err)
	}
	if start.Year() != 2025 || start.Month() != time.February || start.Day() != 1 {
		t.Errorf("MonthStart(2025, 2) = %v, want 2025-02-01", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("MonthStart(2025, 2) is not the first instant: %v", start)
	}

	end, err := MonthEnd(2025, 2)
	if err != nil {
		t.Fatalf("MonthEnd(2025, 2) returned error: %v", err)
	}
	if end.Month() != time.February || end.Day() != 28 {
		t.Errorf("MonthEnd(2025, 2) = %v, want last instant of 2025-02-28", end)
	}

	leapEnd, err := MonthEnd(2024, 2)
	if err != nil {
		t.Fatalf("MonthEnd(2024, 2) returned error: %v", err)
	}
	if leapEnd.Day() != 29 {
		t.Errorf("MonthEnd(2024, 2) day = %d, want 29", leapEnd.Day())
	}
}

func TestMonthBoundsRejectBadMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if _, err := MonthStart(2025, month); err == nil {
			t.Errorf("MonthStart(2025, %d) = nil error, want ErrInvalidDate", month)
		}
		if _, err := MonthEnd(2025, month); err == nil {
			t.Errorf("MonthEnd(2025, %d) = nil error, want ErrInvalidDate", month)
		}
	}
}

func TestDiffDays(t *testing.T) {
	a, _ := Parse("2025-11-10")
	b, _ := Parse("2025-11-09")
	c, _ := Parse("2025-11-07")

	if got := DiffDays(a, b); got != 1 {
		t.Errorf("DiffDays(Nov 10, Nov 9) = %d, want 1", got)
	}
	if got := DiffDays(b, c); got != 2 {
		t.Errorf("DiffDays(Nov 9, Nov 7) = %d, want 2", got)
	}
	if got := DiffDays(c, a); got != -3 {
		t.Errorf("DiffDays(Nov 7, Nov 10) = %d, want -3", got)
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		date string
		want Weekday
	}{
		{"2025-11-09", Sunday},
		{"2025-11-10", Monday},
		{"2025-11-15", Saturday},
	}

	for _, tc := range cases {
		d, err := Parse(tc.date)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.date, err)
		}
		if got := d.Weekday(); got != tc.want {
			t.Errorf("Weekday(%s) = %s, want %s", tc.date, got, tc.want)
		}
	}
}

func TestWeekdayLabelsSundayFirst(t *testing.T) {
	labels := WeekdayLabels()
	want := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if labels != want {
		t.Errorf("WeekdayLabels() = %v, want %v", labels, want)
	}
}
