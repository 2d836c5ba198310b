package domain

import (
	"fmt"
	"time"
)

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDay limits day to the last valid day of year/month.
func clampDay(year int, month time.Month, day int) int {
	if last := daysIn(year, month); day > last {
		return last
	}
	return day
}

// AddYears adds n calendar years to t, keeping month, day and clock time.
// The day is clamped to the end of the resulting month, so Feb 29 lands
// on Feb 28 in non-leap target years instead of rolling into March.
func AddYears(t time.Time, n int) time.Time {
	year := t.Year() + n
	day := clampDay(year, t.Month(), t.Day())
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddMonths adds n calendar months to t with the same day clamping as AddYears.
func AddMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	day := clampDay(year, month, t.Day())
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Breakdown is a calendar-decomposed interval.
type Breakdown struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// String formats the breakdown as "Yy Mm Dd HH:MM:SS".
func (b Breakdown) String() string {
	return fmt.Sprintf("%dy %dm %dd %02d:%02d:%02d", b.Years, b.Months, b.Days, b.Hours, b.Minutes, b.Seconds)
}

// Diff decomposes the interval [from, to] into whole years, then whole
// months, then a days/hours/minutes/seconds residual. Each greedy stage
// backs off by one unit when its candidate overshoots to, so from plus the
// breakdown never lands after to. An empty or inverted interval yields zero.
func Diff(from, to time.Time) Breakdown {
	if !to.After(from) {
		return Breakdown{}
	}

	years := to.Year() - from.Year()
	candidate := AddYears(from, years)
	if candidate.After(to) {
		years--
		candidate = AddYears(from, years)
	}

	months := (to.Year()-candidate.Year())*12 + int(to.Month()) - int(candidate.Month())
	next := AddMonths(candidate, months)
	if next.After(to) {
		months--
		next = AddMonths(candidate, months)
	}
	candidate = next
	// Month-stage clamping can reach a full year the year stage had to skip
	// (Feb 29 starts); fold it back so months stays below 12.
	if months >= 12 {
		years += months / 12
		months %= 12
	}

	total := int64(to.Sub(candidate) / time.Second)
	return Breakdown{
		Years:   years,
		Months:  months,
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// FormatHMS formats whole seconds as HH:MM:SS. Negative values format as zero.
func FormatHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatDHMS formats whole seconds as "Dd HH:MM:SS". Negative values format as zero.
func FormatDHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dd %02d:%02d:%02d", seconds/86400, seconds%86400/3600, seconds%3600/60, seconds%60)
}

// wholeSeconds floors a duration to whole seconds, never below zero.
func wholeSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
