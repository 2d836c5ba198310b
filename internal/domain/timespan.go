package domain

import "time"

// DefaultLifespanYears is the lifespan used when none is configured.
const DefaultLifespanYears = 85

// DoneText is shown in place of a remaining time once a timer has finished.
const DoneText = "DONE"

// TimeSpan is a bounded interval evaluated at a particular instant.
// It is built fresh for every evaluation and never mutated afterwards.
type TimeSpan struct {
	Start     time.Time
	End       time.Time
	Now       time.Time
	Progress  float64
	Remaining string
}

// Done reports whether the span has fully elapsed.
func (s TimeSpan) Done() bool {
	return s.Progress >= 1
}

// Progress returns the elapsed fraction of [start, end) at now, clamped to
// [0, 1]. A zero-length or inverted span reports 1.
func Progress(start, end, now time.Time) float64 {
	if !now.After(start) {
		if !end.After(start) {
			return 1
		}
		return 0
	}
	if !now.Before(end) {
		return 1
	}
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Midnight returns 00:00 of the given calendar date in loc.
func Midnight(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DaySpan covers [local midnight of now's date, next local midnight).
// Remaining is formatted HH:MM:SS.
func DaySpan(now time.Time) TimeSpan {
	y, m, d := now.Date()
	start := Midnight(y, m, d, now.Location())
	end := Midnight(y, m, d+1, now.Location())
	return TimeSpan{
		Start:     start,
		End:       end,
		Now:       now,
		Progress:  Progress(start, end, now),
		Remaining: FormatHMS(wholeSeconds(end.Sub(now))),
	}
}

// YearSpan covers [Jan 1 of now's year, Jan 1 of the next year) in local time.
// Remaining is formatted "Dd HH:MM:SS".
func YearSpan(now time.Time) TimeSpan {
	start := Midnight(now.Year(), time.January, 1, now.Location())
	end := Midnight(now.Year()+1, time.January, 1, now.Location())
	return TimeSpan{
		Start:     start,
		End:       end,
		Now:       now,
		Progress:  Progress(start, end, now),
		Remaining: FormatDHMS(wholeSeconds(end.Sub(now))),
	}
}

// LifeSpan starts at local midnight of dob and ends lifespanYears calendar
// years later. Only the calendar date of dob is used. A non-positive
// lifespanYears falls back to DefaultLifespanYears.
func LifeSpan(dob time.Time, now time.Time, lifespanYears int) TimeSpan {
	if lifespanYears <= 0 {
		lifespanYears = DefaultLifespanYears
	}
	start := Midnight(dob.Year(), dob.Month(), dob.Day(), now.Location())
	end := AddYears(start, lifespanYears)
	return TimeSpan{
		Start:     start,
		End:       end,
		Now:       now,
		Progress:  Progress(start, end, now),
		Remaining: Diff(now, end).String(),
	}
}

// DeadlineSpan runs from the instant a deadline was set to its target.
func DeadlineSpan(setAt, target, now time.Time) TimeSpan {
	return TimeSpan{
		Start:     setAt,
		End:       target,
		Now:       now,
		Progress:  Progress(setAt, target, now),
		Remaining: Diff(now, target).String(),
	}
}
