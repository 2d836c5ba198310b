package domain

import (
	"strconv"
	"time"
)

// CountdownDigits and DeadlineDigits are the exact entry lengths accepted
// by the digit-entry prompts.
const (
	CountdownDigits = 6
	DeadlineDigits  = 12
)

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseCountdownDigits parses HHMMSS into whole seconds. Minutes and seconds
// must be at most 59 and the total at least one second.
func ParseCountdownDigits(digits string) (uint64, error) {
	if len(digits) != CountdownDigits || !allDigits(digits) {
		return 0, ErrInvalidDurationDigits
	}
	h, m, s := atoi(digits[0:2]), atoi(digits[2:4]), atoi(digits[4:6])
	if m > 59 || s > 59 {
		return 0, ErrInvalidDurationDigits
	}
	total := uint64(h*3600 + m*60 + s)
	if total < 1 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// ParseDeadlineDigits parses YYYYMMDDHHMM as a wall-clock time in loc.
// Impossible dates such as Feb 30 are rejected instead of normalised.
func ParseDeadlineDigits(digits string, loc *time.Location) (time.Time, error) {
	if len(digits) != DeadlineDigits || !allDigits(digits) {
		return time.Time{}, ErrInvalidDeadlineDigits
	}
	year := atoi(digits[0:4])
	month := atoi(digits[4:6])
	day := atoi(digits[6:8])
	hour := atoi(digits[8:10])
	minute := atoi(digits[10:12])
	if year < 1 || month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) ||
		hour > 23 || minute > 59 {
		return time.Time{}, ErrInvalidDeadlineDigits
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), nil
}
