package domain

import "errors"

// Errors returned by timer operations and digit-entry parsing. Their text is
// shown verbatim in the settings pane, so it is written as a sentence.
var (
	ErrCountdownNotConfigured = errors.New("Countdown timer is not configured.")
	ErrCountdownDone          = errors.New("Countdown is DONE. Reset to start again.")
	ErrInvalidDuration        = errors.New("Duration must be at least 1 second.")
	ErrInvalidDurationDigits  = errors.New("Enter 6 digits (HHMMSS).")
	ErrInvalidDeadlineDigits  = errors.New("Enter 12 digits (YYYYMMDDHHMM).")
)
