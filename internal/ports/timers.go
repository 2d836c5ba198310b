package ports

import (
	"context"
	"time"

	"github.com/xvierd/hourglass/internal/domain"
)

// Timers defines the countdown and deadline operations the dashboard drives.
// This is a driving port (implemented by services layer). Every mutation is
// persisted before it returns; on a persistence error the in-memory state
// has still changed.
type Timers interface {
	// Countdown returns a copy of the countdown.
	Countdown() domain.Countdown

	// Deadline returns a copy of the deadline.
	Deadline() domain.Deadline

	// SetCountdown starts a new countdown of the given seconds.
	SetCountdown(ctx context.Context, seconds uint64) error

	// ToggleCountdown pauses or resumes the countdown.
	ToggleCountdown(ctx context.Context) error

	// ResetCountdown restores the full duration, paused.
	ResetCountdown(ctx context.Context) error

	// ClearCountdown removes the countdown.
	ClearCountdown(ctx context.Context) error

	// SetDeadline points the deadline at target, measured from now.
	SetDeadline(ctx context.Context, target, now time.Time) error

	// ClearDeadline removes the deadline.
	ClearDeadline(ctx context.Context) error

	// Advance ticks a running countdown to now and reports whether it
	// completed on this call.
	Advance(ctx context.Context, now time.Time) (completed bool, err error)

	// Location describes where the timers are persisted.
	Location() string
}
