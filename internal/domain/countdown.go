package domain

// CountdownStatus is the derived lifecycle state of a countdown.
type CountdownStatus string

const (
	CountdownUnconfigured CountdownStatus = "unconfigured"
	CountdownRunning      CountdownStatus = "running"
	CountdownPaused       CountdownStatus = "paused"
	CountdownDone         CountdownStatus = "done"
)

// Countdown is a user-set duration counting down in whole seconds.
//
// Remaining never exceeds Duration, and Running implies Configured with
// Remaining > 0. The zero value is an unconfigured countdown.
type Countdown struct {
	Duration   uint64
	Remaining  uint64
	Running    bool
	Configured bool

	justCompleted bool
}

// RestoreCountdown rebuilds a countdown from persisted fields. A zero
// duration yields an unconfigured countdown; remaining is clamped to the
// duration and the countdown always comes back paused. changed reports
// whether the stored values differ from the restored ones.
func RestoreCountdown(duration, remaining uint64, running bool) (c Countdown, changed bool) {
	if duration == 0 {
		return Countdown{}, false
	}
	c = Countdown{Duration: duration, Remaining: remaining, Configured: true}
	if c.Remaining > c.Duration {
		c.Remaining = c.Duration
		changed = true
	}
	if running {
		changed = true
	}
	return c, changed
}

// Status returns the current lifecycle state.
func (c *Countdown) Status() CountdownStatus {
	switch {
	case !c.Configured:
		return CountdownUnconfigured
	case c.Remaining == 0:
		return CountdownDone
	case c.Running:
		return CountdownRunning
	default:
		return CountdownPaused
	}
}

// Set configures the countdown with seconds and starts it running.
func (c *Countdown) Set(seconds uint64) error {
	if seconds < 1 {
		return ErrInvalidDuration
	}
	*c = Countdown{Duration: seconds, Remaining: seconds, Running: true, Configured: true}
	return nil
}

// Toggle flips between running and paused.
func (c *Countdown) Toggle() error {
	if !c.Configured {
		return ErrCountdownNotConfigured
	}
	if c.Remaining == 0 {
		return ErrCountdownDone
	}
	c.Running = !c.Running
	return nil
}

// Tick subtracts whole elapsed seconds from a running countdown. It reports
// whether any persisted field changed. Reaching zero stops the countdown and
// raises the one-shot completion flag.
func (c *Countdown) Tick(seconds uint64) bool {
	if !c.Running || seconds == 0 {
		return false
	}
	if seconds >= c.Remaining {
		c.Remaining = 0
		c.Running = false
		c.justCompleted = true
		return true
	}
	c.Remaining -= seconds
	return true
}

// Reset restores the full duration and pauses.
func (c *Countdown) Reset() error {
	if !c.Configured {
		return ErrCountdownNotConfigured
	}
	c.Remaining = c.Duration
	c.Running = false
	c.justCompleted = false
	return nil
}

// Clear returns the countdown to the unconfigured state.
func (c *Countdown) Clear() {
	*c = Countdown{}
}

// TakeCompleted reports and clears the one-shot completion flag.
func (c *Countdown) TakeCompleted() bool {
	done := c.justCompleted
	c.justCompleted = false
	return done
}

// Progress is the elapsed fraction of the duration. A done countdown
// reports 1 and an unconfigured one 0.
func (c *Countdown) Progress() float64 {
	if !c.Configured || c.Duration == 0 {
		return 0
	}
	if c.Remaining == 0 {
		return 1
	}
	return float64(c.Duration-c.Remaining) / float64(c.Duration)
}

// RemainingText formats the remaining time as HH:MM:SS, or DONE.
func (c *Countdown) RemainingText() string {
	if c.Configured && c.Remaining == 0 {
		return DoneText
	}
	return FormatHMS(int64(c.Remaining))
}
