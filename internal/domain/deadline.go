package domain

import "time"

// Deadline is a fixed target instant. Progress runs from the moment the
// target was set, so it is derived on demand rather than stored.
type Deadline struct {
	Target     time.Time
	SetAt      time.Time
	Configured bool
}

// Set points the deadline at target, starting from now. Targets in the past
// are accepted and are immediately done.
func (d *Deadline) Set(target, now time.Time) {
	*d = Deadline{Target: target, SetAt: now, Configured: true}
}

// Clear returns the deadline to the unconfigured state.
func (d *Deadline) Clear() {
	*d = Deadline{}
}

// Span evaluates the deadline at now. ok is false when unconfigured.
func (d *Deadline) Span(now time.Time) (TimeSpan, bool) {
	if !d.Configured {
		return TimeSpan{}, false
	}
	return DeadlineSpan(d.SetAt, d.Target, now), true
}

// Done reports whether a configured deadline has been reached at now.
func (d *Deadline) Done(now time.Time) bool {
	span, ok := d.Span(now)
	return ok && span.Done()
}
