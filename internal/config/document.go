package config

import (
	"time"

	"github.com/spf13/cast"
)

// Document keys recognised in the persisted store.
const (
	KeyDOB       = "dob"
	KeyCountdown = "countdown_timer"
	KeyDeadline  = "deadline_timer"
)

// DateLayout is the stored date-of-birth format.
const DateLayout = "2006-01-02"

// localLayouts are accepted for offset-less ISO timestamps, read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Document is the flat key-value document held by a store. Values that are
// absent or malformed read back as unset; they are never an error.
type Document map[string]any

// CountdownRecord is the persisted form of a countdown timer.
type CountdownRecord struct {
	DurationSeconds  uint64 `json:"duration_seconds"`
	RemainingSeconds uint64 `json:"remaining_seconds"`
	IsRunning        bool   `json:"is_running"`
}

// DeadlineRecord is the persisted form of a deadline timer.
type DeadlineRecord struct {
	Target time.Time
	SetAt  time.Time
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// DOB returns the stored date of birth at local midnight.
func (d Document) DOB() (time.Time, bool) {
	raw, err := cast.ToStringE(d[KeyDOB])
	if err != nil || raw == "" {
		return time.Time{}, false
	}
	return ParseDate(raw)
}

// SetDOB stores the calendar date of t.
func (d Document) SetDOB(t time.Time) {
	d[KeyDOB] = t.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD as local midnight.
func ParseDate(raw string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Countdown returns the stored countdown record.
func (d Document) Countdown() (CountdownRecord, bool) {
	raw, ok := d[KeyCountdown]
	if !ok || raw == nil {
		return CountdownRecord{}, false
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return CountdownRecord{}, false
	}
	duration, err := cast.ToUint64E(m["duration_seconds"])
	if err != nil {
		return CountdownRecord{}, false
	}
	remaining, err := cast.ToUint64E(m["remaining_seconds"])
	if err != nil {
		return CountdownRecord{}, false
	}
	running, err := cast.ToBoolE(m["is_running"])
	if err != nil {
		return CountdownRecord{}, false
	}
	return CountdownRecord{
		DurationSeconds:  duration,
		RemainingSeconds: remaining,
		IsRunning:        running,
	}, true
}

// SetCountdown stores r.
func (d Document) SetCountdown(r CountdownRecord) {
	d[KeyCountdown] = map[string]any{
		"duration_seconds":  r.DurationSeconds,
		"remaining_seconds": r.RemainingSeconds,
		"is_running":        r.IsRunning,
	}
}

// ClearCountdown removes the countdown record.
func (d Document) ClearCountdown() {
	delete(d, KeyCountdown)
}

// Deadline returns the stored deadline record.
func (d Document) Deadline() (DeadlineRecord, bool) {
	raw, ok := d[KeyDeadline]
	if !ok || raw == nil {
		return DeadlineRecord{}, false
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return DeadlineRecord{}, false
	}
	target, ok := ParseTimestamp(cast.ToString(m["target_local_datetime_iso"]))
	if !ok {
		return DeadlineRecord{}, false
	}
	setAt, ok := ParseTimestamp(cast.ToString(m["set_local_datetime_iso"]))
	if !ok {
		return DeadlineRecord{}, false
	}
	return DeadlineRecord{Target: target, SetAt: setAt}, true
}

// SetDeadline stores r with explicit UTC offsets.
func (d Document) SetDeadline(r DeadlineRecord) {
	d[KeyDeadline] = map[string]any{
		"target_local_datetime_iso": r.Target.Format(time.RFC3339),
		"set_local_datetime_iso":    r.SetAt.Format(time.RFC3339),
	}
}

// ClearDeadline removes the deadline record.
func (d Document) ClearDeadline() {
	delete(d, KeyDeadline)
}

// ParseTimestamp parses an ISO-8601 timestamp. Values carrying an offset keep
// it; values without one are read as local wall-clock time.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.Local(), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
