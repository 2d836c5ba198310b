package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewSnapshot_AlwaysOnSpans(t *testing.T) {
	now := time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC)
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	snap := NewSnapshot(now, dob, 85, &Countdown{}, &Deadline{})
	lines := snap.Lines()

	if len(lines) != 4 {
		t.Fatalf("Lines() = %d lines, want 4: %v", len(lines), lines)
	}
	prefixes := []string{"now: 2024-07-01 06:00:00", "DAY  done:  25.0%", "YEAR done:", "LIFE done:"}
	for i, p := range prefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}
	if !strings.HasSuffix(lines[1], "remaining: 18:00:00") {
		t.Errorf("day line = %q", lines[1])
	}
}

func TestNewSnapshot_OptionalTimers(t *testing.T) {
	now := time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC)
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	var c Countdown
	_ = c.Set(60)
	c.Tick(60)
	var d Deadline
	d.Set(now.Add(time.Hour), now.Add(-time.Hour))

	snap := NewSnapshot(now, dob, 85, &c, &d)
	lines := snap.Lines()
	if len(lines) != 6 {
		t.Fatalf("Lines() = %d lines, want 6", len(lines))
	}
	if lines[4] != "COUNTDOWN done: 100.0%  remaining: DONE" {
		t.Errorf("countdown line = %q", lines[4])
	}
	if lines[5] != "DEADLINE done:  50.0%  remaining: 0y 0m 0d 01:00:00" {
		t.Errorf("deadline line = %q", lines[5])
	}
}

func TestSnapshot_WithCountdown(t *testing.T) {
	now := time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC)
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	var d Deadline
	d.Set(now.Add(time.Hour), now)

	cached := NewSnapshot(now, dob, 85, nil, &d)

	var c Countdown
	_ = c.Set(120)
	live := cached.WithCountdown(&c)

	modes := make([]Mode, 0, len(live.Spans))
	for _, r := range live.Spans {
		modes = append(modes, r.Mode)
	}
	want := []Mode{ModeDay, ModeYear, ModeLife, ModeCountdown, ModeDeadline}
	if len(modes) != len(want) {
		t.Fatalf("modes = %v, want %v", modes, want)
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("modes[%d] = %v, want %v", i, modes[i], want[i])
		}
	}

	c.Clear()
	if _, ok := live.WithCountdown(&c).Span(ModeCountdown); ok {
		t.Error("cleared countdown still reported")
	}
}

func TestSnapshot_Header(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	dob := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	header := NewSnapshot(now, dob, 85, nil, nil).Header()
	if !strings.HasPrefix(header, "now: 2024-01-01 12:00:00 | day  50.0% | year   0.1% | life   0.0%") {
		t.Errorf("Header() = %q", header)
	}
}
