package domain

import (
	"testing"
	"time"
)

func TestProgress(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(100 * time.Second)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start", start.Add(-time.Hour), 0},
		{"at start", start, 0},
		{"midway", start.Add(25 * time.Second), 0.25},
		{"at end", end, 1},
		{"after end", end.Add(time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(start, end, tt.now); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("zero length span", func(t *testing.T) {
		if got := Progress(start, start, start.Add(-time.Second)); got != 1 {
			t.Errorf("Progress() = %v, want 1", got)
		}
	})
}

func TestProgressBoundedAndMonotonic(t *testing.T) {
	start := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)
	prev := -1.0
	for now := start.Add(-2 * time.Hour); now.Before(end.Add(2 * time.Hour)); now = now.Add(17 * time.Minute) {
		p := Progress(start, end, now)
		if p < 0 || p > 1 {
			t.Fatalf("Progress(%v) = %v, out of [0,1]", now, p)
		}
		if p < prev {
			t.Fatalf("Progress(%v) = %v, decreased from %v", now, p, prev)
		}
		prev = p
	}
}

func TestDaySpanAtMidnight(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	span := DaySpan(now)

	if span.Progress != 0 {
		t.Errorf("Progress = %v, want 0", span.Progress)
	}
	if span.Remaining != "24:00:00" {
		t.Errorf("Remaining = %q, want %q", span.Remaining, "24:00:00")
	}
	if !span.End.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("End = %v, want next midnight", span.End)
	}
}

func TestDaySpanRemainingFloors(t *testing.T) {
	now := time.Date(2024, time.March, 10, 23, 59, 58, 600_000_000, time.UTC)
	span := DaySpan(now)
	if span.Remaining != "00:00:01" {
		t.Errorf("Remaining = %q, want %q", span.Remaining, "00:00:01")
	}
}

func TestYearSpan(t *testing.T) {
	now := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)
	span := YearSpan(now)

	if span.Remaining != "0d 00:00:01" {
		t.Errorf("Remaining = %q, want %q", span.Remaining, "0d 00:00:01")
	}
	if !span.Start.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", span.Start)
	}

	leap := YearSpan(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if leap.Remaining != "366d 00:00:00" {
		t.Errorf("leap year Remaining = %q, want %q", leap.Remaining, "366d 00:00:00")
	}
}

func TestLifeSpanLeapDayBirth(t *testing.T) {
	dob := time.Date(2000, time.February, 29, 15, 30, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	span := LifeSpan(dob, now, 85)

	want := time.Date(2085, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !span.End.Equal(want) {
		t.Errorf("End = %v, want %v", span.End, want)
	}
	if !span.Start.Equal(time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, want local midnight of the birth date", span.Start)
	}

	odd := LifeSpan(dob, now, 1)
	if odd.End.Month() != time.February || odd.End.Day() != 28 {
		t.Errorf("End = %v, want Feb 28", odd.End)
	}
}

func TestLifeSpanDefaultsLifespan(t *testing.T) {
	dob := time.Date(1990, time.May, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)

	span := LifeSpan(dob, now, 0)
	if span.End.Year() != 1990+DefaultLifespanYears {
		t.Errorf("End year = %d, want %d", span.End.Year(), 1990+DefaultLifespanYears)
	}
	if span.Remaining != "51y 0m 0d 00:00:00" {
		t.Errorf("Remaining = %q", span.Remaining)
	}
}

func TestDeadlineSpanIsPure(t *testing.T) {
	set := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	target := time.Date(2024, time.January, 11, 9, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.January, 6, 9, 0, 0, 0, time.UTC)

	a := DeadlineSpan(set, target, now)
	b := DeadlineSpan(set, target, now)
	if a != b {
		t.Errorf("DeadlineSpan() not idempotent: %+v vs %+v", a, b)
	}
	if a.Progress != 0.5 {
		t.Errorf("Progress = %v, want 0.5", a.Progress)
	}
	if a.Remaining != "0y 0m 5d 00:00:00" {
		t.Errorf("Remaining = %q", a.Remaining)
	}
}
