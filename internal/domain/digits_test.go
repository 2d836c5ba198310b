package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseCountdownDigits(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr error
	}{
		{"013000", 5400, nil},
		{"000001", 1, nil},
		{"990000", 99 * 3600, nil},
		{"000000", 0, ErrInvalidDuration},
		{"006000", 0, ErrInvalidDurationDigits},
		{"000060", 0, ErrInvalidDurationDigits},
		{"12345", 0, ErrInvalidDurationDigits},
		{"12a456", 0, ErrInvalidDurationDigits},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCountdownDigits(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCountdownDigits() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDeadlineDigits(t *testing.T) {
	got, err := ParseDeadlineDigits("202512312359", time.UTC)
	if err != nil {
		t.Fatalf("ParseDeadlineDigits() error = %v", err)
	}
	want := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDeadlineDigits() = %v, want %v", got, want)
	}

	for _, bad := range []string{"202502301200", "202513011200", "202501012400", "202501011260", "2025010112", "00000101000a"} {
		if _, err := ParseDeadlineDigits(bad, time.UTC); !errors.Is(err, ErrInvalidDeadlineDigits) {
			t.Errorf("ParseDeadlineDigits(%q) error = %v, want %v", bad, err, ErrInvalidDeadlineDigits)
		}
	}

	if _, err := ParseDeadlineDigits("202402291200", time.UTC); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
}
