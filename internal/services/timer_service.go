package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/domain"
	"github.com/xvierd/hourglass/internal/ports"
)

// TimerService owns the countdown and deadline and writes every change
// through to the store before returning.
type TimerService struct {
	store     ports.Store
	doc       config.Document
	countdown domain.Countdown
	deadline  domain.Deadline

	// tickAnchor is the instant whole seconds are counted from while the
	// countdown runs; zero when it is not running.
	tickAnchor time.Time
	// stale marks a restored countdown whose stored fields need rewriting.
	stale bool
}

// Ensure TimerService implements ports.Timers.
var _ ports.Timers = (*TimerService)(nil)

// NewTimerService loads the timers from store.
func NewTimerService(ctx context.Context, store ports.Store) (*TimerService, error) {
	s := &TimerService{store: store}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TimerService) load(ctx context.Context) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timers: %w", err)
	}
	if doc == nil {
		doc = config.Document{}
	}
	s.doc = doc

	if rec, ok := doc.Countdown(); ok {
		c, changed := domain.RestoreCountdown(rec.DurationSeconds, rec.RemainingSeconds, rec.IsRunning)
		c.Running = rec.IsRunning && c.Configured && c.Remaining > 0
		s.countdown = c
		s.stale = changed
	}

	if rec, ok := doc.Deadline(); ok {
		s.deadline = domain.Deadline{Target: rec.Target, SetAt: rec.SetAt, Configured: true}
	}
	return nil
}

// Reconcile brings a restored countdown into its session-start state: it is
// paused, its remaining time clamped, and the store rewritten if either
// changed. The interactive dashboard calls this once at startup.
func (s *TimerService) Reconcile(ctx context.Context) error {
	if !s.stale {
		return nil
	}
	s.countdown.Running = false
	s.stale = false
	return s.saveCountdown(ctx)
}

// Location describes where timers are persisted.
func (s *TimerService) Location() string {
	return s.store.Location()
}

// Document returns a copy of the loaded document.
func (s *TimerService) Document() config.Document {
	return s.doc.Clone()
}

// Countdown returns a copy of the countdown.
func (s *TimerService) Countdown() domain.Countdown {
	return s.countdown
}

// Deadline returns a copy of the deadline.
func (s *TimerService) Deadline() domain.Deadline {
	return s.deadline
}

// DOB returns the stored date of birth.
func (s *TimerService) DOB() (time.Time, bool) {
	return s.doc.DOB()
}

// SetDOB stores the date of birth.
func (s *TimerService) SetDOB(ctx context.Context, dob time.Time) error {
	s.doc.SetDOB(dob)
	return s.save(ctx)
}

// SetCountdown starts a new countdown of seconds.
func (s *TimerService) SetCountdown(ctx context.Context, seconds uint64) error {
	if err := s.countdown.Set(seconds); err != nil {
		return err
	}
	s.tickAnchor = time.Time{}
	s.stale = false
	return s.saveCountdown(ctx)
}

// ToggleCountdown pauses a running countdown or resumes a paused one.
func (s *TimerService) ToggleCountdown(ctx context.Context) error {
	if err := s.countdown.Toggle(); err != nil {
		return err
	}
	s.tickAnchor = time.Time{}
	return s.saveCountdown(ctx)
}

// ResetCountdown restores the full duration, paused.
func (s *TimerService) ResetCountdown(ctx context.Context) error {
	if err := s.countdown.Reset(); err != nil {
		return err
	}
	s.tickAnchor = time.Time{}
	return s.saveCountdown(ctx)
}

// ClearCountdown removes the countdown.
func (s *TimerService) ClearCountdown(ctx context.Context) error {
	s.countdown.Clear()
	s.tickAnchor = time.Time{}
	s.stale = false
	return s.saveCountdown(ctx)
}

// SetDeadline points the deadline at target, measured from now. The set
// instant is kept to whole seconds so it survives a store round trip.
func (s *TimerService) SetDeadline(ctx context.Context, target, now time.Time) error {
	s.deadline.Set(target, now.Truncate(time.Second))
	s.doc.SetDeadline(config.DeadlineRecord{Target: s.deadline.Target, SetAt: s.deadline.SetAt})
	return s.save(ctx)
}

// ClearDeadline removes the deadline.
func (s *TimerService) ClearDeadline(ctx context.Context) error {
	s.deadline.Clear()
	s.doc.ClearDeadline()
	return s.save(ctx)
}

// Advance ticks a running countdown by the whole seconds elapsed since the
// last tick. The first call after the countdown starts only anchors the
// clock. completed is true exactly once, when the countdown reaches zero.
func (s *TimerService) Advance(ctx context.Context, now time.Time) (completed bool, err error) {
	if !s.countdown.Running || s.countdown.Remaining == 0 {
		s.tickAnchor = time.Time{}
		return false, nil
	}
	if s.tickAnchor.IsZero() {
		s.tickAnchor = now
		return false, nil
	}

	elapsed := now.Sub(s.tickAnchor)
	if elapsed < time.Second {
		return false, nil
	}
	ticks := uint64(elapsed / time.Second)
	s.tickAnchor = s.tickAnchor.Add(time.Duration(ticks) * time.Second)

	if !s.countdown.Tick(ticks) {
		return false, nil
	}
	completed = s.countdown.TakeCompleted()
	if completed {
		s.tickAnchor = time.Time{}
	}
	return completed, s.saveCountdown(ctx)
}

func (s *TimerService) saveCountdown(ctx context.Context) error {
	if s.countdown.Configured {
		s.doc.SetCountdown(config.CountdownRecord{
			DurationSeconds:  s.countdown.Duration,
			RemainingSeconds: s.countdown.Remaining,
			IsRunning:        s.countdown.Running,
		})
	} else {
		s.doc.ClearCountdown()
	}
	return s.save(ctx)
}

func (s *TimerService) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.doc); err != nil {
		return fmt.Errorf("failed to save timers: %w", err)
	}
	return nil
}
