package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/domain"
	"github.com/xvierd/hourglass/internal/ports"
)

// SnapshotService evaluates the persisted timers and spans for headless
// output and the MCP server.
type SnapshotService struct {
	timers *TimerService
	cfg    *config.Config
	now    func() time.Time
}

// Ensure SnapshotService implements ports.SnapshotProvider.
var _ ports.SnapshotProvider = (*SnapshotService)(nil)

// NewSnapshotService creates a snapshot service reading from timers.
func NewSnapshotService(timers *TimerService, cfg *config.Config) *SnapshotService {
	return &SnapshotService{timers: timers, cfg: cfg, now: time.Now}
}

// SetClock replaces the clock; tests use it to pin "now".
func (s *SnapshotService) SetClock(now func() time.Time) {
	s.now = now
}

// Snapshot evaluates every configured span at the current instant. A
// missing date of birth counts as today.
func (s *SnapshotService) Snapshot(_ context.Context) (domain.Snapshot, error) {
	now := s.now()
	dob, ok := s.timers.DOB()
	if !ok {
		y, m, d := now.Date()
		dob = domain.Midnight(y, m, d, now.Location())
	}
	countdown := s.timers.Countdown()
	deadline := s.timers.Deadline()
	return domain.NewSnapshot(now, dob, s.cfg.LifespanYears, &countdown, &deadline), nil
}

// Timers returns the persisted countdown and deadline.
func (s *SnapshotService) Timers(_ context.Context) (domain.Countdown, domain.Deadline, error) {
	return s.timers.Countdown(), s.timers.Deadline(), nil
}

// Text renders the headless report.
func (s *SnapshotService) Text(ctx context.Context) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return snap.Text(), nil
}

// JSON renders the snapshot as indented JSON.
func (s *SnapshotService) JSON(ctx context.Context) ([]byte, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return out, nil
}
