package tui

import (
	"errors"
	"io"
	"time"

	"github.com/muesli/cancelreader"
	"github.com/sirupsen/logrus"
	"github.com/xvierd/hourglass/internal/keys"
)

// ChannelSource serves input bytes from a channel filled by pumpInput.
type ChannelSource struct {
	ch <-chan byte
}

// Ensure ChannelSource implements keys.Source.
var _ keys.Source = (*ChannelSource)(nil)

// NewChannelSource creates a source reading from ch.
func NewChannelSource(ch <-chan byte) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next returns the next byte, waiting at most wait. A closed channel
// reports no input.
func (s *ChannelSource) Next(wait time.Duration) (byte, bool) {
	if wait <= 0 {
		select {
		case b, ok := <-s.ch:
			return b, ok
		default:
			return 0, false
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case b, ok := <-s.ch:
		return b, ok
	case <-timer.C:
		return 0, false
	}
}

// pumpInput copies bytes from r into ch until r fails or is canceled, or
// done is closed, then closes ch. It only moves bytes; all state lives in
// the Dashboard.
func pumpInput(r io.Reader, ch chan<- byte, done <-chan struct{}) {
	defer close(ch)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case ch <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				logrus.WithError(err).Debug("input reader stopped")
			}
			return
		}
	}
}
