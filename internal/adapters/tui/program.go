package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"
)

// ErrNotTerminal is returned by Run when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("the dashboard needs an interactive terminal")

// Run takes over the terminal and drives a dashboard until the user quits
// or ctx is canceled. opts.Source is replaced by stdin. The terminal is
// restored on every return path.
func Run(ctx context.Context, opts Options) error {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	if !term.IsTerminal(in) || !term.IsTerminal(out) {
		return ErrNotTerminal
	}

	state, err := term.MakeRaw(in)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(in, state) }()

	reader, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = reader.Close() }()
	defer reader.Cancel()

	input := make(chan byte, 256)
	done := make(chan struct{})
	defer close(done)
	go pumpInput(reader, input, done)
	opts.Source = NewChannelSource(input)

	dash := NewDashboard(ctx, opts)
	if w, h, err := term.GetSize(out); err == nil {
		dash.Resize(w, h)
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	program := tea.NewProgram(
		NewModel(dash, fps),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(nil),
		tea.WithFPS(fps),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramPanic) {
			return fmt.Errorf("dashboard crashed: %w", err)
		}
		if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
