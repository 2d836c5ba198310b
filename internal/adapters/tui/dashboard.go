package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sirupsen/logrus"
	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/domain"
	"github.com/xvierd/hourglass/internal/keys"
	"github.com/xvierd/hourglass/internal/layout"
	"github.com/xvierd/hourglass/internal/ports"
	"github.com/xvierd/hourglass/internal/sand"
)

const (
	// flashInterval is how long each on/off phase of a done-flash lasts.
	flashInterval = 500 * time.Millisecond
	// refreshInterval is the minimum time between span recomputations.
	refreshInterval = time.Second
	// DefaultFPS is the frame rate used when none is configured.
	DefaultFPS = 24
)

// Options configures a Dashboard.
type Options struct {
	Timers   ports.Timers
	Notifier ports.Notifier
	// Source delivers raw terminal bytes.
	Source keys.Source
	// FollowWait bounds each wait for the next byte of an escape sequence.
	FollowWait time.Duration

	DOB           time.Time
	LifespanYears int
	FPS           int
	// Debug shows the last decoded key inside digit-entry prompts.
	Debug bool
	Theme *config.ThemeConfig
	// Rand drives the sand; nil seeds from the clock.
	Rand *rand.Rand
}

// Dashboard owns all interactive state and produces one frame per call to
// Frame. It is not safe for concurrent use.
type Dashboard struct {
	ctx      context.Context
	timers   ports.Timers
	notifier ports.Notifier
	decoder  *keys.Decoder
	keys     keyMap
	styles   styles

	dob       time.Time
	lifespan  int
	frameWait time.Duration
	debug     bool

	width, height int
	paused        bool
	pane          pane
	keyDebug      string
	quit          bool

	info      domain.Snapshot
	infoValid bool
	infoAt    time.Time

	columns   map[domain.Mode]*sand.Column
	lastFrame time.Time

	flashOn bool
	flashAt time.Time

	// deadlineDone is the done state of the deadline at the last refresh;
	// deadlineKnown is false until the first refresh after it was set.
	deadlineDone  bool
	deadlineKnown bool
}

// NewDashboard creates a dashboard. ctx bounds the store writes made by
// timer operations.
func NewDashboard(ctx context.Context, opts Options) *Dashboard {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	d := &Dashboard{
		ctx:       ctx,
		timers:    opts.Timers,
		notifier:  opts.Notifier,
		decoder:   keys.NewDecoder(opts.Source, opts.FollowWait),
		keys:      newKeyMap(),
		styles:    newStyles(opts.Theme),
		dob:       opts.DOB,
		lifespan:  opts.LifespanYears,
		frameWait: time.Second / time.Duration(fps),
		debug:     opts.Debug,
		columns:   make(map[domain.Mode]*sand.Column),
	}
	for _, mode := range []domain.Mode{domain.ModeDay, domain.ModeYear, domain.ModeLife, domain.ModeCountdown, domain.ModeDeadline} {
		d.columns[mode] = sand.NewColumn(opts.Rand)
	}
	return d
}

// Resize records the terminal size.
func (d *Dashboard) Resize(width, height int) {
	d.width, d.height = width, height
}

// Paused reports whether the always-on spans are frozen.
func (d *Dashboard) Paused() bool {
	return d.paused
}

// Frame runs one iteration of the loop at now: input, timers, span refresh,
// layout, sand and render. quit is true once the user asked to leave; the
// returned frame is then empty.
func (d *Dashboard) Frame(now time.Time) (frame string, quit bool) {
	g, quit := d.step(now)
	if quit {
		return "", true
	}
	return g.render(&d.styles), false
}

func (d *Dashboard) step(now time.Time) (*grid, bool) {
	dt := 0.0
	if !d.lastFrame.IsZero() {
		dt = now.Sub(d.lastFrame).Seconds()
	}
	d.lastFrame = now

	d.readInput(now)
	if d.quit {
		return nil, true
	}

	if d.flashAt.IsZero() || now.Sub(d.flashAt) >= flashInterval {
		d.flashOn = !d.flashOn
		d.flashAt = now
	}

	d.advanceTimers(now)
	d.refresh(now)

	countdown := d.timers.Countdown()
	view := d.info.WithCountdown(&countdown)

	g := newGrid(d.width, d.height)
	d.draw(g, view, &countdown, dt)
	if d.pane != nil {
		drawBox(g, d.paneLines(view))
	}
	return g, false
}

func (d *Dashboard) readInput(now time.Time) {
	wait := time.Duration(0)
	if d.inPrompt() {
		wait = d.frameWait
	}
	k, ok := d.decoder.ReadKey(wait)
	if !ok {
		return
	}
	d.handleKey(k, now)
}

// inPrompt reports whether a digit-entry prompt has the input.
func (d *Dashboard) inPrompt() bool {
	if d.pane == nil {
		return false
	}
	_, _, _, ok := entryOf(d.pane)
	return ok
}

func (d *Dashboard) handleKey(k keys.Key, now time.Time) {
	if key.Matches(k, d.keys.Quit) {
		d.quit = true
		return
	}

	if d.pane == nil {
		switch {
		case key.Matches(k, d.keys.Pause):
			d.paused = !d.paused
			if !d.paused {
				d.infoValid = false
			}
		case key.Matches(k, d.keys.Help):
			d.pane = &paneMenu{}
			d.keyDebug = ""
		}
		return
	}

	if e, size, back, ok := entryOf(d.pane); ok {
		d.handleEntry(k, e, size, back, now)
		return
	}

	cur, items, _ := menuOf(d.pane)
	switch {
	case key.Matches(k, d.keys.Help):
		d.pane = nil
	case key.Matches(k, d.keys.Up):
		cur.move(-1, len(items))
	case key.Matches(k, d.keys.Down):
		cur.move(1, len(items))
	case key.Matches(k, d.keys.Select):
		cur.index = min(cur.index, len(items)-1)
		cur.err = ""
		d.activate(cur, items[cur.index].act)
	}
}

func (d *Dashboard) handleEntry(k keys.Key, e *digitEntry, size int, back pane, now time.Time) {
	tok := keys.Classify(k)
	if d.debug {
		d.keyDebug = k.Debug() + " kind=" + tok.Kind.String()
	}

	switch tok.Kind {
	case keys.KindDigit:
		e.push(tok.Value, size)
	case keys.KindBackspace:
		e.pop()
	case keys.KindEscape:
		d.pane = back
		d.keyDebug = ""
	case keys.KindEnter:
		d.submit(e, back, now)
	}
}

// submit applies a completed prompt. Invalid input stays in the prompt
// with an error line.
func (d *Dashboard) submit(e *digitEntry, back pane, now time.Time) {
	switch d.pane.(type) {
	case *paneCountdownInput:
		seconds, err := domain.ParseCountdownDigits(e.digits)
		if err != nil {
			e.err = err.Error()
			return
		}
		d.logStoreError(d.timers.SetCountdown(d.ctx, seconds))
		d.pane = nil

	case *paneDeadlineInput:
		target, err := domain.ParseDeadlineDigits(e.digits, now.Location())
		if err != nil {
			e.err = err.Error()
			return
		}
		err = d.timers.SetDeadline(d.ctx, target, now)
		d.invalidateDeadline()
		d.pane = back
		if err != nil {
			d.logStoreError(err)
			back.(*paneDeadline).err = err.Error()
		}
	}
	d.keyDebug = ""
}

func (d *Dashboard) activate(cur *menuCursor, act action) {
	var err error
	switch act {
	case actResume:
		d.pane = nil
	case actCountdownMenu:
		d.pane = &paneCountdown{}
	case actDeadlineMenu:
		d.pane = &paneDeadline{}
	case actControls:
		d.pane = &paneControls{}
	case actConfigInfo:
		d.pane = &paneConfigInfo{}
	case actBack:
		d.pane = &paneMenu{}
	case actEnterDuration:
		d.pane = &paneCountdownInput{}
		d.keyDebug = ""
	case actEnterDeadline:
		d.pane = &paneDeadlineInput{}
		d.keyDebug = ""
	case actToggleCountdown:
		err = d.timers.ToggleCountdown(d.ctx)
	case actResetCountdown:
		err = d.timers.ResetCountdown(d.ctx)
	case actClearCountdown:
		err = d.timers.ClearCountdown(d.ctx)
		d.columns[domain.ModeCountdown].Reset()
	case actClearDeadline:
		err = d.timers.ClearDeadline(d.ctx)
		d.columns[domain.ModeDeadline].Reset()
		d.invalidateDeadline()
	}
	if err != nil {
		d.logStoreError(err)
		cur.err = err.Error()
	}
}

// logStoreError logs failures other than the wrong-state errors that are
// only shown to the user.
func (d *Dashboard) logStoreError(err error) {
	if err == nil || errors.Is(err, domain.ErrCountdownNotConfigured) || errors.Is(err, domain.ErrCountdownDone) {
		return
	}
	logrus.WithError(err).Warn("failed to persist timers")
}

func (d *Dashboard) invalidateDeadline() {
	d.infoValid = false
	d.deadlineKnown = false
}

func (d *Dashboard) advanceTimers(now time.Time) {
	completed, err := d.timers.Advance(d.ctx, now)
	d.logStoreError(err)
	if completed && d.notifier != nil {
		c := d.timers.Countdown()
		if err := d.notifier.NotifyCountdownDone(domain.FormatHMS(int64(c.Duration))); err != nil {
			logrus.WithError(err).Debug("countdown notification failed")
		}
	}
}

// refresh recomputes the spans at most once per second, and only when
// needed while paused.
func (d *Dashboard) refresh(now time.Time) {
	if d.infoValid && (d.paused || now.Sub(d.infoAt) < refreshInterval) {
		return
	}
	deadline := d.timers.Deadline()
	d.info = domain.NewSnapshot(now, d.dob, d.lifespan, nil, &deadline)
	d.infoValid = true
	d.infoAt = now

	r, ok := d.info.Span(domain.ModeDeadline)
	if !ok {
		d.deadlineKnown = false
		return
	}
	if d.deadlineKnown && !d.deadlineDone && r.Done && d.notifier != nil {
		if err := d.notifier.NotifyDeadlineReached(deadline.Target.Format(dateTimeLayout)); err != nil {
			logrus.WithError(err).Debug("deadline notification failed")
		}
	}
	d.deadlineDone = r.Done
	d.deadlineKnown = true
}

func (d *Dashboard) draw(g *grid, view domain.Snapshot, countdown *domain.Countdown, dt float64) {
	l, ok := layout.Solve(d.width, d.height, len(view.Spans))
	if !ok {
		drawNumbersOnly(g, view)
		for _, col := range d.columns {
			col.Reset()
		}
		return
	}

	drawHeader(g, view.Header())
	for i, r := range view.Spans {
		cv := columnView{report: r}
		switch r.Mode {
		case domain.ModeCountdown:
			cv.flash = countdown.Status() == domain.CountdownDone && d.flashOn
		case domain.ModeDeadline:
			cv.flash = r.Done && d.flashOn
		}
		drawColumn(g, l, i, cv, d.columns[r.Mode], dt, d.paused)
	}
}
