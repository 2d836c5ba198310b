package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies one of the spans shown by the dashboard.
type Mode string

const (
	ModeDay       Mode = "day"
	ModeYear      Mode = "year"
	ModeLife      Mode = "life"
	ModeCountdown Mode = "countdown"
	ModeDeadline  Mode = "deadline"
)

// Label returns the upper-case column label for the mode.
func (m Mode) Label() string {
	return strings.ToUpper(string(m))
}

// TimestampLayout formats the "now" instant in reports and headers.
const TimestampLayout = "2006-01-02 15:04:05"

// SpanReport is the evaluated state of one span.
type SpanReport struct {
	Mode      Mode    `json:"mode"`
	Label     string  `json:"label"`
	Progress  float64 `json:"progress"`
	Remaining string  `json:"remaining"`
	Done      bool    `json:"done"`
}

// Line formats the report as a headless snapshot line.
func (r SpanReport) Line() string {
	return fmt.Sprintf("%-4s done: %5.1f%%  remaining: %s", r.Label, r.Progress*100, r.Remaining)
}

// Snapshot is every visible span evaluated at one instant. The three
// always-on spans come first in day, year, life order, followed by the
// countdown and the deadline when they are configured.
type Snapshot struct {
	Now   time.Time    `json:"now"`
	Spans []SpanReport `json:"spans"`
}

func spanReport(mode Mode, span TimeSpan) SpanReport {
	r := SpanReport{
		Mode:      mode,
		Label:     mode.Label(),
		Progress:  span.Progress,
		Remaining: span.Remaining,
		Done:      span.Done(),
	}
	if r.Done {
		r.Remaining = DoneText
	}
	return r
}

// CountdownReport evaluates a configured countdown.
func CountdownReport(c *Countdown) SpanReport {
	return SpanReport{
		Mode:      ModeCountdown,
		Label:     ModeCountdown.Label(),
		Progress:  c.Progress(),
		Remaining: c.RemainingText(),
		Done:      c.Remaining == 0,
	}
}

// NewSnapshot evaluates all spans at now. A nil or unconfigured countdown or
// deadline is omitted.
func NewSnapshot(now, dob time.Time, lifespanYears int, c *Countdown, d *Deadline) Snapshot {
	s := Snapshot{
		Now: now,
		Spans: []SpanReport{
			spanReport(ModeDay, DaySpan(now)),
			spanReport(ModeYear, YearSpan(now)),
			spanReport(ModeLife, LifeSpan(dob, now, lifespanYears)),
		},
	}
	if c != nil && c.Configured {
		s.Spans = append(s.Spans, CountdownReport(c))
	}
	if d != nil {
		if span, ok := d.Span(now); ok {
			s.Spans = append(s.Spans, spanReport(ModeDeadline, span))
		}
	}
	return s
}

// Span returns the report for mode, if present.
func (s Snapshot) Span(mode Mode) (SpanReport, bool) {
	for _, r := range s.Spans {
		if r.Mode == mode {
			return r, true
		}
	}
	return SpanReport{}, false
}

// WithCountdown returns a copy whose countdown report matches c. The
// other reports are kept as they are, so a cached snapshot can carry a
// live countdown.
func (s Snapshot) WithCountdown(c *Countdown) Snapshot {
	out := Snapshot{Now: s.Now, Spans: make([]SpanReport, 0, len(s.Spans)+1)}
	var deadline *SpanReport
	for i, r := range s.Spans {
		switch r.Mode {
		case ModeCountdown:
		case ModeDeadline:
			deadline = &s.Spans[i]
		default:
			out.Spans = append(out.Spans, r)
		}
	}
	if c != nil && c.Configured {
		out.Spans = append(out.Spans, CountdownReport(c))
	}
	if deadline != nil {
		out.Spans = append(out.Spans, *deadline)
	}
	return out
}

// Header formats the one-line dashboard header.
func (s Snapshot) Header() string {
	var day, year, life float64
	if r, ok := s.Span(ModeDay); ok {
		day = r.Progress
	}
	if r, ok := s.Span(ModeYear); ok {
		year = r.Progress
	}
	if r, ok := s.Span(ModeLife); ok {
		life = r.Progress
	}
	return fmt.Sprintf("now: %s | day %5.1f%% | year %5.1f%% | life %5.1f%%",
		s.Now.Format(TimestampLayout), day*100, year*100, life*100)
}

// SpanLines returns one line per span, without the timestamp line.
func (s Snapshot) SpanLines() []string {
	lines := make([]string, 0, len(s.Spans))
	for _, r := range s.Spans {
		lines = append(lines, r.Line())
	}
	return lines
}

// Lines returns the headless report: the timestamp line, then one line per span.
func (s Snapshot) Lines() []string {
	return append([]string{"now: " + s.Now.Format(TimestampLayout)}, s.SpanLines()...)
}

// Text joins Lines with newlines.
func (s Snapshot) Text() string {
	return strings.Join(s.Lines(), "\n")
}
