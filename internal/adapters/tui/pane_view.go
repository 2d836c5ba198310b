package tui

import (
	"strings"

	"github.com/xvierd/hourglass/internal/domain"
)

// slots is a prompt template; each '_' takes one typed digit.
type slots string

const (
	countdownSlots slots = "__:__:__"
	deadlineSlots  slots = "____-__-__ __:__"
)

func (s slots) size() int {
	return strings.Count(string(s), "_")
}

// fill writes digits into the slots from the left.
func (s slots) fill(digits string) string {
	out := []byte(s)
	j := 0
	for i := range out {
		if out[i] == '_' && j < len(digits) {
			out[i] = digits[j]
			j++
		}
	}
	return string(out)
}

const promptHint = "Digits only. Backspace delete. Enter confirm. Esc cancel."

const dateTimeLayout = "2006-01-02 15:04:05"

func plainLines(cls class, texts ...string) []paneLine {
	lines := make([]paneLine, len(texts))
	for i, t := range texts {
		lines[i] = paneLine{text: t, cls: cls}
	}
	return lines
}

// paneLines lays out the open pane.
func (d *Dashboard) paneLines(view domain.Snapshot) []paneLine {
	if e, _, _, ok := entryOf(d.pane); ok {
		return d.promptLines(e)
	}

	cur, items, _ := menuOf(d.pane)
	cur.index = min(cur.index, len(items)-1)

	lines := d.bodyLines(view)
	if len(lines) > 0 {
		lines = append(lines, paneLine{})
	}
	for i, item := range items {
		if i == cur.index {
			lines = append(lines, paneLine{text: "> " + item.label, cls: classPaneSelected})
		} else {
			lines = append(lines, paneLine{text: "  " + item.label, cls: classPane})
		}
	}
	if cur.err != "" {
		lines = append(lines, paneLine{}, paneLine{text: "Error: " + cur.err, cls: classError})
	}
	return lines
}

func (d *Dashboard) bodyLines(view domain.Snapshot) []paneLine {
	switch d.pane.(type) {
	case *paneControls:
		texts := append([]string{"Controls:"}, d.keys.helpLines()...)
		texts = append(texts,
			"Countdown has its own start/pause control.",
			"Life mode clamps Feb 29 to Feb 28 in non-leap years.",
		)
		return plainLines(classPane, texts...)

	case *paneConfigInfo:
		return plainLines(classPane, "Config: "+d.timers.Location())

	case *paneCountdown:
		c := d.timers.Countdown()
		if !c.Configured {
			return plainLines(classPane, "Countdown Timer", "Configured: no")
		}
		running := "no"
		if c.Running {
			running = "yes"
		}
		lines := plainLines(classPane,
			"Countdown Timer",
			"Configured: yes",
			"Duration: "+domain.FormatHMS(int64(c.Duration)),
			"Remaining: "+c.RemainingText(),
			"Running: "+running,
		)
		if c.Remaining > 0 && d.width >= bigTimeWidth {
			lines = append(lines, paneLine{})
			for _, row := range bigTime(domain.FormatHMS(int64(c.Remaining))) {
				lines = append(lines, paneLine{text: row, cls: classLabel, centered: true})
			}
		}
		return lines

	case *paneDeadline:
		dl := d.timers.Deadline()
		if !dl.Configured {
			return plainLines(classPane, "Deadline Timer", "Configured: no")
		}
		remaining := domain.DoneText
		if r, ok := view.Span(domain.ModeDeadline); ok {
			remaining = r.Remaining
		}
		return plainLines(classPane,
			"Deadline Timer",
			"Configured: yes",
			"Target: "+dl.Target.Format(dateTimeLayout),
			"Set at: "+dl.SetAt.Format(dateTimeLayout),
			"Remaining: "+remaining,
		)

	case *paneMenu:
		return plainLines(classPane,
			"Help / Settings",
			"Use arrow keys to select and Enter to activate.",
		)

	default:
		return nil
	}
}

func (d *Dashboard) promptLines(e *digitEntry) []paneLine {
	title, s := "ENTER DURATION (HH:MM:SS)", countdownSlots
	if _, ok := d.pane.(*paneDeadlineInput); ok {
		title, s = "ENTER DEADLINE (YYYY-MM-DD HH:MM)", deadlineSlots
	}

	caret := " "
	if d.flashOn {
		caret = ">"
	}
	lines := []paneLine{
		{text: title, cls: classLabel},
		{},
		{text: caret + " " + s.fill(e.digits), cls: classPaneSelected, centered: true},
		{},
		{text: promptHint, cls: classPane},
	}
	if e.err != "" {
		lines = append(lines, paneLine{}, paneLine{text: "Error: " + e.err, cls: classError})
	}
	if d.debug && d.keyDebug != "" {
		lines = append(lines, paneLine{}, paneLine{text: "Key: " + d.keyDebug, cls: classPane})
	}
	return lines
}
