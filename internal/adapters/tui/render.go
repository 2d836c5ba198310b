package tui

import (
	"fmt"

	"github.com/xvierd/hourglass/internal/domain"
	"github.com/xvierd/hourglass/internal/layout"
	"github.com/xvierd/hourglass/internal/sand"
)

const (
	grainGlyph   = '.'
	sparkleGlyph = '*'
	flashGlyph   = '*'
)

type borderGlyphs struct {
	horiz, vert, corner rune
}

var (
	plainBorder = borderGlyphs{horiz: '-', vert: '|', corner: '+'}
	flashBorder = borderGlyphs{horiz: '=', vert: '!', corner: '*'}
)

// columnView is what one column shows in a frame.
type columnView struct {
	report domain.SpanReport
	flash  bool
}

func (c columnView) labelLines() []string {
	return []string{
		c.report.Label,
		fmt.Sprintf("done: %5.1f%%", c.report.Progress*100),
		"remaining: " + c.report.Remaining,
	}
}

func drawHeader(g *grid, header string) {
	g.text(0, 0, header, classHeader)
}

// drawNumbersOnly is the fallback for terminals too small for columns.
func drawNumbersOnly(g *grid, snap domain.Snapshot) {
	drawHeader(g, snap.Header())
	for i, line := range snap.SpanLines() {
		g.text(0, 1+i, line, classLabel)
	}
}

// drawLabel centres each line over the column, truncated to its width.
func drawLabel(g *grid, col layout.Column, lines []string, top int) {
	for i, text := range lines {
		r := []rune(text)
		if len(r) > col.Width {
			r = r[:col.Width]
		}
		x := col.X + max(0, (col.Width-len(r))/2)
		g.text(x, top+i, string(r), classLabel)
	}
}

func drawBorder(g *grid, r layout.Rect, flash bool) {
	glyphs, cls := plainBorder, classBorder
	if flash {
		glyphs, cls = flashBorder, classFlash
	}
	for x := r.Left + 1; x < r.Right; x++ {
		g.set(x, r.Top, glyphs.horiz, cls)
		g.set(x, r.Bottom, glyphs.horiz, cls)
	}
	for y := r.Top + 1; y < r.Bottom; y++ {
		g.set(r.Left, y, glyphs.vert, cls)
		g.set(r.Right, y, glyphs.vert, cls)
	}
	for _, y := range []int{r.Top, r.Bottom} {
		g.set(r.Left, y, glyphs.corner, cls)
		g.set(r.Right, y, glyphs.corner, cls)
	}
}

// fillGlyph picks the glyph for a filled row depth rows below the surface.
func fillGlyph(depth int, flash bool) (rune, class) {
	switch {
	case flash:
		return flashGlyph, classFlash
	case depth <= 2:
		return '.', classFillSurface
	case depth <= 5:
		return '+', classFillMid
	default:
		return '#', classFillDeep
	}
}

// drawFill fills inner from the bottom up in proportion to progress and
// returns the settled surface row: the top filled row, or one below the
// inner area when nothing is filled.
func drawFill(g *grid, inner layout.Rect, progress float64, flash bool) int {
	height := inner.Height()
	rows := int(float64(height) * progress)
	if rows <= 0 {
		return inner.Bottom + 1
	}
	rows = min(rows, height)
	top := inner.Bottom - rows + 1
	for y := inner.Bottom; y >= top; y-- {
		ch, cls := fillGlyph(y-top+1, flash)
		for x := inner.Left; x <= inner.Right; x++ {
			g.set(x, y, ch, cls)
		}
	}
	return top
}

func drawParticles(g *grid, col *sand.Column) {
	for _, gr := range col.Grains() {
		x, y := gr.Cell()
		g.set(x, y, grainGlyph, classGrain)
	}
	for _, s := range col.Sparkles() {
		g.set(s.X, s.Y, sparkleGlyph, classSparkle)
	}
}

// drawColumn draws one column and advances its sand, which settles on the
// fill surface.
func drawColumn(g *grid, l layout.Layout, i int, view columnView, col *sand.Column, dt float64, paused bool) {
	drawLabel(g, l.Columns[i], view.labelLines(), layout.HeaderLines)
	drawBorder(g, l.Border(i), view.flash)

	inner := l.Inner(i)
	surface := drawFill(g, inner, view.report.Progress, view.flash)
	col.Update(dt, sand.Bounds{Left: inner.Left, Right: inner.Right, Top: inner.Top, Surface: surface}, paused)
	drawParticles(g, col)
}

// paneLine is one line of an overlay box.
type paneLine struct {
	text     string
	cls      class
	centered bool
}

// drawBox draws an overlay box sized to its lines, centred on the grid and
// clipped to it.
func drawBox(g *grid, lines []paneLine) {
	longest := 0
	for _, l := range lines {
		longest = max(longest, len([]rune(l.text)))
	}
	width := min(g.width-2, longest+4)
	height := len(lines) + 2
	top := max(0, (g.height-height)/2)
	left := max(0, (g.width-width)/2)
	if width < 2 {
		return
	}

	r := layout.Rect{Left: left, Right: left + width - 1, Top: top, Bottom: top + height - 1}
	for y := r.Top + 1; y < r.Bottom; y++ {
		for x := r.Left + 1; x < r.Right; x++ {
			g.set(x, y, ' ', classPane)
		}
	}
	for x := r.Left + 1; x < r.Right; x++ {
		g.set(x, r.Top, plainBorder.horiz, classPane)
		g.set(x, r.Bottom, plainBorder.horiz, classPane)
	}
	for y := r.Top + 1; y < r.Bottom; y++ {
		g.set(r.Left, y, plainBorder.vert, classPane)
		g.set(r.Right, y, plainBorder.vert, classPane)
	}
	for _, y := range []int{r.Top, r.Bottom} {
		g.set(r.Left, y, plainBorder.corner, classPane)
		g.set(r.Right, y, plainBorder.corner, classPane)
	}

	room := max(0, width-4)
	for i, l := range lines {
		text := []rune(l.text)
		if len(text) > room {
			text = text[:room]
		}
		x := left + 2
		if l.centered {
			x = left + max(2, (width-len(text))/2)
		}
		g.text(x, top+1+i, string(text), l.cls)
	}
}
