// Package layout places the dashboard columns on the terminal.
package layout

const (
	MinInnerWidth = 10
	MaxInnerWidth = 25
	// Gap is the blank space between adjacent columns.
	Gap = 4
	// Border is the width taken by a column's left and right edges.
	Border = 2

	HeaderLines     = 1
	LabelLines      = 3
	MinColumnHeight = 8
	BottomPadding   = 1
)

// MinRows is the shortest terminal that can hold the column view.
const MinRows = HeaderLines + LabelLines + MinColumnHeight + BottomPadding

// Column is the horizontal placement of one column, border included.
type Column struct {
	X          int
	Width      int
	InnerWidth int
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	Left, Right, Top, Bottom int
}

// Height returns the number of rows in r.
func (r Rect) Height() int {
	return r.Bottom - r.Top + 1
}

// Layout is the solved placement of every visible column.
type Layout struct {
	Columns []Column
	// Top is the row of the columns' top border.
	Top int
	// Height is the column height, borders included.
	Height int
}

// Solve lays out count columns on a width x rows terminal. ok is false
// when the terminal is too narrow or too short, in which case callers show
// the numbers-only view.
func Solve(width, rows, count int) (l Layout, ok bool) {
	if !FitsHeight(rows) {
		return Layout{}, false
	}
	cols, ok := Columns(width, count)
	if !ok {
		return Layout{}, false
	}
	return Layout{
		Columns: cols,
		Top:     HeaderLines + LabelLines,
		Height:  rows - HeaderLines - LabelLines - BottomPadding,
	}, true
}

// FitsHeight reports whether rows leaves room for the minimum column height.
func FitsHeight(rows int) bool {
	return rows >= MinRows
}

// Columns computes the column widths and positions for width cells. Every
// column starts at MinInnerWidth; leftover cells are handed out one at a
// time, left to right, to columns still below MaxInnerWidth.
func Columns(width, count int) ([]Column, bool) {
	if count <= 0 {
		return nil, false
	}
	available := width - Gap*(count-1) - Border*count
	if available < MinInnerWidth*count {
		return nil, false
	}

	inner := make([]int, count)
	for i := range inner {
		inner[i] = MinInnerWidth
	}
	extra := available - MinInnerWidth*count
	for grown := true; extra > 0 && grown; {
		grown = false
		for i := 0; i < count && extra > 0; i++ {
			if inner[i] < MaxInnerWidth {
				inner[i]++
				extra--
				grown = true
			}
		}
	}

	cols := make([]Column, count)
	x := 0
	for i, w := range inner {
		cols[i] = Column{X: x, Width: w + Border, InnerWidth: w}
		x += w + Border + Gap
	}
	return cols, true
}

// Border returns the rectangle of column i including its edges.
func (l Layout) Border(i int) Rect {
	c := l.Columns[i]
	return Rect{Left: c.X, Right: c.X + c.Width - 1, Top: l.Top, Bottom: l.Top + l.Height - 1}
}

// Inner returns the fillable area of column i.
func (l Layout) Inner(i int) Rect {
	c := l.Columns[i]
	left := c.X + 1
	return Rect{
		Left:   left,
		Right:  left + c.InnerWidth - 1,
		Top:    l.Top + 1,
		Bottom: l.Top + l.Height - 2,
	}
}
