package tui

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/hourglass/internal/config"
)

// class is the style of a grid cell.
type class uint8

const (
	classPlain class = iota
	classHeader
	classLabel
	classBorder
	classFillSurface
	classFillMid
	classFillDeep
	classGrain
	classSparkle
	classFlash
	classPane
	classPaneSelected
	classError
	numClasses
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles maps every class to its lipgloss style.
type styles [numClasses]lipgloss.Style

func newStyles(theme *config.ThemeConfig) styles {
	t := resolveTheme(theme)
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	var s styles
	s[classPlain] = lipgloss.NewStyle()
	s[classHeader] = fg(t.Header)
	s[classLabel] = fg(t.Label).Bold(true)
	s[classBorder] = fg(t.Border)
	s[classFillSurface] = fg(t.FillSurface)
	s[classFillMid] = fg(t.FillMid)
	s[classFillDeep] = fg(t.FillDeep)
	s[classGrain] = fg(t.Grain)
	s[classSparkle] = fg(t.Sparkle).Bold(true)
	s[classFlash] = fg(t.Flash).Bold(true)
	s[classPane] = fg(t.Pane)
	s[classPaneSelected] = fg(t.PaneSelected).Bold(true)
	s[classError] = fg(t.Error)
	return s
}

type cell struct {
	ch  rune
	cls class
}

var blank = cell{ch: ' '}

// grid is one frame of terminal cells. Writes outside the grid are dropped.
type grid struct {
	width, height int
	cells         []cell
}

func newGrid(width, height int) *grid {
	width, height = max(width, 0), max(height, 0)
	g := &grid{width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i] = blank
	}
	return g
}

func (g *grid) contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *grid) set(x, y int, ch rune, cls class) {
	if g.contains(x, y) {
		g.cells[y*g.width+x] = cell{ch: ch, cls: cls}
	}
}

func (g *grid) at(x, y int) cell {
	if !g.contains(x, y) {
		return blank
	}
	return g.cells[y*g.width+x]
}

// text writes s starting at (x, y), clipped to the grid.
func (g *grid) text(x, y int, s string, cls class) {
	for _, r := range s {
		g.set(x, y, r, cls)
		x++
	}
}

// line returns row y without styling.
func (g *grid) line(y int) string {
	var b strings.Builder
	for x := 0; x < g.width; x++ {
		b.WriteRune(g.at(x, y).ch)
	}
	return b.String()
}

// String returns the frame without styling.
func (g *grid) String() string {
	rows := make([]string, g.height)
	for y := range rows {
		rows[y] = g.line(y)
	}
	return strings.Join(rows, "\n")
}

// render styles the frame. Each run of cells sharing a class is rendered
// with a single Render call; plain runs are written as they are.
func (g *grid) render(st *styles) string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := classPlain
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == classPlain {
				b.WriteString(run.String())
			} else {
				b.WriteString(st[cur].Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < g.width; x++ {
			c := g.at(x, y)
			cls := c.cls
			if c.ch == ' ' {
				cls = classPlain
			}
			if cls != cur {
				flush()
				cur = cls
			}
			run.WriteRune(c.ch)
		}
		flush()
	}
	return b.String()
}
