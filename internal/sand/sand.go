// Package sand simulates the falling grains drawn inside each dashboard
// column. The motion is decorative; only the bounds are guaranteed.
package sand

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// FallSpeed is how many rows a grain drops per second.
	FallSpeed = 6.0
	// SpawnInterval is the seconds between grain spawns.
	SpawnInterval = 1.0

	spawnJitter   = 1.0
	initialVX     = 0.4
	jitterVX      = 0.6
	maxVX         = 0.6
	sparkleTTLMin = 0.5
	sparkleTTLMax = 1.5
)

// Bounds is the inner area of a column in grid coordinates. Surface is the
// top row of the settled fill, or Bottom+1 when nothing is filled.
type Bounds struct {
	Left    int
	Right   int
	Top     int
	Surface int
}

// Grain is a falling particle.
type Grain struct {
	X, Y float64
	VX   float64
}

// Cell returns the grid cell the grain occupies.
func (g Grain) Cell() (x, y int) {
	return int(math.Round(g.X)), int(math.Round(g.Y))
}

// Sparkle is the short-lived flash left where a grain landed.
type Sparkle struct {
	X, Y int
	TTL  float64
}

// Column holds the particles of one column.
type Column struct {
	rng        *rand.Rand
	grains     []Grain
	sparkles   []Sparkle
	spawnAccum float64
}

// NewColumn creates an empty column. A nil rng is seeded from the clock.
func NewColumn(rng *rand.Rand) *Column {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Column{rng: rng}
}

// Grains returns the falling grains. The slice is owned by the column.
func (c *Column) Grains() []Grain {
	return c.grains
}

// Sparkles returns the live sparkles. The slice is owned by the column.
func (c *Column) Sparkles() []Sparkle {
	return c.sparkles
}

// Reset drops every particle and the spawn accumulator.
func (c *Column) Reset() {
	c.grains = c.grains[:0]
	c.sparkles = c.sparkles[:0]
	c.spawnAccum = 0
}

func (c *Column) uniform(lo, hi float64) float64 {
	return lo + c.rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Update advances the simulation by dt seconds. Nothing changes while
// paused or when the bounds are empty.
func (c *Column) Update(dt float64, b Bounds, paused bool) {
	if paused || b.Left > b.Right || dt <= 0 {
		return
	}
	left, right := float64(b.Left), float64(b.Right)
	landing := float64(b.Surface - 1)

	c.spawnAccum += dt
	for c.spawnAccum >= SpawnInterval {
		c.spawnAccum -= SpawnInterval
		x := (left+right)/2 + c.uniform(-spawnJitter, spawnJitter)
		c.grains = append(c.grains, Grain{
			X:  clamp(x, left, right),
			Y:  float64(b.Top),
			VX: c.uniform(-initialVX, initialVX),
		})
	}

	out := c.grains[:0]
	for _, g := range c.grains {
		g.VX = clamp(g.VX+c.uniform(-jitterVX, jitterVX)*dt, -maxVX, maxVX)
		next := g.X + g.VX
		switch {
		case next < left && g.VX < 0:
			g.VX = -g.VX
			next = left + 1
		case next > right && g.VX > 0:
			g.VX = -g.VX
			next = right - 1
		}
		g.X = clamp(next, left, right)
		g.Y += FallSpeed * dt

		if g.Y >= landing {
			x, _ := g.Cell()
			c.sparkles = append(c.sparkles, Sparkle{
				X:   x,
				Y:   max(b.Top, b.Surface-1),
				TTL: c.uniform(sparkleTTLMin, sparkleTTLMax),
			})
			continue
		}
		out = append(out, g)
	}
	c.grains = out

	live := c.sparkles[:0]
	for _, s := range c.sparkles {
		s.TTL -= dt
		if s.TTL > 0 {
			live = append(live, s)
		}
	}
	c.sparkles = live
}
