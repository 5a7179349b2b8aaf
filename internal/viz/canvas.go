package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) dots. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// SubSize returns the canvas size in dots.
func (c *Canvas) SubSize() (w, h int) { return c.Width * 2, c.Height * 4 }

// Dot lights a (2r+1)-wide square centred on (x, y).
func (c *Canvas) Dot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// DrawArc draws the arc of radius r about (cx, cy) from angle from to angle
// to, in radians. Angles grow counter-clockwise as seen on screen, so the
// y axis is flipped relative to dot rows. Spans beyond a full turn draw one
// full turn.
func (c *Canvas) DrawArc(cx, cy, r, from, to float64) {
	span := to - from
	if math.IsNaN(span) || math.IsInf(span, 0) || math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	if r <= 0 {
		c.Set(int(math.Round(cx)), int(math.Round(cy)))
		return
	}
	if math.Abs(span) > 2*math.Pi {
		span = math.Copysign(2*math.Pi, span)
	}
	n := int(math.Ceil(math.Abs(span) * r))
	if n < 1 {
		n = 1
	}
	px, py := math.MaxInt, math.MaxInt
	for i := 0; i <= n; i++ {
		a := from + span*float64(i)/float64(n)
		s, co := math.Sincos(a)
		x, y := int(math.Round(cx+r*co)), int(math.Round(cy-r*s))
		if px != math.MaxInt {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
	}
}

func (c *Canvas) DrawCircle(cx, cy, r float64) {
	c.DrawArc(cx, cy, r, 0, 2*math.Pi)
}

// DrawDottedCircle lights one dot every spacing dots along the circle.
func (c *Canvas) DrawDottedCircle(cx, cy, r float64, spacing int) {
	if spacing < 1 {
		spacing = 1
	}
	n := int(2*math.Pi*r) / spacing
	for i := 0; i < n; i++ {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		c.Set(int(math.Round(cx+r*co)), int(math.Round(cy-r*s)))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
