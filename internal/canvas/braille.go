package canvas

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Braille is a Surface rasterized onto terminal cells. Each cell holds a
// 2x4 grid of dots, so a surface of w×h pixels spans w/2 columns and h/4
// rows. Every cell takes the color of the last primitive that touched it.
// Lines are one dot wide whatever their Width.
type Braille struct {
	w, h    int
	cells   []uint8
	colors  []colorful.Color
	profile termenv.Profile
}

// NewBraille returns an empty surface writing colors for profile.
func NewBraille(profile termenv.Profile) *Braille {
	return &Braille{profile: profile}
}

// Size returns the surface size in dots.
func (b *Braille) Size() (int, int) { return b.w, b.h }

// Resize sets the size in dots, rounded down to whole cells, and clears.
func (b *Braille) Resize(w, h int) bool {
	w = max(0, w) / 2 * 2
	h = max(0, h) / 4 * 4
	if w == b.w && h == b.h {
		return false
	}
	b.w, b.h = w, h
	n := (w / 2) * (h / 4)
	b.cells = make([]uint8, n)
	b.colors = make([]colorful.Color, n)
	return true
}

// Clear blanks every cell.
func (b *Braille) Clear() {
	clear(b.cells)
}

// Draw rasterizes prims in order.
func (b *Braille) Draw(prims ...Primitive) {
	for _, p := range prims {
		switch p := p.(type) {
		case Path:
			b.drawPath(p)
		case Rect:
			b.fillRect(p)
		case Disc:
			b.fillDisc(p)
		}
	}
}

func (b *Braille) set(x, y int, c colorful.Color) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := (y/4)*(b.w/2) + x/2
	b.cells[i] |= 1 << brailleBits[x%2][y%4]
	b.colors[i] = c
}

func (b *Braille) drawPath(p Path) {
	n := len(p.Points)
	if n == 0 {
		return
	}
	if n == 1 {
		if pt := p.Points[0]; pt.Finite() {
			b.set(int(math.Round(pt.X)), int(math.Round(pt.Y)), p.Stroke.c)
		}
		return
	}
	for i := 1; i < n; i++ {
		b.segment(p.Points[i-1], p.Points[i], p.Stroke.c)
	}
	if p.Closed && n > 2 {
		b.segment(p.Points[n-1], p.Points[0], p.Stroke.c)
	}
}

func (b *Braille) segment(a, c Point, col colorful.Color) {
	if !a.Finite() || !c.Finite() {
		return
	}
	a, c, ok := clipSegment(a, c, float64(b.w-1), float64(b.h-1))
	if !ok {
		return
	}
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(c.X)), int(math.Round(c.Y))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		b.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a-c to [0,maxX]×[0,maxY] (Liang-Barsky).
func clipSegment(a, c Point, maxX, maxY float64) (Point, Point, bool) {
	if maxX < 0 || maxY < 0 {
		return a, c, false
	}
	dx, dy := c.X-a.X, c.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, maxX - a.X},
		{-dy, a.Y},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, c, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, c, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, c, false
			}
			t1 = min(t1, r)
		}
	}
	return Point{a.X + t0*dx, a.Y + t0*dy}, Point{a.X + t1*dx, a.Y + t1*dy}, true
}

func (b *Braille) fillRect(r Rect) {
	x0, x1 := r.X, r.X+r.W
	y0, y1 := r.Y, r.Y+r.H
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if math.IsNaN(x0 + x1 + y0 + y1) {
		return
	}
	ix0 := max(0, int(math.Round(x0)))
	ix1 := min(b.w, int(math.Round(min(x1, float64(b.w)))))
	iy0 := max(0, int(math.Round(y0)))
	iy1 := min(b.h, int(math.Round(min(y1, float64(b.h)))))
	for y := iy0; y < iy1; y++ {
		for x := ix0; x < ix1; x++ {
			b.set(x, y, r.Fill.c)
		}
	}
}

func (b *Braille) fillDisc(d Disc) {
	if !d.Center.Finite() || !(d.Radius > 0) {
		return
	}
	r2 := d.Radius * d.Radius
	x0 := max(0, int(math.Floor(d.Center.X-d.Radius)))
	x1 := min(b.w-1, int(math.Ceil(d.Center.X+d.Radius)))
	y0 := max(0, int(math.Floor(d.Center.Y-d.Radius)))
	y1 := min(b.h-1, int(math.Ceil(d.Center.Y+d.Radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-d.Center.X, float64(y)-d.Center.Y
			if dx*dx+dy*dy <= r2 {
				b.set(x, y, d.Fill.c)
			}
		}
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (b *Braille) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	i := (y/4)*(b.w/2) + x/2
	return b.cells[i]&(1<<brailleBits[x%2][y%4]) != 0
}

// String renders the surface as newline-separated rows of Braille runes.
func (b *Braille) String() string {
	cols, rows := b.w/2, b.h/4
	if cols == 0 || rows == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(rows * (cols*3 + 1))
	ansi := newANSIState(b.profile)
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range cols {
			i := row*cols + col
			if b.cells[i] != 0 {
				ansi.set(&sb, b.colors[i])
			}
			sb.WriteRune(rune(0x2800 + int(b.cells[i])))
		}
		ansi.reset(&sb)
	}
	return sb.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ Surface = (*Braille)(nil)
