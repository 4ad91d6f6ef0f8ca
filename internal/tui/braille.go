package tui

import "math"

// cell is one terminal cell of the plot after compositing.
type cell struct {
	r    rune
	fg   string // hex color, "" for the default foreground
	bold bool
	sel  bool // belongs to a brushed marker
}

// brailleBuf is a 2x4 dot grid per terminal cell. Each cell also remembers
// the color of the last dot written into it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]string
	sel  [][]bool
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.fg = make([][]string, h)
	b.sel = make([][]bool, h)
	for i := 0; i < h; i++ {
		b.m[i] = make([]uint8, w)
		b.fg[i] = make([]string, w)
		b.sel[i] = make([]bool, w)
	}
	return b
}

// dotBits indexes [column][row] within a cell.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// set lights the dot at micro coords (mx, my) and tags its cell.
func (b *brailleBuf) set(mx, my int, col string, sel bool) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	if col != "" {
		b.fg[cy][cx] = col
	}
	if sel {
		b.sel[cy][cx] = true
	}
}

// line draws with Bresenham on the dot grid.
func (b *brailleBuf) line(x0, y0, x1, y1 int, col string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.set(x0, y0, col, false)
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

func (b *brailleBuf) rect(x0, y0, x1, y1 int, col string) {
	b.line(x0, y0, x1, y0, col)
	b.line(x1, y0, x1, y1, col)
	b.line(x1, y1, x0, y1, col)
	b.line(x0, y1, x0, y0, col)
}

// disc fills every dot within r of (cx, cy). A radius below one dot still
// lights the centre.
func (b *brailleBuf) disc(cx, cy int, r float64, col string, sel bool) {
	n := int(math.Ceil(r))
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				b.set(cx+dx, cy+dy, col, sel)
			}
		}
	}
	b.set(cx, cy, col, sel)
}

func (b *brailleBuf) cells() [][]cell {
	out := make([][]cell, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]cell, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = cell{r: ' '}
				continue
			}
			row[x] = cell{r: rune(0x2800 + int(mask)), fg: b.fg[y][x], sel: b.sel[y][x]}
		}
		out[y] = row
	}
	return out
}
