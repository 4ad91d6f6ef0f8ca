package tui

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"goscatter/internal/scatter"
)

// renderCanvas draws the chart on a w x h cell canvas. The chart was rendered
// at w*2 x h*4, so its screen space is the braille dot grid.
func (m Model) renderCanvas(w, h int) string {
	if m.chart == nil {
		msg := "no data: Tab to pick a file, p to paste records"
		if len(m.set.Records) > 0 {
			msg = "cannot render dataset, see status line"
		}
		cells := blankCells(w, h)
		putCentered(cells, w/2, h/2, msg, axisColor, false)
		return joinCells(cells)
	}
	c := m.chart
	br := newBrailleBuf(w, h)

	// axes with outward tick marks
	xa, ya := c.XAxis, c.YAxis
	br.line(dot(xa.From), dot(xa.Pos), dot(xa.To), dot(xa.Pos), axisColor)
	for _, t := range xa.Ticks {
		br.line(dot(t.Pos), dot(xa.Pos), dot(t.Pos), dot(xa.Pos)+2, axisColor)
	}
	br.line(dot(ya.Pos), dot(ya.From), dot(ya.Pos), dot(ya.To), axisColor)
	for _, t := range ya.Ticks {
		br.line(dot(ya.Pos)-2, dot(t.Pos), dot(ya.Pos), dot(t.Pos), axisColor)
	}

	// markers: dimmed first so visible ones stay on top, brushed last
	for _, pass := range []func(int) bool{
		func(i int) bool { return c.Opacity(i) < 1 && !c.Selected(i) },
		func(i int) bool { return c.Opacity(i) >= 1 && !c.Selected(i) },
		c.Selected,
	} {
		for i, mk := range c.Markers {
			if !c.Visible(i) || !pass(i) {
				continue
			}
			br.disc(dot(mk.X), dot(mk.Y), mk.R, blend(mk.Color, mk.Opacity), c.Selected(i))
		}
	}

	if r, ok := c.Brush(); ok {
		br.rect(dot(r.X0), dot(r.Y0), dot(r.X1)-1, dot(r.Y1)-1, brushColor)
	}

	cells := br.cells()
	m.drawText(cells, w, h)

	if m.hoverIdx >= 0 && m.hoverIdx < len(c.Markers) {
		mk := c.Markers[m.hoverIdx]
		x, y := dot(mk.X)/2, dot(mk.Y)/4
		if y >= 0 && y < h && x >= 0 && x < w {
			cells[y][x] = cell{r: '◯', fg: hoverColor, bold: true}
		}
	}
	return joinCells(cells)
}

// drawText lays the title, tick labels and axis labels over the canvas in
// cell units.
func (m Model) drawText(cells [][]cell, w, h int) {
	c := m.chart
	if c.Title.Text != "" {
		putCentered(cells, w/2, 0, c.Title.Text, titleColor, true)
	}
	xRow := dot(c.XAxis.Pos)/4 + 1
	for _, t := range c.XAxis.Ticks {
		putCentered(cells, dot(t.Pos)/2, xRow, t.Label, axisColor, false)
	}
	yCol := dot(c.YAxis.Pos)/2 - 1
	for _, t := range c.YAxis.Ticks {
		l := []rune(t.Label)
		putText(cells, yCol-len(l), dot(t.Pos)/4, t.Label, axisColor, false)
	}
	putCentered(cells, w/2, h-1, c.XLabel.Text, baseColor, true)
	// rotated y label: one rune per row down the first column
	yl := []rune(c.YLabel.Text)
	top := h/2 - len(yl)/2
	for i, r := range yl {
		putText(cells, 0, top+i, string(r), baseColor, true)
	}
}

func blankCells(w, h int) [][]cell {
	cells := make([][]cell, h)
	for y := range cells {
		cells[y] = make([]cell, w)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return cells
}

// dot rounds a chart coordinate to the braille dot grid.
func dot(v float64) int { return int(math.Round(v)) }

// blend mixes a marker color toward the canvas background by opacity.
func blend(hex string, opacity float64) string {
	if opacity >= 1 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, _ := colorful.Hex(canvasBg)
	return bg.BlendRgb(c, opacity).Hex()
}

// swatch renders a legend color block, dimmed like its markers.
func swatch(e scatter.LegendEntry) string {
	op := 1.0
	if e.Hidden {
		op = scatter.HiddenOpacity
	}
	return renderRun(cell{fg: blend(e.Color, op)}, strings.Repeat("█", 2))
}
