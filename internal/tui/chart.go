package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"goscatter/internal/dataset"
	"goscatter/internal/scatter"
)

// layout is the screen geometry shared by View and the mouse handler.
type layout struct {
	contentW, contentH int
	sidebarW           int
	canvasX, canvasY   int
	canvasW, canvasH   int
	panelX             int
	legendY            int // screen row of the first legend entry
}

func (m Model) layout() layout {
	var l layout
	l.contentW = max(10, m.width)
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	gap := 0
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		gap = 1
	}
	l.canvasX = l.sidebarW + gap
	l.canvasY = headerHeight
	l.canvasW = max(10, l.contentW-l.canvasX-panelWidth-1)
	l.canvasH = l.contentH
	l.panelX = l.canvasX + l.canvasW + 1
	// border row, then the "Legend" title row
	l.legendY = headerHeight + 2
	return l
}

// rerender rebuilds the chart for the current data and canvas size. Hidden
// categories carry over; the brush selection does not.
func (m *Model) rerender() {
	defer m.resizeLists()
	if len(m.set.Records) == 0 || m.width == 0 {
		m.chart = nil
		m.syncDetails()
		return
	}
	var hidden []string
	if m.chart != nil {
		hidden = m.chart.HiddenCategories()
	}
	lay := m.layout()
	cfg := m.base
	cfg.Data = m.set.Records
	cfg.Target = "-"
	cfg.Width = float64(lay.canvasW * 2)
	cfg.Height = float64(lay.canvasH * 4)
	cfg.Margin = m.margin
	cfg.RadiusRange = m.radius
	cfg.Logger = m.log
	c, err := scatter.Render(cfg)
	if err != nil {
		m.chart = nil
		m.status = "render error: " + err.Error()
		m.log.Error("render failed", "error", err, "source", m.set.Source)
		m.syncDetails()
		return
	}
	for _, h := range hidden {
		_, _ = c.ToggleCategory(h)
	}
	m.chart = c
	m.hoverIdx = -1
	m.syncDetails()
}

// setData swaps in a new dataset and renders it.
func (m *Model) setData(s dataset.Set) {
	m.set = s
	m.chart = nil
	m.inspectPopup = ""
	m.rerender()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

type detailItem string

func (d detailItem) Title() string       { return string(d) }
func (d detailItem) Description() string { return "" }
func (d detailItem) FilterValue() string { return string(d) }

// syncDetails mirrors the chart's detail list into the side list.
func (m *Model) syncDetails() {
	var lines []string
	if m.chart != nil {
		lines = m.chart.Details()
	}
	items := make([]list.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, detailItem(l))
	}
	m.details.SetItems(items)
	m.details.Title = fmt.Sprintf("Selected (%d)", len(lines))
}

// canvasCell converts a screen position into canvas cell coordinates.
func (m Model) canvasCell(x, y int) (cx, cy int, inside bool) {
	lay := m.layout()
	cx, cy = x-lay.canvasX, y-lay.canvasY
	inside = cx >= 0 && cx < lay.canvasW && cy >= 0 && cy < lay.canvasH
	return cx, cy, inside
}

// brushRect spans the dots of the cells between the anchor and (cx, cy).
// Staying on the anchor cell is a collapsed brush.
func (m Model) brushRect(cx, cy int) *scatter.Rect {
	if cx == m.anchorX && cy == m.anchorY {
		return nil
	}
	x0, x1 := min(cx, m.anchorX), max(cx, m.anchorX)
	y0, y1 := min(cy, m.anchorY), max(cy, m.anchorY)
	return &scatter.Rect{
		X0: float64(x0 * 2), Y0: float64(y0 * 4),
		X1: float64((x1 + 1) * 2), Y1: float64((y1 + 1) * 4),
	}
}

// legendHit returns the legend entry under a screen position, or -1.
func (m Model) legendHit(x, y int) int {
	if m.chart == nil {
		return -1
	}
	lay := m.layout()
	if x < lay.panelX || x >= lay.panelX+panelWidth {
		return -1
	}
	i := y - lay.legendY
	if i < 0 || i >= len(m.chart.Legend) {
		return -1
	}
	return i
}

// nearestMarker finds the drawn marker closest to a canvas cell within
// maxCells, or -1.
func (m Model) nearestMarker(cx, cy, maxCells int) int {
	if m.chart == nil {
		return -1
	}
	hx, hy := cx*2+1, cy*4+2
	best, bestD := -1, maxCells*maxCells*16
	for i, mk := range m.chart.Markers {
		if !m.chart.Visible(i) {
			continue
		}
		dx := int(mk.X) - hx
		dy := int(mk.Y) - hy
		d := dx*dx + dy*dy
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// toggleLegend flips entry i and reports it in the status line.
func (m *Model) toggleLegend(i int) {
	if m.chart == nil {
		return
	}
	hidden, err := m.chart.OnLegendToggle(i)
	if err != nil {
		m.status = err.Error()
		return
	}
	state := "visible"
	if hidden {
		state = "hidden"
	}
	m.status = fmt.Sprintf("%s: %s", m.chart.Legend[i].Label, state)
}
