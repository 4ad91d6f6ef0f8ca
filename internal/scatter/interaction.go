package scatter

import (
	"fmt"
	"math"
)

// Rect is a rectangle in screen space given by two corners.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Normalize orders the corners so X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Empty reports a collapsed rectangle (zero width or zero height).
func (r Rect) Empty() bool { return r.X0 == r.X1 || r.Y0 == r.Y1 }

// Contains is inclusive on all four edges. NaN coordinates are never inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Clamp intersects r with b. Both must be normalised.
func (r Rect) Clamp(b Rect) Rect {
	return Rect{
		X0: math.Min(math.Max(r.X0, b.X0), b.X1),
		Y0: math.Min(math.Max(r.Y0, b.Y0), b.Y1),
		X1: math.Max(math.Min(r.X1, b.X1), b.X0),
		Y1: math.Max(math.Min(r.Y1, b.Y1), b.Y0),
	}
}

// BrushState is the brush gesture state machine.
type BrushState int

const (
	BrushIdle BrushState = iota
	BrushDragging
)

func (s BrushState) String() string {
	switch s {
	case BrushIdle:
		return "idle"
	case BrushDragging:
		return "dragging"
	}
	return fmt.Sprintf("BrushState(%d)", int(s))
}

// State returns the current brush state.
func (c *Chart) State() BrushState { return c.state }

// Brush returns the current brush rectangle, if any.
func (c *Chart) Brush() (Rect, bool) { return c.brush, c.hasBrush }

// OnDragStart begins a new brush gesture: previously selected markers and
// the detail list are cleared.
func (c *Chart) OnDragStart() {
	for i := range c.selected {
		c.selected[i] = false
	}
	c.details = nil
	c.hasBrush = false
	c.state = BrushDragging
	c.log.Debug("brush start")
}

// OnDragUpdate handles a brush move. A nil or collapsed rectangle leaves the
// selection and the detail list as they are.
func (c *Chart) OnDragUpdate(r *Rect) {
	if r == nil || r.Empty() {
		c.hasBrush = false
		return
	}
	b := r.Normalize().Clamp(c.BrushBounds)
	if b.Empty() {
		c.hasBrush = false
		return
	}
	c.brush, c.hasBrush = b, true

	idx := c.SelectIn(b)
	for i := range c.selected {
		c.selected[i] = false
	}
	c.details = make([]string, 0, len(idx))
	for _, i := range idx {
		c.selected[i] = true
		c.details = append(c.details, DetailLine(c.cfg.Data[i], c.cfg.DetailFields))
	}
	c.log.Debug("brush", "rect", b, "selected", len(idx))
}

// OnDragEnd applies the final brush rectangle and returns to idle.
func (c *Chart) OnDragEnd(r *Rect) {
	c.OnDragUpdate(r)
	c.state = BrushIdle
}

// SelectIn returns the indices of markers whose position lies inside r,
// inclusive, in dataset order. It does not change any state.
func (c *Chart) SelectIn(r Rect) []int {
	r = r.Normalize()
	var out []int
	for _, m := range c.Markers {
		if r.Contains(m.X, m.Y) {
			out = append(out, m.Index)
		}
	}
	return out
}

// Selected reports whether marker i is highlighted by the brush.
func (c *Chart) Selected(i int) bool { return c.selected[i] }

// SelectedIndices returns the highlighted marker indices in dataset order.
func (c *Chart) SelectedIndices() []int {
	var out []int
	for i, s := range c.selected {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// Selection returns the records under the brush.
func (c *Chart) Selection() []Record {
	var out []Record
	for i, s := range c.selected {
		if s {
			out = append(out, c.cfg.Data[i])
		}
	}
	return out
}

// Details returns the detail list, one line per selected record.
func (c *Chart) Details() []string {
	return append([]string(nil), c.details...)
}

// OnLegendToggle flips legend entry i between visible and hidden and sets the
// opacity of every marker in that category. Hidden markers are dimmed, not
// removed, so the brush still selects them.
func (c *Chart) OnLegendToggle(i int) (hidden bool, err error) {
	if i < 0 || i >= len(c.Legend) {
		return false, fmt.Errorf("%w: %d", ErrLegendIndex, i)
	}
	e := &c.Legend[i]
	e.Hidden = !e.Hidden
	op := 1.0
	if e.Hidden {
		op = HiddenOpacity
	}
	n := 0
	for j := range c.Markers {
		if c.Markers[j].Category == e.Label {
			c.Markers[j].Opacity = op
			n++
		}
	}
	c.log.Debug("legend toggle", "category", e.Label, "hidden", e.Hidden, "markers", n)
	return e.Hidden, nil
}

// ToggleCategory toggles the first legend entry labelled category.
func (c *Chart) ToggleCategory(category string) (bool, error) {
	for i, e := range c.Legend {
		if e.Label == category {
			return c.OnLegendToggle(i)
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Hidden reports whether the legend entry for category is hidden.
func (c *Chart) Hidden(category string) bool {
	for _, e := range c.Legend {
		if e.Label == category {
			return e.Hidden
		}
	}
	return false
}

// HiddenCategories lists the hidden legend labels in legend order.
func (c *Chart) HiddenCategories() []string {
	var out []string
	for _, e := range c.Legend {
		if e.Hidden {
			out = append(out, e.Label)
		}
	}
	return out
}

// Opacity returns marker i's current opacity.
func (c *Chart) Opacity(i int) float64 { return c.Markers[i].Opacity }
