package scatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func around(m Marker, d float64) *Rect {
	return &Rect{X0: m.X - d, Y0: m.Y - d, X1: m.X + d, Y1: m.Y + d}
}

func TestBrush_SelectsFirstPointOnly(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)

	c.OnDragStart()
	assert.Equal(t, BrushDragging, c.State())
	c.OnDragUpdate(around(c.Markers[0], 10))
	c.OnDragEnd(around(c.Markers[0], 10))

	assert.Equal(t, BrushIdle, c.State())
	assert.Equal(t, []int{0}, c.SelectedIndices())
	assert.True(t, c.Selected(0))
	assert.False(t, c.Selected(1))
	assert.Equal(t, []Record{c.Records()[0]}, c.Selection())
	assert.Equal(t, []string{"Model: m0, MPG: 30, Price: 100"}, c.Details())
}

func TestBrush_InclusiveBounds(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	m := c.Markers[0]
	// the marker sits exactly on the rectangle's corner
	got := c.SelectIn(Rect{X0: m.X, Y0: m.Y, X1: m.X + 5, Y1: m.Y + 5})
	assert.Equal(t, []int{0}, got)
}

func TestBrush_ReversedCornersNormalised(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	m := c.Markers[1]
	c.OnDragStart()
	c.OnDragEnd(&Rect{X0: m.X + 3, Y0: m.Y + 3, X1: m.X - 3, Y1: m.Y - 3})
	assert.Equal(t, []int{1}, c.SelectedIndices())
	b, ok := c.Brush()
	require.True(t, ok)
	assert.LessOrEqual(t, b.X0, b.X1)
	assert.LessOrEqual(t, b.Y0, b.Y1)
}

func TestBrush_ClampedToBounds(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	c.OnDragStart()
	c.OnDragEnd(&Rect{X0: -100, Y0: -100, X1: 5000, Y1: 5000})
	b, ok := c.Brush()
	require.True(t, ok)
	assert.Equal(t, c.BrushBounds, b)
	assert.Equal(t, []int{0, 1}, c.SelectedIndices())
}

func TestBrush_Idempotent(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)
	r := Rect{X0: 100, Y0: 100, X1: 600, Y1: 900}
	first := c.SelectIn(r)
	assert.Equal(t, first, c.SelectIn(r))

	c.OnDragStart()
	c.OnDragUpdate(&r)
	d1 := c.Details()
	c.OnDragUpdate(&r)
	assert.Equal(t, d1, c.Details())
	assert.Equal(t, first, c.SelectedIndices())
}

func TestBrush_CollapsedKeepsSelection(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	c.OnDragStart()
	c.OnDragUpdate(around(c.Markers[0], 10))
	require.Len(t, c.Details(), 1)

	tests := []struct {
		name string
		rect *Rect
	}{
		{"nil", nil},
		{"zero width", &Rect{X0: 100, Y0: 100, X1: 100, Y1: 300}},
		{"zero height", &Rect{X0: 100, Y0: 100, X1: 300, Y1: 100}},
		{"outside bounds", &Rect{X0: 0, Y0: 0, X1: 20, Y1: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.OnDragUpdate(tt.rect)
			assert.Equal(t, []int{0}, c.SelectedIndices())
			assert.Len(t, c.Details(), 1)
			_, ok := c.Brush()
			assert.False(t, ok)
		})
	}
}

func TestBrush_StartClears(t *testing.T) {
	tests := []struct {
		name string
		rect *Rect
	}{
		{"after a selection", &Rect{X0: 50, Y0: 50, X1: 950, Y1: 950}},
		{"after an empty selection", &Rect{X0: 400, Y0: 400, X1: 410, Y1: 410}},
		{"with no prior brush", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Render(twoPoints())
			require.NoError(t, err)
			if tt.rect != nil {
				c.OnDragStart()
				c.OnDragEnd(tt.rect)
			}
			c.OnDragStart()
			assert.Empty(t, c.SelectedIndices())
			assert.Empty(t, c.Details())
			assert.Empty(t, c.Selection())
			assert.Equal(t, BrushDragging, c.State())
		})
	}
}

func TestLegend_ToggleTwice(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)

	hidden, err := c.ToggleCategory("A")
	require.NoError(t, err)
	assert.True(t, hidden)
	assert.True(t, c.Legend[0].Hidden)
	assert.Equal(t, HiddenOpacity, c.Opacity(0))
	assert.Equal(t, 1.0, c.Opacity(1))
	assert.Equal(t, []string{"A"}, c.HiddenCategories())

	hidden, err = c.ToggleCategory("A")
	require.NoError(t, err)
	assert.False(t, hidden)
	assert.False(t, c.Hidden("A"))
	assert.Equal(t, 1.0, c.Opacity(0))
	assert.Empty(t, c.HiddenCategories())
}

func TestLegend_Errors(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	_, err = c.OnLegendToggle(7)
	assert.True(t, errors.Is(err, ErrLegendIndex))
	_, err = c.OnLegendToggle(-1)
	assert.True(t, errors.Is(err, ErrLegendIndex))
	_, err = c.ToggleCategory("nope")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestLegend_ComposesWithBrush(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)
	_, err = c.ToggleCategory("Truck")
	require.NoError(t, err)

	c.OnDragStart()
	c.OnDragEnd(&c.BrushBounds)
	assert.Len(t, c.SelectedIndices(), len(c.Markers))
	for i, m := range c.Markers {
		if m.Category == "Truck" {
			assert.Equal(t, HiddenOpacity, c.Opacity(i))
			assert.True(t, c.Selected(i))
		}
	}

	// toggling back leaves the selection alone
	_, err = c.ToggleCategory("Truck")
	require.NoError(t, err)
	assert.Len(t, c.SelectedIndices(), len(c.Markers))
}

func TestLegend_ExplicitLabelWithoutMarkers(t *testing.T) {
	cfg := cars()
	cfg.Legend = []string{"Sedan", "Coupe"}
	c, err := Render(cfg)
	require.NoError(t, err)
	hidden, err := c.OnLegendToggle(1)
	require.NoError(t, err)
	assert.True(t, hidden)
	for i := range c.Markers {
		assert.Equal(t, 1.0, c.Opacity(i))
	}
}

func TestBrushState_String(t *testing.T) {
	assert.Equal(t, "idle", BrushIdle.String())
	assert.Equal(t, "dragging", BrushDragging.String())
	assert.Equal(t, "BrushState(9)", BrushState(9).String())
}
