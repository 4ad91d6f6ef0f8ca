package scatter

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPoints() Config {
	return Config{
		Data: []Record{
			{"x": 1.0, "y": 2.0, "r": 5.0, "c": "A", "Model": "m0", "MPG": 30.0, "Price": 100.0},
			{"x": 10.0, "y": 20.0, "r": 50.0, "c": "B", "Model": "m1", "MPG": 20.0, "Price": 200.0},
		},
		Title:       "cars",
		XField:      "x",
		YField:      "y",
		RadiusField: "r",
		ColorField:  "c",
	}
}

func cars() Config {
	return Config{
		Data: []Record{
			{"Model": "Civic", "MPG": "36", "Price": "22000", "HP": "158", "Type": "Sedan"},
			{"Model": "F-150", "MPG": "20", "Price": "33000", "HP": "290", "Type": "Truck"},
			{"Model": "Accord", "MPG": "33", "Price": "27000", "HP": "192", "Type": "Sedan"},
			{"Model": "RAV4", "MPG": "30", "Price": "28000", "HP": "203", "Type": "SUV"},
			{"Model": "Tacoma", "MPG": "21", "Price": "29000", "HP": "278", "Type": "Truck"},
		},
		Title:       "Cars",
		XField:      "MPG",
		YField:      "Price",
		RadiusField: "HP",
		ColorField:  "Type",
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty dataset", func(c *Config) { c.Data = nil }, ErrEmptyDataset},
		{"no x field", func(c *Config) { c.XField = "" }, ErrMissingField},
		{"no color field", func(c *Config) { c.ColorField = "" }, ErrMissingField},
		{"no categories", func(c *Config) { c.ColorField = "absent" }, ErrNoCategories},
		{"x spans the float range", func(c *Config) {
			c.Data[0]["x"] = -1e308
			c.Data[1]["x"] = 1e308
		}, ErrDomain},
		{"y spans the float range", func(c *Config) {
			c.Data[0]["y"] = -math.MaxFloat64
			c.Data[1]["y"] = math.MaxFloat64
		}, ErrDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := twoPoints()
			tt.mutate(&cfg)
			_, err := Render(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRender_Defaults(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	cfg := c.Config()
	assert.Equal(t, 50.0, cfg.Margin)
	assert.Equal(t, 1000.0, cfg.Width)
	assert.Equal(t, 1000.0, cfg.Height)
	assert.Equal(t, DefaultRadiusRange, cfg.RadiusRange)
	assert.Equal(t, DefaultDetailFields, cfg.DetailFields)
	assert.Equal(t, BrushIdle, c.State())
	assert.Equal(t, Rect{X0: 50, Y0: 50, X1: 950, Y1: 950}, c.BrushBounds)
}

func TestRender_Markers(t *testing.T) {
	c, err := Render(twoPoints())
	require.NoError(t, err)
	require.Len(t, c.Markers, 2)

	m0, m1 := c.Markers[0], c.Markers[1]
	assert.Equal(t, "id_0", m0.ID)
	assert.Equal(t, "A", m0.Category)
	assert.Equal(t, Tableau10[0], m0.Color)
	assert.Equal(t, Tableau10[1], m1.Color)
	assert.InDelta(t, 50+0.45/9.9*900, m0.X, 1e-9)
	assert.InDelta(t, 950-0.9/19.8*900, m0.Y, 1e-9)
	// y is inverted: the larger value sits higher on screen
	assert.Less(t, m1.Y, m0.Y)
	assert.InDelta(t, 4, m0.R, 1e-9)
	assert.InDelta(t, 12, m1.R, 1e-9)
	assert.Equal(t, 1.0, m0.Opacity)
}

func TestRender_PositionsInsideMargins(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)
	cfg := c.Config()
	for _, m := range c.Markers {
		assert.GreaterOrEqual(t, m.X, cfg.Margin)
		assert.LessOrEqual(t, m.X, cfg.Width-cfg.Margin)
		assert.GreaterOrEqual(t, m.Y, cfg.Margin)
		assert.LessOrEqual(t, m.Y, cfg.Height-cfg.Margin)
		assert.GreaterOrEqual(t, m.R, 4.0)
		assert.LessOrEqual(t, m.R, 12.0)
	}
}

func TestRender_RadiusMonotonic(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)
	hp := map[int]float64{}
	for i, r := range c.Records() {
		hp[i], _ = r.Number("HP")
	}
	for i := range c.Markers {
		for j := range c.Markers {
			if hp[i] < hp[j] {
				assert.LessOrEqual(t, c.Markers[i].R, c.Markers[j].R)
			}
		}
	}
	// F-150 has the most HP, Civic the least
	assert.InDelta(t, 12, c.Markers[1].R, 1e-9)
	assert.InDelta(t, 4, c.Markers[0].R, 1e-9)
}

func TestRender_CategoriesAndLegend(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)
	assert.Equal(t, []string{"Sedan", "Truck", "SUV"}, c.Categories)
	require.Len(t, c.Legend, 3)
	for i, e := range c.Legend {
		assert.Equal(t, c.Categories[i], e.Label)
		assert.Equal(t, Tableau10[i], e.Color)
		assert.Equal(t, 800.0, e.X)
		assert.Equal(t, 50.0+float64(45*i), e.Y)
		assert.False(t, e.Hidden)
	}

	cfg := cars()
	cfg.Legend = []string{"Truck", "Sedan", "Coupe", "SUV"}
	c, err = Render(cfg)
	require.NoError(t, err)
	require.Len(t, c.Legend, 4)
	// explicit labels keep the color they have on the markers
	assert.Equal(t, c.Colors.Color("Truck"), c.Legend[0].Color)
	assert.Equal(t, Tableau10[3], c.Legend[2].Color)
}

func TestRender_AxesAndLabels(t *testing.T) {
	c, err := Render(cars())
	require.NoError(t, err)

	assert.Equal(t, AxisBottom, c.XAxis.Orient)
	assert.Equal(t, 950.0, c.XAxis.Pos)
	assert.Equal(t, AxisLeft, c.YAxis.Orient)
	assert.Equal(t, 50.0, c.YAxis.Pos)
	for _, a := range []Axis{c.XAxis, c.YAxis} {
		assert.NotEmpty(t, a.Ticks)
		assert.LessOrEqual(t, len(a.Ticks), 4)
		for _, tk := range a.Ticks {
			assert.NotEmpty(t, tk.Label)
			assert.GreaterOrEqual(t, tk.Pos, 50.0)
			assert.LessOrEqual(t, tk.Pos, 950.0)
		}
	}

	want := []Label{
		{Text: "Cars", X: 500, Y: 80},
		{Text: "MPG", X: 500, Y: 990},
		{Text: "Price", X: 35, Y: 500, Rotate: 270},
	}
	if diff := cmp.Diff(want, []Label{c.Title, c.XLabel, c.YLabel}); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NonNumericDegrades(t *testing.T) {
	cfg := cars()
	cfg.Data = append(cfg.Data, Record{"Model": "?", "MPG": "n/a", "Price": "1", "HP": "100", "Type": "SUV"})
	c, err := Render(cfg)
	require.NoError(t, err)
	bad := len(cfg.Data) - 1
	assert.True(t, math.IsNaN(c.Markers[bad].X))
	assert.False(t, c.Visible(bad))
	assert.True(t, c.Visible(0))
	assert.NotContains(t, c.SelectIn(c.BrushBounds), bad)
}

func TestRender_NonNumericOnCollapsedDomain(t *testing.T) {
	cfg := twoPoints()
	cfg.Data[1]["x"] = "abc"
	c, err := Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 500.0, c.Markers[0].X)
	assert.True(t, math.IsNaN(c.Markers[1].X))
	assert.False(t, c.Visible(1))
	assert.Equal(t, []int{0}, c.SelectIn(c.BrushBounds))
}

func TestRender_Fresh(t *testing.T) {
	cfg := twoPoints()
	c1, err := Render(cfg)
	require.NoError(t, err)
	c1.OnDragStart()
	c1.OnDragEnd(&Rect{X0: 50, Y0: 50, X1: 950, Y1: 950})
	_, err = c1.OnLegendToggle(0)
	require.NoError(t, err)

	c2, err := Render(cfg)
	require.NoError(t, err)
	assert.Empty(t, c2.SelectedIndices())
	assert.Empty(t, c2.Details())
	assert.Empty(t, c2.HiddenCategories())
	assert.Len(t, c2.Markers, len(cfg.Data))
}

func TestRecord_Number(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float", 2.5, 2.5, true},
		{"int", 3, 3, true},
		{"int64", int64(-4), -4, true},
		{"numeric string", " 12.5 ", 12.5, true},
		{"empty string", "", 0, true},
		{"bool", true, 1, true},
		{"bytes", []byte("7"), 7, true},
		{"text", "abc", math.NaN(), false},
		{"nil", nil, math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{"f": tt.value}.Number("f")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.True(t, math.IsNaN(got))
			}
		})
	}
	_, ok := Record{}.Number("missing")
	assert.False(t, ok)
}

func TestRecord_TextAndDetailLine(t *testing.T) {
	r := Record{"Model": "Civic", "MPG": 36.0, "Price": 22000, "Note": nil}
	assert.Equal(t, "Civic", r.Text("Model"))
	assert.Equal(t, "36", r.Text("MPG"))
	assert.Equal(t, "22000", r.Text("Price"))
	assert.Equal(t, "", r.Text("Note"))
	assert.Equal(t, "", r.Text("missing"))
	assert.Equal(t, "Model: Civic, MPG: 36, Price: 22000", DetailLine(r, DefaultDetailFields))
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	data := []Record{{"c": "B"}, {"c": "A"}, {"c": "B"}, {}, {"c": "C"}, {"c": "A"}}
	assert.Equal(t, []string{"B", "A", "C"}, Categories(data, "c"))
}
