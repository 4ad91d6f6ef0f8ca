// Package scatter builds an interactive scatterplot scene from a dataset:
// scales, markers, axes, labels, a legend, and the brush and legend-toggle
// interaction state. Hosts (terminal, static files, http) draw the scene and
// feed pointer events back into the Chart.
package scatter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Defaults for an unset Config field.
const (
	DefaultMargin    = 50
	DefaultSize      = 1000
	DefaultTickCount = 4
	HiddenOpacity    = 0.1
	legendRowStep    = 45
	legendSwatch     = 40
)

var (
	DefaultRadiusRange  = [2]float64{4, 12}
	DefaultDetailFields = []string{"Model", "MPG", "Price"}
)

var (
	ErrEmptyDataset    = errors.New("scatter: empty dataset")
	ErrMissingField    = errors.New("scatter: field name not set")
	ErrNoCategories    = errors.New("scatter: no color categories")
	ErrDomain          = errors.New("scatter: domain not representable")
	ErrLegendIndex     = errors.New("scatter: legend index out of range")
	ErrUnknownCategory = errors.New("scatter: category not in legend")
)

// Config describes one render.
type Config struct {
	Data   []Record
	Target string // mount target: output path, URL path, or "-" for the terminal
	Title  string

	XField      string
	YField      string
	RadiusField string
	ColorField  string

	// Legend overrides the discovered categories as legend labels.
	Legend []string

	Margin        float64
	Width, Height float64
	RadiusRange   [2]float64
	DetailFields  []string
	TickCount     int

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Margin == 0 {
		c.Margin = DefaultMargin
	}
	if c.Width == 0 {
		c.Width = DefaultSize
	}
	if c.Height == 0 {
		c.Height = DefaultSize
	}
	if c.RadiusRange == [2]float64{} {
		c.RadiusRange = DefaultRadiusRange
	}
	if len(c.DetailFields) == 0 {
		c.DetailFields = DefaultDetailFields
	}
	if c.TickCount == 0 {
		c.TickCount = DefaultTickCount
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Marker is the drawn handle of one record.
type Marker struct {
	Index    int
	ID       string
	Category string
	X, Y, R  float64
	Color    string
	Opacity  float64
}

// AxisOrient says which side of the plot an axis sits on.
type AxisOrient int

const (
	AxisBottom AxisOrient = iota
	AxisLeft
)

// Tick is one labelled axis mark; Pos is in screen space along the axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis is a drawn axis line. For a bottom axis Pos is its y and From/To its
// x span; for a left axis Pos is its x and From/To its y span.
type Axis struct {
	Orient   AxisOrient
	Pos      float64
	From, To float64
	Ticks    []Tick
}

// Label is a text element anchored at its middle.
type Label struct {
	Text   string
	X, Y   float64
	Rotate float64
}

// LegendEntry is a clickable swatch+label row.
type LegendEntry struct {
	Label  string
	Color  string
	X, Y   float64
	Size   float64
	TextDX float64
	TextDY float64
	Hidden bool
}

// Chart is a rendered scatterplot plus its interaction state. It is owned by
// a single host and is not safe for concurrent use.
type Chart struct {
	cfg Config
	log *slog.Logger

	XScale LinearScale
	YScale LinearScale
	RScale SqrtScale
	Colors *ColorScale

	Categories []string
	Markers    []Marker
	XAxis      Axis
	YAxis      Axis
	Title      Label
	XLabel     Label
	YLabel     Label
	Legend     []LegendEntry
	// BrushBounds is the area the brush may cover.
	BrushBounds Rect

	state    BrushState
	brush    Rect
	hasBrush bool
	selected []bool
	details  []string
}

// Render computes scales and the scene for cfg. Every call returns a fresh
// chart with no selection and every category visible.
func Render(cfg Config) (*Chart, error) {
	cfg = cfg.withDefaults()
	if len(cfg.Data) == 0 {
		return nil, ErrEmptyDataset
	}
	for _, f := range []struct{ name, value string }{
		{"x", cfg.XField}, {"y", cfg.YField}, {"radius", cfg.RadiusField}, {"color", cfg.ColorField},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	n := len(cfg.Data)
	xs, ys, rs := make([]float64, n), make([]float64, n), make([]float64, n)
	bad := 0
	for i, r := range cfg.Data {
		var okx, oky, okr bool
		xs[i], okx = r.Number(cfg.XField)
		ys[i], oky = r.Number(cfg.YField)
		rs[i], okr = r.Number(cfg.RadiusField)
		if !okx || !oky || !okr {
			bad++
		}
	}
	cats := Categories(cfg.Data, cfg.ColorField)
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: field %q", ErrNoCategories, cfg.ColorField)
	}
	if bad > 0 {
		cfg.Logger.Warn("records with non-numeric values", "count", bad, "target", cfg.Target)
	}

	c := &Chart{
		cfg:        cfg,
		log:        cfg.Logger,
		Categories: cats,
		Colors:     NewColorScale(cats, nil),
		selected:   make([]bool, n),
	}

	m := cfg.Margin
	xlo, xhi, _ := Extent(xs)
	ylo, yhi, _ := Extent(ys)
	xlo, xhi = paddedExtent(xlo, xhi)
	ylo, yhi = paddedExtent(ylo, yhi)
	for _, d := range []struct {
		name   string
		lo, hi float64
	}{{cfg.XField, xlo, xhi}, {cfg.YField, ylo, yhi}} {
		if !finite(d.lo) || !finite(d.hi) || !finite(d.hi-d.lo) {
			return nil, fmt.Errorf("%w: field %q spans [%g, %g]", ErrDomain, d.name, d.lo, d.hi)
		}
	}
	c.XScale = NewLinearScale(xlo, xhi, m, cfg.Width-m)
	c.YScale = NewLinearScale(ylo, yhi, cfg.Height-m, m)
	rlo, rhi, _ := Extent(rs)
	c.RScale = NewSqrtScale(rlo, rhi, cfg.RadiusRange[0], cfg.RadiusRange[1])

	c.Markers = make([]Marker, n)
	for i, r := range cfg.Data {
		cat := r.Text(cfg.ColorField)
		c.Markers[i] = Marker{
			Index:    i,
			ID:       fmt.Sprintf("id_%d", i),
			Category: cat,
			X:        c.XScale.Map(xs[i]),
			Y:        c.YScale.Map(ys[i]),
			R:        c.RScale.Map(rs[i]),
			Color:    c.Colors.Color(cat),
			Opacity:  1,
		}
	}

	c.XAxis = buildAxis(AxisBottom, c.XScale, cfg.Height-m, cfg.TickCount)
	c.YAxis = buildAxis(AxisLeft, c.YScale, m, cfg.TickCount)
	c.XLabel = Label{Text: cfg.XField, X: cfg.Width / 2, Y: cfg.Height - 10}
	c.YLabel = Label{Text: cfg.YField, X: 35, Y: cfg.Height / 2, Rotate: 270}
	c.Title = Label{Text: cfg.Title, X: cfg.Width / 2, Y: 80}
	c.BrushBounds = Rect{X0: m, Y0: m, X1: cfg.Width - m, Y1: cfg.Height - m}

	labels := cfg.Legend
	if len(labels) == 0 {
		labels = cats
	}
	c.Legend = make([]LegendEntry, len(labels))
	for i, l := range labels {
		c.Legend[i] = LegendEntry{
			Label:  l,
			Color:  c.Colors.Color(l),
			X:      cfg.Width * 0.8,
			Y:      m + float64(i*legendRowStep),
			Size:   legendSwatch,
			TextDX: legendSwatch + 5,
			TextDY: 25,
		}
	}

	c.log.Debug("rendered scatter",
		"target", cfg.Target,
		"records", n,
		"categories", len(cats),
		"x_domain", []float64{xlo, xhi},
		"y_domain", []float64{ylo, yhi})
	return c, nil
}

func buildAxis(o AxisOrient, s LinearScale, pos float64, count int) Axis {
	from, to := s.Range()
	a := Axis{Orient: o, Pos: pos, From: from, To: to}
	for _, v := range s.Ticks(count) {
		a.Ticks = append(a.Ticks, Tick{Value: v, Pos: s.Map(v), Label: FormatTick(v)})
	}
	return a
}

// Config returns the effective configuration, defaults applied.
func (c *Chart) Config() Config { return c.cfg }

// Records returns the dataset the chart was rendered from.
func (c *Chart) Records() []Record { return c.cfg.Data }

// Visible reports whether marker i has a finite position and radius. Markers
// of records with a non-numeric x or y are never visible and never selected.
func (c *Chart) Visible(i int) bool {
	m := c.Markers[i]
	return !math.IsNaN(m.X) && !math.IsNaN(m.Y) && !math.IsNaN(m.R)
}
