// Package export renders a scatter chart outside the terminal: static
// svg/png/pdf through gonum/plot, interactive html through go-echarts, and
// an http handler serving both.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"goscatter/internal/scatter"
)

// ErrFormat is returned for an output format no writer handles.
var ErrFormat = errors.New("export: unsupported format")

// PlotFormats are the static formats WritePlot accepts.
var PlotFormats = []string{"svg", "png", "pdf"}

// DefaultPlotSize is the width of a static plot.
const DefaultPlotSize = 6 * vg.Inch

// FormatOf returns the export format implied by a file name.
func FormatOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// WritePlot renders c as a static plot of the given width; the height keeps
// the chart's aspect ratio. Markers keep their color, opacity and radius,
// brushed markers get an outline, and hidden legend entries are faded.
func WritePlot(w io.Writer, c *scatter.Chart, format string, size vg.Length) error {
	if !IsPlotFormat(format) {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	p, err := buildPlot(c, size)
	if err != nil {
		return err
	}
	cfg := c.Config()
	height := size * vg.Length(cfg.Height/cfg.Width)
	wt, err := p.WriterTo(size, height, format)
	if err != nil {
		return fmt.Errorf("export: %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("export: write %s: %w", format, err)
	}
	return nil
}

// IsPlotFormat reports whether WritePlot handles f.
func IsPlotFormat(f string) bool {
	for _, p := range PlotFormats {
		if p == f {
			return true
		}
	}
	return false
}

func buildPlot(c *scatter.Chart, size vg.Length) (*plot.Plot, error) {
	cfg := c.Config()
	recs := c.Records()
	// chart radii are in chart pixels
	px := size / vg.Length(cfg.Width)

	var (
		xys  plotter.XYs
		idx  []int
		sel  plotter.XYs
		selR []vg.Length
	)
	for i, mk := range c.Markers {
		if !c.Visible(i) {
			continue
		}
		x, _ := recs[i].Number(cfg.XField)
		y, _ := recs[i].Number(cfg.YField)
		xys = append(xys, plotter.XY{X: x, Y: y})
		idx = append(idx, i)
		if c.Selected(i) {
			sel = append(sel, plotter.XY{X: x, Y: y})
			selR = append(selR, vg.Length(mk.R)*px+vg.Points(1))
		}
	}

	p := plot.New()
	p.Title.Text = c.Title.Text
	p.X.Label.Text = c.XLabel.Text
	p.Y.Label.Text = c.YLabel.Text
	p.X.Tick.Marker = constantTicks(c.XAxis)
	p.Y.Tick.Marker = constantTicks(c.YAxis)

	if len(xys) > 0 {
		pts, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("export: scatter: %w", err)
		}
		pts.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			mk := c.Markers[idx[j]]
			return draw.GlyphStyle{
				Color:  fade(mk.Color, mk.Opacity),
				Radius: vg.Length(mk.R) * px,
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(pts)
	}
	if len(sel) > 0 {
		rings, err := plotter.NewScatter(sel)
		if err != nil {
			return nil, fmt.Errorf("export: selection: %w", err)
		}
		rings.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: color.Black, Radius: selR[j], Shape: draw.RingGlyph{}}
		}
		p.Add(rings)
	}

	for _, e := range c.Legend {
		op := 1.0
		if e.Hidden {
			op = scatter.HiddenOpacity
		}
		p.Legend.Add(e.Label, swatch{fade(e.Color, op)})
	}
	p.Legend.Top = true

	// Add widens the axes to the data; pin them to the chart's domains.
	p.X.Min, p.X.Max = c.XScale.Domain()
	p.Y.Min, p.Y.Max = c.YScale.Domain()
	if p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = p.X.Min-0.5, p.X.Max+0.5
	}
	if p.Y.Min == p.Y.Max {
		p.Y.Min, p.Y.Max = p.Y.Min-0.5, p.Y.Max+0.5
	}
	return p, nil
}

func constantTicks(a scatter.Axis) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, len(a.Ticks))
	for _, t := range a.Ticks {
		ticks = append(ticks, plot.Tick{Value: t.Value, Label: t.Label})
	}
	return ticks
}

// fade turns a hex color into an NRGBA with the given opacity.
func fade(hex string, opacity float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	r, g, b := c.RGB255()
	a := uint8(math.Round(255 * math.Max(0, math.Min(1, opacity))))
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// swatch is a filled legend square.
type swatch struct{ color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, c.ClipPolygonXY(pts))
}
