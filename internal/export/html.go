package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"goscatter/internal/scatter"
)

// SelectionSeries names the extra series holding brushed records.
const SelectionSeries = "selected"

// HTMLOptions tunes the interactive page.
type HTMLOptions struct {
	Theme      string // echarts theme, "white" when empty
	Width      string // css size, the chart width in px when empty
	Height     string
	AssetsHost string // echarts asset prefix, the go-echarts CDN when empty
}

// WriteHTML renders c as an echarts page. Each legend entry becomes one
// series so the echarts legend toggles categories; series of hidden entries
// are drawn at the hidden opacity.
func WriteHTML(w io.Writer, c *scatter.Chart, o HTMLOptions) error {
	sc := newScatterChart(c, o)
	if err := sc.Render(w); err != nil {
		return fmt.Errorf("export: render html: %w", err)
	}
	return nil
}

func newScatterChart(c *scatter.Chart, o HTMLOptions) *charts.Scatter {
	cfg := c.Config()
	xlo, xhi := c.XScale.Domain()
	ylo, yhi := c.YScale.Domain()

	page := opts.Initialization{
		PageTitle:  cfg.Title,
		Theme:      o.Theme,
		Width:      o.Width,
		Height:     o.Height,
		AssetsHost: o.AssetsHost,
	}
	if page.PageTitle == "" {
		page.PageTitle = "goscatter"
	}
	if page.Width == "" {
		page.Width = fmt.Sprintf("%dpx", int(cfg.Width))
	}
	if page.Height == "" {
		page.Height = fmt.Sprintf("%dpx", int(cfg.Height))
	}

	sel := c.SelectedIndices()

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(page),
		charts.WithTitleOpts(opts.Title{Title: cfg.Title, Subtitle: fmt.Sprintf("records=%d selected=%d", len(c.Markers), len(sel))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: xlo, Max: xhi, Name: c.XLabel.Text, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: ylo, Max: yhi, Name: c.YLabel.Text, NameLocation: "middle", NameGap: 40}),
	)

	for _, e := range c.Legend {
		style := opts.ItemStyle{Color: e.Color, Opacity: opts.Float(1)}
		if e.Hidden {
			style.Opacity = opts.Float(scatter.HiddenOpacity)
		}
		sc.AddSeries(e.Label, seriesData(c, func(mk scatter.Marker) bool { return mk.Category == e.Label }),
			charts.WithItemStyleOpts(style))
	}
	if len(sel) > 0 {
		sc.AddSeries(SelectionSeries, seriesData(c, func(mk scatter.Marker) bool { return c.Selected(mk.Index) }),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent", BorderColor: "#000000", BorderWidth: 2}))
	}
	return sc
}

// seriesData collects [x, y, r] points for the markers keep accepts. The
// symbol diameter follows the chart's radius scale.
func seriesData(c *scatter.Chart, keep func(scatter.Marker) bool) []opts.ScatterData {
	cfg := c.Config()
	recs := c.Records()
	var out []opts.ScatterData
	for i, mk := range c.Markers {
		if !c.Visible(i) || !keep(mk) {
			continue
		}
		x, _ := recs[i].Number(cfg.XField)
		y, _ := recs[i].Number(cfg.YField)
		r, _ := recs[i].Number(cfg.RadiusField)
		out = append(out, opts.ScatterData{
			Name:       scatter.DetailLine(recs[i], cfg.DetailFields),
			Value:      []interface{}{x, y, r},
			SymbolSize: int(math.Round(2 * mk.R)),
		})
	}
	return out
}
