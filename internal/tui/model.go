package tui

import (
	"context"
	"io"
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"goscatter/internal/dataset"
	"goscatter/internal/scatter"
)

const (
	headerHeight = 1
	footerHeight = 2
	sidebarWidth = 28
	panelWidth   = 36

	// DefaultMargin is the plot margin in braille dots: four text rows
	// top and bottom, eight columns left and right.
	DefaultMargin = 16
)

// DefaultRadiusRange sizes markers in braille dots.
var DefaultRadiusRange = [2]float64{1, 3}

// Options configures the viewer.
type Options struct {
	// Chart carries title, field selectors, legend and detail fields.
	// Data, size and margin are filled in by the viewer.
	Chart       scatter.Config
	Margin      float64
	RadiusRange [2]float64
	Source      dataset.Options
	Dir         string
	Logger      *slog.Logger
	Context     context.Context
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	ctx    context.Context
	log    *slog.Logger
	base   scatter.Config
	margin float64
	radius [2]float64
	srcOpt dataset.Options

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	set   dataset.Set
	chart *scatter.Chart

	// selected detail list
	details list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverIdx   int

	// brush gesture, in canvas cells
	dragging bool
	anchorX  int
	anchorY  int

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "goscatter ready",
		ctx:         opts.Context,
		log:         opts.Logger,
		base:        opts.Chart,
		margin:      opts.Margin,
		radius:      opts.RadiusRange,
		srcOpt:      opts.Source,
		cwd:         opts.Dir,
		hoverIdx:    -1,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.margin == 0 {
		m.margin = DefaultMargin
	}
	if m.radius == [2]float64{} {
		m.radius = DefaultRadiusRange
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// file list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// detail list setup
	dd := list.NewDefaultDelegate()
	dd.ShowDescription = false
	dd.SetSpacing(0)
	m.details = list.New(nil, dd, panelWidth-4, 8)
	m.details.Title = "Selected (0)"
	m.details.SetShowHelp(false)
	m.details.SetShowStatusBar(false)
	m.details.SetFilteringEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste CSV (header row first) or a JSON array of records. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns follow the dataset fields)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	if len(opts.Chart.Data) > 0 {
		m.set = dataset.Set{Records: opts.Chart.Data, Fields: dataset.Fields(opts.Chart.Data), Source: opts.Chart.Target}
	}
	m.refreshDir()
	return m
}

// NewWithPath preloads a dataset at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Chart exposes the current chart, nil before any data is loaded.
func (m Model) Chart() *scatter.Chart { return m.chart }

// Status returns the status line text.
func (m Model) Status() string { return m.status }
