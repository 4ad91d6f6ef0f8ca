package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscatter/internal/scatter"
)

func cars() []scatter.Record {
	return []scatter.Record{
		{"Model": "Civic", "MPG": 36.0, "Price": 24000.0, "HP": 158.0, "Type": "Sedan"},
		{"Model": "F-150", "MPG": 20.0, "Price": 36000.0, "HP": 290.0, "Type": "Truck"},
		{"Model": "RAV4", "MPG": 30.0, "Price": 29000.0, "HP": 203.0, "Type": "SUV"},
		{"Model": "Camry", "MPG": 32.0, "Price": 27000.0, "HP": 203.0, "Type": "Sedan"},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{
		Chart: scatter.Config{
			Data:        cars(),
			Title:       "Cars",
			XField:      "MPG",
			YField:      "Price",
			RadiusField: "HP",
			ColorField:  "Type",
		},
		Dir: t.TempDir(),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, a tea.MouseAction) tea.MouseMsg {
	b := tea.MouseButtonLeft
	if a == tea.MouseActionMotion {
		b = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: x, Y: y, Action: a, Button: b}
}

// drag brushes from canvas cell (x0, y0) to (x1, y1).
func drag(t *testing.T, m Model, x0, y0, x1, y1 int) Model {
	t.Helper()
	lay := m.layout()
	m = update(t, m, mouse(lay.canvasX+x0, lay.canvasY+y0, tea.MouseActionPress))
	m = update(t, m, mouse(lay.canvasX+x1, lay.canvasY+y1, tea.MouseActionMotion))
	return update(t, m, mouse(lay.canvasX+x1, lay.canvasY+y1, tea.MouseActionRelease))
}

func TestResizeRendersChart(t *testing.T) {
	m := newTestModel(t)
	c := m.Chart()
	require.NotNil(t, c)

	lay := m.layout()
	cfg := c.Config()
	assert.Equal(t, float64(lay.canvasW*2), cfg.Width)
	assert.Equal(t, float64(lay.canvasH*4), cfg.Height)
	assert.Equal(t, float64(DefaultMargin), cfg.Margin)
	assert.Equal(t, []string{"Sedan", "Truck", "SUV"}, c.Categories)
	assert.Equal(t, "Selected (0)", m.details.Title)
}

func TestBrushDragSelectsEverything(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()

	m = drag(t, m, 0, 0, lay.canvasW-1, lay.canvasH-1)

	c := m.Chart()
	assert.Equal(t, []int{0, 1, 2, 3}, c.SelectedIndices())
	assert.Equal(t, scatter.BrushIdle, c.State())
	assert.False(t, m.dragging)
	assert.Equal(t, "Selected (4)", m.details.Title)
	require.Len(t, m.details.Items(), 4)
	assert.Equal(t, "Model: Civic, MPG: 36, Price: 24000", m.details.Items()[0].FilterValue())
	assert.Equal(t, "selected 4", m.Status())
}

func TestClickWithoutDragClearsSelection(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()
	m = drag(t, m, 0, 0, lay.canvasW-1, lay.canvasH-1)
	require.Len(t, m.Chart().SelectedIndices(), 4)

	m = drag(t, m, 5, 5, 5, 5)

	assert.Empty(t, m.Chart().SelectedIndices())
	assert.Empty(t, m.Chart().Details())
	_, ok := m.Chart().Brush()
	assert.False(t, ok)
}

func TestBrushRect(t *testing.T) {
	m := Model{anchorX: 3, anchorY: 2}
	assert.Nil(t, m.brushRect(3, 2))
	assert.Equal(t, &scatter.Rect{X0: 2, Y0: 8, X1: 8, Y1: 16}, m.brushRect(1, 3))
	assert.Equal(t, &scatter.Rect{X0: 6, Y0: 8, X1: 12, Y1: 12}, m.brushRect(5, 2))
}

func TestLegendKeysAndClicks(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, key("2"))
	assert.True(t, m.Chart().Hidden("Truck"))
	assert.Equal(t, scatter.HiddenOpacity, m.Chart().Opacity(1))
	assert.Equal(t, "Truck: hidden", m.Status())

	lay := m.layout()
	m = update(t, m, mouse(lay.panelX+3, lay.legendY, tea.MouseActionPress))
	assert.True(t, m.Chart().Hidden("Sedan"))
	assert.Equal(t, scatter.HiddenOpacity, m.Chart().Opacity(0))
	assert.Equal(t, scatter.HiddenOpacity, m.Chart().Opacity(3))

	m = update(t, m, key("l"))
	assert.Empty(t, m.Chart().HiddenCategories())
	assert.Equal(t, 1.0, m.Chart().Opacity(1))

	m = update(t, m, key("9"))
	assert.Equal(t, "no legend entry 9", m.Status())
}

func TestResizeKeepsHiddenCategories(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()
	m = update(t, m, key("3"))
	m = drag(t, m, 0, 0, lay.canvasW-1, lay.canvasH-1)

	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 50})

	assert.Equal(t, []string{"SUV"}, m.Chart().HiddenCategories())
	assert.Equal(t, scatter.HiddenOpacity, m.Chart().Opacity(2))
	assert.Empty(t, m.Chart().SelectedIndices())
}

func TestClearKey(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()
	m = drag(t, m, 0, 0, lay.canvasW-1, lay.canvasH-1)

	m = update(t, m, key("c"))

	assert.Empty(t, m.Chart().SelectedIndices())
	assert.Equal(t, "Selected (0)", m.details.Title)
	assert.Equal(t, "selection cleared", m.Status())
}

func TestPasteRendersRecords(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue("Model,MPG,Price,HP,Type\nA1,10,100,50,X\nB2,20,200,60,Y")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.pasteMode)
	require.NotNil(t, m.Chart())
	assert.Equal(t, []string{"X", "Y"}, m.Chart().Categories)
	assert.Equal(t, "<paste>", m.set.Source)
	assert.True(t, strings.HasPrefix(m.Status(), "rendered paste"))
}

func TestPasteErrors(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("p"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "paste: empty", m.Status())
	assert.True(t, m.pasteMode)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.pasteMode)
	assert.NotNil(t, m.Chart())
}

func TestAttrsTableFollowsSelection(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("a"))
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 4)
	assert.Equal(t, "#", m.tbl.Columns()[0].Title)

	mk := m.chart.Markers[0]
	m.chart.OnDragStart()
	m.chart.OnDragEnd(&scatter.Rect{X0: mk.X - 1, Y0: mk.Y - 1, X1: mk.X + 1, Y1: mk.Y + 1})
	m.refreshAttrsFromCurrent()
	require.Len(t, m.tbl.Rows(), 1)
	assert.Equal(t, "0", m.tbl.Rows()[0][0])
}

func TestInspectNearestMarker(t *testing.T) {
	m := newTestModel(t)
	mk := m.Chart().Markers[1]
	lay := m.layout()
	m = update(t, m, mouse(lay.canvasX+int(mk.X)/2, lay.canvasY+int(mk.Y)/4, tea.MouseActionMotion))
	assert.Equal(t, 1, m.hoverIdx)

	m = update(t, m, key("i"))
	assert.Contains(t, m.inspectPopup, "Model: F-150")
	assert.Contains(t, m.inspectPopup, "category: Truck")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.inspectPopup)
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cars.csv")
	require.NoError(t, os.WriteFile(p, []byte("Model,MPG,Price,HP,Type\nZ,1,2,3,Q\n"), 0o644))

	m := NewWithPath(Options{Chart: scatter.Config{XField: "MPG", YField: "Price", RadiusField: "HP", ColorField: "Type"}, Dir: dir}, p)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.NotNil(t, m.Chart())
	assert.Equal(t, []string{"Q"}, m.Chart().Categories)

	m.loadPath(filepath.Join(dir, "missing.csv"))
	assert.True(t, strings.HasPrefix(m.Status(), "load error: "))
	assert.Equal(t, p, m.selPath)

	m.refreshDir()
	require.Len(t, m.items, 1)
	assert.Equal(t, "cars.csv", m.items[0].(fileItem).Title())
}

func TestViewDrawsPanels(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "goscatter")
	assert.Contains(t, out, "Legend")
	assert.Contains(t, out, "Sedan")
	assert.Contains(t, out, "Cars")

	assert.Empty(t, New(Options{Dir: t.TempDir()}).View())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
