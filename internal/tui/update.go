package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"goscatter/internal/dataset"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rerender()
	case tea.KeyMsg:
		// while the file list filters, it owns the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch k := msg.String(); k {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			i := int(k[0] - '1')
			if m.chart == nil || i >= len(m.chart.Legend) {
				m.status = fmt.Sprintf("no legend entry %s", k)
				break
			}
			m.toggleLegend(i)
		case "l":
			if m.chart == nil {
				break
			}
			for _, c := range m.chart.HiddenCategories() {
				_, _ = m.chart.ToggleCategory(c)
			}
			m.status = "all categories visible"
		case "c":
			if m.chart == nil {
				break
			}
			m.chart.OnDragStart()
			m.chart.OnDragEnd(nil)
			m.syncDetails()
			m.status = "selection cleared"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.rerender()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up", "down", "pgup", "pgdown":
			if m.showAttrs {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
			if !m.showSidebar {
				var cmd tea.Cmd
				m.details, cmd = m.details.Update(msg)
				return m, cmd
			}
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		s, err := dataset.Parse(text)
		if err != nil {
			m.status = "parse error: " + err.Error()
			return m, nil
		}
		s.Source = "<paste>"
		m.selPath = ""
		m.pasteMode = false
		m.ta.Blur()
		m.setData(s)
		if m.chart != nil {
			m.status = "rendered paste  " + s.Summary()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateMouse drives the brush from the left button and tracks hover.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	cx, cy, inside := m.canvasCell(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if i := m.legendHit(msg.X, msg.Y); i >= 0 {
			m.toggleLegend(i)
			return
		}
		if !inside || m.chart == nil || m.showAttrs || m.pasteMode {
			break
		}
		m.dragging = true
		m.anchorX, m.anchorY = cx, cy
		m.chart.OnDragStart()
		m.syncDetails()
	case msg.Action == tea.MouseActionMotion && m.dragging:
		if m.chart != nil {
			lay := m.layout()
			cx, cy = clamp(cx, 0, lay.canvasW-1), clamp(cy, 0, lay.canvasH-1)
			m.chart.OnDragUpdate(m.brushRect(cx, cy))
			m.syncDetails()
		}
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if m.chart != nil {
			lay := m.layout()
			cx, cy = clamp(cx, 0, lay.canvasW-1), clamp(cy, 0, lay.canvasH-1)
			m.chart.OnDragEnd(m.brushRect(cx, cy))
			m.syncDetails()
			m.status = fmt.Sprintf("selected %d", len(m.chart.SelectedIndices()))
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		}
	}
	m.hovering = inside
	if inside {
		m.hoverCellX, m.hoverCellY = cx, cy
		m.hoverIdx = m.nearestMarker(cx, cy, 2)
	} else {
		m.hoverIdx = -1
	}
}

// inspect shows the record nearest the pointer, or the canvas centre when
// the pointer is elsewhere.
func (m *Model) inspect() {
	if m.chart == nil {
		m.inspectPopup = "nothing loaded"
		m.status = m.inspectPopup
		return
	}
	cx, cy := m.hoverCellX, m.hoverCellY
	if !m.hovering {
		lay := m.layout()
		cx, cy = lay.canvasW/2, lay.canvasH/2
	}
	i := m.nearestMarker(cx, cy, 1<<10)
	if i < 0 {
		m.inspectPopup = "no marker nearby"
		m.status = m.inspectPopup
		return
	}
	rec := m.chart.Records()[i]
	mk := m.chart.Markers[i]
	lines := []string{
		fmt.Sprintf("record: %d (%s)", i, mk.ID),
		fmt.Sprintf("source: %s", m.set.Source),
		fmt.Sprintf("category: %s", mk.Category),
	}
	for _, f := range m.set.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f, rec.Text(f)))
	}
	if m.chart.Hidden(mk.Category) {
		lines = append(lines, "hidden")
	}
	if m.chart.Selected(i) {
		lines = append(lines, "selected")
	}
	m.inspectPopup = strings.Join(lines, "\n")
	m.status = "inspect popup"
}

func (m *Model) resizeLists() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	legendRows := 0
	if m.chart != nil {
		legendRows = len(m.chart.Legend)
	}
	m.details.SetSize(panelWidth-4, max(3, lay.contentH-legendRows-6))
}
