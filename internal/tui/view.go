package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := titleStyle.Render(" goscatter ─ terminal scatterplot ")
	if m.set.Source != "" {
		header += dimStyle.Render(" " + m.set.Source + "  " + m.set.Summary())
	}
	header = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(headerHeight).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lay.sidebarW).Height(lay.contentH).Render(m.l.View())
	}

	var canvas string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		boxW := min(lay.canvasW, max(32, colW+4))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(lay.canvasH-2, 20))
		box := boxStyle.Width(boxW - 2).Render(m.tbl.View())
		canvas = lipgloss.Place(lay.canvasW, lay.canvasH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.canvasW)
		m.ta.SetHeight(min(lay.canvasH, 12))
		canvas = lipgloss.NewStyle().Width(lay.canvasW).Height(lay.canvasH).Render(m.ta.View())
	case m.inspectPopup != "":
		box := boxStyle.MaxWidth(min(48, lay.canvasW)).Render(m.inspectPopup)
		canvas = lipgloss.Place(lay.canvasW, lay.canvasH, lipgloss.Left, lipgloss.Center, box)
	default:
		canvas = m.renderCanvas(lay.canvasW, lay.canvasH)
	}
	canvas = lipgloss.NewStyle().Width(lay.canvasW).Height(lay.canvasH).MaxHeight(lay.canvasH).Render(canvas)

	panel := m.renderPanel(lay.contentH)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas, " ", panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", panel)
	}

	status := dimStyle.Render(" " + m.status + " ")
	hover := ""
	if m.hovering && m.hoverIdx >= 0 && m.chart != nil {
		rec := m.chart.Records()[m.hoverIdx]
		cfg := m.chart.Config()
		hover = dimStyle.Render(fmt.Sprintf("  %s=%s %s=%s  ", cfg.XField, rec.Text(cfg.XField), cfg.YField, rec.Text(cfg.YField)))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacer := max(0, lay.contentW-lipgloss.Width(line)-lipgloss.Width(hover))
	footer := lipgloss.NewStyle().Width(lay.contentW).MaxHeight(footerHeight).Render(line + padRight("", spacer) + hover)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

// renderPanel stacks the legend and the selected detail list.
func (m Model) renderPanel(h int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Legend"))
	if m.chart == nil {
		rows = append(rows, dimStyle.Render("(empty)"))
	} else {
		for i, e := range m.chart.Legend {
			label := e.Label
			if i < 9 {
				label = fmt.Sprintf("%d %s", i+1, label)
			}
			label = truncate(label, panelWidth-7)
			if e.Hidden {
				label = hiddenStyle.Render(label)
			}
			rows = append(rows, swatch(e)+" "+label)
		}
	}
	legend := boxStyle.Width(panelWidth - 2).Render(strings.Join(rows, "\n"))
	rest := max(3, h-lipgloss.Height(legend)-2)
	details := boxStyle.Width(panelWidth - 2).Height(rest).MaxHeight(rest + 2).Render(m.details.View())
	return lipgloss.NewStyle().Width(panelWidth).Height(h).MaxHeight(h).Render(lipgloss.JoinVertical(lipgloss.Left, legend, details))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag brush",
		"1-9 legend",
		"l show all",
		"c clear",
		"Tab files",
		"p paste",
		"a attrs",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(0, n-1)]) + "…"
}
