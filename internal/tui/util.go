package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// putText writes s into row starting at col, clipping at the edges.
func putText(cells [][]cell, col, row int, s string, fg string, bold bool) {
	if row < 0 || row >= len(cells) {
		return
	}
	for i, r := range []rune(s) {
		x := col + i
		if x < 0 || x >= len(cells[row]) {
			continue
		}
		cells[row][x] = cell{r: r, fg: fg, bold: bold}
	}
}

// putCentered writes s centred on col.
func putCentered(cells [][]cell, col, row int, s string, fg string, bold bool) {
	putText(cells, col-len([]rune(s))/2, row, s, fg, bold)
}

// joinCells renders the grid, emitting one styled run per stretch of cells
// that share a style.
func joinCells(cells [][]cell) string {
	lines := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && sameStyle(row[i], row[start]) {
				continue
			}
			run := make([]rune, 0, i-start)
			for _, c := range row[start:i] {
				run = append(run, c.r)
			}
			b.WriteString(renderRun(row[start], string(run)))
			start = i
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bold == b.bold && a.sel == b.sel
}

func renderRun(c cell, s string) string {
	if c.fg == "" && !c.bold && !c.sel {
		return s
	}
	st := lipgloss.NewStyle()
	if c.fg != "" {
		st = st.Foreground(lipgloss.Color(c.fg))
	}
	if c.bold {
		st = st.Bold(true)
	}
	if c.sel {
		st = st.Background(selectBg).Bold(true)
	}
	return st.Render(s)
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
