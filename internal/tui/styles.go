package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	selectBg  = lipgloss.Color("#3B3F58")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	hiddenStyle = lipgloss.NewStyle().Foreground(baseDimFg).Strikethrough(true)
)

// Plot colors as hex, since the canvas blends them.
const (
	canvasBg   = "#0B0F14"
	axisColor  = "#6B7280"
	brushColor = "#A78BFA"
	titleColor = "#7C3AED"
	baseColor  = "#E6E6E6"
	hoverColor = "#FFA500"
)
