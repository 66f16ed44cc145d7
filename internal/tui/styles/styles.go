package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar renders a horizontal bar of width cells filled to ratio.
func Bar(width int, ratio float64, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	ratio = max(0, min(ratio, 1))
	filled := int(ratio*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		Theme.Unselected.Render(strings.Repeat("░", width-filled))
}

// Truncate shortens s to n cells, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
