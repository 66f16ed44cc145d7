package styles

import (
	"chardash/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// ThemeStyles defines the core UI styles
type ThemeStyles struct {
	Name       string
	App        lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Emphasis   lipgloss.Style
	Panel      lipgloss.Style
	Palette    []lipgloss.Color
}

// Theme is the active theme. It starts as "default".
var Theme = Build("default")

// Build creates the styles for a named theme. Unknown names fall back to
// the default theme.
func Build(name string) ThemeStyles {
	colors := config.GetTheme(name)
	c := func(key string) lipgloss.Color { return lipgloss.Color(colors[key]) }

	return ThemeStyles{
		Name: name,
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("primary")).
			MarginBottom(1),
		Header: lipgloss.NewStyle().
			Foreground(c("info")),
		Selected: lipgloss.NewStyle().
			Foreground(c("success")).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
		Error: lipgloss.NewStyle().
			Foreground(c("error")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(c("success")),
		Warning: lipgloss.NewStyle().
			Foreground(c("warning")),
		Emphasis: lipgloss.NewStyle().
			Foreground(c("emphasis")).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("border")),
		Palette: []lipgloss.Color{c("primary"), c("success"), c("warning"), c("info"), c("emphasis"), c("error")},
	}
}

// Apply switches the active theme.
func Apply(name string) {
	Theme = Build(name)
}
