package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"chardash/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ColorTheme represents a set of colors for the CLI
type ColorTheme struct {
	Name    string
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
	Header  lipgloss.Color
	Border  lipgloss.Color
}

func themeFor(name string) ColorTheme {
	palette := config.GetTheme(name)
	return ColorTheme{
		Name:    name,
		Success: lipgloss.Color(palette["success"]),
		Error:   lipgloss.Color(palette["error"]),
		Warning: lipgloss.Color(palette["warning"]),
		Info:    lipgloss.Color(palette["info"]),
		Header:  lipgloss.Color(palette["primary"]),
		Border:  lipgloss.Color(palette["border"]),
	}
}

// Current active theme, starts with default
var CurrentTheme = themeFor("default")

// SetTheme sets the current theme by name
func SetTheme(themeName string) bool {
	if !slices.Contains(config.ListThemes(), themeName) {
		return false
	}
	CurrentTheme = themeFor(themeName)
	return true
}

// GetThemeNames returns all available theme names
func GetThemeNames() []string {
	return config.ListThemes()
}

func printStyled(w io.Writer, color lipgloss.Color, prefix, message string) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(color).Render(prefix+message))
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	printStyled(w, CurrentTheme.Success, "✓ ", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	printStyled(w, CurrentTheme.Error, "✗ ", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	printStyled(w, CurrentTheme.Warning, "! ", message)
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, message string) {
	printStyled(w, CurrentTheme.Info, "ℹ ", message)
}

// PrintHeader prints a section header
func PrintHeader(w io.Writer, message string) {
	fmt.Fprintln(w, "\n"+lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Header).Render(message))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(message)))
}

// PrintTable prints rows under headers inside a bordered table.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	header := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Header).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(w, t.String())
}

// DrawLogo generates the banner shown above the help text.
func DrawLogo() string {
	logo := `
   ___ _                  _           _
  / __| |_  __ _ _ _ __ _| |__ _ _ __| |_
 | (__| ' \/ _' | '_/ _' | / _' (_-<| ' \
  \___|_||_\__,_|_| \__,_|_\__,_/__/|_||_|
`
	return lipgloss.NewStyle().Foreground(CurrentTheme.Header).Render(logo)
}
