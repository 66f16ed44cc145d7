package components

import (
	"fmt"
	"strings"

	"chardash/internal/tui/styles"
	"chardash/pkg/types"
)

// RenderDetail shows everything known about one character.
func RenderDetail(c types.Character, width int) string {
	return RenderDetailWithHint(c, width, "")
}

// RenderDetailWithHint is RenderDetail with a key hint under the sections.
func RenderDetailWithHint(c types.Character, width int, hint string) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render(c.DisplayName()))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "ID: %d\n", c.ID)
	if c.ImageURL != "" {
		fmt.Fprintf(&sb, "Image: %s\n", c.ImageURL)
	}
	if c.URL != "" && c.URL != c.ImageURL {
		fmt.Fprintf(&sb, "Source: %s\n", c.URL)
	}

	section(&sb, "TV Shows", c.TVShows, "No TV shows found")
	section(&sb, "Video Games", c.VideoGames, "No video games found")
	section(&sb, fmt.Sprintf("Films (%d)", len(c.Films)), c.Films, "No films found")
	section(&sb, "Allies", c.Allies, "No allies found")
	section(&sb, "Enemies", c.Enemies, "No enemies found")

	if hint != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Theme.Help.Render(hint))
	}

	panel := styles.Theme.Panel
	if width > 4 {
		panel = panel.Width(width - 4)
	}
	return panel.Render(sb.String())
}

func section(sb *strings.Builder, title string, items []string, empty string) {
	sb.WriteString("\n")
	sb.WriteString(styles.Theme.Header.Render(title))
	sb.WriteString("\n")
	if len(items) == 0 {
		sb.WriteString(styles.Theme.Unselected.Render("  " + empty))
		sb.WriteString("\n")
		return
	}
	for _, item := range items {
		sb.WriteString("  • " + item + "\n")
	}
}
