package components

import (
	"fmt"
	"strings"

	"chardash/internal/chart"
	"chardash/internal/tui/styles"
)

// NoFilmsText is shown when nobody on the page appears in a film.
const NoFilmsText = "No film data available for the current page results"

// RenderFilmsChart draws the dataset as a legend of proportional bars,
// largest share first.
func RenderFilmsChart(ds chart.Dataset, width int) string {
	title := styles.Theme.Title.Render(chart.Title + " (current page)")
	if ds.Empty() {
		return title + "\n" + styles.Theme.Unselected.Render(NoFilmsText)
	}

	nameWidth := 0
	for _, s := range ds.Slices {
		nameWidth = max(nameWidth, len([]rune(s.Name)))
	}
	nameWidth = min(nameWidth, 24)
	barWidth := max(width-nameWidth-20, 10)

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	for i, s := range ds.Slices {
		color := styles.Theme.Palette[i%len(styles.Theme.Palette)]
		name := styles.Truncate(s.Name, nameWidth)
		fmt.Fprintf(&sb, "%-*s %s %3d %7s\n",
			nameWidth, name,
			styles.Bar(barWidth, s.Percentage(ds.Total)/100, color),
			s.Films,
			s.FormatPercentage(ds.Total),
		)
	}
	fmt.Fprintf(&sb, "%s", styles.Theme.Help.Render(fmt.Sprintf("%d films across %d characters", ds.Total, len(ds.Slices))))
	return sb.String()
}
