package views

import (
	"fmt"
	"strings"

	"chardash/internal/store"
	"chardash/internal/tui/common"
	"chardash/internal/tui/components"
	"chardash/internal/tui/styles"
	"chardash/pkg/types"
)

const (
	LoadingText = "Loading characters..."
	ErrorTitle  = "Failed to load characters"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder
	st := m.State()

	sb.WriteString(renderBanner())
	sb.WriteString("\n")

	switch {
	case st.Loading() && len(st.Characters) == 0:
		sb.WriteString(RenderLoading())
		return styles.Theme.App.Render(sb.String())
	case st.HasError():
		sb.WriteString(RenderError(st.Err))
		return styles.Theme.App.Render(sb.String())
	}

	if m.Mode() == common.Detail && st.Selected != nil {
		sb.WriteString(components.RenderDetailWithHint(*st.Selected, m.Width(), "[esc] close"))
		return styles.Theme.App.Render(sb.String())
	}

	sb.WriteString(RenderHeader(m))
	sb.WriteString("\n")
	if m.Mode() == common.Search {
		sb.WriteString(m.SearchView())
		sb.WriteString("\n")
	}
	sb.WriteString(m.TableView())
	sb.WriteString("\n")

	if m.ShowChart() {
		sb.WriteString("\n")
		sb.WriteString(components.RenderFilmsChart(m.Chart(), m.Width()))
		sb.WriteString("\n")
	}

	if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}
	if msg := m.StatusMsg(); msg != "" {
		sb.WriteString("\n" + msg)
	}
	sb.WriteString("\n" + m.HelpView())

	return styles.Theme.App.Render(sb.String())
}

// RenderHeader is the summary line above the table.
func RenderHeader(m common.ModelReader) string {
	st := m.State()

	parts := []string{fmt.Sprintf("%d characters", m.FilteredCount())}
	if st.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search %q", st.SearchTerm))
	}
	if st.TVShowFilter != "" {
		parts = append(parts, "show: "+st.TVShowFilter)
	} else {
		parts = append(parts, "show: all")
	}
	parts = append(parts, "sort: "+sortIndicator(st))
	parts = append(parts, PageIndicator(st.CurrentPage, m.TotalPages(), st.PageSize))

	return styles.Theme.Header.Render(strings.Join(parts, " | "))
}

// PageIndicator renders "page X/Y · N per page". An empty result still
// counts as one page.
func PageIndicator(page, pages, size int) string {
	return fmt.Sprintf("page %d/%d · %d per page", page, max(pages, 1), size)
}

func sortIndicator(st store.State) string {
	if st.SortField == types.SortNone {
		return "none"
	}
	arrow := "▲"
	if st.SortDirection == types.Descending {
		arrow = "▼"
	}
	return st.SortField.String() + " " + arrow
}

func RenderLoading() string {
	return styles.Theme.Emphasis.Render(LoadingText)
}

func RenderError(msg string) string {
	var sb strings.Builder
	sb.WriteString(styles.Theme.Error.Render(ErrorTitle))
	sb.WriteString("\n")
	if msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Theme.Help.Render("[r] Retry  [q] Quit"))
	return sb.String()
}

func renderBanner() string {
	return styles.Theme.Title.Render("Disney Characters Dashboard")
}
