package components

import (
	"fmt"
	"strconv"
	"strings"

	"chardash/internal/tui/styles"
	"chardash/pkg/types"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EmptyText is shown instead of the table when the page has no rows.
const EmptyText = "No characters found"

const previewLimit = 3

// CharacterTable is the paginated character list.
type CharacterTable struct {
	table table.Model
	chars []types.Character
}

func NewCharacterTable() *CharacterTable {
	t := table.New(
		table.WithColumns(columnsFor(100)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Theme.Title.GetForeground())
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Theme.Panel.GetBorderTopForeground()).
		Bold(false)
	t.SetStyles(s)

	return &CharacterTable{table: t}
}

func columnsFor(width int) []table.Column {
	width = max(width, 60)
	name := width * 25 / 100
	count := 10
	rest := (width - name - 2*count - 10) / 2
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "TV Shows", Width: count},
		{Title: "Video Games", Width: count + 1},
		{Title: "Allies", Width: rest},
		{Title: "Enemies", Width: rest},
	}
}

// SetSize fits the columns to the terminal.
func (c *CharacterTable) SetSize(width, height int) {
	c.table.SetColumns(columnsFor(width))
	c.table.SetHeight(max(height, 3))
}

// SetCharacters replaces the rows. The cursor stays in range.
func (c *CharacterTable) SetCharacters(chars []types.Character) {
	c.chars = chars
	rows := make([]table.Row, len(chars))
	for i, ch := range chars {
		rows[i] = table.Row{
			ch.DisplayName(),
			strconv.Itoa(len(ch.TVShows)),
			strconv.Itoa(len(ch.VideoGames)),
			Preview(ch.Allies),
			Preview(ch.Enemies),
		}
	}
	c.table.SetRows(rows)
	// the table clamps an empty row set to -1
	switch cur := c.table.Cursor(); {
	case len(rows) == 0:
	case cur < 0:
		c.table.SetCursor(0)
	case cur >= len(rows):
		c.table.SetCursor(len(rows) - 1)
	}
}

// Selected returns the character under the cursor.
func (c *CharacterTable) Selected() (types.Character, bool) {
	i := c.table.Cursor()
	if i < 0 || i >= len(c.chars) {
		return types.Character{}, false
	}
	return c.chars[i], true
}

func (c *CharacterTable) Cursor() int {
	return c.table.Cursor()
}

// ResetCursor moves back to the first row.
func (c *CharacterTable) ResetCursor() {
	if len(c.chars) == 0 {
		return
	}
	c.table.SetCursor(0)
}

func (c *CharacterTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return cmd
}

func (c *CharacterTable) View() string {
	if len(c.chars) == 0 {
		return styles.Theme.Unselected.Render(EmptyText)
	}
	return c.table.View()
}

// Preview lists the first few names and how many more there are, or
// "None".
func Preview(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	if len(names) <= previewLimit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(names[:previewLimit], ", "), len(names)-previewLimit)
}
