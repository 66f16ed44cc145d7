package components

import (
	"strings"
	"testing"

	"chardash/internal/chart"
	"chardash/pkg/testutils"
	"chardash/pkg/types"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	alsrt.Equal(t, "None", Preview(nil))
	alsrt.Equal(t, "Goofy", Preview([]string{"Goofy"}))
	alsrt.Equal(t, "a, b, c", Preview([]string{"a", "b", "c"}))
	alsrt.Equal(t, "a, b, c +2", Preview([]string{"a", "b", "c", "d", "e"}))
}

func TestCharacterTable(t *testing.T) {
	ct := NewCharacterTable()
	ct.SetSize(120, 10)

	alsrt.Contains(t, ct.View(), EmptyText)
	_, ok := ct.Selected()
	alsrt.False(t, ok)

	ct.SetCharacters(testutils.Characters())
	out := testutils.StripANSI(ct.View())
	for _, want := range []string{"Name", "TV Shows", "Video Games", "Allies", "Enemies", "Mickey Mouse", "Pete"} {
		assert.Contains(t, out, want)
	}

	ct.Update(tea.KeyMsg{Type: tea.KeyDown})
	ct.Update(tea.KeyMsg{Type: tea.KeyDown})
	c, ok := ct.Selected()
	alsrt.True(t, ok)
	alsrt.Equal(t, "Goofy", c.Name)

	// shrinking the page keeps the cursor on a row
	ct.SetCharacters(testutils.Characters()[:1])
	c, ok = ct.Selected()
	alsrt.True(t, ok)
	alsrt.Equal(t, "Mickey Mouse", c.Name)
}

func TestCharacterTableCursorStartsOnFirstRow(t *testing.T) {
	ct := NewCharacterTable()
	ct.ResetCursor()
	ct.SetCharacters(testutils.Characters())
	alsrt.Equal(t, 0, ct.Cursor())
	c, ok := ct.Selected()
	alsrt.True(t, ok)
	alsrt.Equal(t, "Mickey Mouse", c.Name)

	// an empty page and back lands on the first row again
	ct.SetCharacters(nil)
	ct.ResetCursor()
	ct.SetCharacters(testutils.Characters())
	alsrt.Equal(t, 0, ct.Cursor())
}

func TestUnnamedRowShowsUnknown(t *testing.T) {
	ct := NewCharacterTable()
	ct.SetCharacters([]types.Character{types.Normalize(types.Character{ID: 9})})
	assert.Contains(t, testutils.StripANSI(ct.View()), types.UnknownName)
}

func TestRenderFilmsChart(t *testing.T) {
	out := testutils.StripANSI(RenderFilmsChart(chart.FilmsPerCharacter(testutils.Characters()), 80))
	assert.Contains(t, out, "Films per Character")

	var first string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "%") {
			first = line
			break
		}
	}
	assert.Contains(t, first, "Mickey Mouse", "largest share first")
	assert.Contains(t, first, "40.00%")
	assert.Contains(t, out, "5 films across 4 characters")

	empty := testutils.StripANSI(RenderFilmsChart(chart.Dataset{}, 80))
	assert.Contains(t, empty, NoFilmsText)
}

func TestStatusBar(t *testing.T) {
	sb := NewStatusBar()
	alsrt.Equal(t, "", sb.View())

	sb.SetText("ready")
	assert.Contains(t, testutils.StripANSI(sb.View()), "ready")

	sb.SetLoading(true)
	alsrt.True(t, sb.Loading())
	assert.NotNil(t, sb.Tick())
	assert.Contains(t, testutils.StripANSI(sb.View()), "ready")
}
