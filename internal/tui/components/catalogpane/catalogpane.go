package catalogpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	carriedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	studentChipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	gymChipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Model is the scrollable recipe card list that acts as the drag source.
type Model struct {
	viewport viewport.Model
	entries  []models.CatalogEntry
	cursor   int
	carried  int // index of the picked-up card, -1 when none
}

// New creates the pane over the catalog entries.
func New(entries []models.CatalogEntry, width, height int) Model {
	vp := viewport.New(width, height)
	m := Model{viewport: vp, entries: entries, carried: -1}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return noteStyle.Render("No recipes loaded.")
	}
	return m.viewport.View()
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// MoveCursor moves the selection by delta, clamped to the list.
func (m *Model) MoveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	m.viewport.SetYOffset(m.cursor * 2)
	m.render()
}

// Selected returns the recipe under the cursor.
func (m *Model) Selected() (models.RecipeRef, bool) {
	if len(m.entries) == 0 {
		return models.RecipeRef{}, false
	}
	return m.entries[m.cursor].Ref(), true
}

// SetCarried marks the cursor's card as picked up (or drops it with false).
func (m *Model) SetCarried(on bool) {
	if on {
		m.carried = m.cursor
	} else {
		m.carried = -1
	}
	m.render()
}

func (m *Model) render() {
	var b strings.Builder
	for i, e := range m.entries {
		marker := "  "
		style := titleStyle
		if i == m.carried {
			marker = "◆ "
			style = carriedStyle
		} else if i == m.cursor {
			marker = "> "
			style = cursorStyle
		}

		chip := studentChipStyle.Render("[student]")
		if e.Source == constants.SourceGym {
			chip = gymChipStyle.Render("[gym]")
		}

		fmt.Fprintf(&b, "%s%s %s\n", marker, style.Render(e.Title), chip)
		if e.Note != "" {
			fmt.Fprintf(&b, "    %s\n", noteStyle.Render(e.Note))
		} else {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
}
