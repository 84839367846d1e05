package tui

import (
	"encoding/json"

	"github.com/charmbracelet/lipgloss"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateConfirmClear && m.confirm != nil {
		return docStyle.Render(m.confirm.View())
	}

	title := titleStyle.Render(constants.AppName + " · " + m.grid.Title())
	if m.offline {
		title += "  " + offlineStyle.Render("OFFLINE")
	}

	catalogStyle := inactivePaneStyle
	gridStyle := inactivePaneStyle
	switch m.state {
	case constants.StateCatalog:
		catalogStyle = activePaneStyle
	case constants.StateGrid, constants.StateDragging:
		gridStyle = activePaneStyle
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		catalogStyle.Render(m.catalogPane.View()),
		gridStyle.Render(m.grid.View()),
	)

	var statusLine string
	switch {
	case m.state == constants.StateDragging:
		statusLine = dragBarStyle.Render("Carrying " + draggedTitle(m.dragPayload) + " — enter drops, esc cancels")
	case m.status != "":
		statusLine = statusStyle.Render("⚠ " + m.status)
	}

	sections := []string{title, panes}
	if statusLine != "" {
		sections = append(sections, statusLine)
	}
	sections = append(sections, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func draggedTitle(payload string) string {
	var ref models.RecipeRef
	if err := json.Unmarshal([]byte(payload), &ref); err != nil || ref.Title == "" {
		return "recipe"
	}
	return ref.Title
}
