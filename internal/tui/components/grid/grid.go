package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/planner"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Align(lipgloss.Center)

	mealLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(11)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	cursorCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("205"))

	dropCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("42")).
			Background(lipgloss.Color("236"))

	studentTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	gymTagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	emptyTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model renders the 7x3 planner grid and tracks the focused cell. It reads
// from the session but never mutates it; mutations go through events applied
// by the parent model.
type Model struct {
	Session    *planner.Session
	cursorDay  int
	cursorMeal int
	dropTarget bool
	width      int
}

// New creates a grid over the session.
func New(session *planner.Session) Model {
	return Model{Session: session}
}

// SetSize updates the rendering width.
func (m *Model) SetSize(width int) {
	m.width = width
}

// SetDropTarget marks whether the focused cell should render as an active
// drop target (a drag is hovering over it).
func (m *Model) SetDropTarget(on bool) {
	m.dropTarget = on
}

// MoveCursor moves the focused cell by (days, meals), clamped to the grid.
func (m *Model) MoveCursor(days, meals int) {
	m.cursorDay = clamp(m.cursorDay+days, 0, constants.DaysPerWeek-1)
	m.cursorMeal = clamp(m.cursorMeal+meals, 0, len(constants.MealTypes)-1)
}

// CurrentKey returns the slot key of the focused cell.
func (m *Model) CurrentKey() planner.SlotKey {
	return planner.SlotKey{
		Date: m.Session.Window.DayISO(m.cursorDay),
		Meal: constants.MealTypes[m.cursorMeal],
	}
}

// View renders the grid.
func (m Model) View() string {
	cellWidth := 14
	if m.width > 0 {
		if w := (m.width-12)/constants.DaysPerWeek - 4; w > 8 && w < 24 {
			cellWidth = w
		}
	}

	days := m.Session.Window.Days()

	var header []string
	header = append(header, mealLabelStyle.Render(""))
	for i, day := range days {
		label := planner.WeekdayLabel(i) + " " + planner.FormatDisplay(day)
		header = append(header, headerStyle.Width(cellWidth+4).Render(label))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for mi, meal := range constants.MealTypes {
		cells := []string{mealLabelStyle.Render(constants.MealLabel(meal))}
		for di := range days {
			key := planner.SlotKey{Date: m.Session.Window.DayISO(di), Meal: meal}
			cells = append(cells, m.renderCell(key, di == m.cursorDay && mi == m.cursorMeal, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(key planner.SlotKey, focused bool, width int) string {
	a := m.Session.Store.Get(key)

	content := emptyTagStyle.Render("·")
	if !a.Empty() {
		title := truncate(a.Recipe.Title, width)
		switch a.Recipe.Source {
		case constants.SourceStudent:
			content = studentTagStyle.Render(title)
		case constants.SourceGym:
			content = gymTagStyle.Render(title)
		default:
			content = title
		}
	}

	style := cellStyle
	if focused {
		style = cursorCellStyle
		if m.dropTarget {
			style = dropCellStyle
		}
	}
	return style.Width(width).Render(content)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Title returns the week heading line.
func (m Model) Title() string {
	days := m.Session.Window.Days()
	var b strings.Builder
	b.WriteString("Week ")
	b.WriteString(planner.FormatDisplay(days[0]))
	b.WriteString(" – ")
	b.WriteString(planner.FormatDisplay(days[len(days)-1]))
	return b.String()
}
