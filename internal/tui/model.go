package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
	"github.com/minhtpham/mealgrid/internal/tui/components/catalogpane"
	"github.com/minhtpham/mealgrid/internal/tui/components/grid"
)

// Backend is the pair of calls the TUI schedules off the update loop. Both
// run inside tea.Cmd goroutines and must not touch the session; results come
// back as messages and are folded in on the main loop.
type Backend struct {
	FetchWeek func(planner.WeekWindow) ([]models.SlotRecord, bool)
	SaveSlot  func(planner.PersistSlotEffect) (models.SlotRecord, error)
}

type Model struct {
	session *planner.Session
	backend Backend

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	catalogPane catalogpane.Model
	grid        grid.Model

	// dragPayload is the serialized recipe carried by an active drag,
	// empty when nothing is picked up.
	dragPayload  string
	confirm      *huh.Form
	confirmValue bool
	pendingClear planner.SlotKey

	status   string
	offline  bool
	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI over an already-hydrated session.
func NewModel(session *planner.Session, backend Backend, offline bool) Model {
	return Model{
		session:     session,
		backend:     backend,
		state:       constants.StateCatalog,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		catalogPane: catalogpane.New(session.Catalog.Entries(), 0, 0),
		grid:        grid.New(session),
		offline:     offline,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCatalog:
		keys = append(keys, m.keys.Pick)
	case constants.StateGrid:
		keys = append(keys, m.keys.Clear, m.keys.PrevWeek, m.keys.NextWeek, m.keys.Today)
	case constants.StateDragging:
		keys = append(keys, m.keys.Drop, m.keys.Cancel)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Pick, m.keys.Drop, m.keys.Cancel, m.keys.Clear, m.keys.PrevWeek, m.keys.NextWeek, m.keys.Today}
	return [][]key.Binding{global, navigation, actions}
}
