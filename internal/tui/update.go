package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/minhtpham/mealgrid/internal/api"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

// weekLoadedMsg carries a fetched week back to the update loop. The window
// is included so stale responses from an outpaced navigation can be dropped.
type weekLoadedMsg struct {
	window  planner.WeekWindow
	slots   []models.SlotRecord
	offline bool
}

// saveResultMsg carries a slot save outcome back to the update loop.
type saveResultMsg struct {
	key planner.SlotKey
	rec models.SlotRecord
	err error
}

func (m Model) fetchWeekCmd(w planner.WeekWindow) tea.Cmd {
	return func() tea.Msg {
		slots, offline := m.backend.FetchWeek(w)
		return weekLoadedMsg{window: w, slots: slots, offline: offline}
	}
}

func (m Model) saveSlotCmd(eff planner.PersistSlotEffect) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.backend.SaveSlot(eff)
		return saveResultMsg{key: eff.Key, rec: rec, err: err}
	}
}

// effectCmds turns reducer effects into scheduled commands. The local
// mutation has already happened by the time this runs, so the grid shows the
// new state no matter how slow the network is.
func (m Model) effectCmds(effects []planner.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case planner.LoadWeekEffect:
			cmds = append(cmds, m.fetchWeekCmd(eff.Window))
		case planner.PersistSlotEffect:
			cmds = append(cmds, m.saveSlotCmd(eff))
		}
	}
	return cmds
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		paneWidth := msg.Width/3 - 4
		m.catalogPane.SetSize(paneWidth, msg.Height-6)
		m.grid.SetSize(msg.Width - paneWidth - 8)
		return m, nil

	case weekLoadedMsg:
		// A navigation may have outrun this fetch; only the current
		// window's data may touch the store.
		if msg.window.StartISO() != m.session.Window.StartISO() {
			return m, nil
		}
		m.offline = msg.offline
		if msg.slots != nil || !msg.offline {
			m.session.HydrateWeek(models.WeekResponse{Slots: msg.slots})
		}
		return m, nil

	case saveResultMsg:
		if msg.err != nil {
			var rejected *api.StatusError
			if errors.As(msg.err, &rejected) {
				// The server answered and said no; we are not offline.
				reason := rejected.Status
				if rejected.Detail != "" {
					reason = rejected.Detail
				}
				m.status = fmt.Sprintf("Server rejected save for %s %s: %s", msg.key.Date, msg.key.Meal, reason)
			} else {
				m.status = fmt.Sprintf("Save failed for %s %s (kept locally; run sync later)", msg.key.Date, msg.key.Meal)
				m.offline = true
			}
			return m, nil
		}
		m.offline = false
		m.status = ""
		m.session.Reconcile(msg.rec)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == constants.StateConfirmClear && m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateConfirmClear {
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case constants.StateCatalog:
		return m.updateCatalog(msg)
	case constants.StateGrid:
		return m.updateGrid(msg)
	case constants.StateDragging:
		return m.updateDragging(msg)
	}
	return m, nil
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.state = constants.StateGrid
	case key.Matches(msg, m.keys.Up):
		m.catalogPane.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.catalogPane.MoveCursor(1)
	case key.Matches(msg, m.keys.Pick):
		ref, ok := m.catalogPane.Selected()
		if !ok {
			return m, nil
		}
		// Picking up a card starts the drag; the payload rides along in
		// the same serialized form a browser drag would carry.
		m.dragPayload = planner.EncodeDragPayload(ref)
		m.catalogPane.SetCarried(true)
		m.grid.SetDropTarget(true)
		m.state = constants.StateDragging
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.state = constants.StateCatalog
	case key.Matches(msg, m.keys.Up):
		m.grid.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.grid.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.grid.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.PrevWeek):
		return m.applyEvents(planner.WeekChanged{DeltaDays: -constants.DaysPerWeek})
	case key.Matches(msg, m.keys.NextWeek):
		return m.applyEvents(planner.WeekChanged{DeltaDays: constants.DaysPerWeek})
	case key.Matches(msg, m.keys.Today):
		return m.applyEvents(planner.WeekChanged{Reset: true})
	case key.Matches(msg, m.keys.Clear):
		key := m.grid.CurrentKey()
		if m.session.Store.Get(key).Empty() {
			return m, nil
		}
		m.pendingClear = key
		m.confirmValue = false
		m.confirm = newClearConfirm(key, &m.confirmValue)
		m.previousState = m.state
		m.state = constants.StateConfirmClear
		return m, m.confirm.Init()
	}
	return m, nil
}

func (m Model) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Drag leave: nothing was mutated, back to idle.
		m.dragPayload = ""
		m.catalogPane.SetCarried(false)
		m.grid.SetDropTarget(false)
		m.state = constants.StateCatalog
	case key.Matches(msg, m.keys.Up):
		m.grid.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.grid.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.grid.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.Drop):
		payload := m.dragPayload
		m.dragPayload = ""
		m.catalogPane.SetCarried(false)
		m.grid.SetDropTarget(false)
		m.state = constants.StateGrid
		return m.applyEvents(planner.SlotDropped{Key: m.grid.CurrentKey(), Payload: payload})
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.state = m.previousState
		m.confirm = nil
		if m.confirmValue {
			return m.applyEvents(planner.SlotCleared{Key: m.pendingClear})
		}
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) applyEvents(events ...planner.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, ev := range events {
		cmds = append(cmds, m.effectCmds(m.session.Apply(ev))...)
	}
	return m, tea.Batch(cmds...)
}

func newClearConfirm(key planner.SlotKey, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %s on %s?", constants.MealLabel(key.Meal), key.Date)).
				Affirmative("Clear").
				Negative("Keep").
				Value(value),
		),
	)
}
