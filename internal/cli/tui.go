package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
	"github.com/minhtpham/mealgrid/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(ctx *Context) error {
	bg := context.Background()
	cat := ctx.LoadCatalog(bg)
	session := planner.NewSession(cat)
	offline := ctx.LoadWeek(bg, session)

	backend := tui.Backend{
		FetchWeek: func(w planner.WeekWindow) ([]models.SlotRecord, bool) {
			return ctx.FetchWeekRecords(context.Background(), w)
		},
		SaveSlot: func(eff planner.PersistSlotEffect) (models.SlotRecord, error) {
			return ctx.SaveSlotRecord(context.Background(), eff)
		},
	}

	p := tea.NewProgram(tui.NewModel(session, backend, offline), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
