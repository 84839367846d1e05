package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/planner"
)

type SlotCmd struct {
	Set   SlotSetCmd   `cmd:"" help:"Assign a recipe to a planner slot."`
	Clear SlotClearCmd `cmd:"" help:"Empty a planner slot."`
}

type SlotSetCmd struct {
	Date     string `arg:"" help:"Slot date (YYYY-MM-DD)."`
	Meal     string `arg:"" help:"Meal row: breakfast, lunch, or dinner."`
	RecipeID int    `arg:"" help:"Recipe id from the catalog."`
	Note     string `help:"Optional note stored with the slot."`
}

func (cmd *SlotSetCmd) Run(ctx *Context) error {
	key, err := parseSlotKey(cmd.Date, cmd.Meal)
	if err != nil {
		return err
	}
	if cmd.RecipeID <= 0 {
		return fmt.Errorf("invalid recipe id %d", cmd.RecipeID)
	}

	bg := context.Background()
	cat := ctx.LoadCatalog(bg)
	session := planner.NewSessionAt(cat, planner.NewWeekWindow(mustParseDate(cmd.Date)))
	// Hydrate first: a failed save snapshots the whole week from the
	// session, not just this cell.
	ctx.LoadWeek(bg, session)

	ref := cat.Resolve(cmd.RecipeID)
	effects := session.Apply(planner.SlotDropped{Key: key, Payload: planner.EncodeDragPayload(ref)})
	if err := runPersistEffects(bg, ctx, session, effects, cmd.Note); err != nil {
		fmt.Printf("Set %s %s locally; save queued for 'mealgrid sync' (%v)\n", key.Date, key.Meal, err)
		return nil
	}

	fmt.Printf("Set %s %s → %s\n", key.Date, key.Meal, ref.Title)
	return nil
}

type SlotClearCmd struct {
	Date string `arg:"" help:"Slot date (YYYY-MM-DD)."`
	Meal string `arg:"" help:"Meal row: breakfast, lunch, or dinner."`
}

func (cmd *SlotClearCmd) Run(ctx *Context) error {
	key, err := parseSlotKey(cmd.Date, cmd.Meal)
	if err != nil {
		return err
	}

	bg := context.Background()
	cat := ctx.LoadCatalog(bg)
	session := planner.NewSessionAt(cat, planner.NewWeekWindow(mustParseDate(cmd.Date)))
	ctx.LoadWeek(bg, session)

	effects := session.Apply(planner.SlotCleared{Key: key})
	if err := runPersistEffects(bg, ctx, session, effects, ""); err != nil {
		fmt.Printf("Cleared %s %s locally; save queued for 'mealgrid sync' (%v)\n", key.Date, key.Meal, err)
		return nil
	}

	fmt.Printf("Cleared %s %s\n", key.Date, key.Meal)
	return nil
}

func parseSlotKey(date, meal string) (planner.SlotKey, error) {
	if _, err := time.ParseInLocation(constants.DateFormat, date, time.Local); err != nil {
		return planner.SlotKey{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	if !constants.IsValidMealType(meal) {
		return planner.SlotKey{}, fmt.Errorf("invalid meal %q (want breakfast, lunch, or dinner)", meal)
	}
	return planner.SlotKey{Date: date, Meal: constants.MealType(meal)}, nil
}

func mustParseDate(date string) time.Time {
	t, err := time.ParseInLocation(constants.DateFormat, date, time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}

func runPersistEffects(bg context.Context, ctx *Context, session *planner.Session, effects []planner.Effect, note string) error {
	for _, eff := range effects {
		persist, ok := eff.(planner.PersistSlotEffect)
		if !ok {
			continue
		}
		if note != "" {
			persist.Note = note
			// Keep the local store in step with what gets persisted
			// (or journaled), so snapshots carry the note too.
			if a := session.Store.Get(persist.Key); !a.Empty() {
				session.Store.SetWithNote(persist.Key, a.Recipe, note)
			}
		}
		if err := ctx.PersistSlot(bg, session, persist); err != nil {
			return err
		}
	}
	return nil
}
