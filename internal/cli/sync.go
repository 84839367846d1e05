package cli

import (
	"context"
	"fmt"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/logger"
)

type SyncCmd struct{}

// Run replays the pending-save journal against the backend. Entries that
// still fail stay queued with a bumped attempt count; within one cell the
// journal only ever holds the latest mutation, so replay order is safe.
func (cmd *SyncCmd) Run(ctx *Context) error {
	pending, err := ctx.Cache.GetPendingSaves()
	if err != nil {
		return fmt.Errorf("failed to read pending saves: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to sync.")
		return nil
	}

	bg := context.Background()
	flushed := 0
	for _, p := range pending {
		_, err := ctx.Client.SaveSlot(bg, p.Record.Date, constants.MealType(p.Record.MealType), p.Record.RecipeID, p.Record.Note)
		if err != nil {
			logger.Warn("Pending save still failing", "id", p.ID, "date", p.Record.Date, "meal", p.Record.MealType, "attempts", p.Attempts+1, "error", err)
			if bumpErr := ctx.Cache.BumpPendingSaveAttempts(p.ID); bumpErr != nil {
				logger.Error("Failed to bump attempt count", "id", p.ID, "error", bumpErr)
			}
			continue
		}
		if err := ctx.Cache.ResolvePendingSave(p.ID); err != nil {
			logger.Error("Failed to remove synced journal entry", "id", p.ID, "error", err)
		}
		flushed++
	}

	fmt.Printf("Synced %d of %d pending saves.\n", flushed, len(pending))
	if flushed < len(pending) {
		fmt.Println("Some saves are still pending; run 'mealgrid sync' again once the server is reachable.")
	}
	return nil
}
