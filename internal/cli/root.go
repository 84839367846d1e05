package cli

import (
	"context"

	"github.com/minhtpham/mealgrid/internal/api"
	"github.com/minhtpham/mealgrid/internal/catalog"
	"github.com/minhtpham/mealgrid/internal/logger"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
	"github.com/minhtpham/mealgrid/internal/storage"
)

// Context carries the shared collaborators every command needs.
type Context struct {
	Client *api.Client
	Cache  storage.Provider
}

// LoadCatalog builds the recipe catalog, preferring the live feeds and
// falling back to the offline cache when the server is unreachable. It never
// fails: the worst case is an empty catalog, which still renders slots via
// placeholder titles.
func (c *Context) LoadCatalog(ctx context.Context) *catalog.Catalog {
	entries, err := c.Client.FetchRecipes(ctx)
	if err == nil {
		if cacheErr := c.Cache.SaveCatalog(entries); cacheErr != nil {
			logger.Warn("Failed to cache catalog", "error", cacheErr)
		}
		return catalog.New(entries)
	}

	logger.Warn("Could not fetch recipe feeds, falling back to cache", "error", err)
	cached, cacheErr := c.Cache.GetCatalog()
	if cacheErr != nil {
		logger.Warn("Could not read cached catalog", "error", cacheErr)
		return catalog.New(nil)
	}
	return catalog.New(cached)
}

// FetchWeekRecords loads the slot records for a window, degrading to the
// cached snapshot when the server is unreachable. A nil slice with
// offline=true means neither source had data. Failures are logged, never
// propagated: a dead backend must not block the planner.
func (c *Context) FetchWeekRecords(ctx context.Context, w planner.WeekWindow) (slots []models.SlotRecord, offline bool) {
	week, err := c.Client.LoadWeek(ctx, w)
	if err == nil {
		if cacheErr := c.Cache.SaveWeekSnapshot(w, week.Slots); cacheErr != nil {
			logger.Warn("Failed to cache week snapshot", "error", cacheErr)
		}
		return week.Slots, false
	}

	logger.Warn("Could not load week from server, using cached snapshot", "start", w.StartISO(), "error", err)
	cached, cacheErr := c.Cache.GetWeekSnapshot(w)
	if cacheErr != nil {
		logger.Warn("Could not read cached week snapshot", "error", cacheErr)
		return nil, true
	}
	return cached, true
}

// LoadWeek hydrates the session's window via FetchWeekRecords. When both the
// server and the cache come up empty the store is left as-is, so whatever
// local state exists keeps rendering.
func (c *Context) LoadWeek(ctx context.Context, session *planner.Session) (offline bool) {
	slots, offline := c.FetchWeekRecords(ctx, session.Window)
	if slots == nil && offline {
		return true
	}
	session.HydrateWeek(models.WeekResponse{Slots: slots})
	return offline
}

// SaveSlotRecord executes one persist effect against the backend. A failed
// save is journaled for `mealgrid sync` and surfaced as a warning; the
// optimistic local mutation stands either way (no rollback, local wins).
func (c *Context) SaveSlotRecord(ctx context.Context, eff planner.PersistSlotEffect) (models.SlotRecord, error) {
	rec, err := c.Client.SaveSlot(ctx, eff.Key.Date, eff.Key.Meal, eff.RecipeID, eff.Note)
	if err == nil {
		return rec, nil
	}

	logger.Warn("Slot save failed, journaling for sync", "date", eff.Key.Date, "meal", eff.Key.Meal, "error", err)
	if journalErr := c.Cache.EnqueuePendingSave(planner.SlotRecordFromEffect(eff)); journalErr != nil {
		logger.Error("Failed to journal pending save", "error", journalErr)
	}
	return models.SlotRecord{}, err
}

// PersistSlot saves one effect and folds the server echo back into the
// session on success. On failure the cached week snapshot is rewritten from
// the session so offline views show the journaled mutation too.
func (c *Context) PersistSlot(ctx context.Context, session *planner.Session, eff planner.PersistSlotEffect) error {
	rec, err := c.SaveSlotRecord(ctx, eff)
	if err != nil {
		if cacheErr := c.Cache.SaveWeekSnapshot(session.Window, session.Store.Assigned()); cacheErr != nil {
			logger.Warn("Failed to update offline snapshot", "error", cacheErr)
		}
		return err
	}
	session.Reconcile(rec)
	return nil
}
