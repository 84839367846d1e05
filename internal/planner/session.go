package planner

import (
	"github.com/minhtpham/mealgrid/internal/catalog"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/logger"
	"github.com/minhtpham/mealgrid/internal/models"
)

// Session owns one planner's week window, slot store, and catalog. It is
// constructed per run and passed by reference to the renderer and the
// controller, so independent sessions never share state.
type Session struct {
	Window  WeekWindow
	Store   *SlotStore
	Catalog *catalog.Catalog
}

// NewSession returns a session anchored on the week containing today, with
// all 21 cells empty.
func NewSession(cat *catalog.Catalog) *Session {
	return NewSessionAt(cat, ThisWeek())
}

// NewSessionAt returns a session anchored on the given window.
func NewSessionAt(cat *catalog.Catalog, w WeekWindow) *Session {
	store := NewSlotStore()
	store.Clear(w)
	return &Session{Window: w, Store: store, Catalog: cat}
}

// Apply runs one event through the reducer. The local mutation happens
// synchronously before any effect is returned, so the visible grid always
// reflects the latest local intent regardless of network latency. Callers
// execute the returned effects asynchronously; a failed persist is logged
// and the local state stands (no rollback, local wins).
func (s *Session) Apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case WeekChanged:
		if ev.Reset {
			s.Window = ThisWeek()
		} else {
			s.Window = s.Window.Shift(ev.DeltaDays)
		}
		s.Store.Clear(s.Window)
		return []Effect{LoadWeekEffect{Window: s.Window}}

	case SlotDropped:
		ref, ok := DecodeDragPayload(ev.Payload)
		if !ok {
			logger.Debug("Ignoring malformed drag payload", "date", ev.Key.Date, "meal", ev.Key.Meal)
			return nil
		}
		// Prefer the catalog's view of the recipe when it has one; the
		// payload may carry a stale title.
		if entry, found := s.Catalog.Get(ref.ID); found {
			ref = entry.Ref()
		}
		note := s.Store.Get(ev.Key).Note
		s.Store.SetWithNote(ev.Key, &ref, note)
		id := ref.ID
		return []Effect{PersistSlotEffect{Key: ev.Key, RecipeID: &id, Note: note}}

	case SlotCleared:
		s.Store.Set(ev.Key, nil)
		return []Effect{PersistSlotEffect{Key: ev.Key}}
	}
	return nil
}

// HydrateWeek applies a server week response to the store. Out-of-window
// slots are discarded and unknown recipe ids degrade to placeholder titles.
func (s *Session) HydrateWeek(resp models.WeekResponse) {
	s.Store.Hydrate(s.Window, resp.Slots, s.Catalog)
}

// Reconcile folds a save echo back into the store, in case the server
// normalized the record (e.g. trimmed the note). Echoes for other weeks or
// unknown meal types are ignored.
func (s *Session) Reconcile(rec models.SlotRecord) {
	if !s.Window.Contains(rec.Date) || !constants.IsValidMealType(rec.MealType) {
		return
	}
	key := SlotKey{Date: rec.Date, Meal: constants.MealType(rec.MealType)}
	if rec.RecipeID == nil {
		s.Store.Set(key, nil)
		return
	}
	ref := s.Catalog.Resolve(*rec.RecipeID)
	s.Store.SetWithNote(key, &ref, rec.Note)
}
