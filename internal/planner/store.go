package planner

import (
	"github.com/minhtpham/mealgrid/internal/catalog"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

// SlotKey identifies one planner cell by date and meal row. It is the sole
// identity of a cell; two keys are equal iff they name the same cell.
type SlotKey struct {
	Date string
	Meal constants.MealType
}

// Assignment is the content of one cell: at most one recipe. A nil Recipe
// means the cell is empty.
type Assignment struct {
	Recipe *models.RecipeRef
	Note   string
}

// Empty reports whether the cell holds no recipe.
func (a Assignment) Empty() bool {
	return a.Recipe == nil
}

// SlotStore is the client-side cache of the currently loaded week, mapping
// cells to their assignment. It is disposable: the server is the source of
// truth and the store is rebuilt wholesale on every week navigation.
type SlotStore struct {
	slots map[SlotKey]Assignment
}

// NewSlotStore returns an empty store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[SlotKey]Assignment, constants.SlotsPerWeek)}
}

// Clear resets the store to the 21 empty cells of the given window, dropping
// any entries from other weeks so stale state never bleeds across navigation.
func (s *SlotStore) Clear(w WeekWindow) {
	s.slots = make(map[SlotKey]Assignment, constants.SlotsPerWeek)
	for i := 0; i < constants.DaysPerWeek; i++ {
		date := w.DayISO(i)
		for _, meal := range constants.MealTypes {
			s.slots[SlotKey{Date: date, Meal: meal}] = Assignment{}
		}
	}
}

// Set replaces the assignment at key. A nil ref clears the cell. A cell holds
// one recipe at most: assigning replaces, never appends.
func (s *SlotStore) Set(key SlotKey, ref *models.RecipeRef) {
	s.SetWithNote(key, ref, "")
}

// SetWithNote replaces the assignment at key, carrying the slot note.
func (s *SlotStore) SetWithNote(key SlotKey, ref *models.RecipeRef, note string) {
	if ref == nil {
		s.slots[key] = Assignment{}
		return
	}
	r := *ref
	s.slots[key] = Assignment{Recipe: &r, Note: note}
}

// Get returns the assignment at key, or an empty assignment when the key is
// unset. It never fails.
func (s *SlotStore) Get(key SlotKey) Assignment {
	return s.slots[key]
}

// Len returns the number of tracked cells.
func (s *SlotStore) Len() int {
	return len(s.slots)
}

// Assigned returns the records for every non-empty cell, suitable for
// snapshotting to the offline cache.
func (s *SlotStore) Assigned() []models.SlotRecord {
	var out []models.SlotRecord
	for key, a := range s.slots {
		if a.Empty() {
			continue
		}
		id := a.Recipe.ID
		out = append(out, models.SlotRecord{
			Date:     key.Date,
			MealType: string(key.Meal),
			RecipeID: &id,
			Note:     a.Note,
		})
	}
	return out
}

// Hydrate rebuilds the store from a server slot list, resolving recipe ids to
// titles through the catalog. Slots outside the window are ignored and slots
// with unknown meal types are skipped. Hydrating twice with the same input
// yields the same store.
func (s *SlotStore) Hydrate(w WeekWindow, serverSlots []models.SlotRecord, cat *catalog.Catalog) {
	s.Clear(w)
	for _, rec := range serverSlots {
		if !w.Contains(rec.Date) || !constants.IsValidMealType(rec.MealType) {
			continue
		}
		key := SlotKey{Date: rec.Date, Meal: constants.MealType(rec.MealType)}
		if rec.RecipeID == nil {
			s.slots[key] = Assignment{}
			continue
		}
		ref := cat.Resolve(*rec.RecipeID)
		s.SetWithNote(key, &ref, rec.Note)
	}
}
