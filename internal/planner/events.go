package planner

import (
	"encoding/json"

	"github.com/minhtpham/mealgrid/internal/models"
)

// Event is a planner mutation request, decoupled from whatever UI raised it.
type Event interface {
	isEvent()
}

// WeekChanged moves the window by DeltaDays (multiples of 7 page by whole
// weeks). Reset true jumps back to the week containing today.
type WeekChanged struct {
	DeltaDays int
	Reset     bool
}

// SlotDropped carries a drop gesture onto a cell: the raw transfer payload as
// serialized by the drag source.
type SlotDropped struct {
	Key     SlotKey
	Payload string
}

// SlotCleared empties a cell.
type SlotCleared struct {
	Key SlotKey
}

func (WeekChanged) isEvent() {}
func (SlotDropped) isEvent() {}
func (SlotCleared) isEvent() {}

// Effect is work the session wants done after a local mutation, typically a
// network call. Effects are returned rather than executed so the reducer
// stays synchronous and the caller decides how to schedule them.
type Effect interface {
	isEffect()
}

// LoadWeekEffect asks the caller to fetch slot data for the window and
// rehydrate the session with the response.
type LoadWeekEffect struct {
	Window WeekWindow
}

// PersistSlotEffect asks the caller to upsert one slot on the backend.
// RecipeID nil signals a clear.
type PersistSlotEffect struct {
	Key      SlotKey
	RecipeID *int
	Note     string
}

func (LoadWeekEffect) isEffect()    {}
func (PersistSlotEffect) isEffect() {}

// SlotRecordFromEffect converts a persist effect to the wire record shape,
// used when journaling a failed save.
func SlotRecordFromEffect(eff PersistSlotEffect) models.SlotRecord {
	return models.SlotRecord{
		Date:     eff.Key.Date,
		MealType: string(eff.Key.Meal),
		RecipeID: eff.RecipeID,
		Note:     eff.Note,
	}
}

// DecodeDragPayload parses the JSON transfer payload carried from a recipe
// card to a grid cell. An empty or malformed payload returns ok=false; the
// drop is then a no-op rather than an error.
func DecodeDragPayload(payload string) (models.RecipeRef, bool) {
	if payload == "" {
		return models.RecipeRef{}, false
	}
	var ref models.RecipeRef
	if err := json.Unmarshal([]byte(payload), &ref); err != nil {
		return models.RecipeRef{}, false
	}
	if ref.ID <= 0 {
		return models.RecipeRef{}, false
	}
	return ref, true
}

// EncodeDragPayload serializes a recipe reference for the transfer channel.
func EncodeDragPayload(ref models.RecipeRef) string {
	b, err := json.Marshal(ref)
	if err != nil {
		return ""
	}
	return string(b)
}
