package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/minhtpham/mealgrid/internal/api"
	"github.com/minhtpham/mealgrid/internal/catalog"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

func testModel() Model {
	cat := catalog.New([]models.CatalogEntry{
		{ID: 7, Title: "Salad", Source: constants.SourceGym},
	})
	window := planner.NewWeekWindow(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.Local))
	return NewModel(planner.NewSessionAt(cat, window), Backend{}, false)
}

func TestSaveFailureTransportGoesOffline(t *testing.T) {
	m := testModel()
	key := planner.SlotKey{Date: "2024-06-12", Meal: constants.MealDinner}

	updated, _ := m.Update(saveResultMsg{key: key, err: fmt.Errorf("dial tcp: connection refused")})

	got := updated.(Model)
	if !got.offline {
		t.Error("transport failure did not light the offline badge")
	}
	if !strings.Contains(got.status, "kept locally") {
		t.Errorf("status = %q, want the kept-locally warning", got.status)
	}
}

func TestSaveFailureServerRejectionStaysOnline(t *testing.T) {
	m := testModel()
	key := planner.SlotKey{Date: "2024-06-12", Meal: constants.MealDinner}
	rejection := &api.StatusError{Route: "POST /planner/slot", Status: "400 Bad Request", Detail: "invalid meal type"}

	updated, _ := m.Update(saveResultMsg{key: key, err: rejection})

	got := updated.(Model)
	if got.offline {
		t.Error("server rejection lit the offline badge; the server is reachable")
	}
	if !strings.Contains(got.status, "invalid meal type") {
		t.Errorf("status = %q, want the server's reason", got.status)
	}
}

func TestSaveSuccessClearsWarning(t *testing.T) {
	m := testModel()
	m.offline = true
	m.status = "Save failed for 2024-06-12 dinner (kept locally; run sync later)"

	updated, _ := m.Update(saveResultMsg{
		key: planner.SlotKey{Date: "2024-06-12", Meal: constants.MealDinner},
		rec: models.SlotRecord{Date: "2024-06-12", MealType: "dinner"},
	})

	got := updated.(Model)
	if got.offline || got.status != "" {
		t.Errorf("after successful save: offline=%v status=%q, want online and quiet", got.offline, got.status)
	}
}

func TestStaleWeekLoadDropped(t *testing.T) {
	m := testModel()
	stale := m.session.Window.Shift(-7)
	id := 7
	key := planner.SlotKey{Date: m.session.Window.DayISO(2), Meal: constants.MealLunch}
	ref := m.session.Catalog.Resolve(7)
	m.session.Store.Set(key, &ref)

	m.Update(weekLoadedMsg{window: stale, slots: []models.SlotRecord{
		{Date: stale.DayISO(0), MealType: "lunch", RecipeID: &id},
	}})

	if m.session.Store.Get(key).Empty() {
		t.Error("stale week response rehydrated the store")
	}
}
