package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/minhtpham/mealgrid/internal/api"
	"github.com/minhtpham/mealgrid/internal/catalog"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
	"github.com/minhtpham/mealgrid/internal/storage"
)

func newTestContext(t *testing.T, serverURL string) (*Context, *storage.SQLiteStore) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "mealgrid.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &Context{Client: api.NewClient(serverURL), Cache: store}, store
}

// deadServerURL returns an address nothing listens on anymore.
func deadServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	return srv.URL
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.CatalogEntry{
		{ID: 42, Title: "Phở bò", Source: constants.SourceStudent},
		{ID: 7, Title: "Salad", Source: constants.SourceGym},
	})
}

func TestPersistSlotKeepsLocalStateWhenSaveFails(t *testing.T) {
	ctx, store := newTestContext(t, deadServerURL(t))
	window := planner.NewWeekWindow(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.Local))

	// A previous online run cached this week.
	id := 42
	if err := store.SaveWeekSnapshot(window, []models.SlotRecord{
		{Date: "2024-06-11", MealType: "lunch", RecipeID: &id},
	}); err != nil {
		t.Fatalf("SaveWeekSnapshot() error = %v", err)
	}

	cat := testCatalog()
	session := planner.NewSessionAt(cat, window)
	if offline := ctx.LoadWeek(context.Background(), session); !offline {
		t.Fatal("LoadWeek reported online against a dead server")
	}

	key := planner.SlotKey{Date: "2024-06-12", Meal: constants.MealDinner}
	effects := session.Apply(planner.SlotDropped{Key: key, Payload: planner.EncodeDragPayload(cat.Resolve(7))})
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1 persist", len(effects))
	}

	err := ctx.PersistSlot(context.Background(), session, effects[0].(planner.PersistSlotEffect))
	if err == nil {
		t.Fatal("PersistSlot succeeded against a dead server")
	}

	// No rollback: the dropped recipe stays visible.
	if got := session.Store.Get(key); got.Empty() || got.Recipe.Title != "Salad" {
		t.Errorf("slot after failed save = %+v, want Salad", got.Recipe)
	}

	// The failed save is journaled for sync.
	pending, pendErr := store.GetPendingSaves()
	if pendErr != nil {
		t.Fatalf("GetPendingSaves() error = %v", pendErr)
	}
	if len(pending) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(pending))
	}
	rec := pending[0].Record
	if rec.Date != "2024-06-12" || rec.MealType != "dinner" || rec.RecipeID == nil || *rec.RecipeID != 7 {
		t.Errorf("journaled record = %+v", rec)
	}

	// The snapshot keeps the previously cached slot alongside the new one.
	snapshot, snapErr := store.GetWeekSnapshot(window)
	if snapErr != nil {
		t.Fatalf("GetWeekSnapshot() error = %v", snapErr)
	}
	byCell := map[string]int{}
	for _, s := range snapshot {
		if s.RecipeID != nil {
			byCell[s.Date+"/"+s.MealType] = *s.RecipeID
		}
	}
	if byCell["2024-06-11/lunch"] != 42 {
		t.Errorf("previously cached slot missing from snapshot: %+v", snapshot)
	}
	if byCell["2024-06-12/dinner"] != 7 {
		t.Errorf("new mutation missing from snapshot: %+v", snapshot)
	}
}

func TestRunPersistEffectsNoteReachesStoreAndJournal(t *testing.T) {
	ctx, store := newTestContext(t, deadServerURL(t))
	window := planner.NewWeekWindow(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.Local))

	cat := testCatalog()
	session := planner.NewSessionAt(cat, window)
	key := planner.SlotKey{Date: "2024-06-12", Meal: constants.MealLunch}
	effects := session.Apply(planner.SlotDropped{Key: key, Payload: planner.EncodeDragPayload(cat.Resolve(42))})

	if err := runPersistEffects(context.Background(), ctx, session, effects, "double portion"); err == nil {
		t.Fatal("runPersistEffects succeeded against a dead server")
	}

	if got := session.Store.Get(key); got.Note != "double portion" {
		t.Errorf("store note = %q, want the --note value", got.Note)
	}
	pending, err := store.GetPendingSaves()
	if err != nil {
		t.Fatalf("GetPendingSaves() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Record.Note != "double portion" {
		t.Errorf("journal = %+v, want one entry carrying the note", pending)
	}
}
