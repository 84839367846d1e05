package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "mealgrid.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testWindow() planner.WeekWindow {
	return planner.NewWeekWindow(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.Local))
}

func intPtr(v int) *int { return &v }

func TestLoadWithoutInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Load() succeeded on a nonexistent cache")
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := []models.CatalogEntry{
		{ID: 42, Title: "Phở bò", Category: "noodles", Source: constants.SourceStudent},
		{ID: 7, Title: "Salad", Note: "light", Source: constants.SourceGym},
	}
	if err := store.SaveCatalog(in); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}

	out, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("GetCatalog() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	// Ordered by id.
	if out[0].ID != 7 || out[0].Source != constants.SourceGym || out[0].Note != "light" {
		t.Errorf("entry 0 = %+v", out[0])
	}
	if out[1].ID != 42 || out[1].Source != constants.SourceStudent || out[1].Category != "noodles" {
		t.Errorf("entry 1 = %+v", out[1])
	}
}

func TestSaveCatalogReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	store.SaveCatalog([]models.CatalogEntry{{ID: 1, Title: "Old"}})
	if err := store.SaveCatalog([]models.CatalogEntry{{ID: 2, Title: "New"}}); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}

	out, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("GetCatalog() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Errorf("catalog after refresh = %+v, want only the new entry", out)
	}
}

func TestWeekSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	w := testWindow()

	in := []models.SlotRecord{
		{Date: "2024-06-11", MealType: "lunch", RecipeID: intPtr(42), Note: "double"},
		{Date: "2024-06-12", MealType: "dinner", RecipeID: nil, Note: ""},
		{Date: "2024-07-01", MealType: "lunch", RecipeID: intPtr(7)}, // outside window, dropped
	}
	if err := store.SaveWeekSnapshot(w, in); err != nil {
		t.Fatalf("SaveWeekSnapshot() error = %v", err)
	}

	out, err := store.GetWeekSnapshot(w)
	if err != nil {
		t.Fatalf("GetWeekSnapshot() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("snapshot has %d records, want 2 (out-of-window dropped)", len(out))
	}
	if out[0].Date != "2024-06-11" || out[0].RecipeID == nil || *out[0].RecipeID != 42 || out[0].Note != "double" {
		t.Errorf("record 0 = %+v", out[0])
	}
	if out[1].RecipeID != nil {
		t.Errorf("cleared slot round-tripped with recipe id %v", *out[1].RecipeID)
	}
}

func TestWeekSnapshotKeepsOtherWeeks(t *testing.T) {
	store := newTestStore(t)
	w := testWindow()
	next := w.Shift(7)

	store.SaveWeekSnapshot(w, []models.SlotRecord{{Date: "2024-06-11", MealType: "lunch", RecipeID: intPtr(42)}})
	store.SaveWeekSnapshot(next, []models.SlotRecord{{Date: "2024-06-18", MealType: "dinner", RecipeID: intPtr(7)}})

	// Re-saving one week must not clobber the other.
	if err := store.SaveWeekSnapshot(w, nil); err != nil {
		t.Fatalf("SaveWeekSnapshot() error = %v", err)
	}

	current, _ := store.GetWeekSnapshot(w)
	if len(current) != 0 {
		t.Errorf("current week snapshot = %+v, want empty after re-save", current)
	}
	other, _ := store.GetWeekSnapshot(next)
	if len(other) != 1 {
		t.Errorf("next week snapshot lost: %+v", other)
	}
}

func TestPendingSaveJournal(t *testing.T) {
	store := newTestStore(t)

	rec := models.SlotRecord{Date: "2024-06-12", MealType: "breakfast", RecipeID: intPtr(7), Note: ""}
	if err := store.EnqueuePendingSave(rec); err != nil {
		t.Fatalf("EnqueuePendingSave() error = %v", err)
	}

	pending, err := store.GetPendingSaves()
	if err != nil {
		t.Fatalf("GetPendingSaves() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(pending))
	}
	p := pending[0]
	if p.ID == "" || p.Attempts != 0 {
		t.Errorf("entry = %+v", p)
	}
	if p.Record.RecipeID == nil || *p.Record.RecipeID != 7 {
		t.Errorf("journaled record = %+v", p.Record)
	}

	if err := store.BumpPendingSaveAttempts(p.ID); err != nil {
		t.Fatalf("BumpPendingSaveAttempts() error = %v", err)
	}
	pending, _ = store.GetPendingSaves()
	if pending[0].Attempts != 1 {
		t.Errorf("attempts = %d after bump, want 1", pending[0].Attempts)
	}

	if err := store.ResolvePendingSave(p.ID); err != nil {
		t.Fatalf("ResolvePendingSave() error = %v", err)
	}
	pending, _ = store.GetPendingSaves()
	if len(pending) != 0 {
		t.Errorf("journal has %d entries after resolve, want 0", len(pending))
	}
}

func TestPendingSaveSupersedesSameCell(t *testing.T) {
	store := newTestStore(t)

	store.EnqueuePendingSave(models.SlotRecord{Date: "2024-06-12", MealType: "lunch", RecipeID: intPtr(42)})
	store.EnqueuePendingSave(models.SlotRecord{Date: "2024-06-12", MealType: "lunch", RecipeID: nil})

	pending, err := store.GetPendingSaves()
	if err != nil {
		t.Fatalf("GetPendingSaves() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("journal has %d entries for one cell, want the latest only", len(pending))
	}
	if pending[0].Record.RecipeID != nil {
		t.Errorf("surviving entry = %+v, want the clearing save", pending[0].Record)
	}
}
