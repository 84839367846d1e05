package catalog

import (
	"testing"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

func testEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{ID: 42, Title: "Phở bò", Category: "noodles", Source: constants.SourceStudent},
		{ID: 7, Title: "Salad", Source: constants.SourceGym},
		{ID: 12, Title: "Cơm tấm", Source: constants.SourceStudent},
	}
}

func TestTitleFor(t *testing.T) {
	cat := New(testEntries())

	tests := []struct {
		name string
		id   int
		want string
	}{
		{name: "known id", id: 42, want: "Phở bò"},
		{name: "unknown id gets placeholder", id: 999, want: "Recipe #999"},
		{name: "zero id gets placeholder", id: 0, want: "Recipe #0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cat.TitleFor(tt.id); got != tt.want {
				t.Errorf("TitleFor(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cat := New(testEntries())

	got := cat.Resolve(7)
	if got.ID != 7 || got.Title != "Salad" || got.Source != constants.SourceGym {
		t.Errorf("Resolve(7) = %+v", got)
	}

	unknown := cat.Resolve(999)
	if unknown.Title != "Recipe #999" || unknown.Source != constants.SourceUnknown {
		t.Errorf("Resolve(999) = %+v, want placeholder with unknown source", unknown)
	}
}

func TestBySource(t *testing.T) {
	cat := New(testEntries())

	student := cat.BySource(constants.SourceStudent)
	if len(student) != 2 {
		t.Fatalf("student feed has %d entries, want 2", len(student))
	}
	if student[0].ID != 12 || student[1].ID != 42 {
		t.Errorf("student entries not sorted by id: %d, %d", student[0].ID, student[1].ID)
	}

	gym := cat.BySource(constants.SourceGym)
	if len(gym) != 1 || gym[0].Title != "Salad" {
		t.Errorf("gym feed = %+v", gym)
	}
}

func TestDuplicateIDsLastWins(t *testing.T) {
	cat := New([]models.CatalogEntry{
		{ID: 1, Title: "First", Source: constants.SourceStudent},
		{ID: 1, Title: "Second", Source: constants.SourceGym},
	})

	if cat.Len() != 1 {
		t.Fatalf("catalog has %d entries, want 1", cat.Len())
	}
	if got := cat.TitleFor(1); got != "Second" {
		t.Errorf("TitleFor(1) = %q, want later entry to win", got)
	}
}
