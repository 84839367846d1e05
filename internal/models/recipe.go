package models

import (
	"fmt"

	"github.com/minhtpham/mealgrid/internal/constants"
)

// RecipeRef is the minimal recipe identity carried by a planner cell and by
// the drag payload between the catalog pane and the grid.
type RecipeRef struct {
	ID     int                    `json:"id"`
	Title  string                 `json:"title"`
	Source constants.RecipeSource `json:"source"`
}

// CatalogEntry is one read-only recipe from the backend catalog feeds.
type CatalogEntry struct {
	ID       int                    `json:"id"`
	Title    string                 `json:"title"`
	Note     string                 `json:"note,omitempty"`
	Category string                 `json:"category,omitempty"`
	Source   constants.RecipeSource `json:"-"`
}

// Ref converts a catalog entry to the reference form stored in a slot.
func (e CatalogEntry) Ref() RecipeRef {
	return RecipeRef{ID: e.ID, Title: e.Title, Source: e.Source}
}

// PlaceholderTitle synthesizes a label for a recipe id missing from the
// catalog so a saved slot still renders.
func PlaceholderTitle(id int) string {
	return fmt.Sprintf("Recipe #%d", id)
}
