package catalog

import (
	"sort"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

// Catalog is the read-only set of recipes available to place into planner
// slots, indexed by id for slot-title resolution.
type Catalog struct {
	byID  map[int]models.CatalogEntry
	order []int
}

// New builds a catalog from the merged backend feeds. Later entries win on
// duplicate ids.
func New(entries []models.CatalogEntry) *Catalog {
	c := &Catalog{byID: make(map[int]models.CatalogEntry, len(entries))}
	for _, e := range entries {
		if _, seen := c.byID[e.ID]; !seen {
			c.order = append(c.order, e.ID)
		}
		c.byID[e.ID] = e
	}
	return c
}

// Get returns the entry for id, if present.
func (c *Catalog) Get(id int) (models.CatalogEntry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// TitleFor resolves a recipe id to its display title, falling back to a
// synthesized placeholder when the id is not in the catalog.
func (c *Catalog) TitleFor(id int) string {
	if e, ok := c.byID[id]; ok && e.Title != "" {
		return e.Title
	}
	return models.PlaceholderTitle(id)
}

// Resolve returns the full RecipeRef for id. Unknown ids get a placeholder
// title and an unknown source so a saved slot still renders.
func (c *Catalog) Resolve(id int) models.RecipeRef {
	if e, ok := c.byID[id]; ok {
		return e.Ref()
	}
	return models.RecipeRef{ID: id, Title: models.PlaceholderTitle(id), Source: constants.SourceUnknown}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Entries returns all entries in feed order.
func (c *Catalog) Entries() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// BySource returns entries from one feed, sorted by id for stable listings.
func (c *Catalog) BySource(src constants.RecipeSource) []models.CatalogEntry {
	var out []models.CatalogEntry
	for _, id := range c.order {
		if e := c.byID[id]; e.Source == src {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
