package cli

import (
	"context"
	"fmt"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
)

type RecipesCmd struct {
	Source string `help:"Filter by feed: student or gym." enum:"student,gym," default:""`
}

func (cmd *RecipesCmd) Run(ctx *Context) error {
	cat := ctx.LoadCatalog(context.Background())
	if cat.Len() == 0 {
		fmt.Println("No recipes available (server unreachable and cache empty).")
		return nil
	}

	var entries []models.CatalogEntry
	switch constants.RecipeSource(cmd.Source) {
	case constants.SourceStudent:
		entries = cat.BySource(constants.SourceStudent)
	case constants.SourceGym:
		entries = cat.BySource(constants.SourceGym)
	default:
		entries = cat.Entries()
	}

	for _, e := range entries {
		line := fmt.Sprintf("%4d  %-30s  [%s]", e.ID, e.Title, e.Source)
		if e.Category != "" {
			line += "  " + e.Category
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d recipes\n", len(entries))
	return nil
}
