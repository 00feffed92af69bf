package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_FilterAndSummary(t *testing.T) {
	e := newTestEngine(t)
	e.AddItem(ItemInput{Name: "Milch", Quantity: "1", Unit: "l"})
	e.AddItem(ItemInput{Name: "Olivenöl", Quantity: "1", Unit: "Flasche"})
	e.AddRecipeIngredients(pastaRecipe)
	e.ToggleItem(e.Items()[0].ID)

	t.Run("zero filter matches everything", func(t *testing.T) {
		assert.Len(t, e.Filter(ItemFilter{}), 4)
		assert.Len(t, e.Filter(ItemFilter{Category: CategoryAll}), 4)
	})

	t.Run("by category", func(t *testing.T) {
		got := e.Filter(ItemFilter{Category: CategoryVegetable})
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Tomaten", got[0].Name)
		}
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		assert.Len(t, e.Filter(ItemFilter{Search: "SPAG"}), 1)
		assert.Empty(t, e.Filter(ItemFilter{Search: "spag", Category: CategoryDairy}))
	})

	t.Run("summary", func(t *testing.T) {
		s := e.Summary()
		assert.Equal(t, 4, s.Total)
		assert.Equal(t, 1, s.Checked)
		assert.Equal(t, 3, s.Unchecked)
		assert.Equal(t, 4, s.ByCategory[CategoryAll])
		assert.Equal(t, 1, s.ByCategory[CategoryDairy])
		assert.Equal(t, 1, s.ByCategory[CategoryVegetable])
		assert.Equal(t, 1, s.ByCategory[CategoryBakery])
		assert.Equal(t, 0, s.ByCategory[CategoryFruit])
	})
}
