package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manual(id, name string) ShoppingItem {
	return ShoppingItem{ID: id, Name: name, Category: Categorize(name)}
}

func fromRecipe(id, name string, recipeID int, recipeName string) ShoppingItem {
	return ShoppingItem{
		ID:       id,
		Name:     name,
		Category: Categorize(name),
		Source:   &RecipeRef{RecipeID: recipeID, RecipeName: recipeName},
	}
}

func ids(items []ShoppingItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestItemStore(t *testing.T) {
	t.Run("Add keeps insertion order", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("a", "Milch"))
		s.Add(manual("b", "Brot"))
		assert.Equal(t, []string{"a", "b"}, ids(s.Items()))
	})

	t.Run("Toggle", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("a", "Milch"))

		require.True(t, s.Toggle("a"))
		item, _ := s.Get("a")
		assert.True(t, item.Checked)

		require.True(t, s.Toggle("a"))
		item, _ = s.Get("a")
		assert.False(t, item.Checked)

		assert.False(t, s.Toggle("missing"))
	})

	t.Run("Edit merges fields", func(t *testing.T) {
		s := NewItemStore()
		s.Add(fromRecipe("a", "Tomaten", 1, "Pasta"))

		qty := "750"
		cat := CategoryFruit
		require.True(t, s.Edit("a", ItemUpdate{Quantity: &qty, Category: &cat}))

		item, _ := s.Get("a")
		assert.Equal(t, "Tomaten", item.Name)
		assert.Equal(t, "750", item.Quantity)
		assert.Equal(t, CategoryFruit, item.Category)
		require.NotNil(t, item.Source)
		assert.Equal(t, 1, item.Source.RecipeID)

		assert.False(t, s.Edit("missing", ItemUpdate{Quantity: &qty}))
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("a", "Milch"))

		assert.True(t, s.Delete("a"))
		assert.False(t, s.Delete("a"))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("ClearChecked removes checked items of any provenance", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("a", "Milch"))
		s.Add(fromRecipe("b", "Tomaten", 1, "Pasta"))
		s.Add(manual("c", "Brot"))
		s.Toggle("a")
		s.Toggle("b")

		assert.Equal(t, 2, s.ClearChecked())
		assert.Equal(t, []string{"c"}, ids(s.Items()))
		assert.Equal(t, 0, s.ClearChecked())
	})

	t.Run("ReplaceRecipeItems swaps only that recipe", func(t *testing.T) {
		s := NewItemStore()
		s.Add(fromRecipe("r1a", "Tomaten", 1, "Pasta"))
		s.Add(manual("m", "Milch"))
		s.Add(fromRecipe("r2a", "Banane", 2, "Smoothie"))

		s.ReplaceRecipeItems(1, []ShoppingItem{
			fromRecipe("r1b", "Tomaten", 1, "Pasta"),
			fromRecipe("r1c", "Spaghetti", 1, "Pasta"),
		})
		assert.Equal(t, []string{"m", "r2a", "r1b", "r1c"}, ids(s.Items()))
	})

	t.Run("DeleteRecipeItems leaves manual items alone", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("m", "Milch"))
		s.Add(fromRecipe("r", "Tomaten", 1, "Pasta"))

		assert.Equal(t, 1, s.DeleteRecipeItems(1))
		assert.Equal(t, 0, s.DeleteRecipeItems(1))
		assert.Equal(t, 0, s.DeleteRecipeItems(0))
		assert.Equal(t, []string{"m"}, ids(s.Items()))
	})

	t.Run("snapshots are never mutated", func(t *testing.T) {
		s := NewItemStore()
		s.Add(manual("a", "Milch"))
		s.Add(manual("b", "Brot"))
		before := s.Items()

		s.Toggle("a")
		s.Delete("b")
		s.Add(manual("c", "Käse"))
		s.ReplaceRecipeItems(1, []ShoppingItem{fromRecipe("r", "Tomaten", 1, "Pasta")})

		require.Len(t, before, 2)
		assert.Equal(t, []string{"a", "b"}, ids(before))
		assert.False(t, before[0].Checked)
	})
}
