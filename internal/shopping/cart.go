package shopping

// Cart tracks the recipes added to the shopping flow, at most one entry per
// recipe id. Like ItemStore it swaps in a new slice on every change.
type Cart struct {
	recipes []ShoppingRecipe
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Recipes returns the current snapshot. Callers must not modify it.
func (c *Cart) Recipes() []ShoppingRecipe {
	return c.recipes
}

// Get returns the cart entry for a recipe id.
func (c *Cart) Get(recipeID int) (ShoppingRecipe, bool) {
	for _, r := range c.recipes {
		if r.ID == recipeID {
			return r, true
		}
	}
	return ShoppingRecipe{}, false
}

// Contains reports whether the recipe is in the cart.
func (c *Cart) Contains(recipeID int) bool {
	_, ok := c.Get(recipeID)
	return ok
}

// Upsert stores the recipe, replacing a previous entry with the same id. The
// entry moves to the end of the cart.
func (c *Cart) Upsert(recipe ShoppingRecipe) {
	next := make([]ShoppingRecipe, 0, len(c.recipes)+1)
	for _, r := range c.recipes {
		if r.ID != recipe.ID {
			next = append(next, r)
		}
	}
	recipe.Ingredients = append([]Ingredient(nil), recipe.Ingredients...)
	c.recipes = append(next, recipe)
}

// Remove deletes the entry for a recipe id and reports whether it existed.
func (c *Cart) Remove(recipeID int) bool {
	if !c.Contains(recipeID) {
		return false
	}
	next := make([]ShoppingRecipe, 0, len(c.recipes)-1)
	for _, r := range c.recipes {
		if r.ID != recipeID {
			next = append(next, r)
		}
	}
	c.recipes = next
	return true
}
