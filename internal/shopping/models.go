package shopping

import "encoding/json"

// unknownRecipeName is used when a recipe-sourced item arrives without a recipe title.
const unknownRecipeName = "Unbekanntes Rezept"

// RecipeRef ties a shopping item to the recipe it was derived from.
type RecipeRef struct {
	RecipeID   int    `json:"recipe_id"`
	RecipeName string `json:"recipe"`
}

// ShoppingItem is a single entry on the shopping list.
// Source is nil for manually added items.
type ShoppingItem struct {
	ID       string
	Name     string
	Quantity string
	Unit     string
	Category Category
	Checked  bool
	Source   *RecipeRef
}

// IsFromRecipe reports whether the item was materialized from a recipe.
func (i ShoppingItem) IsFromRecipe() bool {
	return i.Source != nil
}

// RecipeID returns the originating recipe id, or 0 for manual items.
func (i ShoppingItem) RecipeID() int {
	if i.Source == nil {
		return 0
	}
	return i.Source.RecipeID
}

type shoppingItemJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Quantity     string   `json:"quantity"`
	Unit         string   `json:"unit"`
	Category     Category `json:"category"`
	IsChecked    bool     `json:"is_checked"`
	IsFromRecipe bool     `json:"is_from_recipe"`
	RecipeID     *int     `json:"recipe_id,omitempty"`
	Recipe       string   `json:"recipe,omitempty"`
}

// MarshalJSON flattens the provenance into is_from_recipe / recipe_id / recipe.
func (i ShoppingItem) MarshalJSON() ([]byte, error) {
	out := shoppingItemJSON{
		ID:           i.ID,
		Name:         i.Name,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		Category:     i.Category,
		IsChecked:    i.Checked,
		IsFromRecipe: i.IsFromRecipe(),
	}
	if i.Source != nil {
		id := i.Source.RecipeID
		out.RecipeID = &id
		out.Recipe = i.Source.RecipeName
	}
	return json.Marshal(out)
}

// ItemInput is the payload for adding an item, as produced by the item dialog.
type ItemInput struct {
	Name     string
	Quantity string
	Unit     string
	// Category is resolved with Categorize when empty.
	Category Category
	Source   *RecipeRef
}

// ItemUpdate is a partial update of an item. Nil fields are left untouched.
// Provenance cannot be changed through an update.
type ItemUpdate struct {
	Name     *string
	Quantity *string
	Unit     *string
	Category *Category
}

func (u ItemUpdate) apply(item ShoppingItem) ShoppingItem {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		item.Unit = *u.Unit
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	return item
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount" yaml:"amount"`
	Unit   string `json:"unit" yaml:"unit"`
}

// ShoppingRecipe is a recipe that has been added to the cart. Ingredients are a
// snapshot taken when the recipe was added.
type ShoppingRecipe struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Image       string       `json:"image"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
}

// validRecipeID reports whether id can be used as recipe provenance.
func validRecipeID(id int) bool {
	return id > 0
}

// RecipeGroup clusters the items materialized from one recipe.
type RecipeGroup struct {
	RecipeID    int            `json:"recipe_id"`
	RecipeName  string         `json:"recipe_name"`
	RecipeImage string         `json:"recipe_image"`
	Items       []ShoppingItem `json:"items"`
	Expanded    bool           `json:"is_expanded"`
}

// normalizeSource enforces the provenance invariant: a source always carries a
// positive recipe id and a name, anything else is a manual item. The result is
// a fresh copy.
func normalizeSource(src *RecipeRef) *RecipeRef {
	if src == nil || !validRecipeID(src.RecipeID) {
		return nil
	}
	ref := *src
	if ref.RecipeName == "" {
		ref.RecipeName = unknownRecipeName
	}
	return &ref
}

// clone returns a copy of the item that shares no memory with the original.
func (i ShoppingItem) clone() ShoppingItem {
	if i.Source != nil {
		ref := *i.Source
		i.Source = &ref
	}
	return i
}

func cloneItems(items []ShoppingItem) []ShoppingItem {
	if items == nil {
		return nil
	}
	out := make([]ShoppingItem, len(items))
	for idx, item := range items {
		out[idx] = item.clone()
	}
	return out
}

func (r ShoppingRecipe) clone() ShoppingRecipe {
	r.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	return r
}

func (g RecipeGroup) clone() RecipeGroup {
	g.Items = cloneItems(g.Items)
	return g
}
