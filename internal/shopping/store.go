package shopping

// ItemStore holds the shopping list entries. Every mutation installs a new
// slice, so snapshots previously handed out by Items are never modified.
// ItemStore is not safe for concurrent use; the Engine serializes access.
type ItemStore struct {
	items []ShoppingItem
}

// NewItemStore creates an empty store.
func NewItemStore() *ItemStore {
	return &ItemStore{}
}

// Items returns the current snapshot. Callers must not modify it.
func (s *ItemStore) Items() []ShoppingItem {
	return s.items
}

// Len returns the number of items.
func (s *ItemStore) Len() int {
	return len(s.items)
}

// Get looks up an item by id.
func (s *ItemStore) Get(id string) (ShoppingItem, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return ShoppingItem{}, false
}

// Add appends an item. The caller is responsible for assigning a unique id.
func (s *ItemStore) Add(item ShoppingItem) {
	next := make([]ShoppingItem, 0, len(s.items)+1)
	next = append(next, s.items...)
	s.items = append(next, item)
}

// Toggle flips the checked flag of the item with the given id.
// It reports false when the id is unknown.
func (s *ItemStore) Toggle(id string) bool {
	return s.update(id, func(item ShoppingItem) ShoppingItem {
		item.Checked = !item.Checked
		return item
	})
}

// Edit merges a partial update into the item with the given id.
// It reports false when the id is unknown.
func (s *ItemStore) Edit(id string, upd ItemUpdate) bool {
	return s.update(id, upd.apply)
}

// Delete removes the item with the given id. Deleting an absent id is a no-op.
func (s *ItemStore) Delete(id string) bool {
	return s.removeWhere(func(item ShoppingItem) bool { return item.ID == id }) > 0
}

// ClearChecked removes every checked item regardless of provenance and returns
// how many were removed.
func (s *ItemStore) ClearChecked() int {
	return s.removeWhere(func(item ShoppingItem) bool { return item.Checked })
}

// DeleteRecipeItems removes all items derived from the given recipe.
func (s *ItemStore) DeleteRecipeItems(recipeID int) int {
	return s.removeWhere(func(item ShoppingItem) bool { return item.RecipeID() == recipeID && item.IsFromRecipe() })
}

// ReplaceRecipeItems drops the items of a recipe and appends the new ones in a
// single swap.
func (s *ItemStore) ReplaceRecipeItems(recipeID int, items []ShoppingItem) {
	next := make([]ShoppingItem, 0, len(s.items)+len(items))
	for _, item := range s.items {
		if item.IsFromRecipe() && item.RecipeID() == recipeID {
			continue
		}
		next = append(next, item)
	}
	s.items = append(next, items...)
}

func (s *ItemStore) update(id string, fn func(ShoppingItem) ShoppingItem) bool {
	for i, item := range s.items {
		if item.ID != id {
			continue
		}
		next := make([]ShoppingItem, len(s.items))
		copy(next, s.items)
		next[i] = fn(item)
		s.items = next
		return true
	}
	return false
}

func (s *ItemStore) removeWhere(match func(ShoppingItem) bool) int {
	removed := 0
	next := make([]ShoppingItem, 0, len(s.items))
	for _, item := range s.items {
		if match(item) {
			removed++
			continue
		}
		next = append(next, item)
	}
	if removed > 0 {
		s.items = next
	}
	return removed
}
