package shopping

// Project groups the recipe-sourced items by recipe, in the order each recipe
// first appears in items. expanded carries the collapse state of groups from the
// previous projection; groups not present there start expanded. image resolves
// the picture shown for a recipe and may be nil.
func Project(items []ShoppingItem, expanded map[int]bool, image func(recipeID int) string) []RecipeGroup {
	var groups []RecipeGroup
	index := make(map[int]int)

	for _, item := range items {
		if !item.IsFromRecipe() {
			continue
		}
		id := item.Source.RecipeID
		pos, ok := index[id]
		if !ok {
			g := RecipeGroup{
				RecipeID:   id,
				RecipeName: item.Source.RecipeName,
				Expanded:   true,
			}
			if state, seen := expanded[id]; seen {
				g.Expanded = state
			}
			if image != nil {
				g.RecipeImage = image(id)
			}
			groups = append(groups, g)
			pos = len(groups) - 1
			index[id] = pos
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups
}

// expandState remembers which groups are collapsed across projections.
type expandState map[int]bool

// retain forgets the state of groups that no longer exist.
func (s expandState) retain(groups []RecipeGroup) {
	live := make(map[int]struct{}, len(groups))
	for _, g := range groups {
		live[g.RecipeID] = struct{}{}
	}
	for id := range s {
		if _, ok := live[id]; !ok {
			delete(s, id)
		}
	}
}
