package shopping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProject(t *testing.T) {
	items := []ShoppingItem{
		fromRecipe("1", "Banane", 2, "Smoothie"),
		manual("2", "Milch"),
		fromRecipe("3", "Tomaten", 1, "Pasta"),
		fromRecipe("4", "Beeren", 2, "Smoothie"),
		fromRecipe("5", "Spaghetti", 1, "Pasta"),
	}
	images := func(id int) string {
		if id == 1 {
			return "pasta.webp"
		}
		return ""
	}

	t.Run("groups by recipe in first-seen order", func(t *testing.T) {
		got := Project(items, nil, images)
		want := []RecipeGroup{
			{RecipeID: 2, RecipeName: "Smoothie", Items: []ShoppingItem{items[0], items[3]}, Expanded: true},
			{RecipeID: 1, RecipeName: "Pasta", RecipeImage: "pasta.webp", Items: []ShoppingItem{items[2], items[4]}, Expanded: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Project() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps prior expand state", func(t *testing.T) {
		got := Project(items, map[int]bool{1: false, 99: false}, nil)
		if len(got) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(got))
		}
		if !got[0].Expanded {
			t.Error("Expected new group to start expanded")
		}
		if got[1].Expanded {
			t.Error("Expected collapsed group to stay collapsed")
		}
	})

	t.Run("no recipe items yields no groups", func(t *testing.T) {
		if got := Project([]ShoppingItem{manual("1", "Milch")}, nil, nil); len(got) != 0 {
			t.Errorf("Expected no groups, got %d", len(got))
		}
	})

	t.Run("union of groups equals recipe items", func(t *testing.T) {
		seen := map[string]bool{}
		for _, g := range Project(items, nil, nil) {
			for _, item := range g.Items {
				if item.RecipeID() != g.RecipeID {
					t.Errorf("Item %s in wrong group %d", item.ID, g.RecipeID)
				}
				seen[item.ID] = true
			}
		}
		for _, item := range items {
			if item.IsFromRecipe() != seen[item.ID] {
				t.Errorf("Item %s: from recipe=%v, grouped=%v", item.ID, item.IsFromRecipe(), seen[item.ID])
			}
		}
	})
}

func TestExpandStateRetain(t *testing.T) {
	s := expandState{1: false, 2: true}
	s.retain([]RecipeGroup{{RecipeID: 2}})
	if _, ok := s[1]; ok {
		t.Error("Expected state of vanished group to be forgotten")
	}
	if !s[2] {
		t.Error("Expected state of live group to be kept")
	}
}
