package shopping

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Tomaten", CategoryVegetable},
		{"Rote Zwiebel", CategoryVegetable},
		{"KAROTTE", CategoryVegetable},
		{"Banane", CategoryFruit},
		{"Heidelbeeren", CategoryFruit},
		{"Hähnchenbrust", CategoryMeat},
		{"Räucherfisch", CategoryMeat},
		{"Milch", CategoryDairy},
		{"Käse", CategoryDairy},
		{"Mozzarella", CategoryDairy},
		{"Spaghetti", CategoryBakery},
		{"Vollkornbrot", CategoryBakery},
		{"Haferflocken", CategoryBakery},
		{"Olivenöl", CategoryAll},
		{"", CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestCategorize_FirstRuleWins(t *testing.T) {
	// "tomate" (vegetable) is checked before "beere" (fruit) and "butter" (dairy).
	assert.Equal(t, CategoryVegetable, Categorize("Tomaten-Beeren-Butter"))
	// "beere" (fruit) before "reis" (bakery).
	assert.Equal(t, CategoryFruit, Categorize("Preiselbeeren"))
	// "fleisch" (meat) before "sahne" (dairy).
	assert.Equal(t, CategoryMeat, Categorize("Fleisch in Sahnesauce"))
}

func TestCategorize_Deterministic(t *testing.T) {
	f := func(name string) bool {
		first := Categorize(name)
		for i := 0; i < 3; i++ {
			if Categorize(name) != first {
				return false
			}
		}
		return true
	}
	assert.NoError(t, quick.Check(f, nil))
}

func TestCategorize_Total(t *testing.T) {
	f := func(name string) bool {
		_, ok := ParseCategory(string(Categorize(name)))
		return ok
	}
	assert.NoError(t, quick.Check(f, nil))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Obst ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFruit, c)

	_, ok = ParseCategory("süßigkeiten")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 6)
	assert.Equal(t, CategoryInfo{ID: CategoryAll, Label: "Alle"}, cats[0])
	assert.Equal(t, CategoryInfo{ID: CategoryVegetable, Label: "Gemüse"}, cats[2])
}
