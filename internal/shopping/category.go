package shopping

import "strings"

// Category is the aisle an item belongs to.
type Category string

const (
	CategoryAll       Category = "alle"
	CategoryFruit     Category = "obst"
	CategoryVegetable Category = "gemuese"
	CategoryMeat      Category = "fleisch"
	CategoryDairy     Category = "milchprodukte"
	CategoryBakery    Category = "backwaren"
)

func (c Category) String() string {
	return string(c)
}

// Label returns the display name shown in the tag bar.
func (c Category) Label() string {
	switch c {
	case CategoryFruit:
		return "Obst"
	case CategoryVegetable:
		return "Gemüse"
	case CategoryMeat:
		return "Fleisch"
	case CategoryDairy:
		return "Milchprodukte"
	case CategoryBakery:
		return "Backwaren"
	default:
		return "Alle"
	}
}

// CategoryInfo is a category as listed in the tag bar.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"name"`
}

var displayOrder = []Category{
	CategoryAll,
	CategoryFruit,
	CategoryVegetable,
	CategoryMeat,
	CategoryDairy,
	CategoryBakery,
}

// Categories lists every category in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(displayOrder))
	for _, c := range displayOrder {
		out = append(out, CategoryInfo{ID: c, Label: c.Label()})
	}
	return out
}

// ParseCategory validates a category id coming from a dialog.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range displayOrder {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type keywordRule struct {
	category Category
	keywords []string
}

// Rules are evaluated in order; the first match wins.
var keywordRules = []keywordRule{
	{CategoryVegetable, []string{"tomate", "gurke", "paprika", "zwiebel", "knoblauch", "basilikum", "koriander", "salat", "karotte"}},
	{CategoryFruit, []string{"banane", "beere", "apfel", "orange", "zitrone", "avocado"}},
	{CategoryMeat, []string{"hähnchen", "fleisch", "wurst", "schinken", "fisch"}},
	{CategoryDairy, []string{"milch", "käse", "joghurt", "mozzarella", "butter", "sahne"}},
	{CategoryBakery, []string{"brot", "mehl", "nudel", "spaghetti", "reis", "hafer"}},
}

// Categorize maps an ingredient name to a category by keyword. Names matching no
// keyword fall back to CategoryAll.
func Categorize(ingredientName string) Category {
	name := strings.ToLower(ingredientName)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return CategoryAll
}
