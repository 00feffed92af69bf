package recipe

import (
	"context"
	"errors"

	"meal-planner/internal/shopping"
)

// ErrNotFound is returned when a catalog has no recipe with the requested id.
var ErrNotFound = errors.New("recipe not found")

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories int `json:"calories" yaml:"calories"`
	Protein  int `json:"protein" yaml:"protein"`
	Carbs    int `json:"carbs" yaml:"carbs"`
	Fat      int `json:"fat" yaml:"fat"`
}

// Recipe is a catalog entry.
type Recipe struct {
	ID           int                   `json:"id" yaml:"id"`
	Title        string                `json:"title" yaml:"title"`
	Description  string                `json:"description,omitempty" yaml:"description"`
	Image        string                `json:"image,omitempty" yaml:"image"`
	Servings     int                   `json:"servings" yaml:"servings"`
	PrepTime     string                `json:"prep_time,omitempty" yaml:"prep_time"`
	CookTime     string                `json:"cook_time,omitempty" yaml:"cook_time"`
	Ingredients  []shopping.Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions []string              `json:"instructions,omitempty" yaml:"instructions"`
	Nutrition    Nutrition             `json:"nutrition" yaml:"nutrition"`
	Tags         []string              `json:"tags,omitempty" yaml:"tags"`
	SourceURL    string                `json:"source_url,omitempty" yaml:"source_url"`
	UpdatedAt    string                `json:"updated_at,omitempty" yaml:"updated_at"`
}

// ShoppingRecipe converts the recipe into a cart entry. The ingredient list is
// copied so later catalog edits do not leak into the cart.
func (r Recipe) ShoppingRecipe() shopping.ShoppingRecipe {
	return shopping.ShoppingRecipe{
		ID:          r.ID,
		Title:       r.Title,
		Image:       r.Image,
		Servings:    r.Servings,
		Ingredients: append([]shopping.Ingredient(nil), r.Ingredients...),
	}
}

// Catalog is a read-only source of recipes.
type Catalog interface {
	Get(ctx context.Context, id int) (*Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
}
