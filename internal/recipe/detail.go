package recipe

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"meal-planner/internal/shopping"
)

// ErrCartUnavailable is returned by cart actions of a detail view that was
// built without a cart.
var ErrCartUnavailable = errors.New("shopping cart is not available")

// CartHandle is the part of the shopping engine the recipe detail view uses.
type CartHandle interface {
	AddRecipeToCart(recipe shopping.ShoppingRecipe)
	RemoveRecipeFromCart(recipeID int) bool
	ToggleRecipeInCart(recipe shopping.ShoppingRecipe) bool
	InCart(recipeID int) bool
}

// Detail is the recipe detail view model. The cart is optional; without one
// the "add to shopping list" affordance is reported as unavailable.
type Detail struct {
	recipe   Recipe
	cart     CartHandle
	servings int
}

// NewDetail builds a detail view. cart may be nil. servings <= 0 selects the
// recipe's own serving count.
func NewDetail(rec Recipe, cart CartHandle, servings int) *Detail {
	if servings <= 0 {
		servings = rec.Servings
	}
	return &Detail{recipe: rec, cart: cart, servings: servings}
}

// Recipe returns the underlying recipe.
func (d *Detail) Recipe() Recipe {
	return d.recipe
}

// Servings is the serving count the ingredients are scaled to.
func (d *Detail) Servings() int {
	return d.servings
}

// CartAvailable reports whether cart actions can be used.
func (d *Detail) CartAvailable() bool {
	return d.cart != nil
}

// InCart reports whether the recipe is in the cart. It is false without a cart.
func (d *Detail) InCart() bool {
	return d.cart != nil && d.cart.InCart(d.recipe.ID)
}

// ToggleCart adds the recipe to the cart, or removes it when already there,
// and returns the new membership.
func (d *Detail) ToggleCart() (bool, error) {
	if d.cart == nil {
		return false, ErrCartUnavailable
	}
	return d.cart.ToggleRecipeInCart(d.recipe.ShoppingRecipe()), nil
}

// AddToCart puts the recipe in the cart.
func (d *Detail) AddToCart() error {
	if d.cart == nil {
		return ErrCartUnavailable
	}
	d.cart.AddRecipeToCart(d.recipe.ShoppingRecipe())
	return nil
}

// RemoveFromCart takes the recipe out of the cart.
func (d *Detail) RemoveFromCart() error {
	if d.cart == nil {
		return ErrCartUnavailable
	}
	d.cart.RemoveRecipeFromCart(d.recipe.ID)
	return nil
}

// ScaledIngredients returns the ingredient list scaled to the selected servings.
func (d *Detail) ScaledIngredients() []shopping.Ingredient {
	out := make([]shopping.Ingredient, 0, len(d.recipe.Ingredients))
	for _, ing := range d.recipe.Ingredients {
		ing.Amount = ScaleAmount(ing.Amount, d.servings, d.recipe.Servings)
		out = append(out, ing)
	}
	return out
}

// ScaleAmount rescales a numeric amount from base servings to servings and
// rounds to one decimal. Amounts that are not plain numbers ("1 Bund", "etwas")
// and invalid serving counts leave the amount unchanged.
func ScaleAmount(amount string, servings, base int) string {
	if servings <= 0 || base <= 0 || servings == base {
		return amount
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(amount), ",", "."), 64)
	if err != nil {
		return amount
	}
	scaled := math.Round(v*float64(servings)/float64(base)*10) / 10
	return strconv.FormatFloat(scaled, 'f', -1, 64)
}
