package shopping

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Observer is notified after every mutation of the engine.
type Observer interface {
	ObserveOperation(op string)
	ObserveState(manualItems, recipeItems, cartRecipes int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer for mutations.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithIDGenerator replaces the item id generator.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithDefaultImage sets the picture used for recipe groups whose recipe is not
// in the cart or has no image.
func WithDefaultImage(path string) Option {
	return func(e *Engine) {
		e.defaultImage = path
	}
}

// DefaultRecipeImage is used for recipe groups when nothing better is known.
const DefaultRecipeImage = "/assets/img/Projects/project1.webp"

// Engine owns the shopping list, the recipe cart and the derived recipe groups.
// One Engine is created at startup and shared by all consumers. Operations are
// serialized and each one completes, including the group recomputation, before
// the next starts.
type Engine struct {
	mu sync.Mutex

	items    *ItemStore
	cart     *Cart
	groups   []RecipeGroup
	expanded expandState

	newID        func() string
	defaultImage string
	logger       *zap.Logger
	observer     Observer
}

// NewEngine creates an engine with an empty list and cart.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		items:        NewItemStore(),
		cart:         NewCart(),
		expanded:     expandState{},
		newID:        uuid.NewString,
		defaultImage: DefaultRecipeImage,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Items returns every shopping item in insertion order. All read methods hand
// out copies; changing them does not affect the engine.
func (e *Engine) Items() []ShoppingItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneItems(e.items.Items())
}

// ManualItems returns the items that were not derived from a recipe.
func (e *Engine) ManualItems() []ShoppingItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ShoppingItem
	for _, item := range e.items.Items() {
		if !item.IsFromRecipe() {
			out = append(out, item.clone())
		}
	}
	return out
}

// RecipeItems returns the items materialized from the given recipe.
func (e *Engine) RecipeItems(recipeID int) []ShoppingItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ShoppingItem
	for _, item := range e.items.Items() {
		if item.IsFromRecipe() && item.Source.RecipeID == recipeID {
			out = append(out, item.clone())
		}
	}
	return out
}

// Item looks up a single item.
func (e *Engine) Item(id string) (ShoppingItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.items.Get(id)
	return item.clone(), ok
}

// RecipeGroups returns the current grouping of recipe items.
func (e *Engine) RecipeGroups() []RecipeGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.groups == nil {
		return nil
	}
	out := make([]RecipeGroup, len(e.groups))
	for i, g := range e.groups {
		out[i] = g.clone()
	}
	return out
}

// ShoppingRecipes returns the recipes in the cart.
func (e *Engine) ShoppingRecipes() []ShoppingRecipe {
	e.mu.Lock()
	defer e.mu.Unlock()

	recipes := e.cart.Recipes()
	if recipes == nil {
		return nil
	}
	out := make([]ShoppingRecipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.clone()
	}
	return out
}

// InCart reports whether a recipe has been added to the cart.
func (e *Engine) InCart(recipeID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Contains(recipeID)
}

// CartRecipe returns the cart entry of a recipe.
func (e *Engine) CartRecipe(recipeID int) (ShoppingRecipe, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.cart.Get(recipeID)
	return r.clone(), ok
}

// AddItem stores a new item under a fresh id and returns it. Items are manual
// unless in.Source names a recipe.
func (e *Engine) AddItem(in ItemInput) ShoppingItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	category := in.Category
	if category == "" {
		category = Categorize(in.Name)
	}
	item := ShoppingItem{
		ID:       e.newID(),
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Category: category,
		Source:   normalizeSource(in.Source),
	}
	e.items.Add(item)
	e.logger.Debug("item added",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.String("category", item.Category.String()),
		zap.Bool("from_recipe", item.IsFromRecipe()),
	)
	e.changed("add_item")
	return item.clone()
}

// ToggleItem flips the checked flag of an item. Unknown ids are ignored.
func (e *Engine) ToggleItem(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.items.Toggle(id) {
		e.logger.Debug("toggle ignored, item not found", zap.String("id", id))
		return false
	}
	e.changed("toggle_item")
	return true
}

// EditItem merges a partial update into an item. Unknown ids are ignored.
func (e *Engine) EditItem(id string, upd ItemUpdate) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.items.Edit(id, upd) {
		e.logger.Debug("edit ignored, item not found", zap.String("id", id))
		return false
	}
	e.changed("edit_item")
	return true
}

// DeleteItem removes an item. Deleting an unknown id is a no-op.
func (e *Engine) DeleteItem(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.items.Delete(id) {
		return false
	}
	e.changed("delete_item")
	return true
}

// DeleteRecipeItems removes every item derived from a recipe.
func (e *Engine) DeleteRecipeItems(recipeID int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.items.DeleteRecipeItems(recipeID)
	if n > 0 {
		e.changed("delete_recipe_items")
	}
	return n
}

// ClearCheckedItems removes all checked items, manual and recipe alike.
func (e *Engine) ClearCheckedItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.items.ClearChecked()
	if n > 0 {
		e.logger.Info("checked items cleared", zap.Int("removed", n))
		e.changed("clear_checked")
	}
	return n
}

// AddRecipeToCart puts a recipe in the cart, replacing an earlier entry for the
// same id, and drops any items previously materialized from it. Ingredients are
// not materialized; see AddIndividualIngredients. Recipes without a positive id
// are ignored.
func (e *Engine) AddRecipeToCart(recipe ShoppingRecipe) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addToCart(recipe)
}

// ToggleRecipeInCart adds the recipe to the cart, or removes it together with
// its items when it is already there. It returns the new membership.
func (e *Engine) ToggleRecipeInCart(recipe ShoppingRecipe) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cart.Contains(recipe.ID) {
		e.removeFromCart(recipe.ID)
		return false
	}
	return e.addToCart(recipe)
}

func (e *Engine) addToCart(recipe ShoppingRecipe) bool {
	if !validRecipeID(recipe.ID) {
		e.logger.Warn("recipe ignored, invalid id",
			zap.Int("recipe_id", recipe.ID),
			zap.String("title", recipe.Title),
		)
		return false
	}
	e.cart.Upsert(recipe)
	dropped := e.items.DeleteRecipeItems(recipe.ID)
	e.logger.Info("recipe added to cart",
		zap.Int("recipe_id", recipe.ID),
		zap.String("title", recipe.Title),
		zap.Int("dropped_items", dropped),
	)
	e.changed("add_to_cart")
	return true
}

// RemoveRecipeFromCart removes a recipe from the cart together with all of its
// items. It reports whether the recipe was in the cart.
func (e *Engine) RemoveRecipeFromCart(recipeID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeFromCart(recipeID)
}

func (e *Engine) removeFromCart(recipeID int) bool {
	removed := e.cart.Remove(recipeID)
	dropped := e.items.DeleteRecipeItems(recipeID)
	if !removed && dropped == 0 {
		return false
	}
	e.logger.Info("recipe removed from cart",
		zap.Int("recipe_id", recipeID),
		zap.Int("dropped_items", dropped),
	)
	e.changed("remove_from_cart")
	return removed
}

// AddIndividualIngredients materializes the ingredients of a cart recipe as
// shopping items, replacing the items from an earlier materialization. It
// returns the number of items created, or 0 when the recipe is not in the cart.
func (e *Engine) AddIndividualIngredients(recipeID int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	recipe, ok := e.cart.Get(recipeID)
	if !ok {
		e.logger.Debug("materialize ignored, recipe not in cart", zap.Int("recipe_id", recipeID))
		return 0
	}
	return e.materialize(recipe, "materialize")
}

// AddRecipeIngredients materializes a recipe's ingredients without requiring a
// cart entry. Re-importing the same recipe replaces its items. Recipes without
// a positive id are ignored.
func (e *Engine) AddRecipeIngredients(recipe ShoppingRecipe) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !validRecipeID(recipe.ID) {
		e.logger.Warn("import ignored, invalid recipe id", zap.Int("recipe_id", recipe.ID))
		return 0
	}
	return e.materialize(recipe, "import_recipe")
}

// ToggleRecipeGroup expands or collapses a recipe group. It reports false when
// no group exists for the recipe.
func (e *Engine) ToggleRecipeGroup(recipeID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, g := range e.groups {
		if g.RecipeID == recipeID {
			e.expanded[recipeID] = !g.Expanded
			e.recompute()
			e.notify("toggle_group")
			return true
		}
	}
	return false
}

func (e *Engine) materialize(recipe ShoppingRecipe, op string) int {
	items := make([]ShoppingItem, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		items = append(items, ShoppingItem{
			ID:       e.newID(),
			Name:     ing.Name,
			Quantity: ing.Amount,
			Unit:     ing.Unit,
			Category: Categorize(ing.Name),
			Source:   normalizeSource(&RecipeRef{RecipeID: recipe.ID, RecipeName: recipe.Title}),
		})
	}
	e.items.ReplaceRecipeItems(recipe.ID, items)
	e.logger.Info("recipe ingredients materialized",
		zap.Int("recipe_id", recipe.ID),
		zap.Int("items", len(items)),
	)
	e.changed(op)
	return len(items)
}

// changed must be called with mu held after every item or cart mutation.
func (e *Engine) changed(op string) {
	e.recompute()
	e.notify(op)
}

func (e *Engine) recompute() {
	groups := Project(e.items.Items(), e.expanded, e.imageFor)
	for _, g := range groups {
		e.expanded[g.RecipeID] = g.Expanded
	}
	e.expanded.retain(groups)
	e.groups = groups
}

func (e *Engine) imageFor(recipeID int) string {
	if r, ok := e.cart.Get(recipeID); ok && r.Image != "" {
		return r.Image
	}
	return e.defaultImage
}

func (e *Engine) notify(op string) {
	if e.observer == nil {
		return
	}
	manual, fromRecipe := 0, 0
	for _, item := range e.items.Items() {
		if item.IsFromRecipe() {
			fromRecipe++
		} else {
			manual++
		}
	}
	e.observer.ObserveOperation(op)
	e.observer.ObserveState(manual, fromRecipe, len(e.cart.Recipes()))
}
