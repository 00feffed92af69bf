package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"go.uber.org/zap"
)

// recipeDetailResponse is the recipe detail view.
type recipeDetailResponse struct {
	recipe.Recipe
	Servings      int                   `json:"servings"`
	BaseServings  int                   `json:"base_servings"`
	Ingredients   []shopping.Ingredient `json:"ingredients"`
	CartAvailable bool                  `json:"cart_available"`
	InCart        bool                  `json:"in_cart"`
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, shopping.Categories())
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.catalog.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list recipes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	servings := 0
	if raw := r.URL.Query().Get("servings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid servings")
			return
		}
		servings = n
	}

	detail, ok := s.loadDetail(w, r, servings)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, detailResponse(detail))
}

func (s *Server) toggleRecipeCart(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadDetail(w, r, 0)
	if !ok {
		return
	}
	inCart, err := detail.ToggleCart()
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"in_cart": inCart})
}

func (s *Server) removeRecipeFromCart(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadDetail(w, r, 0)
	if !ok {
		return
	}
	if err := detail.RemoveFromCart(); err != nil {
		writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRecipeToCart(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadDetail(w, r, 0)
	if !ok {
		return
	}
	if err := detail.AddToCart(); err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"in_cart": true})
}

// importRecipeIngredients puts a recipe's ingredients on the list without
// going through the cart.
func (s *Server) importRecipeIngredients(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadDetail(w, r, 0)
	if !ok {
		return
	}
	n := shopping.MustFromContext(r.Context()).AddRecipeIngredients(detail.Recipe().ShoppingRecipe())
	writeJSON(w, http.StatusOK, map[string]int{"added": n})
}

type recipeDeleter interface {
	Delete(ctx context.Context, id int) error
}

// deleteRecipe removes a recipe from a writable catalog and takes it out of
// the cart.
func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	store, ok := s.catalog.(recipeDeleter)
	if !ok {
		writeError(w, http.StatusMethodNotAllowed, "recipe catalog is read-only")
		return
	}
	detail, ok := s.loadDetail(w, r, 0)
	if !ok {
		return
	}
	id := detail.Recipe().ID
	if err := store.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete recipe", zap.Int("recipe_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	if detail.CartAvailable() {
		if err := detail.RemoveFromCart(); err != nil {
			s.logger.Warn("failed to drop deleted recipe from cart", zap.Int("recipe_id", id), zap.Error(err))
		}
	}
	s.logger.Info("recipe deleted", zap.Int("recipe_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// loadDetail builds the detail view for the {id} route parameter and writes
// the error response itself when that fails.
func (s *Server) loadDetail(w http.ResponseWriter, r *http.Request, servings int) (*recipe.Detail, bool) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	rec, err := s.catalog.Get(r.Context(), id)
	if errors.Is(err, recipe.ErrNotFound) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to load recipe", zap.Int("recipe_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load recipe")
		return nil, false
	}

	// The handle must stay a nil interface when there is no engine.
	var cart recipe.CartHandle
	if engine, ok := shopping.FromContext(r.Context()); ok {
		cart = engine
	}
	return recipe.NewDetail(*rec, cart, servings), true
}

func detailResponse(d *recipe.Detail) recipeDetailResponse {
	rec := d.Recipe()
	return recipeDetailResponse{
		Recipe:        rec,
		Servings:      d.Servings(),
		BaseServings:  rec.Servings,
		Ingredients:   d.ScaledIngredients(),
		CartAvailable: d.CartAvailable(),
		InCart:        d.InCart(),
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, recipe.ErrCartUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
