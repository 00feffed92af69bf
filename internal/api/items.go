package api

import (
	"net/http"
	"strings"

	"meal-planner/internal/shopping"

	"github.com/go-chi/chi/v5"
)

// itemRequest is the payload of the add-item dialog.
type itemRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Quantity string `json:"quantity" validate:"required,max=30"`
	Unit     string `json:"unit" validate:"max=30"`
	Category string `json:"category" validate:"omitempty,category"`
}

// itemPatch is the payload of the edit-item dialog. Absent fields stay as they are.
type itemPatch struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
	Category *string `json:"category"`
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	engine := shopping.MustFromContext(r.Context())

	filter := shopping.ItemFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, ok := shopping.ParseCategory(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		filter.Category = c
	}

	items := engine.Filter(filter)
	if items == nil {
		items = []shopping.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) itemSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, shopping.MustFromContext(r.Context()).Summary())
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	req.Unit = strings.TrimSpace(req.Unit)
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	in := shopping.ItemInput{Name: req.Name, Quantity: req.Quantity, Unit: req.Unit}
	if req.Category != "" {
		in.Category, _ = shopping.ParseCategory(req.Category)
	}
	item := shopping.MustFromContext(r.Context()).AddItem(in)
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var req itemPatch
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var upd shopping.ItemUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		upd.Name = &name
	}
	if req.Quantity != nil {
		qty := strings.TrimSpace(*req.Quantity)
		if qty == "" {
			writeError(w, http.StatusBadRequest, "quantity is required")
			return
		}
		upd.Quantity = &qty
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		upd.Unit = &unit
	}
	if req.Category != nil {
		c, ok := shopping.ParseCategory(*req.Category)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		upd.Category = &c
	}

	engine := shopping.MustFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !engine.EditItem(id, upd) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	item, _ := engine.Item(id)
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) toggleItem(w http.ResponseWriter, r *http.Request) {
	engine := shopping.MustFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !engine.ToggleItem(id) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	item, _ := engine.Item(id)
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	shopping.MustFromContext(r.Context()).DeleteItem(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearChecked(w http.ResponseWriter, r *http.Request) {
	n := shopping.MustFromContext(r.Context()).ClearCheckedItems()
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups := shopping.MustFromContext(r.Context()).RecipeGroups()
	if groups == nil {
		groups = []shopping.RecipeGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) toggleGroup(w http.ResponseWriter, r *http.Request) {
	recipeID, err := intParam(r, "recipeID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	engine := shopping.MustFromContext(r.Context())
	if !engine.ToggleRecipeGroup(recipeID) {
		writeError(w, http.StatusNotFound, "recipe group not found")
		return
	}
	for _, g := range engine.RecipeGroups() {
		if g.RecipeID == recipeID {
			writeJSON(w, http.StatusOK, g)
			return
		}
	}
	writeError(w, http.StatusNotFound, "recipe group not found")
}

func (s *Server) deleteGroupItems(w http.ResponseWriter, r *http.Request) {
	recipeID, err := intParam(r, "recipeID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := shopping.MustFromContext(r.Context()).DeleteRecipeItems(recipeID)
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (s *Server) listCart(w http.ResponseWriter, r *http.Request) {
	recipes := shopping.MustFromContext(r.Context()).ShoppingRecipes()
	if recipes == nil {
		recipes = []shopping.ShoppingRecipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) materializeIngredients(w http.ResponseWriter, r *http.Request) {
	recipeID, err := intParam(r, "recipeID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	engine := shopping.MustFromContext(r.Context())
	if !engine.InCart(recipeID) {
		writeError(w, http.StatusNotFound, "recipe is not in the cart")
		return
	}
	n := engine.AddIndividualIngredients(recipeID)
	writeJSON(w, http.StatusOK, map[string]int{"added": n})
}
