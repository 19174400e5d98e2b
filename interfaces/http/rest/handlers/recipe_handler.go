package handlers

import (
	"encoding/json"
	"net/http"

	"recipeapi/application/store"
	"recipeapi/domain/catalog"
	"recipeapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	store  *store.CatalogStore
	logger *zap.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(store *store.CatalogStore, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		store:  store,
		logger: logger,
	}
}

// RecipeRequest represents the request body for creating or replacing a
// recipe. The id is never taken from the body: create assigns a fresh one,
// replace keeps the one addressed by the URL.
type RecipeRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=200"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Categories  []string `json:"categories" validate:"omitempty,dive,max=100"`
}

func (req RecipeRequest) toRecipe() catalog.Recipe {
	return catalog.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Categories:  req.Categories,
	}
}

// ListRecipes handles GET /recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.store.ListRecipes(r.Context()))
}

// GetRecipe handles GET /recipe/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Recipe ID is required")
		return
	}

	recipe, err := h.store.GetRecipe(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, recipe)
}

// CreateRecipe handles POST /recipe
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	recipe := req.toRecipe()
	recipe.ID = uuid.New().String()

	recipes, err := h.store.AddRecipe(r.Context(), recipe)
	if err != nil {
		h.logger.Error("Failed to add recipe",
			zap.String("recipeID", recipe.ID),
			zap.Error(err),
		)
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, recipes)
}

// ReplaceRecipe handles PUT /recipe/{id}
func (h *RecipeHandler) ReplaceRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Recipe ID is required")
		return
	}

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	recipes, err := h.store.ReplaceRecipe(r.Context(), id, req.toRecipe())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, recipes)
}

// DeleteRecipe handles DELETE /recipe/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Recipe ID is required")
		return
	}

	if err := h.store.DeleteRecipe(r.Context(), id); err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
