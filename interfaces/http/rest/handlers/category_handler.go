package handlers

import (
	"encoding/json"
	"net/http"

	"recipeapi/application/store"
	"recipeapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	store  *store.CatalogStore
	logger *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(store *store.CatalogStore, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		store:  store,
		logger: logger,
	}
}

// CategoryRequest represents the request body carrying a category name
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.store.ListCategories(r.Context()))
}

// CreateCategory handles POST /category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	categories, err := h.store.AddCategory(r.Context(), req.Name)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, categories)
}

// RenameCategory handles PUT /category/{name}
func (h *CategoryHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	oldName := chi.URLParam(r, "name")
	if oldName == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Category name is required")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	categories, err := h.store.RenameCategory(r.Context(), oldName, req.Name)
	if err != nil {
		h.logger.Warn("Failed to rename category",
			zap.String("from", oldName),
			zap.String("to", req.Name),
			zap.Error(err),
		)
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, categories)
}

// DeleteCategory handles DELETE /category/{name}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Category name is required")
		return
	}

	categories, err := h.store.DeleteCategory(r.Context(), name)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, categories)
}
