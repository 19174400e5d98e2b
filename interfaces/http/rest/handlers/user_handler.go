package handlers

import (
	"encoding/json"
	"net/http"

	"recipeapi/application/store"
	"recipeapi/pkg/utils"

	"go.uber.org/zap"
)

// UserHandler handles user registration
type UserHandler struct {
	store  *store.CatalogStore
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(store *store.CatalogStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse carries the session token issued at registration
type RegisterResponse struct {
	Token string `json:"token"`
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.store.RegisterUser(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.logger.Warn("Registration rejected",
			zap.String("userName", req.UserName),
			zap.Error(err),
		)
		respondStoreError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, RegisterResponse{Token: token})
}
