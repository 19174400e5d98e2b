package handlers

import (
	"encoding/json"
	"net/http"

	"recipeapi/pkg/errors"

	"go.uber.org/zap"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondStoreError maps a store error to its HTTP status. Unknown error
// values fall back to 500.
func respondStoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		respondError(w, logger, appErr.HTTPStatus, appErr.Message)
		return
	}
	respondError(w, logger, http.StatusInternalServerError, "Internal server error")
}
