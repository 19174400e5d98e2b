package di

import (
	"context"

	"recipeapi/application/ports"
	"recipeapi/application/store"
	"recipeapi/infrastructure/config"
	"recipeapi/infrastructure/persistence/jsonfile"
	"recipeapi/pkg/auth"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Documents      ports.DocumentStore
	Store          *store.CatalogStore
	TokenIssuer    *auth.TokenIssuer
	TokenValidator *auth.TokenValidator
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDocumentStore creates the JSON-file document store
func ProvideDocumentStore(cfg *config.Config, logger *zap.Logger) ports.DocumentStore {
	return jsonfile.NewDocumentStore(cfg.DataDir, logger)
}

// ProvideTokenIssuer creates the session-token issuer
func ProvideTokenIssuer(cfg *config.Config) (*auth.TokenIssuer, error) {
	return auth.NewTokenIssuer(signingSecret(cfg), cfg.JWTIssuer, cfg.TokenTTL)
}

// ProvideTokenValidator creates the session-token validator
func ProvideTokenValidator(cfg *config.Config) (*auth.TokenValidator, error) {
	return auth.NewTokenValidator(signingSecret(cfg), cfg.JWTIssuer, cfg.AllowExpiredTokens)
}

// ProvideCatalogStore creates the catalog store and loads the three
// documents. A load failure aborts initialization: the service never starts
// with a partially loaded catalog.
func ProvideCatalogStore(
	ctx context.Context,
	documents ports.DocumentStore,
	tokens *auth.TokenIssuer,
	logger *zap.Logger,
) (*store.CatalogStore, error) {
	s := store.New(documents, tokens, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// signingSecret falls back to a fixed development secret outside production;
// config validation rejects an empty secret in production.
func signingSecret(cfg *config.Config) string {
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		return "development-secret-change-in-production"
	}
	return cfg.JWTSecret
}
