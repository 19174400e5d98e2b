package rest

import (
	"net/http"

	"recipeapi/application/store"
	"recipeapi/infrastructure/config"
	"recipeapi/interfaces/http/rest/handlers"
	"recipeapi/interfaces/http/rest/middleware"
	"recipeapi/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	store     *store.CatalogStore
	validator *auth.TokenValidator
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	store *store.CatalogStore,
	validator *auth.TokenValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		store:     store,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// The original service allowed any origin; kept behind a flag.
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	recipeHandler := handlers.NewRecipeHandler(rt.store, rt.logger)
	categoryHandler := handlers.NewCategoryHandler(rt.store, rt.logger)
	userHandler := handlers.NewUserHandler(rt.store, rt.logger)

	// Public reads and registration
	router.Get("/recipes", recipeHandler.ListRecipes)
	router.Get("/recipe/{id}", recipeHandler.GetRecipe)
	router.Get("/categories", categoryHandler.ListCategories)
	router.Post("/register", userHandler.Register)

	// Mutating routes require a bearer token
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		r.Post("/recipe", recipeHandler.CreateRecipe)
		r.Put("/recipe/{id}", recipeHandler.ReplaceRecipe)
		r.Delete("/recipe/{id}", recipeHandler.DeleteRecipe)

		r.Post("/category", categoryHandler.CreateCategory)
		r.Put("/category/{name}", categoryHandler.RenameCategory)
		r.Delete("/category/{name}", categoryHandler.DeleteCategory)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
