package store

import (
	"context"
	"encoding/json"
	"sync"

	"recipeapi/application/ports"
	"recipeapi/domain/catalog"
	"recipeapi/pkg/auth"
	"recipeapi/pkg/errors"

	"go.uber.org/zap"
)

// Document names backing the three collections.
const (
	RecipesDocument    = "recipe"
	CategoriesDocument = "category"
	UsersDocument      = "user"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// CatalogStore owns the three in-memory collections and keeps them
// consistent: every category reference held by a recipe names a category
// that existed in the registry at the time of the last cascade.
//
// All operations are serialized through a single RWMutex, so readers see
// either the pre- or post-mutation state, never a partial one. Each
// successful mutation writes the touched collections back to the document
// store before returning; a failed write leaves the in-memory state ahead
// of disk until the next successful write of that document.
type CatalogStore struct {
	mu         sync.RWMutex
	recipes    *catalog.RecipeCatalog
	categories *catalog.CategoryRegistry
	users      *catalog.UserDirectory

	documents ports.DocumentStore
	tokens    ports.TokenIssuer
	logger    *zap.Logger
}

// New creates a catalog store. Call Load before serving requests.
func New(documents ports.DocumentStore, tokens ports.TokenIssuer, logger *zap.Logger) *CatalogStore {
	return &CatalogStore{
		recipes:    catalog.NewRecipeCatalog(nil),
		categories: catalog.NewCategoryRegistry(nil),
		users:      catalog.NewUserDirectory(nil),
		documents:  documents,
		tokens:     tokens,
		logger:     logger,
	}
}

// Load reads and parses all three documents. Any failure is returned so the
// caller can abort startup; the store never serves a partially loaded state.
func (s *CatalogStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recipes []catalog.Recipe
	if err := s.loadDocument(ctx, RecipesDocument, &recipes); err != nil {
		return err
	}
	var categories []string
	if err := s.loadDocument(ctx, CategoriesDocument, &categories); err != nil {
		return err
	}
	var users []catalog.User
	if err := s.loadDocument(ctx, UsersDocument, &users); err != nil {
		return err
	}

	s.recipes = catalog.NewRecipeCatalog(recipes)
	s.categories = catalog.NewCategoryRegistry(categories)
	s.users = catalog.NewUserDirectory(users)

	s.logger.Info("catalog loaded",
		zap.Int("recipes", len(recipes)),
		zap.Int("categories", len(categories)),
		zap.Int("users", len(users)),
	)
	return nil
}

// ListRecipes returns all recipes in insertion order.
func (s *CatalogStore) ListRecipes(ctx context.Context) []catalog.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.List()
}

// GetRecipe returns a single recipe by id.
func (s *CatalogStore) GetRecipe(ctx context.Context, id string) (catalog.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.Get(id)
}

// AddRecipe appends a recipe and returns the updated list. The caller
// assigns the id.
func (s *CatalogStore) AddRecipe(ctx context.Context, recipe catalog.Recipe) ([]catalog.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes.Add(recipe)
	if err := s.persistRecipes(ctx); err != nil {
		return nil, err
	}
	return s.recipes.List(), nil
}

// ReplaceRecipe overwrites the recipe with the given id wholesale and
// returns the updated list.
func (s *CatalogStore) ReplaceRecipe(ctx context.Context, id string, recipe catalog.Recipe) ([]catalog.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recipes.Replace(id, recipe); err != nil {
		return nil, err
	}
	if err := s.persistRecipes(ctx); err != nil {
		return nil, err
	}
	return s.recipes.List(), nil
}

// DeleteRecipe removes the recipe with the given id.
func (s *CatalogStore) DeleteRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recipes.Remove(id); err != nil {
		return err
	}
	return s.persistRecipes(ctx)
}

// ListCategories returns the category names in insertion order.
func (s *CatalogStore) ListCategories(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.List()
}

// AddCategory appends a category name and returns the updated list.
func (s *CatalogStore) AddCategory(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.Add(name); err != nil {
		return nil, err
	}
	if err := s.persistCategories(ctx); err != nil {
		return nil, err
	}
	return s.categories.List(), nil
}

// RenameCategory renames a category and cascades the rename into every
// recipe referencing it. If the registry step fails nothing is touched.
func (s *CatalogStore) RenameCategory(ctx context.Context, oldName, newName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.Rename(oldName, newName); err != nil {
		return nil, err
	}
	s.recipes.RenameCategoryReferences(oldName, newName)

	if err := s.persistCategories(ctx); err != nil {
		return nil, err
	}
	if err := s.persistRecipes(ctx); err != nil {
		return nil, err
	}
	return s.categories.List(), nil
}

// DeleteCategory removes a category and strips it from every recipe that
// referenced it. If the registry step fails nothing is touched.
func (s *CatalogStore) DeleteCategory(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.Delete(name); err != nil {
		return nil, err
	}
	s.recipes.RemoveCategoryReferences(name)

	if err := s.persistCategories(ctx); err != nil {
		return nil, err
	}
	if err := s.persistRecipes(ctx); err != nil {
		return nil, err
	}
	return s.categories.List(), nil
}

// RegisterUser creates an account and returns a freshly issued session
// token. There is no login operation: registration is the only point where
// tokens are minted.
func (s *CatalogStore) RegisterUser(ctx context.Context, userName, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(password) < MinPasswordLength {
		return "", errors.NewValidationError("password must be at least 6 characters")
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return "", errors.NewInternalError("failed to hash password").WithCause(err)
	}

	if err := s.users.Register(catalog.User{
		UserName:     userName,
		PasswordHash: hash,
		PasswordSalt: salt,
	}); err != nil {
		return "", err
	}
	if err := s.persistUsers(ctx); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(userName)
	if err != nil {
		return "", errors.NewInternalError("failed to issue session token").WithCause(err)
	}
	return token, nil
}

// VerifyUserPassword checks a plaintext password against the stored
// credentials. Kept for a future login flow; no route consumes it yet.
func (s *CatalogStore) VerifyUserPassword(ctx context.Context, userName, password string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, err := s.users.Lookup(userName)
	if err != nil {
		return false, err
	}
	return auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt), nil
}

func (s *CatalogStore) loadDocument(ctx context.Context, name string, out interface{}) error {
	data, err := s.documents.Load(ctx, name)
	if err != nil {
		return errors.NewStorageError("load "+name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewStorageError("parse "+name, err)
	}
	return nil
}

func (s *CatalogStore) persistRecipes(ctx context.Context) error {
	return s.saveDocument(ctx, RecipesDocument, s.recipes.List())
}

func (s *CatalogStore) persistCategories(ctx context.Context) error {
	return s.saveDocument(ctx, CategoriesDocument, s.categories.List())
}

func (s *CatalogStore) persistUsers(ctx context.Context) error {
	return s.saveDocument(ctx, UsersDocument, s.users.List())
}

func (s *CatalogStore) saveDocument(ctx context.Context, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewStorageError("encode "+name, err)
	}
	if err := s.documents.Save(ctx, name, data); err != nil {
		s.logger.Error("failed to persist document",
			zap.String("document", name),
			zap.Error(err),
		)
		return errors.NewStorageError("save "+name, err)
	}
	return nil
}
