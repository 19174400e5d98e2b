package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"recipeapi/domain/catalog"
	"recipeapi/pkg/auth"
	"recipeapi/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memDocuments is an in-memory document store recording every save.
type memDocuments struct {
	docs    map[string][]byte
	saves   []string
	saveErr error
	loadErr error
}

func newMemDocuments() *memDocuments {
	return &memDocuments{
		docs: map[string][]byte{
			RecipesDocument:    []byte(`[]`),
			CategoriesDocument: []byte(`[]`),
			UsersDocument:      []byte(`[]`),
		},
	}
}

func (m *memDocuments) Load(ctx context.Context, name string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("no such document: %s", name)
	}
	return data, nil
}

func (m *memDocuments) Save(ctx context.Context, name string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.docs[name] = append([]byte(nil), data...)
	m.saves = append(m.saves, name)
	return nil
}

func newTestStore(t *testing.T, docs *memDocuments) *CatalogStore {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", "recipeapi", 5*time.Minute)
	require.NoError(t, err)

	s := New(docs, issuer, zap.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestCatalogStore_Load_FailFast(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", "recipeapi", 5*time.Minute)
	require.NoError(t, err)

	t.Run("read failure", func(t *testing.T) {
		docs := newMemDocuments()
		docs.loadErr = fmt.Errorf("disk gone")

		s := New(docs, issuer, zap.NewNop())
		err := s.Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsStorage(err))
	})

	t.Run("parse failure", func(t *testing.T) {
		docs := newMemDocuments()
		docs.docs[CategoriesDocument] = []byte(`{not json`)

		s := New(docs, issuer, zap.NewNop())
		err := s.Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsStorage(err))
	})
}

func TestCatalogStore_Load_SeedsCollections(t *testing.T) {
	docs := newMemDocuments()
	docs.docs[RecipesDocument] = []byte(`[{"id":"r1","name":"Tiramisu","categories":["Dessert"]}]`)
	docs.docs[CategoriesDocument] = []byte(`["Dessert"]`)

	s := newTestStore(t, docs)

	recipes := s.ListRecipes(context.Background())
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tiramisu", recipes[0].Name)
	assert.Equal(t, []string{"Dessert"}, s.ListCategories(context.Background()))
}

func TestCatalogStore_AddRecipe(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	recipe := catalog.Recipe{ID: "r1", Name: "Tiramisu", Categories: []string{"Dessert"}}
	list, err := s.AddRecipe(ctx, recipe)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, recipe, list[0].Clone())

	t.Run("persists the recipe document", func(t *testing.T) {
		assert.Equal(t, []string{RecipesDocument}, docs.saves)

		var persisted []catalog.Recipe
		require.NoError(t, json.Unmarshal(docs.docs[RecipesDocument], &persisted))
		require.Len(t, persisted, 1)
		assert.Equal(t, "r1", persisted[0].ID)
	})

	t.Run("listed exactly once", func(t *testing.T) {
		count := 0
		for _, r := range s.ListRecipes(ctx) {
			if r.ID == "r1" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestCatalogStore_DeleteRecipe_NotFound(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	_, err := s.AddRecipe(ctx, catalog.Recipe{ID: "r1"})
	require.NoError(t, err)
	docs.saves = nil

	err = s.DeleteRecipe(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Len(t, s.ListRecipes(ctx), 1, "catalog unchanged")
	assert.Empty(t, docs.saves, "nothing persisted")
}

func TestCatalogStore_RenameCategory_Cascades(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Dessert")
	require.NoError(t, err)
	_, err = s.AddCategory(ctx, "Quick")
	require.NoError(t, err)
	_, err = s.AddRecipe(ctx, catalog.Recipe{ID: "r1", Categories: []string{"Dessert", "Quick", "Dessert"}})
	require.NoError(t, err)
	_, err = s.AddRecipe(ctx, catalog.Recipe{ID: "r2", Categories: []string{"Quick"}})
	require.NoError(t, err)
	docs.saves = nil

	categories, err := s.RenameCategory(ctx, "Dessert", "Desserts")
	require.NoError(t, err)
	assert.Equal(t, []string{"Desserts", "Quick"}, categories)

	recipes := s.ListRecipes(ctx)
	assert.Equal(t, []string{"Desserts", "Quick", "Desserts"}, recipes[0].Categories,
		"order and duplicates preserved")
	assert.Equal(t, []string{"Quick"}, recipes[1].Categories)

	t.Run("persists both documents", func(t *testing.T) {
		assert.Equal(t, []string{CategoriesDocument, RecipesDocument}, docs.saves)
	})
}

func TestCatalogStore_RenameCategory_FailedRegistryStepTouchesNothing(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Dessert")
	require.NoError(t, err)
	_, err = s.AddRecipe(ctx, catalog.Recipe{ID: "r1", Categories: []string{"Dessert"}})
	require.NoError(t, err)
	docs.saves = nil

	_, err = s.RenameCategory(ctx, "Soup", "Soups")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	assert.Equal(t, []string{"Dessert"}, s.ListCategories(ctx))
	assert.Equal(t, []string{"Dessert"}, s.ListRecipes(ctx)[0].Categories)
	assert.Empty(t, docs.saves, "no persistence on a failed cascade")
}

func TestCatalogStore_DeleteCategory_Cascades(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Dessert")
	require.NoError(t, err)
	_, err = s.AddCategory(ctx, "Quick")
	require.NoError(t, err)
	_, err = s.AddRecipe(ctx, catalog.Recipe{ID: "r1", Categories: []string{"Dessert", "Quick", "Dessert"}})
	require.NoError(t, err)
	docs.saves = nil

	categories, err := s.DeleteCategory(ctx, "Dessert")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick"}, categories)
	assert.Equal(t, []string{"Quick"}, s.ListRecipes(ctx)[0].Categories,
		"only the deleted category stripped, order preserved")
	assert.Equal(t, []string{CategoriesDocument, RecipesDocument}, docs.saves)
}

func TestCatalogStore_AddCategory_Duplicate(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Dessert")
	require.NoError(t, err)
	docs.saves = nil

	_, err = s.AddCategory(ctx, "Dessert")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Equal(t, []string{"Dessert"}, s.ListCategories(ctx))
	assert.Empty(t, docs.saves)
}

func TestCatalogStore_RegisterUser(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	token, err := s.RegisterUser(ctx, "chef1", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("token verifies against the shared secret", func(t *testing.T) {
		validator, err := auth.NewTokenValidator("test-secret", "recipeapi", false)
		require.NoError(t, err)
		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "chef1", claims.UserName)
	})

	t.Run("plaintext is never stored", func(t *testing.T) {
		var users []catalog.User
		require.NoError(t, json.Unmarshal(docs.docs[UsersDocument], &users))
		require.Len(t, users, 1)
		assert.NotContains(t, string(docs.docs[UsersDocument]), "secret1")
		assert.NotEmpty(t, users[0].PasswordHash)
		assert.NotEmpty(t, users[0].PasswordSalt)
	})

	t.Run("stored credentials verify", func(t *testing.T) {
		ok, err := s.VerifyUserPassword(ctx, "chef1", "secret1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.VerifyUserPassword(ctx, "chef1", "wrong-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("weak password", func(t *testing.T) {
		docs.saves = nil
		_, err := s.RegisterUser(ctx, "chef2", "12345")
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.Empty(t, docs.saves, "no user persisted, no token issued")
	})

	t.Run("taken user name", func(t *testing.T) {
		_, err := s.RegisterUser(ctx, "chef1", "secret2")
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("empty user name", func(t *testing.T) {
		_, err := s.RegisterUser(ctx, "", "secret2")
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})
}

func TestCatalogStore_PersistenceFailureSurfacesAsStorageError(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	docs.saveErr = fmt.Errorf("disk full")

	_, err := s.AddRecipe(ctx, catalog.Recipe{ID: "r1"})
	require.Error(t, err)
	assert.True(t, errors.IsStorage(err))

	// No rollback: the in-memory state is ahead of disk until the next
	// successful write of the same document.
	assert.Len(t, s.ListRecipes(ctx), 1)
}

func TestCatalogStore_EndToEndScenario(t *testing.T) {
	docs := newMemDocuments()
	s := newTestStore(t, docs)
	ctx := context.Background()

	token, err := s.RegisterUser(ctx, "chef1", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = s.AddRecipe(ctx, catalog.Recipe{ID: "R1", Categories: []string{"Dessert"}})
	require.NoError(t, err)
	require.Len(t, s.ListRecipes(ctx), 1)

	categories, err := s.AddCategory(ctx, "Dessert")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dessert"}, categories)

	categories, err = s.RenameCategory(ctx, "Dessert", "Sweets")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sweets"}, categories)
	assert.Equal(t, []string{"Sweets"}, s.ListRecipes(ctx)[0].Categories)

	categories, err = s.DeleteCategory(ctx, "Sweets")
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Empty(t, s.ListRecipes(ctx)[0].Categories)
}
