package catalog

import (
	"recipeapi/pkg/errors"
)

// RecipeCatalog holds the recipe collection in insertion order.
//
// Category references on recipes are deliberately not validated against the
// registry at write time: a recipe may cite a category that does not exist
// yet. Consistency is maintained by the rename/delete cascades.
type RecipeCatalog struct {
	recipes []Recipe
}

// NewRecipeCatalog creates a catalog seeded with the loaded recipes.
func NewRecipeCatalog(recipes []Recipe) *RecipeCatalog {
	c := &RecipeCatalog{recipes: make([]Recipe, 0, len(recipes))}
	for _, r := range recipes {
		c.recipes = append(c.recipes, r.Clone())
	}
	return c
}

// List returns all recipes in insertion order.
func (c *RecipeCatalog) List() []Recipe {
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r.Clone())
	}
	return out
}

// Get returns the recipe with the given id.
func (c *RecipeCatalog) Get(id string) (Recipe, error) {
	idx := c.indexOf(id)
	if idx == -1 {
		return Recipe{}, errors.NewNotFoundError("recipe")
	}
	return c.recipes[idx].Clone(), nil
}

// Add appends a recipe. The caller assigns the id before adding.
func (c *RecipeCatalog) Add(recipe Recipe) {
	c.recipes = append(c.recipes, recipe.Clone())
}

// Replace overwrites the recipe at the position held by id. The stored id
// stays the one addressed, regardless of the id on the replacement.
func (c *RecipeCatalog) Replace(id string, recipe Recipe) error {
	idx := c.indexOf(id)
	if idx == -1 {
		return errors.NewNotFoundError("recipe")
	}
	replacement := recipe.Clone()
	replacement.ID = id
	c.recipes[idx] = replacement
	return nil
}

// Remove deletes the recipe with the given id.
func (c *RecipeCatalog) Remove(id string) error {
	idx := c.indexOf(id)
	if idx == -1 {
		return errors.NewNotFoundError("recipe")
	}
	c.recipes = append(c.recipes[:idx], c.recipes[idx+1:]...)
	return nil
}

// RenameCategoryReferences rewrites every occurrence of oldName in every
// recipe's category list to newName, preserving positions and duplicates.
func (c *RecipeCatalog) RenameCategoryReferences(oldName, newName string) {
	for i := range c.recipes {
		for j, cat := range c.recipes[i].Categories {
			if cat == oldName {
				c.recipes[i].Categories[j] = newName
			}
		}
	}
}

// RemoveCategoryReferences strips every occurrence of name from every
// recipe's category list, preserving the relative order of the rest.
func (c *RecipeCatalog) RemoveCategoryReferences(name string) {
	for i := range c.recipes {
		cats := c.recipes[i].Categories
		kept := cats[:0]
		for _, cat := range cats {
			if cat != name {
				kept = append(kept, cat)
			}
		}
		c.recipes[i].Categories = kept
	}
}

func (c *RecipeCatalog) indexOf(id string) int {
	for i, r := range c.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
