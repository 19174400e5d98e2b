package catalog

import (
	"recipeapi/pkg/errors"
)

// CategoryRegistry holds the ordered set of category names. Name comparison
// is exact string match: no trimming, no case folding.
//
// The registry is not safe for concurrent use; the catalog store serializes
// access.
type CategoryRegistry struct {
	names []string
}

// NewCategoryRegistry creates a registry seeded with the loaded names.
func NewCategoryRegistry(names []string) *CategoryRegistry {
	return &CategoryRegistry{names: append([]string(nil), names...)}
}

// List returns the category names in insertion order.
func (r *CategoryRegistry) List() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Contains reports whether a name is registered.
func (r *CategoryRegistry) Contains(name string) bool {
	return r.indexOf(name) != -1
}

// Add appends a new category name.
func (r *CategoryRegistry) Add(name string) error {
	if name == "" {
		return errors.NewValidationError("category name must not be empty")
	}
	if r.Contains(name) {
		return errors.NewConflictError("category already exists")
	}
	r.names = append(r.names, name)
	return nil
}

// Rename replaces oldName with newName in place, preserving its position.
// Renaming a category to its current name is rejected the same way as a
// collision with another category.
func (r *CategoryRegistry) Rename(oldName, newName string) error {
	idx := r.indexOf(oldName)
	if idx == -1 {
		return errors.NewNotFoundError("category")
	}
	if newName == "" {
		return errors.NewValidationError("category name must not be empty")
	}
	if r.Contains(newName) {
		return errors.NewConflictError("category already exists")
	}
	r.names[idx] = newName
	return nil
}

// Delete removes a category name, preserving the order of the rest.
func (r *CategoryRegistry) Delete(name string) error {
	idx := r.indexOf(name)
	if idx == -1 {
		return errors.NewNotFoundError("category")
	}
	r.names = append(r.names[:idx], r.names[idx+1:]...)
	return nil
}

func (r *CategoryRegistry) indexOf(name string) int {
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}
