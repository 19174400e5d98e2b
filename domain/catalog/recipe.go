package catalog

// Recipe is a catalog entry. The store only inspects ID and Categories;
// the remaining fields are descriptive payload carried verbatim.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Categories  []string `json:"categories"`
}

// Clone returns a deep copy so callers cannot mutate stored state through
// shared slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Steps = append([]string(nil), r.Steps...)
	c.Categories = append([]string(nil), r.Categories...)
	return c
}
