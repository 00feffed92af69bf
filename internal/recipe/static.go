package recipe

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of a static catalog. JSON files parse as
// well since the decoder accepts YAML's JSON subset.
type catalogFile struct {
	Recipes []Recipe `yaml:"recipes"`
}

// StaticCatalog serves a fixed list of recipes held in memory.
type StaticCatalog struct {
	recipes []Recipe
	byID    map[int]int
}

// NewStaticCatalog builds a catalog from recipes. Ids must be positive and unique.
func NewStaticCatalog(recipes []Recipe) (*StaticCatalog, error) {
	c := &StaticCatalog{byID: make(map[int]int, len(recipes))}
	for _, rec := range recipes {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("recipe %q has invalid id %d", rec.Title, rec.ID)
		}
		if _, dup := c.byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %d", rec.ID)
		}
		c.byID[rec.ID] = len(c.recipes)
		c.recipes = append(c.recipes, rec)
	}
	sort.SliceStable(c.recipes, func(i, j int) bool { return c.recipes[i].ID < c.recipes[j].ID })
	for i, rec := range c.recipes {
		c.byID[rec.ID] = i
	}
	return c, nil
}

// LoadStaticCatalog reads a catalog file.
func LoadStaticCatalog(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return NewStaticCatalog(file.Recipes)
}

// Get returns the recipe with the given id.
func (c *StaticCatalog) Get(_ context.Context, id int) (*Recipe, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec := c.recipes[i]
	return &rec, nil
}

// List returns all recipes ordered by id.
func (c *StaticCatalog) List(_ context.Context) ([]Recipe, error) {
	return append([]Recipe(nil), c.recipes...), nil
}
