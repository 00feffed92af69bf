package app

import (
	"context"
	"fmt"

	"meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// SeedCatalog copies the recipes of a YAML or JSON catalog file into the
// database. Recipes whose id is already stored are left untouched. It returns
// the number of recipes written.
func (a *App) SeedCatalog(ctx context.Context, path string) (int, error) {
	file, err := recipe.LoadStaticCatalog(path)
	if err != nil {
		return 0, err
	}
	fileRecipes, err := file.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipes from %s: %w", path, err)
	}

	existing, err := a.recipeRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing recipes in DB: %w", err)
	}
	stored := make(map[int]struct{}, len(existing))
	for _, rec := range existing {
		stored[rec.ID] = struct{}{}
	}

	a.logger.Info("seeding recipe catalog",
		zap.String("path", path),
		zap.Int("in_file", len(fileRecipes)),
		zap.Int("in_db", len(stored)),
	)

	seeded := 0
	for _, rec := range fileRecipes {
		if _, ok := stored[rec.ID]; ok {
			a.logger.Debug("recipe already exists, skipping", zap.Int("recipe_id", rec.ID), zap.String("title", rec.Title))
			continue
		}
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			return seeded, fmt.Errorf("failed to save recipe %d: %w", rec.ID, err)
		}
		seeded++
	}

	total, err := a.recipeRepo.Count(ctx)
	if err != nil {
		return seeded, err
	}
	a.logger.Info("seeding complete", zap.Int("seeded", seeded), zap.Int("total", total))
	return seeded, nil
}
