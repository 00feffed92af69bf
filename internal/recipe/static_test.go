package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStaticCatalog(t *testing.T) {
	ctx := context.Background()

	c, err := LoadStaticCatalog(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	t.Run("List is ordered by id", func(t *testing.T) {
		recipes, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, 1, recipes[0].ID)
		assert.Equal(t, "Caprese Salat", recipes[1].Title)
	})

	t.Run("Get", func(t *testing.T) {
		rec, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Mediterrane Pasta", rec.Title)
		assert.Equal(t, 4, rec.Servings)
		require.Len(t, rec.Ingredients, 4)
		assert.Equal(t, "Zehen", rec.Ingredients[2].Unit)
		assert.Equal(t, []string{"pasta", "vegetarisch"}, rec.Tags)

		salad, err := c.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 320, salad.Nutrition.Calories)
	})

	t.Run("Get-NotFound", func(t *testing.T) {
		_, err := c.Get(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLoadStaticCatalog_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"recipes": [{"id": 7, "title": "Toast", "servings": 1, "ingredients": [{"name": "Brot", "amount": "2", "unit": "Scheiben"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadStaticCatalog(path)
	require.NoError(t, err)

	rec, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Scheiben", rec.Ingredients[0].Unit)
}

func TestNewStaticCatalog_Invalid(t *testing.T) {
	_, err := NewStaticCatalog([]Recipe{{ID: 1}, {ID: 1}})
	assert.EqualError(t, err, "duplicate recipe id 1")

	_, err = NewStaticCatalog([]Recipe{{ID: 0, Title: "Ohne ID"}})
	assert.Error(t, err)

	_, err = LoadStaticCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
