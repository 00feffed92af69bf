package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const seedFile = `
recipes:
  - id: 1
    title: Mediterrane Pasta
    servings: 4
    ingredients:
      - {name: Spaghetti, amount: "500", unit: g}
  - id: 2
    title: Caprese Salat
    servings: 2
    ingredients:
      - {name: Tomaten, amount: "3", unit: ""}
`

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabasePath:  filepath.Join(dir, "test.db"),
		HTTPAddr:      "127.0.0.1:0",
		APISigningKey: "secret",
		DataDir:       dir,
	}
	a, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedFile), 0644))
	return path
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	path := writeSeedFile(t)

	n, err := a.SeedCatalog(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := a.Catalog().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mediterrane Pasta", rec.Title)

	// a second run skips what is stored
	n, err = a.SeedCatalog(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = a.SeedCatalog(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestImportRecipe(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, err := a.SeedCatalog(ctx, writeSeedFile(t))
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script type="application/ld+json">
			{"@type": "Recipe", "name": "Linsensuppe", "recipeYield": "4", "recipeIngredient": ["250 g Linsen", "1 Zwiebel"]}
		</script></head></html>`))
	}))
	defer ts.Close()

	rec, err := a.ImportRecipe(ctx, ts.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.ID)

	stored, err := a.Catalog().Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Linsensuppe", stored.Title)
	assert.Len(t, stored.Ingredients, 2)

	// imported recipes can go straight into the cart
	a.Engine().AddRecipeToCart(stored.ShoppingRecipe())
	assert.Equal(t, 2, a.Engine().AddIndividualIngredients(3))
}

func TestServe(t *testing.T) {
	t.Run("StopsOnCancel", func(t *testing.T) {
		a := newTestApp(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- a.Serve(ctx) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})

	t.Run("RequiresSigningKey", func(t *testing.T) {
		a := newTestApp(t)
		a.cfg.APISigningKey = ""
		assert.EqualError(t, a.Serve(context.Background()), "API_SIGNING_KEY environment variable not set")
	})
}
