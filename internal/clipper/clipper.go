package clipper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrNoRecipe is returned when a page contains nothing that looks like a recipe.
var ErrNoRecipe = errors.New("no recipe found on page")

// Store is where clipped recipes end up.
type Store interface {
	NextID(ctx context.Context) (int, error)
	Save(ctx context.Context, rec recipe.Recipe) error
}

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	store      Store
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClipper creates a new Clipper instance.
func NewClipper(store Store, logger *zap.Logger) *Clipper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clipper{
		store:      store,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

// ClipURL fetches the URL, extracts the recipe and saves it to the catalog
// under the next free id.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	rec, err := extractRecipe(doc)
	if err != nil {
		return nil, err
	}

	id, err := c.store.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate recipe id: %w", err)
	}
	rec.ID = id
	rec.SourceURL = url
	rec.UpdatedAt = c.now().UTC().Format(time.RFC3339)

	if err := c.store.Save(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	c.logger.Info("recipe clipped",
		zap.Int("recipe_id", rec.ID),
		zap.String("title", rec.Title),
		zap.Int("ingredients", len(rec.Ingredients)),
		zap.String("url", url),
	)
	return rec, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "meal-planner-clipper/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// extractRecipe prefers schema.org JSON-LD and falls back to the page markup.
func extractRecipe(doc *goquery.Document) (*recipe.Recipe, error) {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		found = findRecipeNode(data)
		return found == nil
	})
	if found != nil {
		rec := fromJSONLD(found)
		if rec.Title != "" && len(rec.Ingredients) > 0 {
			return rec, nil
		}
	}
	return fromMarkup(doc)
}

func findRecipeNode(v any) map[string]any {
	switch node := v.(type) {
	case []any:
		for _, child := range node {
			if m := findRecipeNode(child); m != nil {
				return m
			}
		}
	case map[string]any:
		if hasType(node["@type"], "Recipe") {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}
	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, x := range t {
			if s, ok := x.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func fromJSONLD(node map[string]any) *recipe.Recipe {
	rec := &recipe.Recipe{
		Title:       strings.TrimSpace(stringValue(node["name"])),
		Description: strings.TrimSpace(stringValue(node["description"])),
		Image:       imageValue(node["image"]),
		Servings:    firstInt(node["recipeYield"]),
		PrepTime:    formatDuration(stringValue(node["prepTime"])),
		CookTime:    formatDuration(stringValue(node["cookTime"])),
	}
	for _, line := range stringList(node["recipeIngredient"]) {
		if ing, ok := ParseIngredientLine(line); ok {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	}
	rec.Instructions = instructionList(node["recipeInstructions"])
	for _, kw := range strings.Split(stringValue(node["keywords"]), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			rec.Tags = append(rec.Tags, strings.ToLower(kw))
		}
	}
	return rec
}

func fromMarkup(doc *goquery.Document) (*recipe.Recipe, error) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	rec := &recipe.Recipe{Title: title}
	doc.Find(`[class*="ingredient"] li`).Each(func(_ int, s *goquery.Selection) {
		if ing, ok := ParseIngredientLine(s.Text()); ok {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	})
	if title == "" || len(rec.Ingredients) == 0 {
		return nil, ErrNoRecipe
	}
	return rec, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) > 0 {
			return stringValue(t[0])
		}
	}
	return ""
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s := stringValue(x); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func imageValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return imageValue(t[0])
		}
	case map[string]any:
		return stringValue(t["url"])
	}
	return ""
}

// instructionList flattens plain strings, HowToStep and HowToSection entries.
func instructionList(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	case []any:
		for _, x := range t {
			out = append(out, instructionList(x)...)
		}
	case map[string]any:
		if items, ok := t["itemListElement"]; ok {
			return instructionList(items)
		}
		if text := strings.TrimSpace(stringValue(t["text"])); text != "" {
			out = append(out, text)
		}
	}
	return out
}

var intPattern = regexp.MustCompile(`\d+`)

func firstInt(v any) int {
	n, _ := strconv.Atoi(intPattern.FindString(stringValue(v)))
	return n
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// formatDuration turns an ISO 8601 duration like PT1H30M into "90 min".
func formatDuration(iso string) string {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil || (m[1] == "" && m[2] == "") {
		return ""
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%d min", hours*60+minutes)
}
