// Package api serves the shopping list, cart and recipe views as a JSON API.
package api

import (
	"context"
	"net/http"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/metrics"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators of the API server. Engine is optional: without
// it the shopping routes answer 503 and recipe details report the cart as
// unavailable.
type Deps struct {
	Engine   *shopping.Engine
	Catalog  recipe.Catalog
	Signer   *auth.Signer
	Gatherer prometheus.Gatherer
	DataDir  string
	Logger   *zap.Logger
}

// Server is the HTTP API.
type Server struct {
	engine   *shopping.Engine
	catalog  recipe.Catalog
	signer   *auth.Signer
	gatherer prometheus.Gatherer
	dataDir  string
	logger   *zap.Logger
	validate *validator.Validate
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates the API server listening on addr.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		engine:   deps.Engine,
		catalog:  deps.Catalog,
		signer:   deps.Signer,
		gatherer: gatherer,
		dataDir:  deps.DataDir,
		logger:   logger,
		validate: newValidator(),
	}
	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, e.g. for mounting extra routes or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Mount attaches an extra handler outside the authenticated API, such as the
// Telegram webhook.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate(s.signer))

		r.Get("/categories", s.listCategories)

		r.Route("/recipes", func(r chi.Router) {
			r.Use(s.optionalEngine)
			r.Get("/", s.listRecipes)
			r.Get("/{id}", s.getRecipe)
			r.Delete("/{id}", s.deleteRecipe)
			r.Post("/{id}/cart", s.toggleRecipeCart)
			r.Put("/{id}/cart", s.addRecipeToCart)
			r.Delete("/{id}/cart", s.removeRecipeFromCart)
			r.With(s.requireEngine).Post("/{id}/ingredients", s.importRecipeIngredients)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireEngine)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", s.listItems)
				r.Post("/", s.createItem)
				r.Get("/summary", s.itemSummary)
				r.Post("/clear-checked", s.clearChecked)
				r.Patch("/{id}", s.updateItem)
				r.Post("/{id}/toggle", s.toggleItem)
				r.Delete("/{id}", s.deleteItem)
			})

			r.Get("/groups", s.listGroups)
			r.Post("/groups/{recipeID}/toggle", s.toggleGroup)
			r.Delete("/groups/{recipeID}/items", s.deleteGroupItems)

			r.Get("/cart", s.listCart)
			r.Post("/cart/{recipeID}/ingredients", s.materializeIngredients)
		})
	})

	return r
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.GetSysHealth(s.dataDir))
}
