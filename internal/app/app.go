package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/auth"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/metrics"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
	"meal-planner/internal/telegram"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App holds the application's dependencies.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	db         *database.DB
	recipeRepo *recipe.Repository
	clipper    *clipper.Clipper

	registry *prometheus.Registry
	engine   *shopping.Engine
}

// New opens the database and builds the shopping engine. The engine lives as
// long as the App; its state is not persisted.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	recipeRepo := recipe.NewRepository(db.SQL, logger.Named("recipes"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engineOpts := []shopping.Option{
		shopping.WithLogger(logger.Named("shopping")),
		shopping.WithObserver(metrics.NewRecorder(registry)),
	}
	if cfg.DefaultRecipeImage != "" {
		engineOpts = append(engineOpts, shopping.WithDefaultImage(cfg.DefaultRecipeImage))
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		recipeRepo: recipeRepo,
		clipper:    clipper.NewClipper(recipeRepo, logger.Named("clipper")),
		registry:   registry,
		engine:     shopping.NewEngine(engineOpts...),
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

// Engine returns the process-wide shopping engine.
func (a *App) Engine() *shopping.Engine {
	return a.engine
}

// Catalog returns the recipe catalog.
func (a *App) Catalog() recipe.Catalog {
	return a.recipeRepo
}

// Serve runs the HTTP API, and the Telegram webhook when configured, until
// ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	signer, err := auth.NewSigner(a.cfg.APISigningKey)
	if err != nil {
		return err
	}

	if a.cfg.CatalogFile != "" {
		if _, err := a.SeedCatalog(ctx, a.cfg.CatalogFile); err != nil {
			return err
		}
	}

	server := api.NewServer(a.cfg.HTTPAddr, api.Deps{
		Engine:   a.engine,
		Catalog:  a.recipeRepo,
		Signer:   signer,
		Gatherer: a.registry,
		DataDir:  a.dataDir(),
		Logger:   a.logger.Named("api"),
	})

	if a.cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(a.cfg, a.engine, a.recipeRepo, a.logger.Named("telegram"))
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram Bot: %w", err)
		}
		server.Mount("/webhook", bot.WebhookHandler())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info("server exiting")
	return nil
}

// ImportRecipe clips a recipe page into the catalog.
func (a *App) ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	rec, err := a.clipper.ClipURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", url, err)
	}
	return rec, nil
}

func (a *App) dataDir() string {
	if a.cfg.DataDir != "" {
		return a.cfg.DataDir
	}
	return filepath.Dir(a.cfg.DatabasePath)
}
