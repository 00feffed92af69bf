package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/auth"
	"meal-planner/internal/config"
	"meal-planner/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg      *config.Config
	logger   *zap.Logger
	tokenTTL time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "meal-planner",
	Short: "Shopping list and recipe cart service",
	Long: `meal-planner keeps a shopping list that combines hand-written items with
ingredients taken from recipes in a cart.

Configuration is read from the environment (DATABASE_PATH, HTTP_ADDR,
API_SIGNING_KEY, TELEGRAM_BOT_TOKEN, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger = logging.New(cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when configured, the Telegram webhook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withApp(func(a *app.App) error {
			return a.Serve(ctx)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load recipes from a YAML or JSON catalog file into the database",
	Long: `Copies recipes from a catalog file into the database. Recipes whose id
is already stored are skipped. Without an argument CATALOG_FILE is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CatalogFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("CATALOG_FILE environment variable not set")
		}
		return withApp(func(a *app.App) error {
			n, err := a.SeedCatalog(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d recipe(s) from %s.\n", n, path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a recipe page into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			rec, err := a.ImportRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as recipe %d (%d ingredients).\n", rec.Title, rec.ID, len(rec.Ingredients))
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a bearer token for the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.APISigningKey == "" {
			return fmt.Errorf("API_SIGNING_KEY environment variable not set")
		}
		signer, err := auth.NewSigner(cfg.APISigningKey)
		if err != nil {
			return err
		}
		token, err := signer.Issue(args[0], tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func withApp(fn func(a *app.App) error) error {
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.DefaultTTL, "token lifetime")
	rootCmd.AddCommand(serveCmd, seedCmd, importCmd, tokenCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
