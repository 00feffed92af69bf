package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath       string
	CatalogFile        string
	HTTPAddr           string
	APISigningKey      string
	LogLevel           string
	DefaultRecipeImage string
	DataDir            string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_PATH", "data/meal-planner.db")
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("API_SIGNING_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_RECIPE_IMAGE", "")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_WEBHOOK_URL", "")
	v.SetDefault("TELEGRAM_ALLOWED_USER_IDS", "")
}

// NewFromEnv creates a new Config object from environment variables.
// Nothing is required at load time; commands call Validate or
// ValidateTelegram for the values they depend on.
func NewFromEnv() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	allowed, err := parseUserIDs(v.GetString("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabasePath:           v.GetString("DATABASE_PATH"),
		CatalogFile:            v.GetString("CATALOG_FILE"),
		HTTPAddr:               v.GetString("HTTP_ADDR"),
		APISigningKey:          v.GetString("API_SIGNING_KEY"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		DefaultRecipeImage:     v.GetString("DEFAULT_RECIPE_IMAGE"),
		DataDir:                v.GetString("DATA_DIR"),
		TelegramBotToken:       v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     v.GetString("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
	}, nil
}

// Validate checks the values the HTTP server needs.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH environment variable not set")
	}
	if c.APISigningKey == "" {
		return fmt.Errorf("API_SIGNING_KEY environment variable not set")
	}
	return nil
}

// TelegramEnabled reports whether the bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// ValidateTelegram checks the bot settings. Only called when a token is set.
func (c *Config) ValidateTelegram() error {
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
