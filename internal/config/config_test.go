package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("HTTP_ADDR", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/meal-planner.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("Expected HTTPAddr ':8080', got '%s'", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
		}
		if cfg.TelegramEnabled() {
			t.Error("Expected telegram to be disabled without a token")
		}
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/shop.db")
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("API_SIGNING_KEY", "secret")
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "12, 34")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/shop.db" {
			t.Errorf("Expected DatabasePath '/tmp/shop.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.HTTPAddr != ":9090" {
			t.Errorf("Expected HTTPAddr ':9090', got '%s'", cfg.HTTPAddr)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[1] != 34 {
			t.Errorf("Expected allowed ids [12 34], got %v", cfg.TelegramAllowedUserIDs)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected valid config, got %v", err)
		}
		if err := cfg.ValidateTelegram(); err != nil {
			t.Errorf("Expected valid telegram config, got %v", err)
		}
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "12,abc")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for an invalid user id, got nil")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("MissingSigningKey", func(t *testing.T) {
		cfg := &Config{DatabasePath: "data/test.db"}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected an error for missing API_SIGNING_KEY, got nil")
		}
		expectedError := "API_SIGNING_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingDatabasePath", func(t *testing.T) {
		cfg := &Config{APISigningKey: "secret"}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected an error for missing DATABASE_PATH, got nil")
		}
		expectedError := "DATABASE_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingAllowList", func(t *testing.T) {
		cfg := &Config{TelegramBotToken: "token", TelegramWebhookURL: "https://bot.test"}
		err := cfg.ValidateTelegram()
		if err == nil {
			t.Fatal("Expected an error for missing allow list, got nil")
		}
		expectedError := "TELEGRAM_ALLOWED_USER_IDS environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
