package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against a real database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test. Current GO_ENV=%q.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// SetupTestDB opens an in-memory SQLite database with all models migrated and
// installs it as the shared handle.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Artisan{}, &models.Booking{}, &models.Payment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// TestConfig returns a configuration suitable for tests and installs it as the
// shared instance.
func TestConfig() *config.Config {
	cfg := &config.Config{
		DatabaseURL:   "sqlite::memory:",
		Port:          "8080",
		GoEnv:         "test",
		JWTSecret:     "test-jwt-secret",
		WebhookSecret: "test-webhook-secret",
		FrontendURL:   "http://localhost:19006",
	}
	config.SetConfig(cfg)
	return cfg
}
