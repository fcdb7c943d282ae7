package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory sqlite database with a simplified schema
// mirroring the postgres one. jsonb, text[] and vector columns become TEXT;
// the custom types round-trip through their Valuer/Scanner implementations.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);
	CREATE TABLE user_preferences (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT,
		profile_emoji TEXT,
		kitchen_equipment TEXT,
		preferred_cuisines TEXT,
		cooking_experience TEXT,
		protein_preferences TEXT,
		dietary_restrictions TEXT,
		additional_context TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	CREATE TABLE saved_recipes (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		user_id TEXT NOT NULL,
		recipe_name TEXT NOT NULL,
		cooking_time TEXT,
		serves TEXT,
		ingredients TEXT NOT NULL DEFAULT '[]',
		instructions TEXT NOT NULL DEFAULT '[]',
		has_nutrition BOOLEAN DEFAULT false,
		nutrition_calories TEXT,
		nutrition_protein TEXT,
		nutrition_carbs TEXT,
		nutrition_fat TEXT,
		image_url TEXT,
		embedding TEXT
	);
	`
	if err := db.Exec(schema).Error; err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

// SetupPostgresTestDB starts a throwaway postgres container and returns a
// connection to it. Skipped unless Docker-backed tests are enabled via
// RUN_DB_TESTS=1.
func SetupPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "recipeflash_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=recipeflash_test sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test postgres: %v", err)
	}

	return db
}
