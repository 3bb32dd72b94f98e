package testhelpers

import (
	"context"
	"os"
	"testing"

	"wfxshop/internal/models"
	"wfxshop/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema, and
// empties the storefront tables. Tests that call it are skipped when no
// test database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed test")
	}

	if err := database.Migrate(connString); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	query := "TRUNCATE order_items, orders, products RESTART IDENTITY CASCADE"
	if _, err := pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("Failed to reset test tables: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SeedTestProduct inserts one catalog row and returns it
func SeedTestProduct(t *testing.T, db *TestDB, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Price: price,
		Image: "test.svg",
	}

	query := `
		INSERT INTO products (name, price, image, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(context.Background(), query, product.Name, product.Price, product.Image).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to seed test product: %v", err)
	}

	return product
}
