package repositories

import (
	"context"
	"fmt"

	"wfxshop/internal/models"
)

type ProductRepository interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
	SeedIfEmpty(ctx context.Context, seeds []models.ProductSeed) (bool, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, price, image, created_at
		FROM products
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Image, &product.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, name, price, image, created_at
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.Price, &product.Image, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// productSeedLockID is a stable key for pg_advisory_xact_lock so that
// concurrent boots serialize their seed attempts.
const productSeedLockID = 421784

// SeedIfEmpty inserts the given rows only when the products table is
// empty. The count and the inserts share one transaction, so a second
// caller sees either nothing or the complete seed set, never half of it.
// Returns true when this call did the seeding.
func (r *productRepo) SeedIfEmpty(ctx context.Context, seeds []models.ProductSeed) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(productSeedLockID)); err != nil {
		return false, fmt.Errorf("acquire seed lock: %w", err)
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	query := `
		INSERT INTO products (name, price, image, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	for _, seed := range seeds {
		if _, err := tx.Exec(ctx, query, seed.Name, seed.Price, seed.Image); err != nil {
			return false, fmt.Errorf("insert seed product %q: %w", seed.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit seed transaction: %w", err)
	}
	return true, nil
}
