package services

import (
	"context"
	"errors"
	"fmt"

	"wfxshop/internal/metrics"
	"wfxshop/internal/models"
	"wfxshop/internal/repositories"

	"go.uber.org/zap"
)

// DefaultSeed is the catalog the shop boots with when the products table is
// empty and no PRODUCT_SEED_JSON override is configured. Order matters: ids
// are assigned sequentially, and the storefront scripts reference them.
var DefaultSeed = []models.ProductSeed{
	{Name: "WFX Milk Chocolate", Price: 2.20, Image: "milk.svg"},
	{Name: "WFX Dark Chocolate", Price: 2.50, Image: "dark.svg"},
	{Name: "WFX Hazelnut Chocolate", Price: 2.80, Image: "hazelnut.svg"},
	{Name: "WFX White Chocolate", Price: 2.40, Image: "white.svg"},
}

type CatalogService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	SeedIfEmpty(ctx context.Context, seeds []models.ProductSeed) error
}

type catalogService struct {
	productRepo repositories.ProductRepository
}

func NewCatalogService(productRepo repositories.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) List(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns one catalog row. Callers distinguish a missing row through
// pgx.ErrNoRows, which passes through unwrapped.
func (s *catalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// SeedIfEmpty populates the catalog once. Passing no seeds falls back to
// DefaultSeed. Calling it against a populated catalog is a no-op.
func (s *catalogService) SeedIfEmpty(ctx context.Context, seeds []models.ProductSeed) error {
	if len(seeds) == 0 {
		seeds = DefaultSeed
	}
	for _, seed := range seeds {
		if seed.Name == "" {
			return errors.New("seed product name is required")
		}
		if seed.Price < 0 {
			return errors.New("seed product price must not be negative")
		}
	}

	seeded, err := s.productRepo.SeedIfEmpty(ctx, seeds)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if seeded {
		metrics.ProductsSeeded(len(seeds))
		zap.S().Infow("seeded product catalog", "products", len(seeds))
	} else {
		zap.S().Debug("product catalog already populated, seed skipped")
	}
	return nil
}
