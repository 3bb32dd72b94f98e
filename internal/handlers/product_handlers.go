package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wfxshop/internal/common"
	"wfxshop/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandlers handles the JSON product API
type ProductHandlers struct {
	catalogService services.CatalogService
	images         ImageResolver
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(catalogService services.CatalogService, images ImageResolver) *ProductHandlers {
	return &ProductHandlers{
		catalogService: catalogService,
		images:         images,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.List(ctx)
	if err != nil {
		zap.S().Errorw("list products failed", "error", err)
		return common.SendServerError(c, "Failed to list products")
	}

	views := make([]map[string]interface{}, 0, len(products))
	for _, product := range products {
		views = append(views, map[string]interface{}{
			"id":        product.ID,
			"name":      product.Name,
			"price":     product.Price,
			"image_url": h.images.ImageURL(ctx, product.Image),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": views,
		"count":    len(views),
	})
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.SendClientError(c, "Invalid product id")
	}

	product, err := h.catalogService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Product")
		}
		zap.S().Errorw("get product failed", "id", id, "error", err)
		return common.SendServerError(c, "Failed to load product")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":        product.ID,
		"name":      product.Name,
		"price":     product.Price,
		"image_url": h.images.ImageURL(ctx, product.Image),
	})
}
