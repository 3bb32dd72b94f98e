package handlers

import (
	"net/http"

	"wfxshop/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PageHandlers handles the server-rendered storefront pages
type PageHandlers struct {
	catalogService services.CatalogService
	images         ImageResolver
}

// NewPageHandlers creates a new page handlers instance
func NewPageHandlers(catalogService services.CatalogService, images ImageResolver) *PageHandlers {
	return &PageHandlers{
		catalogService: catalogService,
		images:         images,
	}
}

// ProductView is a catalog row prepared for rendering, with the stored
// image name resolved to a servable URL.
type ProductView struct {
	ID       int64
	Name     string
	Price    float64
	ImageURL string
}

// Landing handles GET /
func (h *PageHandlers) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Title": "Welcome",
	})
}

// Products handles GET /products
func (h *PageHandlers) Products(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.List(ctx)
	if err != nil {
		zap.S().Errorw("list products for page failed", "error", err)
		return renderError(c, http.StatusInternalServerError, "The product list is unavailable right now. Please try again shortly.")
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, ProductView{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: h.images.ImageURL(ctx, product.Image),
		})
	}

	return c.Render(http.StatusOK, "products.html", map[string]interface{}{
		"Title":    "Products",
		"Products": views,
	})
}

// Cart handles GET /cart. The cart itself lives in the browser, so the
// page ships only markup and the script that renders it.
func (h *PageHandlers) Cart(c echo.Context) error {
	return c.Render(http.StatusOK, "cart.html", map[string]interface{}{
		"Title": "Your cart",
	})
}

// CheckoutForm handles GET /checkout
func (h *PageHandlers) CheckoutForm(c echo.Context) error {
	return c.Render(http.StatusOK, "checkout.html", map[string]interface{}{
		"Title": "Checkout",
	})
}

// renderError renders the shared error page with the given status code.
func renderError(c echo.Context, status int, message string) error {
	heading := "Something went wrong"
	if status == http.StatusNotFound {
		heading = "Not found"
	}
	return c.Render(status, "error.html", map[string]interface{}{
		"Title":   heading,
		"Heading": heading,
		"Message": message,
	})
}
